package service

import (
	"context"
	"database/sql"
	"fmt"
	"maps"

	"github.com/ndewijer/InvestPro-Backend/internal/database"
	"github.com/ndewijer/InvestPro-Backend/internal/model"
	"github.com/ndewijer/InvestPro-Backend/internal/version"
)

// SystemService handles system-related operations
type SystemService struct {
	db       *sql.DB
	features map[string]bool
}

// NewSystemService creates a new SystemService.
// features lists optional capabilities and whether they are enabled in this deployment.
func NewSystemService(db *sql.DB, features map[string]bool) *SystemService {
	return &SystemService{
		db:       db,
		features: features,
	}
}

// CheckHealth checks the health of the system
func (s *SystemService) CheckHealth() error {
	return database.HealthCheck(s.db)
}

// CheckVersion reports the application version, the applied schema version and whether migrations are pending.
func (s *SystemService) CheckVersion(ctx context.Context) (model.VersionInfo, error) {
	dbVersion, pending, err := database.SchemaStatus(ctx, s.db)
	if err != nil {
		return model.VersionInfo{}, err
	}

	info := model.VersionInfo{
		AppVersion:      version.Version,
		DbVersion:       fmt.Sprintf("%d", dbVersion),
		Features:        maps.Clone(s.features),
		MigrationNeeded: pending,
	}
	if info.Features == nil {
		info.Features = map[string]bool{}
	}
	if pending {
		msg := "database schema is behind the application; restart to apply pending migrations"
		info.MigrationMessage = &msg
	}
	return info, nil
}
