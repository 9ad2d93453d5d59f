package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/ndewijer/InvestPro-Backend/internal/service"
	"github.com/ndewijer/InvestPro-Backend/internal/testutil"
)

func TestTaxService_GetTaxReport(t *testing.T) {
	tests := []struct {
		name          string
		seed          bool
		report        string
		reportErr     error
		wantReport    string
		wantGenerated bool
		wantCalls     int
	}{
		{name: "empty portfolio skips the gateway", wantReport: service.TaxReportEmptyPortfolio},
		{name: "generated report is returned", seed: true, report: "PETR4 (EQUITY): 100 un", wantReport: "PETR4 (EQUITY): 100 un", wantGenerated: true, wantCalls: 1},
		{name: "blank report is unavailable", seed: true, report: "  ", wantReport: service.TaxReportUnavailable, wantCalls: 1},
		{name: "gateway error is reported as failure", seed: true, reportErr: errors.New("boom"), wantReport: service.TaxReportFailed, wantCalls: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db := testutil.SetupTestDB(t)
			gateway := testutil.NewMockGateway()
			gateway.Report = tt.report
			gateway.ReportErr = tt.reportErr
			svc := testutil.NewTestTaxService(t, db, gateway)
			if tt.seed {
				testutil.NewTransaction().Build(t, db)
			}

			got, err := svc.GetTaxReport(context.Background())
			if err != nil {
				t.Fatalf("GetTaxReport() returned unexpected error: %v", err)
			}
			if got.Report != tt.wantReport || got.Generated != tt.wantGenerated {
				t.Errorf("GetTaxReport() = %+v, want report %q generated %v", got, tt.wantReport, tt.wantGenerated)
			}
			if gateway.ReportCalls != tt.wantCalls {
				t.Errorf("Expected %d gateway calls, got %d", tt.wantCalls, gateway.ReportCalls)
			}
		})
	}
}
