package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrTransactionNotFound indicates that a transaction with the given ID does not exist.
	ErrTransactionNotFound = errors.New("transaction not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrRefreshInProgress indicates that a market refresh was requested while another one runs.
	ErrRefreshInProgress = errors.New("market refresh already in progress")

	// ErrInvalidBackup indicates that an imported ledger could not be opened or decoded.
	ErrInvalidBackup = errors.New("invalid ledger backup")

	// ErrBackupKeyRequired indicates a sealed backup was supplied but no key is configured.
	ErrBackupKeyRequired = errors.New("backup key is not configured")

	// ErrInvalidDay indicates a calendar day outside 1-31.
	ErrInvalidDay = errors.New("day must be between 1 and 31")
)

// Operation failure errors represent system-level failures when retrieving or processing data.
// These errors indicate that an operation failed, but not due to missing entities or validation issues.
var (
	// Transaction operation errors
	ErrFailedToRetrieveTransactions = errors.New("failed to retrieve transactions")
	ErrFailedToRetrieveTransaction  = errors.New("failed to retrieve transaction")
	ErrFailedToCreateTransaction    = errors.New("failed to create transaction")
	ErrFailedToDeleteTransaction    = errors.New("failed to delete transaction")
	ErrFailedToExportTransactions   = errors.New("failed to export transactions")
	ErrFailedToImportTransactions   = errors.New("failed to import transactions")

	// Portfolio operation errors
	ErrFailedToGetPortfolioSummary = errors.New("failed to get portfolio summary")
	ErrFailedToGetPortfolioCharts  = errors.New("failed to get portfolio charts")

	// Market operation errors
	ErrFailedToRetrieveQuotes    = errors.New("failed to retrieve quotes")
	ErrFailedToRefreshMarket     = errors.New("failed to refresh market data")
	ErrFailedToRetrieveDividends = errors.New("failed to retrieve dividend calendar")
	ErrFailedToRetrieveNews      = errors.New("failed to retrieve news")
	ErrFailedToGenerateTaxReport = errors.New("failed to generate tax report")
	ErrFailedToGetVersionInfo    = errors.New("failed to get version information")
)
