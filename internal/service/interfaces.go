// Package service defines the interfaces for the application's services.
package service

import (
	"context"
	"time"

	"github.com/finchley/penny/internal/model"
)

// TransactionFilter defines filtering options for transaction queries.
// Deleted transactions are excluded unless IncludeDeleted is set.
type TransactionFilter struct {
	StartDate      *time.Time
	EndDate        *time.Time
	Category       string
	Limit          int
	IncludeDeleted bool
}

// Storage defines the contract for the persistence layer.
type Storage interface {
	// Transaction operations
	SaveTransactions(ctx context.Context, transactions []model.Transaction) error
	GetTransactions(ctx context.Context, filter TransactionFilter) ([]model.Transaction, error)
	GetTransactionByID(ctx context.Context, id string) (*model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	RestoreTransaction(ctx context.Context, id string) error
	PurgeDeleted(ctx context.Context) (int64, error)

	// Category operations
	GetCategories(ctx context.Context) ([]model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	CreateCategory(ctx context.Context, name, icon string, categoryType model.CategoryType) (*model.Category, error)
	DeactivateCategory(ctx context.Context, id int) error

	// Database management
	Migrate(ctx context.Context) error
	Close() error
}
