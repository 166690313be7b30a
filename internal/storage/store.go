// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned when a requested expense or user does not exist.
var ErrNotFound = errors.New("not found")

// ErrUserExists is returned when creating a user whose name is taken.
var ErrUserExists = errors.New("user name already taken")

// ExpenseStore holds expenses and their participants.
// Every read returns expenses with participants attached and payer and
// participant names resolved.
type ExpenseStore interface {
	// CreateExpense persists a new expense with its participants in one unit.
	// The expense ID, participant ExpenseIDs and CreatedAt are filled in.
	CreateExpense(ctx context.Context, expense *models.Expense) error

	// GetExpense retrieves an expense by ID.
	// Returns ErrNotFound if it does not exist.
	GetExpense(ctx context.Context, id int64) (*models.Expense, error)

	// ListExpenses returns every expense, newest first.
	ListExpenses(ctx context.Context) ([]*models.Expense, error)

	// ListExpensesByParticipant returns expenses where userID holds a share, newest first.
	ListExpensesByParticipant(ctx context.Context, userID int64) ([]*models.Expense, error)

	// ListExpensesByPayer returns expenses paid by userID, newest first.
	ListExpensesByPayer(ctx context.Context, userID int64) ([]*models.Expense, error)

	// UpdateExpense overwrites the expense fields and replaces its whole
	// participant set. Either everything is written or nothing is.
	// Returns ErrNotFound if the expense does not exist.
	UpdateExpense(ctx context.Context, expense *models.Expense) error

	// DeleteExpense removes an expense and its participants.
	// Returns ErrNotFound if it does not exist.
	DeleteExpense(ctx context.Context, id int64) error

	// DeleteAllExpenses removes every expense and returns how many were deleted.
	DeleteAllExpenses(ctx context.Context) (int64, error)
}

// UserStore holds user accounts.
type UserStore interface {
	// CreateUser inserts a user and fills in its ID.
	// Returns ErrUserExists if the name is taken.
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByID returns ErrNotFound if there is no such user.
	GetUserByID(ctx context.Context, id int64) (*models.User, error)

	// GetUserByName returns ErrNotFound if there is no such user.
	GetUserByName(ctx context.Context, name string) (*models.User, error)

	// GetUsersByIDs returns the users that exist, keyed by ID.
	GetUsersByIDs(ctx context.Context, ids []int64) (map[int64]*models.User, error)

	// ListUsers returns every user ordered by name.
	ListUsers(ctx context.Context) ([]*models.User, error)

	// UpdatePasswordHash replaces a user's password hash.
	UpdatePasswordHash(ctx context.Context, id int64, hash string) error
}

// Store defines the full storage surface used by the services.
// This abstraction allows swapping storage backends (SQLite, PostgreSQL, etc.)
// without changing the service layer.
type Store interface {
	ExpenseStore
	UserStore

	// Close releases any resources held by the store.
	Close() error
}
