// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// connection pragmas; foreign_keys is per connection so it rides on the DSN
const pragmas = "?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	dsn := dbPath + pragmas
	if err := runMigrations(dsn); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateExpense persists a new expense and its participants in one transaction.
func (s *SQLiteStore) CreateExpense(ctx context.Context, expense *models.Expense) error {
	if expense.CreatedAt == 0 {
		expense.CreatedAt = time.Now().Unix()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO expenses (description, amount, currency, personal_payment, paid_by_id, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		expense.Description, expense.Amount, string(expense.Currency), expense.PersonalPayment,
		expense.PaidByID, expense.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to read expense id: %w", err)
	}

	if err := insertParticipants(ctx, tx, id, expense.Participants); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	expense.ID = id
	for i := range expense.Participants {
		expense.Participants[i].ExpenseID = id
	}
	return nil
}

// GetExpense retrieves an expense by ID, including its participants.
func (s *SQLiteStore) GetExpense(ctx context.Context, id int64) (*models.Expense, error) {
	expenses, err := s.listExpenses(ctx, "e.id = ?", id)
	if err != nil {
		return nil, err
	}
	if len(expenses) == 0 {
		return nil, fmt.Errorf("expense %d: %w", id, storage.ErrNotFound)
	}
	return expenses[0], nil
}

// ListExpenses returns every expense, newest first.
func (s *SQLiteStore) ListExpenses(ctx context.Context) ([]*models.Expense, error) {
	return s.listExpenses(ctx, "1 = 1")
}

// ListExpensesByParticipant returns the expenses userID has a share in.
func (s *SQLiteStore) ListExpensesByParticipant(ctx context.Context, userID int64) ([]*models.Expense, error) {
	return s.listExpenses(ctx, "e.id IN (SELECT expense_id FROM participants WHERE user_id = ?)", userID)
}

// ListExpensesByPayer returns the expenses paid by userID.
func (s *SQLiteStore) ListExpensesByPayer(ctx context.Context, userID int64) ([]*models.Expense, error) {
	return s.listExpenses(ctx, "e.paid_by_id = ?", userID)
}

// UpdateExpense overwrites an expense and replaces its participant set.
// The delete and the re-inserts share one transaction, so a failed insert
// leaves the previous participants in place.
func (s *SQLiteStore) UpdateExpense(ctx context.Context, expense *models.Expense) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE expenses
		 SET description = ?, amount = ?, currency = ?, personal_payment = ?, paid_by_id = ?
		 WHERE id = ?`,
		expense.Description, expense.Amount, string(expense.Currency), expense.PersonalPayment,
		expense.PaidByID, expense.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update expense: %w", err)
	}
	if err := requireRow(res, expense.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE expense_id = ?", expense.ID); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}
	if err := insertParticipants(ctx, tx, expense.ID, expense.Participants); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	for i := range expense.Participants {
		expense.Participants[i].ExpenseID = expense.ID
	}
	return nil
}

// DeleteExpense removes an expense and its participants.
func (s *SQLiteStore) DeleteExpense(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM participants WHERE expense_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete participants: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM expenses WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	if err := requireRow(res, id); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// DeleteAllExpenses wipes every expense and participant.
func (s *SQLiteStore) DeleteAllExpenses(ctx context.Context) (int64, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM participants"); err != nil {
		return 0, fmt.Errorf("failed to delete participants: %w", err)
	}
	res, err := tx.ExecContext(ctx, "DELETE FROM expenses")
	if err != nil {
		return 0, fmt.Errorf("failed to delete expenses: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted expenses: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return n, nil
}

func insertParticipants(ctx context.Context, tx *sql.Tx, expenseID int64, participants []models.Participant) error {
	for _, p := range participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO participants (expense_id, user_id, amount_owed, description) VALUES (?, ?, ?, ?)",
			expenseID, p.UserID, p.AmountOwed, p.Description,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant %d: %w", p.UserID, err)
		}
	}
	return nil
}

func requireRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("expense %d: %w", id, storage.ErrNotFound)
	}
	return nil
}

// listExpenses loads the expenses matching where (a condition on alias e),
// newest first, and attaches their participants. Both reads run in one
// transaction so they see the same snapshot.
func (s *SQLiteStore) listExpenses(ctx context.Context, where string, args ...any) ([]*models.Expense, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	rows, err := tx.QueryContext(ctx,
		`SELECT e.id, e.description, e.amount, e.currency, e.personal_payment, e.paid_by_id, u.name, e.created_at
		 FROM expenses e
		 JOIN users u ON u.id = e.paid_by_id
		 WHERE `+where+`
		 ORDER BY e.created_at DESC, e.id DESC`,
		args...,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list expenses: %w", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	byID := make(map[int64]*models.Expense)
	for rows.Next() {
		e := &models.Expense{}
		var currency string
		if err := rows.Scan(&e.ID, &e.Description, &e.Amount, &currency, &e.PersonalPayment,
			&e.PaidByID, &e.PaidByName, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		e.Currency = models.Currency(currency)
		expenses = append(expenses, e)
		byID[e.ID] = e
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}
	rows.Close()

	if len(expenses) == 0 {
		return expenses, nil
	}
	if err := loadParticipants(ctx, tx, where, args, byID); err != nil {
		return nil, err
	}
	return expenses, nil
}

func loadParticipants(ctx context.Context, q querier, where string, args []any, byID map[int64]*models.Expense) error {
	rows, err := q.QueryContext(ctx,
		`SELECT p.expense_id, p.user_id, u.name, p.amount_owed, p.description
		 FROM participants p
		 JOIN users u ON u.id = p.user_id
		 WHERE p.expense_id IN (SELECT e.id FROM expenses e WHERE `+where+`)
		 ORDER BY p.expense_id, p.id`,
		args...,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var p models.Participant
		var amount decimal.Decimal
		if err := rows.Scan(&p.ExpenseID, &p.UserID, &p.UserName, &amount, &p.Description); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		p.AmountOwed = amount
		if e, ok := byID[p.ExpenseID]; ok {
			e.Participants = append(e.Participants, p)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err came from a UNIQUE constraint.
func isUniqueViolation(err error) bool {
	var target interface{ Code() int }
	if errors.As(err, &target) {
		// SQLITE_CONSTRAINT_UNIQUE
		return target.Code() == 2067
	}
	return false
}
