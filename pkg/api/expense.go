package api

import "github.com/shopspring/decimal"

type CreateExpenseRequest struct {
	Expense ExpenseInput `json:"expense"`
}

type CreateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type GetExpenseRequest struct {
	ID int64 `json:"id"`
}

type GetExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type ListExpensesRequest struct{}

type ListExpensesResponse struct {
	Expenses []*Expense `json:"expenses"`
}

type UpdateExpenseRequest struct {
	ID      int64        `json:"id"`
	Expense ExpenseInput `json:"expense"`
}

type UpdateExpenseResponse struct {
	Expense *Expense `json:"expense"`
}

type DeleteExpenseRequest struct {
	ID int64 `json:"id"`
}

type DeleteExpenseResponse struct{}

// ListExpensesByParticipantRequest lists expenses UserID has a share in.
// A zero UserID means the caller.
type ListExpensesByParticipantRequest struct {
	UserID int64 `json:"userId,omitempty"`
}

// ListExpensesByPayerRequest lists expenses UserID paid for.
// A zero UserID means the caller.
type ListExpensesByPayerRequest struct {
	UserID int64 `json:"userId,omitempty"`
}

type SplitEquallyRequest struct {
	Total   decimal.Decimal `json:"total"`
	UserIDs []int64         `json:"userIds"`
}

type SplitEquallyResponse struct {
	Shares []Share `json:"shares"`
}

// MakePaymentRequest records a transfer from the caller to ToUserID.
type MakePaymentRequest struct {
	ToUserID int64           `json:"toUserId"`
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
}

type MakePaymentResponse struct {
	Expense *Expense `json:"expense"`
}

type WipeExpensesRequest struct{}

type WipeExpensesResponse struct {
	Deleted int64 `json:"deleted"`
}

type ListCurrenciesRequest struct{}

type ListCurrenciesResponse struct {
	Currencies []Currency `json:"currencies"`
}
