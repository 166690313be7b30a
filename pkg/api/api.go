// Package api defines the request and response messages of the settleup
// Connect services. Messages are plain structs carried as JSON; money is a
// decimal string such as "12.50".
package api

import "github.com/shopspring/decimal"

// User is the public view of an account.
type User struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Currency is a supported currency code with its display symbol.
type Currency struct {
	Code   string `json:"code"`
	Symbol string `json:"symbol"`
}

// Participant is one user's share of an expense.
type Participant struct {
	UserID      int64           `json:"userId"`
	UserName    string          `json:"userName,omitempty"`
	AmountOwed  decimal.Decimal `json:"amountOwed"`
	Description string          `json:"description,omitempty"`
}

// Expense is a recorded bill or personal payment.
type Expense struct {
	ID              int64           `json:"id"`
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	CurrencySymbol  string          `json:"currencySymbol"`
	PersonalPayment bool            `json:"personalPayment"`
	PaidByID        int64           `json:"paidById"`
	PaidByName      string          `json:"paidByName"`
	Participants    []Participant   `json:"participants"`
	CreatedAt       int64           `json:"createdAt"`
}

// ExpenseInput is the writable part of an expense.
// Participant names are ignored on input.
type ExpenseInput struct {
	Description     string          `json:"description"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	PersonalPayment bool            `json:"personalPayment"`
	PaidByID        int64           `json:"paidById"`
	Participants    []Participant   `json:"participants"`
}

// Transaction is one payer/participant pair flattened from an expense.
type Transaction struct {
	PayerID         int64           `json:"payerId"`
	PayerName       string          `json:"payerName"`
	ParticipantID   int64           `json:"participantId"`
	ParticipantName string          `json:"participantName"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	Description     string          `json:"description"`
	PersonalPayment bool            `json:"personalPayment"`
	PaymentID       int64           `json:"paymentId"`
}

// PairSummary is the net balance between two users. PayerID is owed Amount
// by ParticipantID; Settled pairs have a zero amount.
type PairSummary struct {
	PayerID         int64           `json:"payerId"`
	PayerName       string          `json:"payerName"`
	ParticipantID   int64           `json:"participantId"`
	ParticipantName string          `json:"participantName"`
	Amount          decimal.Decimal `json:"amount"`
	Settled         bool            `json:"settled"`
}

// SummarizedPayment pairs a net summary with its contributing transactions.
type SummarizedPayment struct {
	Summary PairSummary   `json:"summary"`
	Details []Transaction `json:"details"`
}

// PaymentSummary is everything the balance page shows for one user.
type PaymentSummary struct {
	UserID             int64               `json:"userId"`
	TotalPaid          decimal.Decimal     `json:"totalPaid"`
	TotalOwed          decimal.Decimal     `json:"totalOwed"`
	Net                decimal.Decimal     `json:"net"`
	SummarizedPayments []SummarizedPayment `json:"summarizedPayments"`
	AllTransactions    []Transaction       `json:"allTransactions"`
}

// Share is one user's part of an equal split.
type Share struct {
	UserID int64           `json:"userId"`
	Amount decimal.Decimal `json:"amount"`
}
