package models

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Currency is the currency an expense was recorded in.
// Amounts in different currencies are never converted.
type Currency string

const (
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyJPY Currency = "JPY"
	CurrencyUSD Currency = "USD"
)

// Currencies lists every supported currency in display order.
var Currencies = []Currency{CurrencyEUR, CurrencyGBP, CurrencyJPY, CurrencyUSD}

// Valid reports whether c is a supported currency.
func (c Currency) Valid() bool {
	switch c {
	case CurrencyEUR, CurrencyGBP, CurrencyJPY, CurrencyUSD:
		return true
	}
	return false
}

// Symbol returns the display symbol for the currency.
func (c Currency) Symbol() string {
	switch c {
	case CurrencyEUR:
		return "€"
	case CurrencyGBP:
		return "£"
	case CurrencyJPY:
		return "¥"
	case CurrencyUSD:
		return "$"
	}
	return string(c)
}

// Expense is one recorded bill: a total paid by one user and owed back in
// parts by its participants.
type Expense struct {
	// ID is assigned by the store on insert.
	ID int64

	Description string

	// Amount is the total paid.
	Amount decimal.Decimal

	Currency Currency

	// PersonalPayment marks a direct transfer between two users rather than a
	// shared bill. It nets exactly like any other expense.
	PersonalPayment bool

	// PaidByID is the user who paid the total.
	PaidByID int64

	// PaidByName is filled in by the store on reads.
	PaidByName string

	// Participants are the line items, in insertion order.
	Participants []Participant

	// CreatedAt is the Unix timestamp when the expense was first recorded.
	CreatedAt int64
}

// Participant is a single user's share of an expense.
type Participant struct {
	ExpenseID int64
	UserID    int64

	// UserName is filled in by the store on reads.
	UserName string

	AmountOwed decimal.Decimal

	// Description is an optional per-participant note.
	Description string
}

var (
	ErrEmptyDescription     = errors.New("description must not be empty")
	ErrDescriptionTooLong   = errors.New("description too long (max 200 characters)")
	ErrMissingPayer         = errors.New("payer is required")
	ErrInvalidAmount        = errors.New("amount must be greater than 0")
	ErrAmountTooLarge       = errors.New("amount exceeds the allowed maximum")
	ErrInvalidCurrency      = errors.New("unsupported currency")
	ErrNoParticipants       = errors.New("expense must have at least one participant")
	ErrInvalidShare         = errors.New("each participant's amount owed must be greater than 0")
	ErrDuplicateParticipant = errors.New("participant listed more than once")
	ErrShareMismatch        = errors.New("participant amounts do not add up to the total")
	ErrPersonalPaymentShape = errors.New("personal payment must have exactly one participant other than the payer")
)

const maxDescriptionLength = 200

var (
	defaultMaxExpenseAmount = decimal.NewFromInt(5000)
	defaultShareTolerance   = decimal.RequireFromString("0.1")
)

// ValidationRules bounds what an expense may look like before it is persisted.
type ValidationRules struct {
	// MaxAmount is the inclusive ceiling on an expense total.
	MaxAmount decimal.Decimal

	// ShareTolerance is the absolute difference allowed between the total and
	// the sum of participant shares.
	ShareTolerance decimal.Decimal
}

// DefaultValidationRules returns a 5000 ceiling and a 0.1 share tolerance.
func DefaultValidationRules() ValidationRules {
	return ValidationRules{
		MaxAmount:      defaultMaxExpenseAmount,
		ShareTolerance: defaultShareTolerance,
	}
}

// Validate checks e against the rules. The store does not re-check any of this.
func (e *Expense) Validate(rules ValidationRules) error {
	description := strings.TrimSpace(e.Description)
	if description == "" {
		return ErrEmptyDescription
	}
	if len(description) > maxDescriptionLength {
		return ErrDescriptionTooLong
	}
	if e.PaidByID == 0 {
		return ErrMissingPayer
	}
	if !e.Amount.IsPositive() {
		return ErrInvalidAmount
	}
	if e.Amount.GreaterThan(rules.MaxAmount) {
		return fmt.Errorf("%w: %s > %s", ErrAmountTooLarge, e.Amount.StringFixed(2), rules.MaxAmount.StringFixed(2))
	}
	if !e.Currency.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCurrency, e.Currency)
	}
	if len(e.Participants) == 0 {
		return ErrNoParticipants
	}

	seen := make(map[int64]bool, len(e.Participants))
	total := decimal.Zero
	for _, p := range e.Participants {
		if !p.AmountOwed.IsPositive() {
			return ErrInvalidShare
		}
		if seen[p.UserID] {
			return fmt.Errorf("%w: user %d", ErrDuplicateParticipant, p.UserID)
		}
		seen[p.UserID] = true
		total = total.Add(p.AmountOwed)
	}
	if total.Sub(e.Amount).Abs().GreaterThan(rules.ShareTolerance) {
		return fmt.Errorf("%w: shares %s, total %s", ErrShareMismatch, total.StringFixed(2), e.Amount.StringFixed(2))
	}

	if e.PersonalPayment {
		if len(e.Participants) != 1 || e.Participants[0].UserID == e.PaidByID {
			return ErrPersonalPaymentShape
		}
	}
	return nil
}

// ParticipantIDs returns the user IDs of every participant, in order.
func (e *Expense) ParticipantIDs() []int64 {
	ids := make([]int64, len(e.Participants))
	for i, p := range e.Participants {
		ids[i] = p.UserID
	}
	return ids
}
