package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Payment is a direct transfer from one user to another to clear debt.
// It is persisted as a personal-payment Expense so it nets like any bill.
type Payment struct {
	// FromUserID is the user who paid (debtor settling up).
	FromUserID int64
	FromName   string

	// ToUserID is the user who received payment (creditor being paid).
	ToUserID int64
	ToName   string

	Amount   decimal.Decimal
	Currency Currency
}

// ToExpense converts the payment into the personal-payment expense that
// records it. The sender is the payer and the recipient owes the full amount
// back, which cancels out the sender's existing debt when netted.
func (p Payment) ToExpense() *Expense {
	return &Expense{
		Description:     fmt.Sprintf("Payment %s -> %s", p.FromName, p.ToName),
		Amount:          p.Amount,
		Currency:        p.Currency,
		PersonalPayment: true,
		PaidByID:        p.FromUserID,
		PaidByName:      p.FromName,
		Participants: []Participant{{
			UserID:     p.ToUserID,
			UserName:   p.ToName,
			AmountOwed: p.Amount,
		}},
	}
}
