package calculator

import (
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/models"
)

// Transaction is one participant's share of one expense: the participant owes
// the payer Amount. It is derived on every read and never stored.
type Transaction struct {
	PayerID         int64
	PayerName       string
	ParticipantID   int64
	ParticipantName string
	Amount          decimal.Decimal
	Currency        models.Currency
	Description     string
	PersonalPayment bool

	// PaymentID is the ID of the expense the share came from.
	PaymentID int64
}

// IsSelfPair reports whether the payer is listed as their own participant.
func (t Transaction) IsSelfPair() bool {
	return t.PayerID == t.ParticipantID
}

// Involves reports whether userID is the payer or the participant.
func (t Transaction) Involves(userID int64) bool {
	return t.PayerID == userID || t.ParticipantID == userID
}

// FlattenExpenses expands every expense into one Transaction per participant,
// preserving expense order and participant order within each expense.
func FlattenExpenses(expenses []*models.Expense) []Transaction {
	var txs []Transaction
	for _, e := range expenses {
		for _, p := range e.Participants {
			txs = append(txs, Transaction{
				PayerID:         e.PaidByID,
				PayerName:       e.PaidByName,
				ParticipantID:   p.UserID,
				ParticipantName: p.UserName,
				Amount:          p.AmountOwed,
				Currency:        e.Currency,
				Description:     transactionDescription(e.Description, p.Description),
				PersonalPayment: e.PersonalPayment,
				PaymentID:       e.ID,
			})
		}
	}
	return txs
}

// FilterByUser keeps the transactions where userID is payer or participant.
func FilterByUser(txs []Transaction, userID int64) []Transaction {
	var out []Transaction
	for _, tx := range txs {
		if tx.Involves(userID) {
			out = append(out, tx)
		}
	}
	return out
}

func transactionDescription(expense, note string) string {
	if note == "" {
		return expense
	}
	return expense + " - " + note
}
