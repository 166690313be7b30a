package service

import (
	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/pkg/api"
)

func toAPIUser(u *models.User) *api.User {
	return &api.User{ID: u.ID, Name: u.Name}
}

func toAPIExpense(e *models.Expense) *api.Expense {
	out := &api.Expense{
		ID:              e.ID,
		Description:     e.Description,
		Amount:          e.Amount,
		Currency:        string(e.Currency),
		CurrencySymbol:  e.Currency.Symbol(),
		PersonalPayment: e.PersonalPayment,
		PaidByID:        e.PaidByID,
		PaidByName:      e.PaidByName,
		Participants:    make([]api.Participant, len(e.Participants)),
		CreatedAt:       e.CreatedAt,
	}
	for i, p := range e.Participants {
		out.Participants[i] = api.Participant{
			UserID:      p.UserID,
			UserName:    p.UserName,
			AmountOwed:  p.AmountOwed,
			Description: p.Description,
		}
	}
	return out
}

func toAPIExpenses(expenses []*models.Expense) []*api.Expense {
	out := make([]*api.Expense, len(expenses))
	for i, e := range expenses {
		out[i] = toAPIExpense(e)
	}
	return out
}

// fromExpenseInput builds the model for a create or update. An empty
// currency means EUR. A missing payer becomes defaultPayerID, which is zero
// on update so the payer must always be sent explicitly.
func fromExpenseInput(in api.ExpenseInput, defaultPayerID int64) *models.Expense {
	e := &models.Expense{
		Description:     in.Description,
		Amount:          in.Amount,
		Currency:        models.Currency(in.Currency),
		PersonalPayment: in.PersonalPayment,
		PaidByID:        in.PaidByID,
		Participants:    make([]models.Participant, len(in.Participants)),
	}
	if e.Currency == "" {
		e.Currency = models.CurrencyEUR
	}
	if e.PaidByID == 0 {
		e.PaidByID = defaultPayerID
	}
	for i, p := range in.Participants {
		e.Participants[i] = models.Participant{
			UserID:      p.UserID,
			AmountOwed:  p.AmountOwed,
			Description: p.Description,
		}
	}
	return e
}

func toAPITransactions(txs []calculator.Transaction) []api.Transaction {
	out := make([]api.Transaction, len(txs))
	for i, tx := range txs {
		out[i] = api.Transaction{
			PayerID:         tx.PayerID,
			PayerName:       tx.PayerName,
			ParticipantID:   tx.ParticipantID,
			ParticipantName: tx.ParticipantName,
			Amount:          tx.Amount,
			Currency:        string(tx.Currency),
			Description:     tx.Description,
			PersonalPayment: tx.PersonalPayment,
			PaymentID:       tx.PaymentID,
		}
	}
	return out
}

func toAPISummarizedPayments(summaries []calculator.PairSummary) []api.SummarizedPayment {
	out := make([]api.SummarizedPayment, len(summaries))
	for i, s := range summaries {
		out[i] = api.SummarizedPayment{
			Summary: api.PairSummary{
				PayerID:         s.PayerID,
				PayerName:       s.PayerName,
				ParticipantID:   s.ParticipantID,
				ParticipantName: s.ParticipantName,
				Amount:          s.Amount,
				Settled:         s.Settled(),
			},
			Details: toAPITransactions(s.Details),
		}
	}
	return out
}
