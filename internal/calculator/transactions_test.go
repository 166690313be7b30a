package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/settleup/internal/models"
)

func TestFlattenExpenses(t *testing.T) {
	expenses := []*models.Expense{
		{
			ID:          9,
			Description: "Dinner",
			Currency:    models.CurrencyEUR,
			PaidByID:    alice,
			PaidByName:  "Alice",
			Amount:      dec("30"),
			Participants: []models.Participant{
				{UserID: alice, UserName: "Alice", AmountOwed: dec("10")},
				{UserID: bob, UserName: "Bob", AmountOwed: dec("12"), Description: "extra wine"},
				{UserID: carol, UserName: "Carol", AmountOwed: dec("8")},
			},
		},
		{
			ID:              4,
			Description:     "Payment Bob -> Alice",
			Currency:        models.CurrencyJPY,
			PersonalPayment: true,
			PaidByID:        bob,
			PaidByName:      "Bob",
			Amount:          dec("5"),
			Participants: []models.Participant{
				{UserID: alice, UserName: "Alice", AmountOwed: dec("5")},
			},
		},
	}

	txs := FlattenExpenses(expenses)
	require.Len(t, txs, 4)

	assert.Equal(t, Transaction{
		PayerID:         alice,
		PayerName:       "Alice",
		ParticipantID:   bob,
		ParticipantName: "Bob",
		Amount:          dec("12"),
		Currency:        models.CurrencyEUR,
		Description:     "Dinner - extra wine",
		PaymentID:       9,
	}, txs[1])
	assert.Equal(t, "Dinner", txs[2].Description)
	assert.True(t, txs[0].IsSelfPair())

	payment := txs[3]
	assert.True(t, payment.PersonalPayment)
	assert.Equal(t, int64(4), payment.PaymentID)
	assert.Equal(t, bob, payment.PayerID)
	assert.Equal(t, alice, payment.ParticipantID)
}

func TestFilterByUser(t *testing.T) {
	txs := []Transaction{
		pays(alice, bob, "1", "a"),
		pays(bob, carol, "2", "b"),
		pays(carol, alice, "3", "c"),
	}

	got := FilterByUser(txs, carol)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].Description)
	assert.Equal(t, "c", got[1].Description)

	assert.Empty(t, FilterByUser(txs, 99))
}

func TestPaymentNetsAgainstExpense(t *testing.T) {
	dinner := &models.Expense{
		ID: 1, Description: "Dinner", PaidByID: alice, PaidByName: "Alice",
		Participants: []models.Participant{{UserID: bob, UserName: "Bob", AmountOwed: dec("20")}},
	}
	payment := models.Payment{FromUserID: bob, FromName: "Bob", ToUserID: alice, ToName: "Alice", Amount: dec("20")}.ToExpense()
	payment.ID = 2

	got := SummarizeForUser(FlattenExpenses([]*models.Expense{payment, dinner}), bob)
	require.Len(t, got, 1)
	assert.True(t, got[0].Settled())
	assert.Len(t, got[0].Details, 2)
}
