package service

import (
	"context"
	"testing"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// reverseShuffler reverses the order, so leftover cents go to the last users.
type reverseShuffler struct{}

func (reverseShuffler) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func TestCreateExpense_And_GetExpense(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	created := env.createExpense(t, env.alice, "Dinner", "30.00",
		share(env.alice, "10"),
		api.Participant{UserID: env.bob.ID, AmountOwed: d("12"), Description: "extra wine"},
		share(env.carol, "8"),
	)
	if created.ID == 0 {
		t.Fatal("Expected expense ID to be generated")
	}
	if created.PaidByName != "Alice" {
		t.Errorf("PaidByName = %q, want Alice", created.PaidByName)
	}
	if created.CurrencySymbol != "€" {
		t.Errorf("CurrencySymbol = %q, want €", created.CurrencySymbol)
	}

	resp, err := env.expenses.GetExpense(ctx, as(env.bob, &api.GetExpenseRequest{ID: created.ID}))
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	got := resp.Msg.Expense
	if len(got.Participants) != 3 {
		t.Fatalf("Expected 3 participants, got %d", len(got.Participants))
	}
	if got.Participants[1].UserName != "Bob" || got.Participants[1].Description != "extra wine" {
		t.Errorf("unexpected participant: %+v", got.Participants[1])
	}
	if !got.Amount.Equal(d("30")) {
		t.Errorf("Amount = %s, want 30", got.Amount)
	}
}

func TestCreateExpense_DefaultsPayerAndCurrency(t *testing.T) {
	env := setupTestServer(t)

	resp, err := env.expenses.CreateExpense(context.Background(), as(env.bob, &api.CreateExpenseRequest{
		Expense: api.ExpenseInput{
			Description:  "Coffee",
			Amount:       d("4"),
			Participants: []api.Participant{share(env.alice, "4")},
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense failed: %v", err)
	}
	if resp.Msg.Expense.PaidByID != env.bob.ID {
		t.Errorf("PaidByID = %d, want caller %d", resp.Msg.Expense.PaidByID, env.bob.ID)
	}
	if resp.Msg.Expense.Currency != "EUR" {
		t.Errorf("Currency = %q, want EUR", resp.Msg.Expense.Currency)
	}
}

func TestCreateExpense_Validation(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name  string
		input api.ExpenseInput
	}{
		{
			name:  "zero amount",
			input: api.ExpenseInput{Description: "x", Amount: d("0"), Participants: []api.Participant{share(env.bob, "1")}},
		},
		{
			name:  "over the ceiling",
			input: api.ExpenseInput{Description: "x", Amount: d("5000.01"), Participants: []api.Participant{share(env.bob, "5000.01")}},
		},
		{
			name:  "shares off by more than 0.1",
			input: api.ExpenseInput{Description: "x", Amount: d("10"), Participants: []api.Participant{share(env.bob, "5"), share(env.carol, "4.89")}},
		},
		{
			name:  "no participants",
			input: api.ExpenseInput{Description: "x", Amount: d("10")},
		},
		{
			name:  "unknown participant",
			input: api.ExpenseInput{Description: "x", Amount: d("10"), Participants: []api.Participant{{UserID: 999, AmountOwed: d("10")}}},
		},
		{
			name:  "unknown payer",
			input: api.ExpenseInput{Description: "x", Amount: d("10"), PaidByID: 999, Participants: []api.Participant{share(env.bob, "10")}},
		},
		{
			name:  "unknown currency",
			input: api.ExpenseInput{Description: "x", Amount: d("10"), Currency: "XYZ", Participants: []api.Participant{share(env.bob, "10")}},
		},
		{
			name:  "empty description",
			input: api.ExpenseInput{Description: "  ", Amount: d("10"), Participants: []api.Participant{share(env.bob, "10")}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.expenses.CreateExpense(context.Background(), as(env.alice, &api.CreateExpenseRequest{Expense: tt.input}))
			assertCode(t, err, connect.CodeInvalidArgument)
		})
	}

	resp, err := env.expenses.ListExpenses(context.Background(), as(env.alice, &api.ListExpensesRequest{}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(resp.Msg.Expenses) != 0 {
		t.Errorf("rejected expenses must not be stored, found %d", len(resp.Msg.Expenses))
	}
}

func TestCreateExpense_WithinTolerance(t *testing.T) {
	env := setupTestServer(t)
	env.createExpense(t, env.alice, "Rounded", "10.00", share(env.bob, "5"), share(env.carol, "4.9"))
}

func TestExpenseService_RequiresSession(t *testing.T) {
	env := setupTestServer(t)
	_, err := env.expenses.ListExpenses(context.Background(), as[api.ListExpensesRequest](nil, &api.ListExpensesRequest{}))
	assertCode(t, err, connect.CodeUnauthenticated)
}

func TestGetExpense_NotFound(t *testing.T) {
	env := setupTestServer(t)
	_, err := env.expenses.GetExpense(context.Background(), as(env.alice, &api.GetExpenseRequest{ID: 12345}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestUpdateExpense(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	created := env.createExpense(t, env.alice, "Groceries", "20", share(env.bob, "10"), share(env.carol, "10"))

	resp, err := env.expenses.UpdateExpense(ctx, as(env.bob, &api.UpdateExpenseRequest{
		ID: created.ID,
		Expense: api.ExpenseInput{
			Description:  "Groceries (fixed)",
			Amount:       d("24"),
			Currency:     "GBP",
			PaidByID:     env.alice.ID,
			Participants: []api.Participant{share(env.carol, "24")},
		},
	}))
	if err != nil {
		t.Fatalf("UpdateExpense failed: %v", err)
	}
	got := resp.Msg.Expense
	if got.Description != "Groceries (fixed)" || got.Currency != "GBP" || got.CurrencySymbol != "£" {
		t.Errorf("unexpected expense after update: %+v", got)
	}
	if len(got.Participants) != 1 || got.Participants[0].UserID != env.carol.ID {
		t.Errorf("participants not replaced: %+v", got.Participants)
	}
	if got.CreatedAt != created.CreatedAt {
		t.Errorf("CreatedAt changed on update")
	}
}

func TestUpdateExpense_InvalidLeavesOriginal(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	created := env.createExpense(t, env.alice, "Cinema", "16", share(env.bob, "8"), share(env.carol, "8"))

	_, err := env.expenses.UpdateExpense(ctx, as(env.alice, &api.UpdateExpenseRequest{
		ID: created.ID,
		Expense: api.ExpenseInput{
			Description:  "Cinema",
			Amount:       d("16"),
			PaidByID:     env.alice.ID,
			Participants: []api.Participant{share(env.bob, "8"), {UserID: 999, AmountOwed: d("8")}},
		},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	resp, err := env.expenses.GetExpense(ctx, as(env.alice, &api.GetExpenseRequest{ID: created.ID}))
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if len(resp.Msg.Expense.Participants) != 2 {
		t.Errorf("original participants lost: %+v", resp.Msg.Expense.Participants)
	}
}

func TestUpdateExpense_NotFound(t *testing.T) {
	env := setupTestServer(t)
	_, err := env.expenses.UpdateExpense(context.Background(), as(env.alice, &api.UpdateExpenseRequest{
		ID: 777,
		Expense: api.ExpenseInput{
			Description:  "Ghost",
			Amount:       d("1"),
			PaidByID:     env.alice.ID,
			Participants: []api.Participant{share(env.bob, "1")},
		},
	}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestDeleteExpense(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	created := env.createExpense(t, env.alice, "Taxi", "9", share(env.bob, "9"))

	if _, err := env.expenses.DeleteExpense(ctx, as(env.bob, &api.DeleteExpenseRequest{ID: created.ID})); err != nil {
		t.Fatalf("DeleteExpense failed: %v", err)
	}
	_, err := env.expenses.GetExpense(ctx, as(env.bob, &api.GetExpenseRequest{ID: created.ID}))
	assertCode(t, err, connect.CodeNotFound)

	_, err = env.expenses.DeleteExpense(ctx, as(env.bob, &api.DeleteExpenseRequest{ID: created.ID}))
	assertCode(t, err, connect.CodeNotFound)
}

func TestListExpensesByParticipantAndPayer(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	env.createExpense(t, env.alice, "first", "10", share(env.bob, "10"))
	env.createExpense(t, env.bob, "second", "10", share(env.carol, "10"))
	env.createExpense(t, env.carol, "third", "10", share(env.bob, "5"), share(env.alice, "5"))

	byParticipant, err := env.expenses.ListExpensesByParticipant(ctx, as(env.bob, &api.ListExpensesByParticipantRequest{}))
	if err != nil {
		t.Fatalf("ListExpensesByParticipant failed: %v", err)
	}
	if n := len(byParticipant.Msg.Expenses); n != 2 {
		t.Fatalf("expected 2 expenses for Bob as participant, got %d", n)
	}
	if byParticipant.Msg.Expenses[0].Description != "third" {
		t.Errorf("expected newest first, got %s", byParticipant.Msg.Expenses[0].Description)
	}

	byPayer, err := env.expenses.ListExpensesByPayer(ctx, as(env.bob, &api.ListExpensesByPayerRequest{UserID: env.carol.ID}))
	if err != nil {
		t.Fatalf("ListExpensesByPayer failed: %v", err)
	}
	if n := len(byPayer.Msg.Expenses); n != 1 || byPayer.Msg.Expenses[0].Description != "third" {
		t.Errorf("unexpected expenses paid by Carol: %+v", byPayer.Msg.Expenses)
	}

	all, err := env.expenses.ListExpenses(ctx, as(env.alice, &api.ListExpensesRequest{}))
	if err != nil {
		t.Fatalf("ListExpenses failed: %v", err)
	}
	if len(all.Msg.Expenses) != 3 {
		t.Errorf("expected 3 expenses, got %d", len(all.Msg.Expenses))
	}
}

func TestSplitEqually(t *testing.T) {
	env := setupTestServer(t)
	env.expenseSvc.shuffler = reverseShuffler{}

	resp, err := env.expenses.SplitEqually(context.Background(), as(env.alice, &api.SplitEquallyRequest{
		Total:   d("100.00"),
		UserIDs: []int64{env.alice.ID, env.bob.ID, env.carol.ID},
	}))
	if err != nil {
		t.Fatalf("SplitEqually failed: %v", err)
	}

	want := []string{"33.33", "33.33", "33.34"}
	shares := resp.Msg.Shares
	if len(shares) != len(want) {
		t.Fatalf("expected %d shares, got %d", len(want), len(shares))
	}
	for i, s := range shares {
		if !s.Amount.Equal(d(want[i])) {
			t.Errorf("shares[%d] = %s, want %s", i, s.Amount, want[i])
		}
	}
	if shares[2].UserID != env.carol.ID {
		t.Errorf("shares must follow request order")
	}
}

func TestSplitEqually_Errors(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	_, err := env.expenses.SplitEqually(ctx, as(env.alice, &api.SplitEquallyRequest{Total: d("10")}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.expenses.SplitEqually(ctx, as(env.alice, &api.SplitEquallyRequest{Total: d("10"), UserIDs: []int64{env.bob.ID, 999}}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.expenses.SplitEqually(ctx, as(env.alice, &api.SplitEquallyRequest{Total: d("-1"), UserIDs: []int64{env.bob.ID}}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestSplitEqually_TotalAboveCeiling(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()
	users := []int64{env.alice.ID, env.bob.ID, env.carol.ID}

	for _, total := range []string{"5000.01", "100000000000000000000"} {
		_, err := env.expenses.SplitEqually(ctx, as(env.alice, &api.SplitEquallyRequest{Total: d(total), UserIDs: users}))
		assertCode(t, err, connect.CodeInvalidArgument)
	}

	resp, err := env.expenses.SplitEqually(ctx, as(env.alice, &api.SplitEquallyRequest{Total: d("5000"), UserIDs: users}))
	if err != nil {
		t.Fatalf("SplitEqually at the ceiling failed: %v", err)
	}
	sum := d("0")
	for _, s := range resp.Msg.Shares {
		sum = sum.Add(s.Amount)
	}
	if !sum.Equal(d("5000")) {
		t.Errorf("shares sum to %s, want 5000", sum)
	}
}

func TestMakePayment(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	resp, err := env.expenses.MakePayment(ctx, as(env.bob, &api.MakePaymentRequest{
		ToUserID: env.alice.ID,
		Amount:   d("15"),
	}))
	if err != nil {
		t.Fatalf("MakePayment failed: %v", err)
	}
	got := resp.Msg.Expense
	if !got.PersonalPayment {
		t.Error("expected a personal payment")
	}
	if got.Description != "Payment Bob -> Alice" {
		t.Errorf("Description = %q", got.Description)
	}
	if got.PaidByID != env.bob.ID || len(got.Participants) != 1 || got.Participants[0].UserID != env.alice.ID {
		t.Errorf("unexpected payment shape: %+v", got)
	}

	_, err = env.expenses.MakePayment(ctx, as(env.bob, &api.MakePaymentRequest{ToUserID: env.bob.ID, Amount: d("1")}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.expenses.MakePayment(ctx, as(env.bob, &api.MakePaymentRequest{ToUserID: 999, Amount: d("1")}))
	assertCode(t, err, connect.CodeInvalidArgument)

	_, err = env.expenses.MakePayment(ctx, as(env.bob, &api.MakePaymentRequest{ToUserID: env.alice.ID, Amount: d("0")}))
	assertCode(t, err, connect.CodeInvalidArgument)
}

func TestWipeExpenses(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	env.createExpense(t, env.alice, "a", "1", share(env.bob, "1"))
	env.createExpense(t, env.alice, "b", "2", share(env.bob, "2"))

	resp, err := env.expenses.WipeExpenses(ctx, as(env.alice, &api.WipeExpensesRequest{}))
	if err != nil {
		t.Fatalf("WipeExpenses failed: %v", err)
	}
	if resp.Msg.Deleted != 2 {
		t.Errorf("Deleted = %d, want 2", resp.Msg.Deleted)
	}

	env.expenseSvc.allowWipe = false
	_, err = env.expenses.WipeExpenses(ctx, as(env.alice, &api.WipeExpensesRequest{}))
	assertCode(t, err, connect.CodePermissionDenied)
}

func TestListCurrencies(t *testing.T) {
	env := setupTestServer(t)
	resp, err := env.expenses.ListCurrencies(context.Background(), as(env.alice, &api.ListCurrenciesRequest{}))
	if err != nil {
		t.Fatalf("ListCurrencies failed: %v", err)
	}
	want := map[string]string{"EUR": "€", "GBP": "£", "JPY": "¥", "USD": "$"}
	if len(resp.Msg.Currencies) != len(want) {
		t.Fatalf("expected %d currencies, got %d", len(want), len(resp.Msg.Currencies))
	}
	for _, c := range resp.Msg.Currencies {
		if want[c.Code] != c.Symbol {
			t.Errorf("%s symbol = %q, want %q", c.Code, c.Symbol, want[c.Code])
		}
	}
}

func TestUpdateExpense_RequiresPayer(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	created := env.createExpense(t, env.alice, "Brunch", "12", share(env.bob, "12"))

	_, err := env.expenses.UpdateExpense(ctx, as(env.bob, &api.UpdateExpenseRequest{
		ID: created.ID,
		Expense: api.ExpenseInput{
			Description:  "Brunch",
			Amount:       d("12"),
			Participants: []api.Participant{share(env.bob, "12")},
		},
	}))
	assertCode(t, err, connect.CodeInvalidArgument)

	resp, err := env.expenses.GetExpense(ctx, as(env.bob, &api.GetExpenseRequest{ID: created.ID}))
	if err != nil {
		t.Fatalf("GetExpense failed: %v", err)
	}
	if resp.Msg.Expense.PaidByID != env.alice.ID {
		t.Errorf("payer changed to %d, want %d", resp.Msg.Expense.PaidByID, env.alice.ID)
	}
}
