package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.ExpenseServiceHandler = (*ExpenseService)(nil)

// ExpenseService implements the Connect ExpenseService.
type ExpenseService struct {
	store     storage.Store
	rules     models.ValidationRules
	allowWipe bool
	shuffler  calculator.Shuffler
}

// NewExpenseService creates an ExpenseService that validates with rules.
// WipeExpenses is refused unless allowWipe is set.
func NewExpenseService(store storage.Store, rules models.ValidationRules, allowWipe bool) *ExpenseService {
	return &ExpenseService{
		store:     store,
		rules:     rules,
		allowWipe: allowWipe,
		shuffler:  calculator.DefaultShuffler,
	}
}

// CreateExpense validates and stores a new expense.
func (s *ExpenseService) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	expense := fromExpenseInput(req.Msg.Expense, session.UserID)
	if err := s.validate(ctx, expense); err != nil {
		slog.Warn("CreateExpense validation failed", "user_id", session.UserID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("CreateExpense failed", "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Expense created", "expense_id", expense.ID, "user_id", session.UserID, "amount", expense.Amount.StringFixed(2))

	return respondWithExpense(ctx, s.store, expense.ID, func(e *api.Expense) *api.CreateExpenseResponse {
		return &api.CreateExpenseResponse{Expense: e}
	})
}

// GetExpense retrieves a stored expense by ID.
func (s *ExpenseService) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	if _, err := requireSession(ctx); err != nil {
		return nil, err
	}
	if req.Msg.ID == 0 {
		return nil, toConnectError(errMissingID)
	}
	return respondWithExpense(ctx, s.store, req.Msg.ID, func(e *api.Expense) *api.GetExpenseResponse {
		return &api.GetExpenseResponse{Expense: e}
	})
}

// ListExpenses returns every expense, newest first.
func (s *ExpenseService) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	if _, err := requireSession(ctx); err != nil {
		return nil, err
	}
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		slog.Error("ListExpenses failed", "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// UpdateExpense replaces an expense and its whole participant set.
func (s *ExpenseService) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == 0 {
		return nil, toConnectError(errMissingID)
	}

	expense := fromExpenseInput(req.Msg.Expense, 0)
	expense.ID = req.Msg.ID
	if err := s.validate(ctx, expense); err != nil {
		slog.Warn("UpdateExpense validation failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}

	if err := s.store.UpdateExpense(ctx, expense); err != nil {
		slog.Error("UpdateExpense failed", "expense_id", expense.ID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Expense updated", "expense_id", expense.ID, "user_id", session.UserID)

	return respondWithExpense(ctx, s.store, expense.ID, func(e *api.Expense) *api.UpdateExpenseResponse {
		return &api.UpdateExpenseResponse{Expense: e}
	})
}

// DeleteExpense removes an expense.
func (s *ExpenseService) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ID == 0 {
		return nil, toConnectError(errMissingID)
	}
	if err := s.store.DeleteExpense(ctx, req.Msg.ID); err != nil {
		slog.Error("DeleteExpense failed", "expense_id", req.Msg.ID, "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Expense deleted", "expense_id", req.Msg.ID, "user_id", session.UserID)
	return connect.NewResponse(&api.DeleteExpenseResponse{}), nil
}

// ListExpensesByParticipant returns the expenses a user holds a share in.
func (s *ExpenseService) ListExpensesByParticipant(ctx context.Context, req *connect.Request[api.ListExpensesByParticipantRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	userID := req.Msg.UserID
	if userID == 0 {
		userID = session.UserID
	}
	expenses, err := s.store.ListExpensesByParticipant(ctx, userID)
	if err != nil {
		slog.Error("ListExpensesByParticipant failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// ListExpensesByPayer returns the expenses a user paid for.
func (s *ExpenseService) ListExpensesByPayer(ctx context.Context, req *connect.Request[api.ListExpensesByPayerRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	userID := req.Msg.UserID
	if userID == 0 {
		userID = session.UserID
	}
	expenses, err := s.store.ListExpensesByPayer(ctx, userID)
	if err != nil {
		slog.Error("ListExpensesByPayer failed", "user_id", userID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.ListExpensesResponse{Expenses: toAPIExpenses(expenses)}), nil
}

// SplitEqually divides a total evenly among users, handing leftover cents
// to randomly chosen users. Shares come back in request order.
func (s *ExpenseService) SplitEqually(ctx context.Context, req *connect.Request[api.SplitEquallyRequest]) (*connect.Response[api.SplitEquallyResponse], error) {
	if _, err := requireSession(ctx); err != nil {
		return nil, err
	}
	if req.Msg.Total.GreaterThan(s.rules.MaxAmount) {
		return nil, toConnectError(fmt.Errorf("%w: %s > %s",
			models.ErrAmountTooLarge, req.Msg.Total.StringFixed(2), s.rules.MaxAmount.StringFixed(2)))
	}
	if err := s.checkUsers(ctx, req.Msg.UserIDs...); err != nil {
		return nil, toConnectError(err)
	}

	amounts, err := calculator.SplitEqually(req.Msg.Total, len(req.Msg.UserIDs), s.shuffler)
	if err != nil {
		return nil, toConnectError(err)
	}

	shares := make([]api.Share, len(amounts))
	for i, amount := range amounts {
		shares[i] = api.Share{UserID: req.Msg.UserIDs[i], Amount: amount}
	}
	return connect.NewResponse(&api.SplitEquallyResponse{Shares: shares}), nil
}

// MakePayment records a direct transfer from the caller to another user as
// a personal-payment expense.
func (s *ExpenseService) MakePayment(ctx context.Context, req *connect.Request[api.MakePaymentRequest]) (*connect.Response[api.MakePaymentResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if req.Msg.ToUserID == session.UserID {
		return nil, toConnectError(errSelfPayment)
	}

	recipient, err := s.store.GetUserByID(ctx, req.Msg.ToUserID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, toConnectError(fmt.Errorf("recipient %d: %w", req.Msg.ToUserID, errUnknownUser))
	}
	if err != nil {
		return nil, toConnectError(err)
	}

	currency := models.Currency(req.Msg.Currency)
	if currency == "" {
		currency = models.CurrencyEUR
	}
	payment := models.Payment{
		FromUserID: session.UserID,
		FromName:   session.Name,
		ToUserID:   recipient.ID,
		ToName:     recipient.Name,
		Amount:     req.Msg.Amount,
		Currency:   currency,
	}
	expense := payment.ToExpense()
	if err := expense.Validate(s.rules); err != nil {
		return nil, toConnectError(err)
	}

	if err := s.store.CreateExpense(ctx, expense); err != nil {
		slog.Error("MakePayment failed", "error", err)
		return nil, toConnectError(err)
	}
	slog.Info("Payment recorded", "expense_id", expense.ID, "from", session.UserID, "to", recipient.ID,
		"amount", expense.Amount.StringFixed(2))

	return respondWithExpense(ctx, s.store, expense.ID, func(e *api.Expense) *api.MakePaymentResponse {
		return &api.MakePaymentResponse{Expense: e}
	})
}

// WipeExpenses deletes every expense. Development only.
func (s *ExpenseService) WipeExpenses(ctx context.Context, req *connect.Request[api.WipeExpensesRequest]) (*connect.Response[api.WipeExpensesResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}
	if !s.allowWipe {
		return nil, toConnectError(errFeatureDisabled)
	}

	n, err := s.store.DeleteAllExpenses(ctx)
	if err != nil {
		slog.Error("WipeExpenses failed", "error", err)
		return nil, toConnectError(err)
	}
	slog.Warn("All expenses wiped", "user_id", session.UserID, "deleted", n)
	return connect.NewResponse(&api.WipeExpensesResponse{Deleted: n}), nil
}

// ListCurrencies returns the supported currencies and their symbols.
func (s *ExpenseService) ListCurrencies(ctx context.Context, req *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error) {
	currencies := make([]api.Currency, len(models.Currencies))
	for i, c := range models.Currencies {
		currencies[i] = api.Currency{Code: string(c), Symbol: c.Symbol()}
	}
	return connect.NewResponse(&api.ListCurrenciesResponse{Currencies: currencies}), nil
}

// validate runs the model rules and then checks every referenced user exists.
func (s *ExpenseService) validate(ctx context.Context, e *models.Expense) error {
	if err := e.Validate(s.rules); err != nil {
		return err
	}
	return s.checkUsers(ctx, append([]int64{e.PaidByID}, e.ParticipantIDs()...)...)
}

func (s *ExpenseService) checkUsers(ctx context.Context, ids ...int64) error {
	users, err := s.store.GetUsersByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if _, ok := users[id]; !ok {
			return fmt.Errorf("user %d: %w", id, errUnknownUser)
		}
	}
	return nil
}

// respondWithExpense re-reads the expense so names are resolved.
func respondWithExpense[T any](ctx context.Context, store storage.ExpenseStore, id int64, wrap func(*api.Expense) *T) (*connect.Response[T], error) {
	expense, err := store.GetExpense(ctx, id)
	if err != nil {
		return nil, toConnectError(err)
	}
	return connect.NewResponse(wrap(toAPIExpense(expense))), nil
}
