package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strconv"
	"testing"

	"connectrpc.com/connect"
	"github.com/shopspring/decimal"

	"github.com/mmynk/settleup/internal/middleware"
	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage/sqlite"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

const testUserHeader = "X-Test-User"

// testAuthInterceptor puts the session of the user named by the
// X-Test-User header (a user ID) on the context.
func testAuthInterceptor(users map[int64]string) connect.UnaryInterceptorFunc {
	return func(next connect.UnaryFunc) connect.UnaryFunc {
		return func(ctx context.Context, req connect.AnyRequest) (connect.AnyResponse, error) {
			id, err := strconv.ParseInt(req.Header().Get(testUserHeader), 10, 64)
			if err == nil {
				if name, ok := users[id]; ok {
					ctx = middleware.WithSession(ctx, middleware.Session{UserID: id, Name: name})
				}
			}
			return next(ctx, req)
		}
	}
}

type testEnv struct {
	store      *sqlite.SQLiteStore
	expenseSvc *ExpenseService
	expenses   apiconnect.ExpenseServiceClient
	summary    apiconnect.SummaryServiceClient

	alice, bob, carol *models.User
}

// setupTestServer creates a test server backed by a temp-file SQLite database
// with three users.
func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	env := &testEnv{store: store}
	names := make(map[int64]string)
	mkUser := func(name string) *models.User {
		user := models.NewUser(name, "x")
		if err := store.CreateUser(context.Background(), user); err != nil {
			t.Fatalf("failed to create user %s: %v", name, err)
		}
		names[user.ID] = name
		return user
	}
	env.alice = mkUser("Alice")
	env.bob = mkUser("Bob")
	env.carol = mkUser("Carol")

	interceptors := connect.WithInterceptors(testAuthInterceptor(names))
	env.expenseSvc = NewExpenseService(store, models.DefaultValidationRules(), true)
	expensePath, expenseHandler := apiconnect.NewExpenseServiceHandler(env.expenseSvc, interceptors)
	summaryPath, summaryHandler := apiconnect.NewSummaryServiceHandler(NewSummaryService(store, nil), interceptors)

	mux := http.NewServeMux()
	mux.Handle(expensePath, expenseHandler)
	mux.Handle(summaryPath, summaryHandler)

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	env.expenses = apiconnect.NewExpenseServiceClient(http.DefaultClient, server.URL)
	env.summary = apiconnect.NewSummaryServiceClient(http.DefaultClient, server.URL)
	return env
}

// as wraps msg in a request made by user.
func as[T any](user *models.User, msg *T) *connect.Request[T] {
	req := connect.NewRequest(msg)
	if user != nil {
		req.Header().Set(testUserHeader, strconv.FormatInt(user.ID, 10))
	}
	return req
}

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func share(user *models.User, amount string) api.Participant {
	return api.Participant{UserID: user.ID, AmountOwed: d(amount)}
}

// createExpense stores an expense paid by payer and fails the test on error.
func (env *testEnv) createExpense(t *testing.T, payer *models.User, desc, amount string, shares ...api.Participant) *api.Expense {
	t.Helper()
	resp, err := env.expenses.CreateExpense(context.Background(), as(payer, &api.CreateExpenseRequest{
		Expense: api.ExpenseInput{
			Description:  desc,
			Amount:       d(amount),
			Currency:     "EUR",
			PaidByID:     payer.ID,
			Participants: shares,
		},
	}))
	if err != nil {
		t.Fatalf("CreateExpense(%s) failed: %v", desc, err)
	}
	return resp.Msg.Expense
}

func assertCode(t *testing.T, err error, want connect.Code) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %v error, got nil", want)
	}
	if got := connect.CodeOf(err); got != want {
		t.Fatalf("expected code %v, got %v (%v)", want, got, err)
	}
}
