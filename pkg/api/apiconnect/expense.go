package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// ExpenseServiceName is the fully-qualified name of the ExpenseService.
const ExpenseServiceName = "settleup.v1.ExpenseService"

const (
	ExpenseServiceCreateExpenseProcedure             = "/settleup.v1.ExpenseService/CreateExpense"
	ExpenseServiceGetExpenseProcedure                = "/settleup.v1.ExpenseService/GetExpense"
	ExpenseServiceListExpensesProcedure              = "/settleup.v1.ExpenseService/ListExpenses"
	ExpenseServiceUpdateExpenseProcedure             = "/settleup.v1.ExpenseService/UpdateExpense"
	ExpenseServiceDeleteExpenseProcedure             = "/settleup.v1.ExpenseService/DeleteExpense"
	ExpenseServiceListExpensesByParticipantProcedure = "/settleup.v1.ExpenseService/ListExpensesByParticipant"
	ExpenseServiceListExpensesByPayerProcedure       = "/settleup.v1.ExpenseService/ListExpensesByPayer"
	ExpenseServiceSplitEquallyProcedure              = "/settleup.v1.ExpenseService/SplitEqually"
	ExpenseServiceMakePaymentProcedure               = "/settleup.v1.ExpenseService/MakePayment"
	ExpenseServiceWipeExpensesProcedure              = "/settleup.v1.ExpenseService/WipeExpenses"
	ExpenseServiceListCurrenciesProcedure            = "/settleup.v1.ExpenseService/ListCurrencies"
)

// ExpenseServiceHandler is implemented by the expense RPC server.
type ExpenseServiceHandler interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpensesByParticipant(context.Context, *connect.Request[api.ListExpensesByParticipantRequest]) (*connect.Response[api.ListExpensesResponse], error)
	ListExpensesByPayer(context.Context, *connect.Request[api.ListExpensesByPayerRequest]) (*connect.Response[api.ListExpensesResponse], error)
	SplitEqually(context.Context, *connect.Request[api.SplitEquallyRequest]) (*connect.Response[api.SplitEquallyResponse], error)
	MakePayment(context.Context, *connect.Request[api.MakePaymentRequest]) (*connect.Response[api.MakePaymentResponse], error)
	WipeExpenses(context.Context, *connect.Request[api.WipeExpensesRequest]) (*connect.Response[api.WipeExpensesResponse], error)
	ListCurrencies(context.Context, *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error)
}

// NewExpenseServiceHandler builds an HTTP handler for svc and returns the
// path prefix to mount it on.
func NewExpenseServiceHandler(svc ExpenseServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	routes := map[string]http.Handler{
		ExpenseServiceCreateExpenseProcedure:             connect.NewUnaryHandler(ExpenseServiceCreateExpenseProcedure, svc.CreateExpense, opts...),
		ExpenseServiceGetExpenseProcedure:                connect.NewUnaryHandler(ExpenseServiceGetExpenseProcedure, svc.GetExpense, opts...),
		ExpenseServiceListExpensesProcedure:              connect.NewUnaryHandler(ExpenseServiceListExpensesProcedure, svc.ListExpenses, opts...),
		ExpenseServiceUpdateExpenseProcedure:             connect.NewUnaryHandler(ExpenseServiceUpdateExpenseProcedure, svc.UpdateExpense, opts...),
		ExpenseServiceDeleteExpenseProcedure:             connect.NewUnaryHandler(ExpenseServiceDeleteExpenseProcedure, svc.DeleteExpense, opts...),
		ExpenseServiceListExpensesByParticipantProcedure: connect.NewUnaryHandler(ExpenseServiceListExpensesByParticipantProcedure, svc.ListExpensesByParticipant, opts...),
		ExpenseServiceListExpensesByPayerProcedure:       connect.NewUnaryHandler(ExpenseServiceListExpensesByPayerProcedure, svc.ListExpensesByPayer, opts...),
		ExpenseServiceSplitEquallyProcedure:              connect.NewUnaryHandler(ExpenseServiceSplitEquallyProcedure, svc.SplitEqually, opts...),
		ExpenseServiceMakePaymentProcedure:               connect.NewUnaryHandler(ExpenseServiceMakePaymentProcedure, svc.MakePayment, opts...),
		ExpenseServiceWipeExpensesProcedure:              connect.NewUnaryHandler(ExpenseServiceWipeExpensesProcedure, svc.WipeExpenses, opts...),
		ExpenseServiceListCurrenciesProcedure:            connect.NewUnaryHandler(ExpenseServiceListCurrenciesProcedure, svc.ListCurrencies, opts...),
	}
	return "/" + ExpenseServiceName + "/", router(routes)
}

// ExpenseServiceClient calls a remote ExpenseService.
type ExpenseServiceClient interface {
	CreateExpense(context.Context, *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error)
	GetExpense(context.Context, *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error)
	ListExpenses(context.Context, *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error)
	UpdateExpense(context.Context, *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error)
	DeleteExpense(context.Context, *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error)
	ListExpensesByParticipant(context.Context, *connect.Request[api.ListExpensesByParticipantRequest]) (*connect.Response[api.ListExpensesResponse], error)
	ListExpensesByPayer(context.Context, *connect.Request[api.ListExpensesByPayerRequest]) (*connect.Response[api.ListExpensesResponse], error)
	SplitEqually(context.Context, *connect.Request[api.SplitEquallyRequest]) (*connect.Response[api.SplitEquallyResponse], error)
	MakePayment(context.Context, *connect.Request[api.MakePaymentRequest]) (*connect.Response[api.MakePaymentResponse], error)
	WipeExpenses(context.Context, *connect.Request[api.WipeExpensesRequest]) (*connect.Response[api.WipeExpensesResponse], error)
	ListCurrencies(context.Context, *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error)
}

// NewExpenseServiceClient returns a client for the ExpenseService at baseURL.
func NewExpenseServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) ExpenseServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	opts = clientOptions(opts)
	return &expenseServiceClient{
		createExpense:             connect.NewClient[api.CreateExpenseRequest, api.CreateExpenseResponse](httpClient, baseURL+ExpenseServiceCreateExpenseProcedure, opts...),
		getExpense:                connect.NewClient[api.GetExpenseRequest, api.GetExpenseResponse](httpClient, baseURL+ExpenseServiceGetExpenseProcedure, opts...),
		listExpenses:              connect.NewClient[api.ListExpensesRequest, api.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesProcedure, opts...),
		updateExpense:             connect.NewClient[api.UpdateExpenseRequest, api.UpdateExpenseResponse](httpClient, baseURL+ExpenseServiceUpdateExpenseProcedure, opts...),
		deleteExpense:             connect.NewClient[api.DeleteExpenseRequest, api.DeleteExpenseResponse](httpClient, baseURL+ExpenseServiceDeleteExpenseProcedure, opts...),
		listExpensesByParticipant: connect.NewClient[api.ListExpensesByParticipantRequest, api.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesByParticipantProcedure, opts...),
		listExpensesByPayer:       connect.NewClient[api.ListExpensesByPayerRequest, api.ListExpensesResponse](httpClient, baseURL+ExpenseServiceListExpensesByPayerProcedure, opts...),
		splitEqually:              connect.NewClient[api.SplitEquallyRequest, api.SplitEquallyResponse](httpClient, baseURL+ExpenseServiceSplitEquallyProcedure, opts...),
		makePayment:               connect.NewClient[api.MakePaymentRequest, api.MakePaymentResponse](httpClient, baseURL+ExpenseServiceMakePaymentProcedure, opts...),
		wipeExpenses:              connect.NewClient[api.WipeExpensesRequest, api.WipeExpensesResponse](httpClient, baseURL+ExpenseServiceWipeExpensesProcedure, opts...),
		listCurrencies:            connect.NewClient[api.ListCurrenciesRequest, api.ListCurrenciesResponse](httpClient, baseURL+ExpenseServiceListCurrenciesProcedure, opts...),
	}
}

type expenseServiceClient struct {
	createExpense             *connect.Client[api.CreateExpenseRequest, api.CreateExpenseResponse]
	getExpense                *connect.Client[api.GetExpenseRequest, api.GetExpenseResponse]
	listExpenses              *connect.Client[api.ListExpensesRequest, api.ListExpensesResponse]
	updateExpense             *connect.Client[api.UpdateExpenseRequest, api.UpdateExpenseResponse]
	deleteExpense             *connect.Client[api.DeleteExpenseRequest, api.DeleteExpenseResponse]
	listExpensesByParticipant *connect.Client[api.ListExpensesByParticipantRequest, api.ListExpensesResponse]
	listExpensesByPayer       *connect.Client[api.ListExpensesByPayerRequest, api.ListExpensesResponse]
	splitEqually              *connect.Client[api.SplitEquallyRequest, api.SplitEquallyResponse]
	makePayment               *connect.Client[api.MakePaymentRequest, api.MakePaymentResponse]
	wipeExpenses              *connect.Client[api.WipeExpensesRequest, api.WipeExpensesResponse]
	listCurrencies            *connect.Client[api.ListCurrenciesRequest, api.ListCurrenciesResponse]
}

func (c *expenseServiceClient) CreateExpense(ctx context.Context, req *connect.Request[api.CreateExpenseRequest]) (*connect.Response[api.CreateExpenseResponse], error) {
	return c.createExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) GetExpense(ctx context.Context, req *connect.Request[api.GetExpenseRequest]) (*connect.Response[api.GetExpenseResponse], error) {
	return c.getExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpenses(ctx context.Context, req *connect.Request[api.ListExpensesRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) UpdateExpense(ctx context.Context, req *connect.Request[api.UpdateExpenseRequest]) (*connect.Response[api.UpdateExpenseResponse], error) {
	return c.updateExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) DeleteExpense(ctx context.Context, req *connect.Request[api.DeleteExpenseRequest]) (*connect.Response[api.DeleteExpenseResponse], error) {
	return c.deleteExpense.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpensesByParticipant(ctx context.Context, req *connect.Request[api.ListExpensesByParticipantRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpensesByParticipant.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListExpensesByPayer(ctx context.Context, req *connect.Request[api.ListExpensesByPayerRequest]) (*connect.Response[api.ListExpensesResponse], error) {
	return c.listExpensesByPayer.CallUnary(ctx, req)
}

func (c *expenseServiceClient) SplitEqually(ctx context.Context, req *connect.Request[api.SplitEquallyRequest]) (*connect.Response[api.SplitEquallyResponse], error) {
	return c.splitEqually.CallUnary(ctx, req)
}

func (c *expenseServiceClient) MakePayment(ctx context.Context, req *connect.Request[api.MakePaymentRequest]) (*connect.Response[api.MakePaymentResponse], error) {
	return c.makePayment.CallUnary(ctx, req)
}

func (c *expenseServiceClient) WipeExpenses(ctx context.Context, req *connect.Request[api.WipeExpensesRequest]) (*connect.Response[api.WipeExpensesResponse], error) {
	return c.wipeExpenses.CallUnary(ctx, req)
}

func (c *expenseServiceClient) ListCurrencies(ctx context.Context, req *connect.Request[api.ListCurrenciesRequest]) (*connect.Response[api.ListCurrenciesResponse], error) {
	return c.listCurrencies.CallUnary(ctx, req)
}
