package apiconnect

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"

	"github.com/mmynk/settleup/pkg/api"
)

// SummaryServiceName is the fully-qualified name of the SummaryService.
const SummaryServiceName = "settleup.v1.SummaryService"

const SummaryServiceGetPaymentSummaryProcedure = "/settleup.v1.SummaryService/GetPaymentSummary"

// SummaryServiceHandler is implemented by the balance summary RPC server.
type SummaryServiceHandler interface {
	GetPaymentSummary(context.Context, *connect.Request[api.GetPaymentSummaryRequest]) (*connect.Response[api.GetPaymentSummaryResponse], error)
}

// NewSummaryServiceHandler builds an HTTP handler for svc and returns the
// path prefix to mount it on.
func NewSummaryServiceHandler(svc SummaryServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = handlerOptions(opts)
	routes := map[string]http.Handler{
		SummaryServiceGetPaymentSummaryProcedure: connect.NewUnaryHandler(SummaryServiceGetPaymentSummaryProcedure, svc.GetPaymentSummary, opts...),
	}
	return "/" + SummaryServiceName + "/", router(routes)
}

// SummaryServiceClient calls a remote SummaryService.
type SummaryServiceClient interface {
	GetPaymentSummary(context.Context, *connect.Request[api.GetPaymentSummaryRequest]) (*connect.Response[api.GetPaymentSummaryResponse], error)
}

// NewSummaryServiceClient returns a client for the SummaryService at baseURL.
func NewSummaryServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) SummaryServiceClient {
	baseURL = strings.TrimRight(baseURL, "/")
	return &summaryServiceClient{
		getPaymentSummary: connect.NewClient[api.GetPaymentSummaryRequest, api.GetPaymentSummaryResponse](
			httpClient, baseURL+SummaryServiceGetPaymentSummaryProcedure, clientOptions(opts)...,
		),
	}
}

type summaryServiceClient struct {
	getPaymentSummary *connect.Client[api.GetPaymentSummaryRequest, api.GetPaymentSummaryResponse]
}

func (c *summaryServiceClient) GetPaymentSummary(ctx context.Context, req *connect.Request[api.GetPaymentSummaryRequest]) (*connect.Response[api.GetPaymentSummaryResponse], error) {
	return c.getPaymentSummary.CallUnary(ctx, req)
}
