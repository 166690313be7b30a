package service

import (
	"context"
	"log/slog"

	"connectrpc.com/connect"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/mmynk/settleup/internal/calculator"
	"github.com/mmynk/settleup/internal/storage"
	"github.com/mmynk/settleup/pkg/api"
	"github.com/mmynk/settleup/pkg/api/apiconnect"
)

var _ apiconnect.SummaryServiceHandler = (*SummaryService)(nil)

// SummaryService implements the Connect SummaryService.
type SummaryService struct {
	store storage.ExpenseStore
	pairs prometheus.Histogram
}

// NewSummaryService creates a SummaryService. When reg is non-nil the
// number of pairs per summary is recorded as settleup_summary_pairs.
func NewSummaryService(store storage.ExpenseStore, reg prometheus.Registerer) *SummaryService {
	s := &SummaryService{store: store}
	if reg != nil {
		s.pairs = prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "settleup",
			Name:      "summary_pairs",
			Help:      "Number of counterparties in each payment summary.",
			Buckets:   prometheus.LinearBuckets(0, 2, 10),
		})
		reg.MustRegister(s.pairs)
	}
	return s
}

// GetPaymentSummary nets every expense involving the caller into one
// balance per counterparty.
func (s *SummaryService) GetPaymentSummary(ctx context.Context, req *connect.Request[api.GetPaymentSummaryRequest]) (*connect.Response[api.GetPaymentSummaryResponse], error) {
	session, err := requireSession(ctx)
	if err != nil {
		return nil, err
	}

	summary, err := s.summarize(ctx, session.UserID)
	if err != nil {
		slog.Error("GetPaymentSummary failed", "user_id", session.UserID, "error", err)
		return nil, toConnectError(err)
	}
	return connect.NewResponse(&api.GetPaymentSummaryResponse{Summary: summary}), nil
}

func (s *SummaryService) summarize(ctx context.Context, userID int64) (*api.PaymentSummary, error) {
	expenses, err := s.store.ListExpenses(ctx)
	if err != nil {
		return nil, err
	}

	// txs keeps the caller's own shares; Summarize drops them from the pairs.
	txs := calculator.FilterByUser(calculator.FlattenExpenses(expenses), userID)

	pairs := calculator.Summarize(txs)
	totals := calculator.TotalsFor(pairs, userID)
	if s.pairs != nil {
		s.pairs.Observe(float64(len(pairs)))
	}
	slog.Debug("Summary computed", "user_id", userID, "expenses", len(expenses), "pairs", len(pairs))

	return &api.PaymentSummary{
		UserID:             userID,
		TotalPaid:          totals.Receivable,
		TotalOwed:          totals.Payable,
		Net:                totals.Net(),
		SummarizedPayments: toAPISummarizedPayments(pairs),
		AllTransactions:    toAPITransactions(txs),
	}, nil
}
