package api

type GetPaymentSummaryRequest struct{}

type GetPaymentSummaryResponse struct {
	Summary *PaymentSummary `json:"summary"`
}
