package calculator

import (
	"github.com/shopspring/decimal"
)

// PairKey identifies an unordered pair of users. Low is always the smaller ID,
// so a transaction and its reverse land on the same key.
type PairKey struct {
	Low  int64
	High int64
}

// NewPairKey returns the key for the pair {a, b} regardless of argument order.
func NewPairKey(a, b int64) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Low: a, High: b}
}

// PairSummary is the net balance between two users after folding together
// every transaction between them.
//
// After Summarize returns, PayerID is the creditor and Amount is never
// negative. When Amount is zero the pair is settled and the direction carries
// no meaning.
type PairSummary struct {
	PayerID         int64
	PayerName       string
	ParticipantID   int64
	ParticipantName string
	Amount          decimal.Decimal

	// Details holds every contributing transaction in input order,
	// regardless of direction.
	Details []Transaction
}

// Settled reports whether the pair nets to exactly zero.
func (p PairSummary) Settled() bool {
	return p.Amount.IsZero()
}

// Other returns the ID and name of the counterpart of userID in the pair.
func (p PairSummary) Other(userID int64) (int64, string) {
	if p.PayerID == userID {
		return p.ParticipantID, p.ParticipantName
	}
	return p.PayerID, p.PayerName
}

// Summarize nets the transactions into one PairSummary per unordered pair.
//
// Each pair's running amount is tracked in the direction of the first
// transaction seen for it: same-direction transactions add, reverse ones
// subtract. Negative totals are flipped afterwards so the payer is always the
// creditor, and the amount is rounded to 2 decimal places only once at the end.
// Self-pairs are dropped. Output order follows first appearance of each pair.
func Summarize(txs []Transaction) []PairSummary {
	buckets := make(map[PairKey]*PairSummary)
	var order []PairKey

	for _, tx := range txs {
		if tx.IsSelfPair() {
			continue
		}

		key := NewPairKey(tx.PayerID, tx.ParticipantID)
		bucket, ok := buckets[key]
		if !ok {
			bucket = &PairSummary{
				PayerID:         tx.PayerID,
				PayerName:       tx.PayerName,
				ParticipantID:   tx.ParticipantID,
				ParticipantName: tx.ParticipantName,
				Amount:          decimal.Zero,
			}
			buckets[key] = bucket
			order = append(order, key)
		}

		if tx.PayerID == bucket.PayerID {
			bucket.Amount = bucket.Amount.Add(tx.Amount)
		} else {
			bucket.Amount = bucket.Amount.Sub(tx.Amount)
		}
		bucket.Details = append(bucket.Details, tx)
	}

	summaries := make([]PairSummary, 0, len(order))
	for _, key := range order {
		s := *buckets[key]
		if s.Amount.IsNegative() {
			s.PayerID, s.ParticipantID = s.ParticipantID, s.PayerID
			s.PayerName, s.ParticipantName = s.ParticipantName, s.PayerName
			s.Amount = s.Amount.Neg()
		}
		s.Amount = s.Amount.Round(2)
		summaries = append(summaries, s)
	}
	return summaries
}

// SummarizeForUser nets only the transactions that involve userID.
func SummarizeForUser(txs []Transaction, userID int64) []PairSummary {
	return Summarize(FilterByUser(txs, userID))
}

// UserTotals is the user's position across all of their pair summaries.
type UserTotals struct {
	// Receivable is what others owe the user.
	Receivable decimal.Decimal

	// Payable is what the user owes others.
	Payable decimal.Decimal
}

// Net returns Receivable minus Payable.
func (t UserTotals) Net() decimal.Decimal {
	return t.Receivable.Sub(t.Payable)
}

// TotalsFor adds up the summaries from userID's point of view. Summaries that
// do not involve userID are ignored.
func TotalsFor(summaries []PairSummary, userID int64) UserTotals {
	totals := UserTotals{Receivable: decimal.Zero, Payable: decimal.Zero}
	for _, s := range summaries {
		switch userID {
		case s.PayerID:
			totals.Receivable = totals.Receivable.Add(s.Amount)
		case s.ParticipantID:
			totals.Payable = totals.Payable.Add(s.Amount)
		}
	}
	return totals
}
