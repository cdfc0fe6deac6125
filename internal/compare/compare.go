// Package compare checks whether two decoded transaction lists describe the
// same set of records.
//
// The comparison is set based: duplicates within one list collapse, so
// [x, x] and [x] differ only because their lengths differ.
package compare

import (
	"cmp"
	"slices"

	"ypbank/internal/domain"
)

// Result describes how two transaction lists differ.
type Result struct {
	LeftLen   int
	RightLen  int
	OnlyLeft  []domain.Transaction
	OnlyRight []domain.Transaction
}

// Equal reports whether the lists had the same length and no record is
// missing from either side.
func (r Result) Equal() bool {
	return r.LeftLen == r.RightLen && len(r.OnlyLeft) == 0 && len(r.OnlyRight) == 0
}

// Diff computes both set differences. The inputs are not modified.
func Diff(left, right []domain.Transaction) Result {
	leftSet := toSet(left)
	rightSet := toSet(right)

	return Result{
		LeftLen:   len(left),
		RightLen:  len(right),
		OnlyLeft:  difference(leftSet, rightSet),
		OnlyRight: difference(rightSet, leftSet),
	}
}

// Equal reports whether left and right hold the same transactions.
func Equal(left, right []domain.Transaction) bool {
	return Diff(left, right).Equal()
}

func toSet(txs []domain.Transaction) map[domain.Transaction]struct{} {
	set := make(map[domain.Transaction]struct{}, len(txs))
	for _, tx := range txs {
		set[tx] = struct{}{}
	}
	return set
}

// difference returns the elements of a missing from b, ordered by id and then
// timestamp so that reports are stable.
func difference(a, b map[domain.Transaction]struct{}) []domain.Transaction {
	var out []domain.Transaction
	for tx := range a {
		if _, ok := b[tx]; !ok {
			out = append(out, tx)
		}
	}
	slices.SortFunc(out, compareTx)
	return out
}

func compareTx(a, b domain.Transaction) int {
	return cmp.Or(
		cmp.Compare(a.ID, b.ID),
		cmp.Compare(a.Timestamp, b.Timestamp),
		cmp.Compare(a.Type, b.Type),
		cmp.Compare(a.Status, b.Status),
		cmp.Compare(a.FromUserID, b.FromUserID),
		cmp.Compare(a.ToUserID, b.ToUserID),
		cmp.Compare(a.Amount, b.Amount),
		cmp.Compare(a.Description, b.Description),
	)
}
