package report

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"ypbank/internal/compare"
	"ypbank/internal/domain"
)

var (
	ruleStyle  = lipgloss.NewStyle().Faint(true)
	sameStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))
	diffStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	labelStyle = lipgloss.NewStyle().Bold(true)
)

const rule = "-------------------------------------"

// Conversion prints a one-line summary of a finished conversion.
func Conversion(w io.Writer, in, out string, records int, bytesWritten int64) {
	fmt.Fprintf(w, "Converted %s transactions from %s to %s (%s)\n",
		humanize.Comma(int64(records)), in, out, humanize.Bytes(uint64(bytesWritten)))
}

// Comparison prints the comparison verdict and at most limit differing
// records from each side.
func Comparison(w io.Writer, first, second string, r compare.Result, limit int) {
	fmt.Fprintln(w, ruleStyle.Render(rule))
	fmt.Fprintf(w, "File #1 : %s\n", first)
	fmt.Fprintf(w, "File #2 : %s\n", second)
	fmt.Fprintln(w, ruleStyle.Render(rule))
	fmt.Fprintf(w, "File #1 has %s items\n", humanize.Comma(int64(r.LeftLen)))
	fmt.Fprintf(w, "File #2 has %s items\n", humanize.Comma(int64(r.RightLen)))
	fmt.Fprintln(w, ruleStyle.Render(rule))

	if r.Equal() {
		fmt.Fprintln(w, sameStyle.Render("Transactions sets are the same."))
		fmt.Fprintln(w, ruleStyle.Render(rule))
		return
	}

	fmt.Fprintln(w, diffStyle.Render("Transactions sets are NOT the same."))
	if r.LeftLen != r.RightLen {
		fmt.Fprintf(w, "Record counts differ: %d vs %d\n", r.LeftLen, r.RightLen)
	}
	differences(w, "Only in file #1", r.OnlyLeft, limit)
	differences(w, "Only in file #2", r.OnlyRight, limit)
	fmt.Fprintln(w, ruleStyle.Render(rule))
}

func differences(w io.Writer, title string, txs []domain.Transaction, limit int) {
	if len(txs) == 0 || limit == 0 {
		return
	}
	fmt.Fprintf(w, "%s (%d):\n", labelStyle.Render(title), len(txs))
	for i, tx := range txs {
		if i == limit {
			fmt.Fprintf(w, "  ... and %d more\n", len(txs)-limit)
			break
		}
		fmt.Fprintf(w, "  %s\n", Transaction(tx))
	}
}

// Transaction formats a record on a single line.
func Transaction(tx domain.Transaction) string {
	return fmt.Sprintf("#%d %s %s from=%d to=%d amount=%d at=%s %q",
		tx.ID, tx.Type, tx.Status, tx.FromUserID, tx.ToUserID, tx.Amount,
		tx.Time().Format("2006-01-02T15:04:05.000Z07:00"), tx.Description)
}
