package parser

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ypbank/internal/domain"
)

const recordMarker = "# Record"

// Text is the block format: one blank-line separated paragraph of
// "KEY: value" lines per record.
type Text struct{}

func (Text) Format() Format { return Txt }

func (Text) Decode(r io.Reader) ([]domain.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readErr(err)
	}

	var result []domain.Transaction
	for i, paragraph := range splitParagraphs(string(data)) {
		tx, err := decodeParagraph(paragraph)
		if err != nil {
			return nil, &ParseError{Format: Txt, Index: i, Raw: err.raw, Err: err.err}
		}
		result = append(result, tx)
	}
	return result, nil
}

// splitParagraphs groups trimmed, non-empty lines into blank-line separated
// blocks. Record header comments are dropped, and a block left with no
// lines is discarded.
func splitParagraphs(s string) [][]string {
	s = strings.ReplaceAll(s, "\r\n", "\n")

	var paragraphs [][]string
	var current []string
	flush := func() {
		if len(current) > 0 {
			paragraphs = append(paragraphs, current)
		}
		current = nil
	}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		if strings.HasPrefix(line, recordMarker) {
			continue
		}
		current = append(current, line)
	}
	flush()
	return paragraphs
}

type fieldError struct {
	raw string
	err error
}

func decodeParagraph(lines []string) (domain.Transaction, *fieldError) {
	tx := domain.New()
	seen := make(map[string]bool, len(textKeys))

	for _, line := range lines {
		key, value, ok := strings.Cut(line, ": ")
		if !ok {
			return tx, &fieldError{raw: line, err: errors.New(`expected "KEY: value"`)}
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		if _, known := textKeys[key]; !known {
			continue
		}
		if seen[key] {
			return tx, &fieldError{raw: line, err: fmt.Errorf("duplicate field %s", strings.ToUpper(key))}
		}
		seen[key] = true
		if err := setTextField(&tx, key, value); err != nil {
			return tx, &fieldError{raw: line, err: err}
		}
	}

	for _, key := range textOrder {
		if !seen[strings.ToLower(key)] {
			return tx, &fieldError{err: fmt.Errorf("missing field %s", key)}
		}
	}
	return tx, nil
}

var textKeys = map[string]struct{}{
	"tx_id": {}, "tx_type": {}, "from_user_id": {}, "to_user_id": {},
	"amount": {}, "timestamp": {}, "status": {}, "description": {},
}

// textOrder is the field order used when writing. TO_USER_ID precedes
// FROM_USER_ID in existing files.
var textOrder = []string{
	"TX_ID", "TX_TYPE", "TO_USER_ID", "FROM_USER_ID",
	"AMOUNT", "TIMESTAMP", "STATUS", "DESCRIPTION",
}

func setTextField(tx *domain.Transaction, key, value string) error {
	var err error
	switch key {
	case "tx_id":
		tx.ID, err = parseUint(value)
	case "tx_type":
		tx.Type, err = domain.ParseTxType(value)
	case "from_user_id":
		tx.FromUserID, err = parseUint(value)
	case "to_user_id":
		tx.ToUserID, err = parseUint(value)
	case "amount":
		tx.Amount, err = parseUint(value)
	case "timestamp":
		tx.Timestamp, err = parseUint(value)
	case "status":
		tx.Status, err = domain.ParseTxStatus(value)
	case "description":
		tx.Description = unquote(value)
	}
	return err
}

func parseUint(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	return v, nil
}

func (Text) Encode(w io.Writer, txs []domain.Transaction) error {
	bw := bufio.NewWriter(w)
	for i, tx := range txs {
		fmt.Fprintf(bw, "%s %d (%s)\n", recordMarker, i+1, tx.Type)
		fmt.Fprintf(bw, "TX_ID: %d\n", tx.ID)
		fmt.Fprintf(bw, "TX_TYPE: %s\n", tx.Type)
		fmt.Fprintf(bw, "TO_USER_ID: %d\n", tx.ToUserID)
		fmt.Fprintf(bw, "FROM_USER_ID: %d\n", tx.FromUserID)
		fmt.Fprintf(bw, "AMOUNT: %d\n", tx.Amount)
		fmt.Fprintf(bw, "TIMESTAMP: %d\n", tx.Timestamp)
		fmt.Fprintf(bw, "STATUS: %s\n", tx.Status)
		fmt.Fprintf(bw, "DESCRIPTION: %s\n\n", quote(tx.Description))
	}
	// bufio.Writer keeps the first write error and returns it from Flush.
	if err := bw.Flush(); err != nil {
		return writeErr(err)
	}
	return nil
}
