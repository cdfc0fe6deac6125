package parser

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"ypbank/internal/domain"
)

const (
	CSVHeader   = "TX_ID,TX_TYPE,FROM_USER_ID,TO_USER_ID,AMOUNT,TIMESTAMP,STATUS,DESCRIPTION"
	csvHeaderID = "TX_ID"
	csvFields   = 8
)

// CSV is the delimited format: one header line plus one comma separated line
// per record. Descriptions are not escaped, so a description containing a
// comma, a double quote or a line break cannot be stored.
type CSV struct{}

func (CSV) Format() Format { return Csv }

func (CSV) Decode(r io.Reader) ([]domain.Transaction, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, readErr(err)
	}

	var result []domain.Transaction
	index := 0
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, csvHeaderID) {
			continue
		}
		tx, err := decodeCSVLine(line)
		if err != nil {
			return nil, &ParseError{Format: Csv, Index: index, Raw: line, Err: err}
		}
		result = append(result, tx)
		index++
	}
	return result, nil
}

func decodeCSVLine(line string) (domain.Transaction, error) {
	tx := domain.New()
	fields := strings.Split(line, ",")
	if len(fields) != csvFields {
		return tx, fmt.Errorf("expected %d fields, got %d", csvFields, len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	var err error
	if tx.ID, err = parseUint(fields[0]); err != nil {
		return tx, fmt.Errorf("TX_ID: %w", err)
	}
	if tx.Type, err = domain.ParseTxType(fields[1]); err != nil {
		return tx, err
	}
	if tx.FromUserID, err = parseUint(fields[2]); err != nil {
		return tx, fmt.Errorf("FROM_USER_ID: %w", err)
	}
	if tx.ToUserID, err = parseUint(fields[3]); err != nil {
		return tx, fmt.Errorf("TO_USER_ID: %w", err)
	}
	if tx.Amount, err = parseUint(fields[4]); err != nil {
		return tx, fmt.Errorf("AMOUNT: %w", err)
	}
	if tx.Timestamp, err = parseUint(fields[5]); err != nil {
		return tx, fmt.Errorf("TIMESTAMP: %w", err)
	}
	if tx.Status, err = domain.ParseTxStatus(fields[6]); err != nil {
		return tx, err
	}
	tx.Description = unquote(fields[7])
	return tx, nil
}

func (CSV) Encode(w io.Writer, txs []domain.Transaction) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(CSVHeader + "\n")
	for _, tx := range txs {
		bw.WriteString(strings.Join([]string{
			strconv.FormatUint(tx.ID, 10),
			tx.Type.String(),
			strconv.FormatUint(tx.FromUserID, 10),
			strconv.FormatUint(tx.ToUserID, 10),
			strconv.FormatUint(tx.Amount, 10),
			strconv.FormatUint(tx.Timestamp, 10),
			tx.Status.String(),
			quote(tx.Description),
		}, ","))
		bw.WriteByte('\n')
	}
	if err := bw.Flush(); err != nil {
		return writeErr(err)
	}
	return nil
}
