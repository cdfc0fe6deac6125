package parser

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"ypbank/internal/domain"
)

// Format identifies one of the supported record encodings.
type Format string

const (
	Txt Format = "txt"
	Csv Format = "csv"
	Bin Format = "bin"
)

var ErrUnknownFormat = errors.New("input or output format is incorrect, use txt, csv or bin")

// Codec reads and writes a whole list of transactions in a single format.
// Decode consumes the entire source; Encode writes records in input order.
type Codec interface {
	Format() Format
	Decode(r io.Reader) ([]domain.Transaction, error)
	Encode(w io.Writer, txs []domain.Transaction) error
}

func Formats() []Format {
	return []Format{Txt, Csv, Bin}
}

func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case Txt, Csv, Bin:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
}

// New returns the codec for the given format.
func New(f Format) (Codec, error) {
	switch f {
	case Txt:
		return Text{}, nil
	case Csv:
		return CSV{}, nil
	case Bin:
		return Binary{}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, string(f))
}

// unquote removes one enclosing pair of double quotes, if present.
func unquote(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}

func quote(s string) string {
	return `"` + s + `"`
}
