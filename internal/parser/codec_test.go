package parser

import (
	"bytes"
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"ypbank/internal/domain"
)

func sampleSet() []domain.Transaction {
	return []domain.Transaction{
		{ID: 1000000000000000, Type: domain.Deposit, FromUserID: 0, ToUserID: 9223372036854775807,
			Amount: 100, Timestamp: 1633036860000, Status: domain.Failure, Description: "Record number 1"},
		{ID: 1000000000000001, Type: domain.Transfer, FromUserID: 9223372036854775807, ToUserID: 9223372036854775807,
			Amount: 200, Timestamp: 1633036920000, Status: domain.Pending, Description: "Record number 2"},
		{ID: 1000000000000002, Type: domain.Withdrawal, FromUserID: 599094029349995112, ToUserID: 0,
			Amount: 300, Timestamp: 1633036980000, Status: domain.Success, Description: ""},
		{ID: 42, Type: domain.Transfer, FromUserID: 1, ToUserID: 2,
			Amount: 18446744073709551615, Timestamp: 0, Status: domain.Success, Description: "Перевод за кофе ☕"},
	}
}

func codecs() []Codec {
	return []Codec{Text{}, CSV{}, Binary{}}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"txt", Txt, false},
		{"csv", Csv, false},
		{"bin", Bin, false},
		{" BIN ", Bin, false},
		{"binary", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("ParseFormat(%q) error = %v, want ErrUnknownFormat", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNew(t *testing.T) {
	for _, f := range Formats() {
		c, err := New(f)
		if err != nil {
			t.Fatalf("New(%q) error = %v", f, err)
		}
		if c.Format() != f {
			t.Errorf("New(%q).Format() = %q", f, c.Format())
		}
	}

	if _, err := New("xml"); !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("New(xml) error = %v, want ErrUnknownFormat", err)
	}
}

func TestRoundTrip(t *testing.T) {
	sets := map[string][]domain.Transaction{
		"empty":  nil,
		"single": sampleSet()[:1],
		"many":   sampleSet(),
	}

	for _, c := range codecs() {
		for name, txs := range sets {
			t.Run(string(c.Format())+"/"+name, func(t *testing.T) {
				var buf bytes.Buffer
				if err := c.Encode(&buf, txs); err != nil {
					t.Fatalf("Encode() error = %v", err)
				}
				got, err := c.Decode(&buf)
				if err != nil {
					t.Fatalf("Decode() error = %v", err)
				}
				if diff := cmp.Diff(txs, got, cmpopts.EquateEmpty()); diff != "" {
					t.Errorf("round trip mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

func TestCrossCodec(t *testing.T) {
	want := sampleSet()
	for _, from := range codecs() {
		for _, to := range codecs() {
			t.Run(string(from.Format())+"->"+string(to.Format()), func(t *testing.T) {
				var src bytes.Buffer
				if err := from.Encode(&src, want); err != nil {
					t.Fatalf("Encode() error = %v", err)
				}
				decoded, err := from.Decode(&src)
				if err != nil {
					t.Fatalf("Decode() error = %v", err)
				}

				var dst bytes.Buffer
				if err := to.Encode(&dst, decoded); err != nil {
					t.Fatalf("Encode() error = %v", err)
				}
				got, err := to.Decode(&dst)
				if err != nil {
					t.Fatalf("Decode() error = %v", err)
				}
				if diff := cmp.Diff(want, got); diff != "" {
					t.Errorf("conversion mismatch (-want +got):\n%s", diff)
				}
			})
		}
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("device gone") }

func TestIOErrors(t *testing.T) {
	for _, c := range codecs() {
		t.Run(string(c.Format()), func(t *testing.T) {
			err := c.Encode(failingWriter{}, sampleSet())
			if !IsIO(err) {
				t.Errorf("Encode() error = %v, want IOError", err)
			}

			txs, err := c.Decode(failingReader{})
			if !IsIO(err) {
				t.Errorf("Decode() error = %v, want IOError", err)
			}
			if txs != nil {
				t.Errorf("Decode() returned %d records on error", len(txs))
			}
		})
	}
}

func TestDecodeEmptySource(t *testing.T) {
	for _, c := range codecs() {
		t.Run(string(c.Format()), func(t *testing.T) {
			got, err := c.Decode(bytes.NewReader(nil))
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if len(got) != 0 {
				t.Errorf("Decode() = %d records, want 0", len(got))
			}
		})
	}
}

func TestErrorMessages(t *testing.T) {
	pe := &ParseError{Format: Csv, Index: 3, Raw: "1,2", Err: errors.New("expected 8 fields, got 2")}
	want := `csv: malformed record 3 "1,2": expected 8 fields, got 2`
	if pe.Error() != want {
		t.Errorf("ParseError.Error() = %q, want %q", pe.Error(), want)
	}

	ioErr := readErr(io.ErrUnexpectedEOF)
	if !errors.Is(ioErr, io.ErrUnexpectedEOF) {
		t.Error("IOError should unwrap to the underlying error")
	}
	if IsParse(ioErr) {
		t.Error("IOError should not be a ParseError")
	}
}
