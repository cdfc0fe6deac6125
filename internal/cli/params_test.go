package cli

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"ypbank/internal/parser"
)

func TestParseArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Params
		wantErr error
	}{
		{
			name: "converter args",
			args: []string{"records.txt", "txt", "bin", "out.bin"},
			want: Params{FirstFile: "records.txt", FirstFormat: "txt", SecondFormat: "bin", SecondFile: "out.bin"},
		},
		{
			name: "trims and lowercases",
			args: []string{" a.csv ", "CSV", " Txt", "b.txt", "extra"},
			want: Params{FirstFile: "a.csv", FirstFormat: "csv", SecondFormat: "txt", SecondFile: "b.txt"},
		},
		{name: "too few", args: []string{"a", "txt", "csv"}, wantErr: ErrUsage},
		{name: "none", args: nil, wantErr: ErrUsage},
		{name: "unknown format", args: []string{"a", "binary", "csv", "b"}, wantErr: parser.ErrUnknownFormat},
		{name: "unknown second format", args: []string{"a", "bin", "json", "b"}, wantErr: parser.ErrUnknownFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseArgs(tt.args)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ParseArgs() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseArgs() error = %v", err)
			}
			if *got != tt.want {
				t.Errorf("ParseArgs() = %+v, want %+v", *got, tt.want)
			}
		})
	}
}

func TestParseArgsEmptyFileName(t *testing.T) {
	_, err := ParseArgs([]string{"  ", "txt", "csv", "b"})
	if err == nil {
		t.Fatal("ParseArgs() with blank file name returned nil error")
	}
	if errors.Is(err, parser.ErrUnknownFormat) {
		t.Errorf("ParseArgs() error = %v, should not be a format error", err)
	}
}

func TestCodecs(t *testing.T) {
	p := &Params{FirstFormat: "csv", SecondFormat: "bin"}
	first, second, err := p.Codecs(true)
	if err != nil {
		t.Fatalf("Codecs() error = %v", err)
	}
	if first.Format() != parser.Csv {
		t.Errorf("first.Format() = %q, want csv", first.Format())
	}
	bin, ok := second.(parser.Binary)
	if !ok || !bin.StrictBodyLength {
		t.Errorf("second = %#v, want strict Binary codec", second)
	}
}

func TestCheckExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "records.csv")
	if err := os.WriteFile(file, []byte(parser.CSVHeader+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := CheckExists(file); err != nil {
		t.Errorf("CheckExists(file) error = %v", err)
	}
	if err := CheckExists(filepath.Join(dir, "missing.csv")); err == nil {
		t.Error("CheckExists(missing) returned nil")
	}
	if err := CheckExists(dir); err == nil {
		t.Error("CheckExists(dir) returned nil")
	}
}

func TestOpenOutput(t *testing.T) {
	dir := t.TempDir()

	f, err := OpenOutput(filepath.Join(dir, "out.bin"))
	if err != nil {
		t.Fatalf("OpenOutput() error = %v", err)
	}
	f.Close()

	if _, err := OpenOutput(filepath.Join(dir, "no", "such", "dir", "out.bin")); err == nil {
		t.Error("OpenOutput() in missing directory returned nil")
	}
}

func TestNeedsOverwriteConfirmation(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	full := filepath.Join(dir, "full.txt")
	os.WriteFile(empty, nil, 0o644)
	os.WriteFile(full, []byte("data"), 0o644)

	tests := []struct {
		path string
		want bool
	}{
		{empty, false},
		{full, true},
		{filepath.Join(dir, "missing.txt"), false},
		{dir, false},
	}
	for _, tt := range tests {
		if got := NeedsOverwriteConfirmation(tt.path); got != tt.want {
			t.Errorf("NeedsOverwriteConfirmation(%s) = %v, want %v", filepath.Base(tt.path), got, tt.want)
		}
	}
}
