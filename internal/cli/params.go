package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"

	"ypbank/internal/parser"
)

var ErrUsage = errors.New("not enough arguments")

// Params are the four positional arguments shared by both programs:
// <first-file> <first-format> <second-format> <second-file>.
type Params struct {
	FirstFile    string `validate:"required"`
	FirstFormat  string `validate:"required,oneof=txt csv bin"`
	SecondFormat string `validate:"required,oneof=txt csv bin"`
	SecondFile   string `validate:"required"`
}

var validate = validator.New()

// ParseArgs parses os.Args[1:]. Extra arguments are ignored.
func ParseArgs(args []string) (*Params, error) {
	if len(args) < 4 {
		return nil, ErrUsage
	}

	p := &Params{
		FirstFile:    strings.TrimSpace(args[0]),
		FirstFormat:  strings.ToLower(strings.TrimSpace(args[1])),
		SecondFormat: strings.ToLower(strings.TrimSpace(args[2])),
		SecondFile:   strings.TrimSpace(args[3]),
	}
	if err := validate.Struct(p); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				if fe.Tag() == "oneof" {
					return nil, fmt.Errorf("%s %q: %w", fe.Field(), fe.Value(), parser.ErrUnknownFormat)
				}
			}
		}
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return p, nil
}

// Codecs returns the codecs for the first and second formats.
func (p *Params) Codecs(strictBodyLength bool) (first, second parser.Codec, err error) {
	if first, err = codecFor(p.FirstFormat, strictBodyLength); err != nil {
		return nil, nil, err
	}
	if second, err = codecFor(p.SecondFormat, strictBodyLength); err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func codecFor(s string, strictBodyLength bool) (parser.Codec, error) {
	f, err := parser.ParseFormat(s)
	if err != nil {
		return nil, err
	}
	if f == parser.Bin {
		return parser.Binary{StrictBodyLength: strictBodyLength}, nil
	}
	return parser.New(f)
}

// CheckExists returns an error if path is missing or is a directory.
func CheckExists(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file %s does not exist", path)
		}
		return fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", path)
	}
	return nil
}

// OpenOutput creates or truncates the output file.
func OpenOutput(path string) (*os.File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("file %s couldn't be created: %w", path, err)
	}
	return f, nil
}

func ConvertUsage(prog string) string {
	return fmt.Sprintf("Usage: %s <input-file> <input-format> <output-format> <output-file>\n"+
		"Formats: txt, csv, bin", prog)
}

func CompareUsage(prog string) string {
	return fmt.Sprintf("Usage: %s <file1> <format1> <format2> <file2>\n"+
		"Formats: txt, csv, bin", prog)
}
