package main

import (
	"errors"
	"fmt"
	"os"

	"ypbank/internal/cli"
	"ypbank/internal/compare"
	"ypbank/internal/config"
	"ypbank/internal/domain"
	"ypbank/internal/parser"
	"ypbank/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger("ypbank-compare")

	params, err := cli.ParseArgs(os.Args[1:])
	if errors.Is(err, cli.ErrUsage) {
		fmt.Println(cli.CompareUsage(os.Args[0]))
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("invalid arguments", "err", err)
	}

	first, second, err := params.Codecs(cfg.StrictBodyLength)
	if err != nil {
		logger.Fatal("invalid format", "err", err)
	}
	for _, path := range []string{params.FirstFile, params.SecondFile} {
		if err := cli.CheckExists(path); err != nil {
			logger.Fatal("input file is not available", "err", err)
		}
	}

	left, err := decodeFile(params.FirstFile, first)
	if err != nil {
		logger.Fatal("failed to decode first file", "err", err)
	}
	right, err := decodeFile(params.SecondFile, second)
	if err != nil {
		logger.Fatal("failed to decode second file", "err", err)
	}
	logger.Debug("decoded inputs", "first", len(left), "second", len(right))

	result := compare.Diff(left, right)
	report.Comparison(os.Stdout, params.FirstFile, params.SecondFile, result, cfg.ShowDiff)
	if !result.Equal() {
		os.Exit(1)
	}
}

func decodeFile(path string, codec parser.Codec) ([]domain.Transaction, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	txs, err := codec.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s as %s: %w", path, codec.Format(), err)
	}
	return txs, nil
}
