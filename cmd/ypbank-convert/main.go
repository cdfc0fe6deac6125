package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"ypbank/internal/cli"
	"ypbank/internal/config"
	"ypbank/internal/report"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger("ypbank-convert")

	params, err := cli.ParseArgs(os.Args[1:])
	if errors.Is(err, cli.ErrUsage) {
		fmt.Println(cli.ConvertUsage(os.Args[0]))
		os.Exit(2)
	}
	if err != nil {
		logger.Fatal("invalid arguments", "err", err)
	}

	in, out, err := params.Codecs(cfg.StrictBodyLength)
	if err != nil {
		logger.Fatal("invalid format", "err", err)
	}
	if err := cli.CheckExists(params.FirstFile); err != nil {
		logger.Fatal("input file is not available", "err", err)
	}

	if cfg.ConfirmOverwrite && cli.Interactive() && cli.NeedsOverwriteConfirmation(params.SecondFile) {
		ok, err := cli.ConfirmOverwrite(params.SecondFile)
		if err != nil {
			logger.Fatal("confirmation failed", "err", err)
		}
		if !ok {
			fmt.Println("Conversion cancelled by user")
			return
		}
	}

	src, err := os.Open(params.FirstFile)
	if err != nil {
		logger.Fatal("failed to open input", "file", params.FirstFile, "err", err)
	}
	transactions, err := in.Decode(src)
	src.Close()
	if err != nil {
		logger.Fatal("failed to decode input", "file", params.FirstFile, "format", in.Format(), "err", err)
	}
	logger.Debug("decoded input", "file", params.FirstFile, "records", len(transactions))

	dst, err := cli.OpenOutput(params.SecondFile)
	if err != nil {
		logger.Fatal("output file is not available", "err", err)
	}
	if err := out.Encode(dst, transactions); err != nil {
		dst.Close()
		logger.Fatal("failed to encode output", "file", params.SecondFile, "format", out.Format(), "err", err)
	}
	written, _ := dst.Seek(0, io.SeekCurrent)
	if err := dst.Close(); err != nil {
		logger.Fatal("failed to close output", "file", params.SecondFile, "err", err)
	}

	logger.Debug("conversion finished", "input", params.FirstFile, "output", params.SecondFile, "records", len(transactions))
	report.Conversion(os.Stdout, string(in.Format()), string(out.Format()), len(transactions), written)
}
