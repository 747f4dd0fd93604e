package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/checkernumber/avatar-checker/internal/app"
	"github.com/checkernumber/avatar-checker/internal/config"
	"github.com/checkernumber/avatar-checker/internal/logging"
)

func main() {
	var (
		numbersArg  = flag.String("numbers", "", "comma-separated phone numbers to check")
		fileArg     = flag.String("file", "", "file with one phone number per line")
		outArg      = flag.String("out", "", "artifact directory (default from config)")
		intervalArg = flag.String("interval", "", "poll interval, e.g. 5s (default from config)")
	)
	flag.Usage = func() {
		out := flag.CommandLine.Output()
		fmt.Fprintf(out, "Usage: %s [flags] [number ...]\n\n", os.Args[0])
		fmt.Fprintln(out, "Submits phone numbers to the WhatsApp avatar analysis service,")
		fmt.Fprintln(out, "waits for the batch to finish and aggregates the demographics.")
		fmt.Fprintln(out, "\nThe API key is read from the WHATSAPP_AVATAR_API_KEY environment variable.")
		fmt.Fprintln(out)
		flag.PrintDefaults()
	}
	flag.Parse()

	numbers, err := collectNumbers(*numbersArg, *fileArg, flag.Args())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		flag.Usage()
		os.Exit(2)
	}

	cfg := config.Load()
	if *outArg != "" {
		cfg.Output.Dir = *outArg
	}
	if *intervalArg != "" {
		cfg.Poll.Interval = *intervalArg
	}

	logger := logging.New(cfg.Logging.Level)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := app.New(cfg, logger)
	if err != nil {
		logger.Error("startup failed", "error", err)
		os.Exit(1)
	}

	if err := application.Run(ctx, numbers); err != nil {
		logger.Error("check failed", "error", err)
		os.Exit(1)
	}
}

// collectNumbers merges the -numbers flag, the -file flag and positional
// arguments, preserving their order.
func collectNumbers(csv, path string, args []string) ([]string, error) {
	var numbers []string
	for _, n := range strings.Split(csv, ",") {
		if n = strings.TrimSpace(n); n != "" {
			numbers = append(numbers, n)
		}
	}

	if path != "" {
		fromFile, err := readNumbersFile(path)
		if err != nil {
			return nil, err
		}
		numbers = append(numbers, fromFile...)
	}

	for _, n := range args {
		if n = strings.TrimSpace(n); n != "" {
			numbers = append(numbers, n)
		}
	}

	if len(numbers) == 0 {
		return nil, fmt.Errorf("no phone numbers given")
	}
	return numbers, nil
}

func readNumbersFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open numbers file: %w", err)
	}
	defer f.Close()

	var numbers []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			numbers = append(numbers, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read numbers file: %w", err)
	}
	return numbers, nil
}
