// Command repay computes one monthly repayment from flags and prints it.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"go.uber.org/zap"

	"mortgage-calculator/internal/mortgage"
	"mortgage-calculator/internal/observability"
	"mortgage-calculator/internal/repayment"
)

const (
	outputText = "text"
	outputJSON = "json"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("repay", flag.ContinueOnError)
	flags.SetOutput(stderr)

	principal := flags.String("principal", "", "amount borrowed, e.g. 200,000")
	term := flags.String("term", "", "term in whole years")
	rate := flags.String("rate", "", "annual interest rate in percent, e.g. 5.25")
	mode := flags.String("mode", string(mortgage.ModeRepayment), "repayment or interest-only")
	output := flags.String("output", outputText, "output format: text, json")
	logLevel := flags.String("log-level", "warn", "log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return 2
	}

	if *output != outputText && *output != outputJSON {
		fmt.Fprintf(stderr, "invalid output format: %s\n", *output)
		return 2
	}

	if err := observability.InitLogger(*logLevel, "console"); err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	defer observability.SyncLogger()

	input, err := mortgage.Parse(mortgage.Values{
		Principal: *principal,
		Term:      *term,
		Rate:      *rate,
		Mode:      mortgage.Mode(*mode),
	})
	if err != nil {
		var verr *mortgage.ValidationError
		if !errors.As(err, &verr) {
			fmt.Fprintln(stderr, err)
			return 1
		}
		for _, fe := range verr.Fields {
			fmt.Fprintf(stderr, "%s: %s\n", fe.Field, mortgage.ProblemOf(fe.Err).Message())
		}
		return 1
	}

	result := mortgage.Calculate(input)
	observability.Logger.Debug("repayment calculated",
		zap.String("mode", string(result.Mode)),
		zap.Float64("monthly_amount", result.MonthlyAmount),
		zap.Float64("total_amount", result.TotalAmount),
	)
	if !result.Finite() {
		fmt.Fprintln(stderr, mortgage.ErrNonFiniteResult)
		return 1
	}

	resp := repayment.NewCalculateResponse(result)
	if *output == outputJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(resp); err != nil {
			fmt.Fprintln(stderr, err)
			return 1
		}
		return 0
	}

	fmt.Fprintf(stdout, "Mortgage type:       %s\n", result.Mode.Label())
	fmt.Fprintf(stdout, "Monthly repayment:   %s\n", resp.MonthlyDisplay)
	fmt.Fprintf(stdout, "Total over the term: %s\n", resp.TotalDisplay)
	fmt.Fprintf(stdout, "Payments:            %d\n", resp.NumberOfPayments)
	return 0
}
