// Command runestimate computes the deterministic cost breakdown from a
// line-items JSON file. No model is involved; this is the rule engine alone.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ymorimoto/sekisan/internal/estimate"
)

func main() {
	var (
		items   = flag.String("items", "", `line-items JSON file ("-" reads stdin)`)
		interim = flag.Int("interim", -1, "add standard meeting allocations for N interim meetings")
		policy  = flag.Bool("policy", false, "print the estimation policy text before the breakdown")
	)
	flag.Parse()

	if *items == "" && *interim < 0 && !*policy {
		fmt.Fprintln(os.Stderr, "usage: runestimate [-items file] [-interim N] [-policy]")
		os.Exit(2)
	}

	if *policy {
		fmt.Print(estimate.PolicyText(estimate.FY2025))
	}

	var lineItems []estimate.LineItem
	if *items != "" {
		data, err := readItems(*items)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		lineItems, err = estimate.ParseItems(data)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
	}
	if *interim >= 0 {
		lineItems = append(lineItems, estimate.MeetingItems(*interim)...)
	}
	if len(lineItems) == 0 {
		return
	}

	result, err := estimate.Compute(lineItems, estimate.FY2025)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if *policy {
		fmt.Println()
	}
	fmt.Println(estimate.FormatBreakdown(lineItems, estimate.FY2025, result))
}

func readItems(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
