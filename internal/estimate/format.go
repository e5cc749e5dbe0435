package estimate

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatBreakdown renders line items and derived totals as markdown tables,
// ready for embedding in a prompt or printing to a terminal.
func FormatBreakdown(items []LineItem, rates RateTable, res Result) string {
	var b strings.Builder
	if len(items) > 0 {
		b.WriteString("| Task | Grade | Person-days | Labor cost |\n")
		b.WriteString("|---|---|---|---|\n")
		for _, it := range items {
			fmt.Fprintf(&b, "| %s | %s | %v | %s |\n",
				it.Task, it.Grade, it.PersonDays, formatYen(itemCost(rates[it.Grade], it.PersonDays)))
		}
		b.WriteString("\n")
	}

	b.WriteString("| Cost component | Amount |\n|---|---|\n")
	rows := []struct {
		label  string
		amount int64
	}{
		{"Direct labor cost", res.DirectLabor},
		{"Travel cost", res.Travel},
		{"Electronic deliverable cost", res.ElectronicDeliverable},
		{"Computer usage cost", res.ComputerUsage},
		{"Direct expenses", res.DirectExpenses},
		{"Other direct cost", res.OtherDirect},
		{"General administrative cost", res.GeneralAdmin},
		{"Total price", res.TotalPrice},
	}
	for _, r := range rows {
		fmt.Fprintf(&b, "| %s | %s |\n", r.label, formatYen(r.amount))
	}
	return strings.TrimRight(b.String(), "\n")
}

// formatYen renders an integer yen amount with digit grouping, e.g. ¥88,600.
func formatYen(v int64) string {
	s := strconv.FormatInt(v, 10)
	if len(s) <= 3 {
		return "¥" + s
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	return "¥" + strings.Join(parts, ",")
}
