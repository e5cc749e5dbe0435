package estimate

import (
	"fmt"
	"strconv"
	"strings"
)

// PolicyText renders the estimation rules as prompt-ready prose. The numbers
// come from the same constants Compute uses, so the text cannot drift from
// the arithmetic.
func PolicyText(rates RateTable) string {
	var b strings.Builder
	b.WriteString("Apply the FY2025 daily unit rates:\n")
	for _, g := range AllGrades {
		fmt.Fprintf(&b, "- %s: %s\n", g, formatYen(rates[g]))
	}

	b.WriteString("\nMeeting allocations (fixed):\n")
	fmt.Fprintf(&b, "- kickoff, each interim meeting, and deliverable handover each take %v person-days from %s, %s and %s\n",
		meetingPersonDays, meetingGrades[0], meetingGrades[1], meetingGrades[2])

	b.WriteString("\nCost rules (all amounts integer yen; truncate, do not round, unless stated):\n")
	b.WriteString("- direct_labor_cost = sum over line items of rate[grade] x person_days\n")
	fmt.Fprintf(&b, "- travel_cost = direct_labor_cost x %s%%\n", percent(travelNum, travelDen))
	fmt.Fprintf(&b, "- electronic_deliverable_cost: k = floor(direct_labor_cost / 1000), then v = %v x k^%v, then floor(v) x 1000\n",
		edCoefficient, edExponent)
	fmt.Fprintf(&b, "- computer_usage_cost = %s%% of each line item's labor cost, summed\n", percent(computerNum, computerDen))
	fmt.Fprintf(&b, "- other_direct_cost = direct_labor_cost x %s%%\n", percent(overheadNum, overheadDen))
	b.WriteString("- direct_expenses = travel_cost + electronic_deliverable_cost + computer_usage_cost\n")
	fmt.Fprintf(&b, "- general_admin_cost = (direct_labor_cost + direct_expenses + other_direct_cost) x %s%%\n", percent(overheadNum, overheadDen))
	b.WriteString("- total_price = direct_labor_cost + direct_expenses + other_direct_cost + general_admin_cost\n")
	return b.String()
}

func percent(num, den int64) string {
	return strconv.FormatFloat(float64(num)*100/float64(den), 'f', -1, 64)
}
