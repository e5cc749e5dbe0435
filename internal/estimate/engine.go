package estimate

import (
	"errors"
	"fmt"
	"math"
)

// Cost factors, kept as integer ratios so derived yen amounts truncate the
// way the worksheets do instead of accumulating float drift.
const (
	travelNum, travelDen     = 63, 10000   // 0.63%
	computerNum, computerDen = 2, 100      // 2%
	overheadNum, overheadDen = 5385, 10000 // 53.85%
)

// Electronic-deliverable curve: floor(L/1000) raised to edExponent, scaled by
// edCoefficient, then floored to the thousand.
const (
	edCoefficient = 6.9
	edExponent    = 0.45
)

var (
	ErrNegativeQuantity = errors.New("negative person-day quantity")
	ErrUnknownGrade     = errors.New("unknown technician grade")
)

// LineItem is one task's labor allocation: a grade and a person-day quantity.
type LineItem struct {
	Task       string  `json:"task"`
	Grade      Grade   `json:"grade"`
	PersonDays float64 `json:"person_days"`
}

// Result carries every derived amount in integer yen.
type Result struct {
	DirectLabor           int64 `json:"direct_labor_cost"`
	Travel                int64 `json:"travel_cost"`
	ElectronicDeliverable int64 `json:"electronic_deliverable_cost"`
	ComputerUsage         int64 `json:"computer_usage_cost"`
	DirectExpenses        int64 `json:"direct_expenses"`
	OtherDirect           int64 `json:"other_direct_cost"`
	GeneralAdmin          int64 `json:"general_admin_cost"`
	TotalPrice            int64 `json:"total_price"`
}

// Compute derives the full cost breakdown for the given line items. It is a
// pure function: same items and rates, same Result. Negative quantities and
// grades absent from the rate table are rejected.
func Compute(items []LineItem, rates RateTable) (Result, error) {
	var labor int64
	var computerShares int64 // per-item 2% numerators, summed before one division
	for i, it := range items {
		if it.PersonDays < 0 {
			return Result{}, fmt.Errorf("line item %d (%s): %w: %v", i, it.Task, ErrNegativeQuantity, it.PersonDays)
		}
		rate, ok := rates[it.Grade]
		if !ok {
			return Result{}, fmt.Errorf("line item %d (%s): %w: %q", i, it.Task, ErrUnknownGrade, it.Grade)
		}
		cost := itemCost(rate, it.PersonDays)
		labor += cost
		computerShares += cost * computerNum
	}

	travel := labor * travelNum / travelDen
	electronic := electronicDeliverable(labor)
	computer := computerShares / computerDen
	expenses := travel + electronic + computer
	other := labor * overheadNum / overheadDen
	admin := (labor + expenses + other) * overheadNum / overheadDen

	return Result{
		DirectLabor:           labor,
		Travel:                travel,
		ElectronicDeliverable: electronic,
		ComputerUsage:         computer,
		DirectExpenses:        expenses,
		OtherDirect:           other,
		GeneralAdmin:          admin,
		TotalPrice:            labor + expenses + other + admin,
	}, nil
}

// itemCost is one line item's labor cost in yen.
func itemCost(rate int64, personDays float64) int64 {
	return int64(math.Round(float64(rate) * personDays))
}

// electronicDeliverable follows the fixed four-step sequence: floor(L/1000),
// raise to the 0.45 power, scale by 6.9, floor to the thousand. The inner
// floor happens before exponentiation; reordering changes the result for
// non-round inputs.
func electronicDeliverable(labor int64) int64 {
	k := labor / 1000
	v := edCoefficient * math.Pow(float64(k), edExponent)
	return int64(math.Floor(v)) * 1000
}
