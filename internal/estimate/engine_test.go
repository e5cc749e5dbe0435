package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompute_MeetingScenario(t *testing.T) {
	// Kickoff + one interim meeting + handover, each 0.5 person-days at
	// senior-engineer, engineer-a and engineer-b:
	//   3 x 0.5 x (66,900 + 59,600 + 48,500) = 262,500
	items := MeetingItems(1)
	res, err := Compute(items, FY2025)
	require.NoError(t, err)

	assert.Equal(t, int64(262500), res.DirectLabor)
	assert.Equal(t, int64(1653), res.Travel)                 // 262,500 x 63 / 10,000 truncated
	assert.Equal(t, int64(84000), res.ElectronicDeliverable) // floor(6.9 x 262^0.45) x 1000
	assert.Equal(t, int64(5250), res.ComputerUsage)          // 2% of each item, summed
	assert.Equal(t, int64(90903), res.DirectExpenses)
	assert.Equal(t, int64(141356), res.OtherDirect)  // 262,500 x 5,385 / 10,000 truncated
	assert.Equal(t, int64(266427), res.GeneralAdmin) // 494,759 x 5,385 / 10,000 truncated
	assert.Equal(t, int64(761186), res.TotalPrice)
}

func TestCompute_TotalIdentity(t *testing.T) {
	items := []LineItem{
		{Task: "road alignment design", Grade: PrincipalEngineer, PersonDays: 1.25},
		{Task: "drawing preparation", Grade: EngineerC, PersonDays: 7},
		{Task: "quantity takeoff", Grade: Technician, PersonDays: 0.5},
	}
	res, err := Compute(items, FY2025)
	require.NoError(t, err)

	assert.Equal(t, int64(410900), res.DirectLabor)
	assert.Equal(t, res.Travel+res.ElectronicDeliverable+res.ComputerUsage, res.DirectExpenses)
	assert.Equal(t, res.DirectLabor+res.DirectExpenses+res.OtherDirect+res.GeneralAdmin, res.TotalPrice)
}

func TestCompute_ComputerUsageMatchesAggregate(t *testing.T) {
	items := []LineItem{
		{Task: "a", Grade: EngineerA, PersonDays: 2.5},
		{Task: "b", Grade: EngineerB, PersonDays: 1.5},
	}
	res, err := Compute(items, FY2025)
	require.NoError(t, err)

	// per-item 2% shares summed before the division equal 2% of the total
	assert.Equal(t, res.DirectLabor*2/100, res.ComputerUsage)
}

func TestCompute_RejectsNegativePersonDays(t *testing.T) {
	items := []LineItem{
		{Task: "kickoff meeting", Grade: SeniorEngineer, PersonDays: -0.5},
	}
	_, err := Compute(items, FY2025)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNegativeQuantity)
	assert.Contains(t, err.Error(), "kickoff meeting")
}

func TestCompute_RejectsUnknownGrade(t *testing.T) {
	items := []LineItem{
		{Task: "survey", Grade: Grade("foreman"), PersonDays: 1},
	}
	_, err := Compute(items, FY2025)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownGrade)
}

func TestCompute_NoItems(t *testing.T) {
	res, err := Compute(nil, FY2025)
	require.NoError(t, err)
	assert.Equal(t, Result{}, res)
}

func TestElectronicDeliverable_FourStepSequence(t *testing.T) {
	// L = 1,234,567 walked through the four steps:
	//   1. 1,234,567 / 1,000 -> 1,234.567 -> floor -> 1,234
	//   2. 1,234^0.45 = 24.608...
	//   3. x 6.9 = 169.80...
	//   4. floor to the thousand -> 169,000
	assert.Equal(t, int64(169000), electronicDeliverable(1234567))

	// Flooring before the power matters: skipping step 1's floor on
	// L = 1,999 would give 6.9 x 1.999^0.45 = 9.42 -> 9,000, not 6,000.
	assert.Equal(t, int64(6000), electronicDeliverable(1999))

	assert.Equal(t, int64(0), electronicDeliverable(0))
	assert.Equal(t, int64(0), electronicDeliverable(999))
}

func TestItemCost_RoundsToYen(t *testing.T) {
	assert.Equal(t, int64(33450), itemCost(66900, 0.5))
	assert.Equal(t, int64(17880), itemCost(59600, 0.3))
	assert.Equal(t, int64(0), itemCost(88600, 0))
}
