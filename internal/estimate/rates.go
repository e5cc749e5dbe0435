// Package estimate computes construction-consulting cost estimates from
// labor line items. Every derived amount is deterministic integer yen; the
// ministry worksheet rounding (truncation of sub-yen and sub-thousand
// amounts) is reproduced exactly.
package estimate

// Grade identifies a technician grade on the unit price schedule.
type Grade string

const (
	PrincipalEngineer Grade = "principal-engineer" // 主任技術者
	ChiefEngineer     Grade = "chief-engineer"     // 理事・技師長
	SeniorEngineer    Grade = "senior-engineer"    // 主任技師
	EngineerA         Grade = "engineer-a"         // 技師(A)
	EngineerB         Grade = "engineer-b"         // 技師(B)
	EngineerC         Grade = "engineer-c"         // 技師(C)
	Technician        Grade = "technician"         // 技術員
)

// AllGrades lists every grade in schedule order.
var AllGrades = []Grade{
	PrincipalEngineer,
	ChiefEngineer,
	SeniorEngineer,
	EngineerA,
	EngineerB,
	EngineerC,
	Technician,
}

// RateTable maps grades to daily unit rates in yen. Treated as read-only.
type RateTable map[Grade]int64

// FY2025 is the fiscal 2025 design-services unit price schedule.
var FY2025 = RateTable{
	PrincipalEngineer: 88600,
	ChiefEngineer:     77500,
	SeniorEngineer:    66900,
	EngineerA:         59600,
	EngineerB:         48500,
	EngineerC:         40300,
	Technician:        36100,
}
