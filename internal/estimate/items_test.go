package estimate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMeetingItems(t *testing.T) {
	items := MeetingItems(2)
	require.Len(t, items, 12) // (kickoff + 2 interim + handover) x 3 grades

	assert.Equal(t, "kickoff meeting", items[0].Task)
	assert.Equal(t, SeniorEngineer, items[0].Grade)
	assert.Equal(t, 0.5, items[0].PersonDays)

	tasks := map[string]int{}
	for _, it := range items {
		tasks[it.Task]++
	}
	assert.Equal(t, 3, tasks["kickoff meeting"])
	assert.Equal(t, 3, tasks["interim meeting 1"])
	assert.Equal(t, 3, tasks["interim meeting 2"])
	assert.Equal(t, 3, tasks["deliverable handover"])
}

func TestMeetingItems_NoInterim(t *testing.T) {
	items := MeetingItems(0)
	assert.Len(t, items, 6)
}

func TestParseItems_Valid(t *testing.T) {
	data := []byte(`[
		{"task": "road design", "grade": "engineer-a", "person_days": 12.5},
		{"task": "review", "grade": "principal-engineer", "person_days": 1}
	]`)

	items, err := ParseItems(data)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, EngineerA, items[0].Grade)
	assert.Equal(t, 12.5, items[0].PersonDays)

	_, err = Compute(items, FY2025)
	assert.NoError(t, err)
}

func TestParseItems_Rejects(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"negative person days", `[{"task": "a", "grade": "engineer-a", "person_days": -1}]`},
		{"unknown grade", `[{"task": "a", "grade": "foreman", "person_days": 1}]`},
		{"missing field", `[{"task": "a", "grade": "engineer-a"}]`},
		{"extra field", `[{"task": "a", "grade": "engineer-a", "person_days": 1, "rate": 1000}]`},
		{"empty task", `[{"task": "", "grade": "engineer-a", "person_days": 1}]`},
		{"empty array", `[]`},
		{"not an array", `{"task": "a"}`},
		{"not json", `person_days: 1`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseItems([]byte(tc.data))
			assert.Error(t, err)
		})
	}
}
