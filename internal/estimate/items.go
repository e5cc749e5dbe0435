package estimate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Meeting allocations are fixed by the worksheet: kickoff, each interim
// meeting, and deliverable handover each take half a person-day from the
// senior engineer, engineer (A), and engineer (B).
const meetingPersonDays = 0.5

var meetingGrades = []Grade{SeniorEngineer, EngineerA, EngineerB}

// MeetingItems builds the fixed meeting line items for a project with the
// given number of interim meetings.
func MeetingItems(interim int) []LineItem {
	tasks := []string{"kickoff meeting"}
	for i := 0; i < interim; i++ {
		tasks = append(tasks, fmt.Sprintf("interim meeting %d", i+1))
	}
	tasks = append(tasks, "deliverable handover")

	items := make([]LineItem, 0, len(tasks)*len(meetingGrades))
	for _, task := range tasks {
		for _, g := range meetingGrades {
			items = append(items, LineItem{Task: task, Grade: g, PersonDays: meetingPersonDays})
		}
	}
	return items
}

// lineItemsSchema constrains the task-decomposition JSON handed to the
// engine before it is decoded.
var lineItemsSchema = map[string]any{
	"type":     "array",
	"minItems": 1,
	"items": map[string]any{
		"type":                 "object",
		"required":             []any{"task", "grade", "person_days"},
		"additionalProperties": false,
		"properties": map[string]any{
			"task":        map[string]any{"type": "string", "minLength": 1},
			"grade":       map[string]any{"type": "string", "enum": gradeEnum()},
			"person_days": map[string]any{"type": "number", "minimum": 0},
		},
	},
}

func gradeEnum() []any {
	enum := make([]any, len(AllGrades))
	for i, g := range AllGrades {
		enum[i] = string(g)
	}
	return enum
}

// ParseItems validates and decodes a line-item JSON document.
func ParseItems(data []byte) ([]LineItem, error) {
	if err := validateJSONAgainstSchema(lineItemsSchema, data); err != nil {
		return nil, fmt.Errorf("line items: %w", err)
	}
	var items []LineItem
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("decode line items: %w", err)
	}
	return items, nil
}

// validateJSONAgainstSchema validates "data" against "schemaMap".
func validateJSONAgainstSchema(schemaMap map[string]any, data []byte) error {
	b, err := json.Marshal(schemaMap)
	if err != nil {
		return fmt.Errorf("marshal schema: %w", err)
	}
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("schema.json", bytes.NewReader(b)); err != nil {
		return fmt.Errorf("add schema: %w", err)
	}
	schema, err := compiler.Compile("schema.json")
	if err != nil {
		return fmt.Errorf("compile schema: %w", err)
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
