package intent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/GLee998/church-database-bot/internal/models"
)

// promptField описание поля для модели
type promptField struct {
	Name      string            `json:"name"`
	Type      models.FieldType  `json:"type"`
	Values    []string          `json:"values,omitempty"`
	Operators []models.Operator `json:"operators"`
}

// Describe renders the schema and the answer format as instructions for the AI service.
// The text is deterministic for a given schema.
func Describe(schema *models.Schema) string {
	fields := make([]promptField, 0, len(schema.Fields))
	for _, f := range schema.Fields {
		fields = append(fields, promptField{
			Name:      f.Key,
			Type:      f.Type,
			Values:    f.Values,
			Operators: models.OperatorsFor(f.Type),
		})
	}
	fieldsJSON, _ := json.MarshalIndent(fields, "", "  ")

	ops := make([]string, 0, len(models.Operations))
	for _, op := range models.Operations {
		ops = append(ops, string(op))
	}

	var b strings.Builder
	b.WriteString("You translate questions about a church member roster into a JSON query.\n")
	b.WriteString("Never answer the question itself. Reply with exactly one JSON object and nothing else.\n\n")
	fmt.Fprintf(&b, "Fields:\n%s\n\n", fieldsJSON)
	fmt.Fprintf(&b, "Operations: %s.\n", strings.Join(ops, ", "))
	b.WriteString(`Answer shape:
{"operation": "<operation>", "name": "<person name>", "predicates": [{"field": "<field>", "operator": "<operator>", "value": "<value>", "values": ["<value>"]}], "limit": <int>, "window_days": <int>}

Rules:
- lookup-by-name: set "name" to the person's name, no predicates.
- filter-by-field: list people matching all predicates.
- count: count people matching all predicates (no predicates counts everyone).
- list-by-group: list people of a home group; use a predicate on field "group".
- upcoming-birthdays: set "window_days" (default 7); predicates optional.
- Dates are YYYY-MM-DD. Operator "between" takes two dates in "values". Operator "month" takes the month number 1-12 in "value". Operator "in" takes "values".
- Enum values must be copied exactly from the field's values.
- Omit keys you do not need.
- If the question cannot be expressed with these operations and fields, reply {"operation": "unsupported"}.
`)
	return b.String()
}
