package intent

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GLee998/church-database-bot/internal/models"
)

// DefaultWindowDays окно дней рождения, если модель его не указала
const DefaultWindowDays = 7

// maxWindowDays окно не может превышать год
const maxWindowDays = 366

// Validate checks a parsed intent against the schema and returns a canonical copy:
// enum values take the vocabulary spelling and dates become YYYY-MM-DD.
// Every violation wraps ErrInvalidIntent.
func Validate(qi *models.QueryIntent, schema *models.Schema) (*models.QueryIntent, error) {
	if qi == nil {
		return nil, fmt.Errorf("%w: nil intent", ErrInvalidIntent)
	}
	if qi.Limit < 0 || qi.Limit > maxLimit {
		return nil, fmt.Errorf("%w: limit must be between 0 and %d", ErrInvalidIntent, maxLimit)
	}

	out := &models.QueryIntent{
		Operation:  qi.Operation,
		Name:       strings.TrimSpace(qi.Name),
		Limit:      qi.Limit,
		WindowDays: qi.WindowDays,
	}

	for i, p := range qi.Predicates {
		cp, err := validatePredicate(p, schema)
		if err != nil {
			return nil, fmt.Errorf("predicate %d: %w", i, err)
		}
		out.Predicates = append(out.Predicates, cp)
	}

	switch qi.Operation {
	case models.OpLookupByName:
		if out.Name == "" {
			return nil, fmt.Errorf("%w: lookup-by-name needs a name", ErrInvalidIntent)
		}
		if len(out.Predicates) > 0 {
			return nil, fmt.Errorf("%w: lookup-by-name takes no predicates", ErrInvalidIntent)
		}
	case models.OpFilterByField:
		if len(out.Predicates) == 0 {
			return nil, fmt.Errorf("%w: filter-by-field needs at least one predicate", ErrInvalidIntent)
		}
	case models.OpCount:
	case models.OpListByGroup:
		if !hasGroupPredicate(out.Predicates) {
			return nil, fmt.Errorf("%w: list-by-group needs a predicate on %s", ErrInvalidIntent, models.FieldGroup)
		}
	case models.OpUpcomingBirthdays:
		if out.WindowDays == 0 {
			out.WindowDays = DefaultWindowDays
		}
		if out.WindowDays < 1 || out.WindowDays > maxWindowDays {
			return nil, fmt.Errorf("%w: window_days must be between 1 and %d", ErrInvalidIntent, maxWindowDays)
		}
	default:
		return nil, fmt.Errorf("%w: operation %q", ErrInvalidIntent, qi.Operation)
	}

	if qi.Operation != models.OpUpcomingBirthdays && qi.WindowDays != 0 {
		return nil, fmt.Errorf("%w: window_days only applies to %s", ErrInvalidIntent, models.OpUpcomingBirthdays)
	}
	if qi.Operation != models.OpLookupByName && out.Name != "" {
		return nil, fmt.Errorf("%w: name only applies to %s", ErrInvalidIntent, models.OpLookupByName)
	}

	return out, nil
}

func validatePredicate(p models.Predicate, schema *models.Schema) (models.Predicate, error) {
	def, ok := schema.Field(p.Field)
	if !ok {
		return p, fmt.Errorf("%w: unknown field %q", ErrInvalidIntent, p.Field)
	}
	if !operatorAllowed(def.Type, p.Operator) {
		return p, fmt.Errorf("%w: operator %s is not allowed for %s field %s", ErrInvalidIntent, p.Operator, def.Type, def.Key)
	}

	out := models.Predicate{Field: p.Field, Operator: p.Operator}

	switch p.Operator {
	case models.OperatorEq, models.OperatorContains, models.OperatorBefore, models.OperatorAfter:
		if len(p.Values) > 0 {
			return p, fmt.Errorf("%w: %s takes a single value", ErrInvalidIntent, p.Operator)
		}
		v, err := canonicalValue(def, p.Value)
		if err != nil {
			return p, err
		}
		out.Value = v
	case models.OperatorMonth:
		if len(p.Values) > 0 {
			return p, fmt.Errorf("%w: month takes a single value", ErrInvalidIntent)
		}
		m, err := strconv.Atoi(strings.TrimSpace(p.Value))
		if err != nil || m < 1 || m > 12 {
			return p, fmt.Errorf("%w: month must be 1-12, got %q", ErrInvalidIntent, p.Value)
		}
		out.Value = strconv.Itoa(m)
	case models.OperatorBetween:
		if p.Value != "" || len(p.Values) != 2 {
			return p, fmt.Errorf("%w: between takes exactly two values", ErrInvalidIntent)
		}
		from, err := canonicalValue(def, p.Values[0])
		if err != nil {
			return p, err
		}
		to, err := canonicalValue(def, p.Values[1])
		if err != nil {
			return p, err
		}
		// Канонический формат YYYY-MM-DD сравнивается как строка
		if from > to {
			return p, fmt.Errorf("%w: between range is reversed", ErrInvalidIntent)
		}
		out.Values = []string{from, to}
	case models.OperatorIn:
		if p.Value != "" || len(p.Values) == 0 {
			return p, fmt.Errorf("%w: in takes a non-empty list of values", ErrInvalidIntent)
		}
		for _, raw := range p.Values {
			v, err := canonicalValue(def, raw)
			if err != nil {
				return p, err
			}
			out.Values = append(out.Values, v)
		}
	}

	return out, nil
}

// canonicalValue нормализует значение и запрещает пустые значения в предикатах
func canonicalValue(def models.FieldDef, raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		// Пустая группа означает "не распределен"
		if def.Key == models.FieldGroup {
			return "", nil
		}
		return "", fmt.Errorf("%w: empty value for %s", ErrInvalidIntent, def.Key)
	}
	v, err := def.Canonical(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidIntent, err)
	}
	return v, nil
}

func operatorAllowed(t models.FieldType, op models.Operator) bool {
	for _, allowed := range models.OperatorsFor(t) {
		if allowed == op {
			return true
		}
	}
	return false
}

func hasGroupPredicate(preds []models.Predicate) bool {
	for _, p := range preds {
		if p.Field == models.FieldGroup {
			return true
		}
	}
	return false
}
