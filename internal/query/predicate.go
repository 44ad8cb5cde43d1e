package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/GLee998/church-database-bot/internal/intent"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/search"
)

// matcher проверяет одну запись
type matcher func(r *models.Record) bool

// compile turns predicates into a single matcher. All predicates must hold.
func compile(preds []models.Predicate, schema *models.Schema) (matcher, error) {
	matchers := make([]matcher, 0, len(preds))
	for _, p := range preds {
		m, err := compileOne(p, schema)
		if err != nil {
			return nil, err
		}
		matchers = append(matchers, m)
	}

	return func(r *models.Record) bool {
		for _, m := range matchers {
			if !m(r) {
				return false
			}
		}
		return true
	}, nil
}

func compileOne(p models.Predicate, schema *models.Schema) (matcher, error) {
	def, ok := schema.Field(p.Field)
	if !ok {
		return nil, fmt.Errorf("%w: unknown field %q", intent.ErrInvalidIntent, p.Field)
	}

	switch def.Type {
	case models.FieldTypeString:
		return stringMatcher(def.Key, p)
	case models.FieldTypeDate:
		return dateMatcher(def.Key, p)
	case models.FieldTypeEnum:
		return enumMatcher(def.Key, p, schema)
	default:
		return nil, fmt.Errorf("%w: field %s has unsupported type", intent.ErrInvalidIntent, def.Key)
	}
}

func stringMatcher(key string, p models.Predicate) (matcher, error) {
	want := search.Normalize(p.Value)

	switch p.Operator {
	case models.OperatorEq:
		return func(r *models.Record) bool {
			return search.Normalize(r.Field(key)) == want
		}, nil
	case models.OperatorContains:
		return func(r *models.Record) bool {
			return strings.Contains(search.Normalize(r.Field(key)), want)
		}, nil
	default:
		return nil, fmt.Errorf("%w: operator %s on string field %s", intent.ErrInvalidIntent, p.Operator, key)
	}
}

func dateMatcher(key string, p models.Predicate) (matcher, error) {
	value := func(r *models.Record) (models.Date, bool) {
		raw := r.Field(key)
		if raw == "" {
			return models.Date{}, false
		}
		d, err := models.ParseDate(raw)
		return d, err == nil
	}

	switch p.Operator {
	case models.OperatorBefore, models.OperatorAfter:
		bound, err := models.ParseDate(p.Value)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", intent.ErrInvalidIntent, err)
		}
		before := p.Operator == models.OperatorBefore
		return func(r *models.Record) bool {
			d, ok := value(r)
			if !ok {
				return false
			}
			if before {
				return d.Before(bound)
			}
			return d.After(bound)
		}, nil
	case models.OperatorBetween:
		if len(p.Values) != 2 {
			return nil, fmt.Errorf("%w: between takes two values", intent.ErrInvalidIntent)
		}
		from, err := models.ParseDate(p.Values[0])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", intent.ErrInvalidIntent, err)
		}
		to, err := models.ParseDate(p.Values[1])
		if err != nil {
			return nil, fmt.Errorf("%w: %v", intent.ErrInvalidIntent, err)
		}
		// Границы включаются
		return func(r *models.Record) bool {
			d, ok := value(r)
			return ok && !d.Before(from) && !d.After(to)
		}, nil
	case models.OperatorMonth:
		month, err := strconv.Atoi(p.Value)
		if err != nil || month < 1 || month > 12 {
			return nil, fmt.Errorf("%w: month %q", intent.ErrInvalidIntent, p.Value)
		}
		return func(r *models.Record) bool {
			d, ok := value(r)
			return ok && int(d.Month) == month
		}, nil
	default:
		return nil, fmt.Errorf("%w: operator %s on date field %s", intent.ErrInvalidIntent, p.Operator, key)
	}
}

func enumMatcher(key string, p models.Predicate, schema *models.Schema) (matcher, error) {
	var wanted []string
	switch p.Operator {
	case models.OperatorEq:
		wanted = []string{p.Value}
	case models.OperatorIn:
		wanted = p.Values
	default:
		return nil, fmt.Errorf("%w: operator %s on enum field %s", intent.ErrInvalidIntent, p.Operator, key)
	}

	if key == models.FieldGroup {
		return func(r *models.Record) bool {
			for _, w := range wanted {
				if schema.IsUnassigned(w) {
					if r.Group == "" {
						return true
					}
					continue
				}
				if strings.EqualFold(r.Group, w) {
					return true
				}
			}
			return false
		}, nil
	}

	return func(r *models.Record) bool {
		v := r.Field(key)
		for _, w := range wanted {
			if strings.EqualFold(v, w) {
				return true
			}
		}
		return false
	}, nil
}
