package models

// Operation вид запроса к реестру
type Operation string

const (
	OpLookupByName      Operation = "lookup-by-name"
	OpFilterByField     Operation = "filter-by-field"
	OpCount             Operation = "count"
	OpListByGroup       Operation = "list-by-group"
	OpUpcomingBirthdays Operation = "upcoming-birthdays"
	OpUnsupported       Operation = "unsupported" // сигнал модели, что вопрос вне словаря
)

// Operations lists every executable operation.
var Operations = []Operation{
	OpLookupByName,
	OpFilterByField,
	OpCount,
	OpListByGroup,
	OpUpcomingBirthdays,
}

// Operator оператор сравнения в предикате
type Operator string

const (
	OperatorEq       Operator = "eq"
	OperatorContains Operator = "contains"
	OperatorBefore   Operator = "before"
	OperatorAfter    Operator = "after"
	OperatorBetween  Operator = "between"
	OperatorMonth    Operator = "month"
	OperatorIn       Operator = "in"
)

// OperatorsFor returns the operators allowed for a field type.
func OperatorsFor(t FieldType) []Operator {
	switch t {
	case FieldTypeString:
		return []Operator{OperatorEq, OperatorContains}
	case FieldTypeDate:
		return []Operator{OperatorBefore, OperatorAfter, OperatorBetween, OperatorMonth}
	case FieldTypeEnum:
		return []Operator{OperatorEq, OperatorIn}
	default:
		return nil
	}
}

// Predicate одно условие фильтра.
// Value используется операторами с одним аргументом, Values - операторами between и in.
type Predicate struct {
	Field    string   `json:"field"`
	Operator Operator `json:"operator"`
	Value    string   `json:"value,omitempty"`
	Values   []string `json:"values,omitempty"`
}

// QueryIntent is the closed-vocabulary description of a question.
// Only intents returned by the resolver's validator may be executed.
type QueryIntent struct {
	Operation  Operation   `json:"operation"`
	Name       string      `json:"name,omitempty"`
	Predicates []Predicate `json:"predicates,omitempty"`
	Limit      int         `json:"limit,omitempty"`
	WindowDays int         `json:"window_days,omitempty"`
}
