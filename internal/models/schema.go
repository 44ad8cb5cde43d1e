package models

import (
	"fmt"
	"strings"
)

// FieldType тип значения поля схемы
type FieldType string

const (
	FieldTypeString FieldType = "string"
	FieldTypeDate   FieldType = "date"
	FieldTypeEnum   FieldType = "enum"
)

// Ключи полей схемы
const (
	FieldFirstName    = "first_name"
	FieldLastName     = "last_name"
	FieldBirthDate    = "birth_date"
	FieldGroup        = "group"
	FieldStatus       = "status"
	FieldRegisteredAt = "registered_at"
	FieldPhoto        = "photo"
)

// Служебные колонки таблицы
const (
	ColumnID       = "ID"
	ColumnRevision = "Revision"
)

// DefaultStatuses статусы участников
var DefaultStatuses = []string{"активный", "неактивный", "вип"}

// DefaultUnassignedGroup метка для людей без домашней группы
const DefaultUnassignedGroup = "Не распределен"

// FieldDef describes one column of the roster sheet.
type FieldDef struct {
	Key      string    `json:"key"`
	Header   string    `json:"header"`
	Type     FieldType `json:"type"`
	Values   []string  `json:"values,omitempty"`
	MaxLen   int       `json:"max_len,omitempty"`
	Required bool      `json:"required"`
}

// Schema is the fixed set of fields every component agrees on.
type Schema struct {
	byKey           map[string]int
	byHeader        map[string]int
	UnassignedGroup string     `json:"unassigned_group"`
	Fields          []FieldDef `json:"fields"`
}

// NewSchema builds the roster schema with the configured group and status vocabularies.
func NewSchema(groups, statuses []string, unassignedGroup string) *Schema {
	if len(statuses) == 0 {
		statuses = DefaultStatuses
	}
	if unassignedGroup == "" {
		unassignedGroup = DefaultUnassignedGroup
	}

	groupValues := append([]string(nil), groups...)
	if !containsFold(groupValues, unassignedGroup) {
		groupValues = append(groupValues, unassignedGroup)
	}

	s := &Schema{
		UnassignedGroup: unassignedGroup,
		Fields: []FieldDef{
			{Key: FieldFirstName, Header: "Имя", Type: FieldTypeString, Required: true, MaxLen: 100},
			{Key: FieldLastName, Header: "Фамилия", Type: FieldTypeString, MaxLen: 100},
			{Key: FieldBirthDate, Header: "Дата рождения", Type: FieldTypeDate},
			{Key: FieldGroup, Header: "Домашка", Type: FieldTypeEnum, Values: groupValues},
			{Key: FieldStatus, Header: "Статус", Type: FieldTypeEnum, Values: append([]string(nil), statuses...)},
			{Key: FieldRegisteredAt, Header: "Дата регистрации", Type: FieldTypeDate},
			{Key: FieldPhoto, Header: "Фото", Type: FieldTypeString, MaxLen: 512},
		},
	}
	s.reindex()
	return s
}

func (s *Schema) reindex() {
	s.byKey = make(map[string]int, len(s.Fields))
	s.byHeader = make(map[string]int, len(s.Fields))
	for i, f := range s.Fields {
		s.byKey[f.Key] = i
		s.byHeader[strings.ToLower(strings.TrimSpace(f.Header))] = i
	}
}

// Field returns the definition for key.
func (s *Schema) Field(key string) (FieldDef, bool) {
	i, ok := s.byKey[key]
	if !ok {
		return FieldDef{}, false
	}
	return s.Fields[i], true
}

// FieldByHeader resolves a sheet header (case-insensitive) to its definition.
func (s *Schema) FieldByHeader(header string) (FieldDef, bool) {
	i, ok := s.byHeader[strings.ToLower(strings.TrimSpace(header))]
	if !ok {
		return FieldDef{}, false
	}
	return s.Fields[i], true
}

// Keys returns field keys in column order.
func (s *Schema) Keys() []string {
	keys := make([]string, 0, len(s.Fields))
	for _, f := range s.Fields {
		keys = append(keys, f.Key)
	}
	return keys
}

// Headers returns the sheet header row: bookkeeping columns followed by the fields.
func (s *Schema) Headers() []string {
	headers := []string{ColumnID, ColumnRevision}
	for _, f := range s.Fields {
		headers = append(headers, f.Header)
	}
	return headers
}

// IsUnassigned reports whether a group value means "no group".
func (s *Schema) IsUnassigned(group string) bool {
	g := strings.TrimSpace(group)
	return g == "" || strings.EqualFold(g, s.UnassignedGroup)
}

// Canonical normalizes a raw value for the field: dates become YYYY-MM-DD and enum values
// take the spelling from the vocabulary. Empty input stays empty.
func (f FieldDef) Canonical(raw string) (string, error) {
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", nil
	}

	switch f.Type {
	case FieldTypeDate:
		d, err := ParseDate(value)
		if err != nil {
			return "", fmt.Errorf("field %s: %w", f.Key, err)
		}
		return d.String(), nil
	case FieldTypeEnum:
		for _, allowed := range f.Values {
			if strings.EqualFold(allowed, value) {
				return allowed, nil
			}
		}
		return "", fmt.Errorf("%w: field %s does not allow %q", ErrInvalidValue, f.Key, value)
	default:
		if f.MaxLen > 0 && len([]rune(value)) > f.MaxLen {
			return "", fmt.Errorf("%w: field %s longer than %d characters", ErrInvalidValue, f.Key, f.MaxLen)
		}
		return value, nil
	}
}

func containsFold(values []string, v string) bool {
	for _, x := range values {
		if strings.EqualFold(x, v) {
			return true
		}
	}
	return false
}
