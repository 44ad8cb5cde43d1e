package models

import "strings"

// Record представляет одну запись о человеке из таблицы.
// Значения полей хранятся в каноническом текстовом виде (даты в формате YYYY-MM-DD).
type Record struct {
	BirthDate *Date             `json:"birth_date,omitempty"` // BirthDate дата рождения (nil если не указана)
	Fields    map[string]string `json:"fields"`               // Fields значения полей по ключу схемы
	ID        string            `json:"id"`                   // ID стабильный идентификатор (UUID), не переиспользуется
	Group     string            `json:"group,omitempty"`      // Group домашняя группа ("" если не распределен)
	Revision  int64             `json:"revision"`             // Revision монотонный счетчик записей строки
	Row       int               `json:"row"`                  // Row порядок строки в таблице (начиная с 1)
}

// Field returns the canonical value of a schema field, or "" when absent.
func (r *Record) Field(key string) string {
	if r.Fields == nil {
		return ""
	}
	return r.Fields[key]
}

// FirstName returns the first name field.
func (r *Record) FirstName() string {
	return r.Field(FieldFirstName)
}

// LastName returns the last name field.
func (r *Record) LastName() string {
	return r.Field(FieldLastName)
}

// DisplayName returns "First Last" with empty parts dropped.
func (r *Record) DisplayName() string {
	return strings.TrimSpace(r.FirstName() + " " + r.LastName())
}

// IsNewerThan reports whether r carries a later confirmed write than other.
// Revisions of the same id are totally ordered, so no tie breaker is needed.
func (r *Record) IsNewerThan(other *Record) bool {
	return r.Revision > other.Revision
}

// Clone создает глубокую копию записи
func (r *Record) Clone() *Record {
	fields := make(map[string]string, len(r.Fields))
	for k, v := range r.Fields {
		fields[k] = v
	}

	clone := &Record{
		ID:       r.ID,
		Row:      r.Row,
		Revision: r.Revision,
		Group:    r.Group,
		Fields:   fields,
	}
	if r.BirthDate != nil {
		bd := *r.BirthDate
		clone.BirthDate = &bd
	}

	return clone
}

// Equal reports whether two records carry the same id, revision and field values.
func (r *Record) Equal(other *Record) bool {
	if r.ID != other.ID || r.Revision != other.Revision || r.Row != other.Row || r.Group != other.Group {
		return false
	}
	if len(r.Fields) != len(other.Fields) {
		return false
	}
	for k, v := range r.Fields {
		if ov, ok := other.Fields[k]; !ok || ov != v {
			return false
		}
	}
	return true
}
