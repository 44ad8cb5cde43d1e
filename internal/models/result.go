package models

// ResultKind форма результата запроса
type ResultKind string

const (
	ResultRecords   ResultKind = "records"
	ResultCount     ResultKind = "count"
	ResultBirthdays ResultKind = "birthdays"
)

// BirthdayHit ближайший день рождения человека
type BirthdayHit struct {
	Record    *Record `json:"record"`
	Next      Date    `json:"next"`
	DaysUntil int     `json:"days_until"`
	Age       int     `json:"age"` // Age сколько исполнится в этот день
}

// Result is the typed outcome of executing an intent. An empty result is not an error.
type Result struct {
	Intent    *QueryIntent  `json:"intent,omitempty"`
	Kind      ResultKind    `json:"kind"`
	Operation Operation     `json:"operation"`
	Records   []*Record     `json:"records,omitempty"`
	Birthdays []BirthdayHit `json:"birthdays,omitempty"`
	Count     int           `json:"count"`
	Empty     bool          `json:"empty"`
}
