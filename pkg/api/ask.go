package api

// AskRequest вопрос на естественном языке
type AskRequest struct {
	Question string `json:"question"`
}

// Birthday ближайший день рождения
type Birthday struct {
	Record    Record `json:"record"`
	Date      string `json:"date"` // дата ближайшего дня рождения, YYYY-MM-DD
	DaysUntil int    `json:"days_until"`
	Age       int    `json:"age"` // сколько исполнится
}

// AskResponse ответ на вопрос
type AskResponse struct {
	Kind      string     `json:"kind"`
	Operation string     `json:"operation"`
	Records   []Record   `json:"records,omitempty"`
	Birthdays []Birthday `json:"birthdays,omitempty"`
	SnapshotInfo
	Count int  `json:"count"`
	Empty bool `json:"empty"`
}

// Entry строка списка навигации
type Entry struct {
	Age       *int   `json:"age,omitempty"`
	Label     string `json:"label"`
	ID        string `json:"id"`
	Status    string `json:"status,omitempty"`
	BirthDate string `json:"birth_date,omitempty"` // DD.MM.YYYY
}

// LettersResponse первые буквы имен
type LettersResponse struct {
	Letters []string `json:"letters"`
}

// EntriesResponse список людей
type EntriesResponse struct {
	Entries []Entry `json:"entries"`
}

// Group домашняя группа с участниками
type Group struct {
	Name    string  `json:"name"`
	Members []Entry `json:"members"`
}

// GroupsResponse список домашних групп
type GroupsResponse struct {
	Groups []Group `json:"groups"`
}
