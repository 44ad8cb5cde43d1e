package query

import (
	"sort"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/search"
)

// Entry одна строка в списках навигации
type Entry struct {
	Record    *models.Record `json:"record"`
	Label     string         `json:"label"`                // Label имя для отображения
	Age       *int           `json:"age,omitempty"`        // Age nil если дата рождения не указана
	BirthDate string         `json:"birth_date,omitempty"` // BirthDate только для тезок
}

// GroupListing участники одной домашней группы
type GroupListing struct {
	Name    string  `json:"name"`
	Members []Entry `json:"members"`
}

// Letters returns the distinct upper-case first letters of first names, sorted.
func Letters(snap *cache.Snapshot) []string {
	seen := make(map[string]bool)
	var letters []string
	for _, r := range snap.Records {
		l := firstLetter(r.FirstName())
		if l == "" || seen[l] {
			continue
		}
		seen[l] = true
		letters = append(letters, l)
	}
	sort.Strings(letters)
	return letters
}

// ByLetter returns people whose first name starts with letter, ordered by name.
// Namesakes carry their birth date so they can be told apart.
func ByLetter(snap *cache.Snapshot, letter string) []Entry {
	want := firstLetter(letter)
	if want == "" {
		return nil
	}

	var people []*models.Record
	names := make(map[string]int)
	for _, r := range snap.Records {
		if firstLetter(r.FirstName()) != want {
			continue
		}
		people = append(people, r)
		names[search.Normalize(r.DisplayName())]++
	}
	sortByName(people)

	entries := make([]Entry, 0, len(people))
	for _, r := range people {
		e := Entry{Record: r, Label: r.DisplayName()}
		if names[search.Normalize(r.DisplayName())] > 1 && r.BirthDate != nil {
			e.BirthDate = r.BirthDate.Display()
		}
		entries = append(entries, e)
	}
	return entries
}

// Groups returns every non-empty home group with its members sorted by name.
// People without a group are listed under the schema's unassigned label.
func Groups(snap *cache.Snapshot, schema *models.Schema, today models.Date) []GroupListing {
	byGroup := make(map[string][]*models.Record)
	for _, r := range snap.Records {
		name := r.Group
		if name == "" {
			name = schema.UnassignedGroup
		}
		byGroup[name] = append(byGroup[name], r)
	}

	names := make([]string, 0, len(byGroup))
	for name := range byGroup {
		names = append(names, name)
	}
	sort.Strings(names)

	listings := make([]GroupListing, 0, len(names))
	for _, name := range names {
		members := byGroup[name]
		sortByName(members)

		entries := make([]Entry, 0, len(members))
		for _, r := range members {
			entries = append(entries, entryWithAge(r, today))
		}
		listings = append(listings, GroupListing{Name: name, Members: entries})
	}
	return listings
}

// BirthdaysByMonth returns people born in month, ordered by day of month then name.
// Age is the age the person turns this year.
func BirthdaysByMonth(snap *cache.Snapshot, month time.Month, today models.Date) []Entry {
	var people []*models.Record
	for _, r := range snap.Records {
		if r.BirthDate != nil && r.BirthDate.Month == month {
			people = append(people, r)
		}
	}

	sort.SliceStable(people, func(i, j int) bool {
		if people[i].BirthDate.Day != people[j].BirthDate.Day {
			return people[i].BirthDate.Day < people[j].BirthDate.Day
		}
		return lessByName(people[i], people[j])
	})

	entries := make([]Entry, 0, len(people))
	for _, r := range people {
		age := today.Year - r.BirthDate.Year
		entries = append(entries, Entry{
			Record:    r,
			Label:     r.DisplayName(),
			Age:       &age,
			BirthDate: r.BirthDate.Display(),
		})
	}
	return entries
}

func entryWithAge(r *models.Record, today models.Date) Entry {
	e := Entry{Record: r, Label: r.DisplayName()}
	if r.BirthDate != nil {
		age := r.BirthDate.AgeOn(today)
		e.Age = &age
	}
	return e
}

func firstLetter(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	r, _ := utf8.DecodeRuneInString(s)
	if !unicode.IsLetter(r) {
		return ""
	}
	return string(unicode.ToUpper(r))
}
