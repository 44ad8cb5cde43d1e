package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/models"
)

func TestLetters(t *testing.T) {
	snap := cache.NewSnapshot([]*models.Record{
		person("1", 1, "вера", "", "", ""),
		person("2", 2, "Анна", "", "", ""),
		person("3", 3, "Алла", "", "", ""),
	}, nil, "", time.Now())

	assert.Equal(t, []string{"А", "В"}, Letters(snap))
}

func TestByLetter_Namesakes(t *testing.T) {
	snap := cache.NewSnapshot([]*models.Record{
		person("1", 1, "Анна", "Петрова", "1990-01-02", ""),
		person("2", 2, "Алла", "Юрьева", "", ""),
		person("3", 3, "Анна", "Петрова", "2001-03-04", ""),
		person("4", 4, "Борис", "Иванов", "", ""),
	}, nil, "", time.Now())

	entries := ByLetter(snap, "а")
	require.Len(t, entries, 3)

	assert.Equal(t, "Алла Юрьева", entries[0].Label)
	assert.Empty(t, entries[0].BirthDate)
	assert.Equal(t, "1", entries[1].Record.ID)
	assert.Equal(t, "02.01.1990", entries[1].BirthDate)
	assert.Equal(t, "3", entries[2].Record.ID)
	assert.Equal(t, "04.03.2001", entries[2].BirthDate)

	assert.Empty(t, ByLetter(snap, ""))
}

func TestGroups(t *testing.T) {
	today := models.Date{Year: 2024, Month: time.December, Day: 29}
	listings := Groups(fixture(), testSchema(), today)

	require.Len(t, listings, 3)
	assert.Equal(t, "Family", listings[0].Name)
	assert.Equal(t, "Youth", listings[1].Name)
	assert.Equal(t, models.DefaultUnassignedGroup, listings[2].Name)

	youth := listings[1].Members
	require.Len(t, youth, 3)
	assert.Equal(t, "Анна Петрова", youth[0].Label)
	require.NotNil(t, youth[0].Age)
	assert.Equal(t, 34, *youth[0].Age)

	assert.Nil(t, listings[2].Members[0].Age)
}

func TestBirthdaysByMonth(t *testing.T) {
	today := models.Date{Year: 2024, Month: time.June, Day: 1}
	snap := cache.NewSnapshot([]*models.Record{
		person("1", 1, "Анна", "", "1990-06-20", ""),
		person("2", 2, "Борис", "", "1985-06-03", ""),
		person("3", 3, "Вера", "", "2001-07-01", ""),
	}, nil, "", time.Now())

	entries := BirthdaysByMonth(snap, time.June, today)
	require.Len(t, entries, 2)
	assert.Equal(t, "2", entries[0].Record.ID)
	assert.Equal(t, 39, *entries[0].Age)
	assert.Equal(t, "20.06.1990", entries[1].BirthDate)
}
