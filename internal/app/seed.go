package app

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/remote"
	"github.com/GLee998/church-database-bot/internal/validation"
)

// Fixture начальный состав реестра в YAML:
//
//	people:
//	  - first_name: Анна
//	    last_name: Петрова
//	    group: Youth
//	    birth_date: "1990-01-02"
type Fixture struct {
	People []map[string]string `yaml:"people"`
}

// LoadFixture reads a YAML fixture file.
func LoadFixture(path string) (*Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}

	var f Fixture
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture %s: %w", path, err)
	}
	return &f, nil
}

// Seed appends the fixture's people to an empty store and returns how many were added.
// A store that already has rows is left untouched, so seeding on every start is safe.
// Every row is validated before anything is written.
func Seed(ctx context.Context, store remote.Store, schema *models.Schema, f *Fixture) (int, error) {
	table, err := store.FetchAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read store: %w", err)
	}
	if len(table.Rows) > 0 {
		return 0, nil
	}

	v := validation.New(schema)
	rows := make([]map[string]string, 0, len(f.People))
	for i, person := range f.People {
		fields, err := v.Fields(person, true)
		if err != nil {
			return 0, fmt.Errorf("fixture person %d: %w", i+1, err)
		}
		rows = append(rows, fields)
	}

	for i, fields := range rows {
		if _, err := store.Append(ctx, fields); err != nil {
			return i, fmt.Errorf("failed to append fixture person %d: %w", i+1, err)
		}
	}
	return len(rows), nil
}
