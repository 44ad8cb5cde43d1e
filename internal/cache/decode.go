package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"

	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/remote"
)

// decodeTable converts raw sheet rows into records. Rows that do not fit the schema
// are returned as quarantined instead of failing the whole table. Blank rows are skipped.
func decodeTable(table *remote.Table, schema *models.Schema) ([]*models.Record, []Quarantine) {
	if table == nil {
		return nil, nil
	}

	idCol, revCol := -1, -1
	fieldCols := make(map[int]models.FieldDef)
	present := make(map[string]bool)

	for i, h := range table.Headers {
		switch strings.TrimSpace(h) {
		case models.ColumnID:
			idCol = i
		case models.ColumnRevision:
			revCol = i
		default:
			if def, ok := schema.FieldByHeader(h); ok {
				fieldCols[i] = def
				present[def.Key] = true
			}
		}
	}

	var (
		records     []*models.Record
		quarantined []Quarantine
	)
	seen := make(map[string]bool)

	// Обязательная колонка отсутствует: ни одна строка не пройдет проверку
	var missing string
	switch {
	case idCol < 0:
		missing = "missing " + models.ColumnID + " column"
	case revCol < 0:
		missing = "missing " + models.ColumnRevision + " column"
	default:
		for _, def := range schema.Fields {
			if def.Required && !present[def.Key] {
				missing = "missing column " + def.Header
				break
			}
		}
	}

	for i, raw := range table.Rows {
		row := i + 1
		if blank(raw) {
			continue
		}
		if missing != "" {
			quarantined = append(quarantined, Quarantine{Row: row, Reason: missing})
			continue
		}

		rec, err := decodeRow(raw, row, idCol, revCol, fieldCols, schema)
		if err != nil {
			quarantined = append(quarantined, Quarantine{Row: row, ID: cell(raw, idCol), Reason: err.Error()})
			continue
		}
		if seen[rec.ID] {
			quarantined = append(quarantined, Quarantine{Row: row, ID: rec.ID, Reason: "duplicate id"})
			continue
		}
		seen[rec.ID] = true
		records = append(records, rec)
	}

	return records, quarantined
}

func decodeRow(raw []string, row, idCol, revCol int, fieldCols map[int]models.FieldDef, schema *models.Schema) (*models.Record, error) {
	id := strings.TrimSpace(cell(raw, idCol))
	if id == "" {
		return nil, fmt.Errorf("missing id")
	}

	rev, err := strconv.ParseInt(strings.TrimSpace(cell(raw, revCol)), 10, 64)
	if err != nil || rev < 1 {
		return nil, fmt.Errorf("invalid revision %q", cell(raw, revCol))
	}

	rec := &models.Record{
		ID:       id,
		Row:      row,
		Revision: rev,
		Fields:   make(map[string]string, len(fieldCols)),
	}

	for col, def := range fieldCols {
		value, err := def.Canonical(cell(raw, col))
		if err != nil {
			return nil, err
		}
		if value != "" {
			rec.Fields[def.Key] = value
		}
	}

	for _, def := range schema.Fields {
		if def.Required && rec.Fields[def.Key] == "" {
			return nil, fmt.Errorf("%w: %s", models.ErrRequiredField, def.Key)
		}
	}

	if group := rec.Fields[models.FieldGroup]; !schema.IsUnassigned(group) {
		rec.Group = group
	}

	if bd := rec.Fields[models.FieldBirthDate]; bd != "" {
		d, err := models.ParseDate(bd)
		if err != nil {
			return nil, err
		}
		rec.BirthDate = &d
	}

	return rec, nil
}

// syncToken derives the remote change marker from the row count and a digest of all cells
func syncToken(table *remote.Table) string {
	if table == nil {
		return ""
	}

	h := sha256.New()
	for _, header := range table.Headers {
		h.Write([]byte(header))
		h.Write([]byte{0})
	}
	rows := 0
	for _, raw := range table.Rows {
		if blank(raw) {
			continue
		}
		rows++
		for _, v := range raw {
			h.Write([]byte(v))
			h.Write([]byte{0})
		}
		h.Write([]byte{'\n'})
	}

	return fmt.Sprintf("%d-%s", rows, hex.EncodeToString(h.Sum(nil))[:16])
}

func cell(raw []string, col int) string {
	if col < 0 || col >= len(raw) {
		return ""
	}
	return raw[col]
}

func blank(raw []string) bool {
	for _, v := range raw {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
