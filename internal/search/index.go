package search

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/GLee998/church-database-bot/internal/models"
)

// entry один токен записи
type entry struct {
	token string
	ord   int
}

// Index is an immutable prefix index over the records of one snapshot.
// Tokens of first name, last name and group are kept in a sorted array,
// so a prefix resolves with a binary search plus a scan over its matches.
type Index struct {
	records []*models.Record
	names   []string // нормализованное полное имя по порядковому номеру записи
	entries []entry
}

// NewIndex builds the index. records must be in sheet order.
func NewIndex(records []*models.Record) *Index {
	ix := &Index{
		records: records,
		names:   make([]string, len(records)),
	}

	for ord, r := range records {
		ix.names[ord] = Normalize(r.DisplayName())

		seen := make(map[string]struct{})
		for _, src := range []string{r.FirstName(), r.LastName(), r.Group} {
			for _, tok := range Tokens(src) {
				if _, dup := seen[tok]; dup {
					continue
				}
				seen[tok] = struct{}{}
				ix.entries = append(ix.entries, entry{token: tok, ord: ord})
			}
		}
	}

	sort.Slice(ix.entries, func(i, j int) bool {
		if ix.entries[i].token != ix.entries[j].token {
			return ix.entries[i].token < ix.entries[j].token
		}
		return ix.entries[i].ord < ix.entries[j].ord
	})

	return ix
}

// Len returns the number of indexed records.
func (ix *Index) Len() int {
	return len(ix.records)
}

// Query returns records where every word of prefix is a prefix of some token of the record.
// Results are ranked: full name starting with the query first, then shorter names,
// then sheet row, then id. An empty prefix returns all records in sheet order.
// limit <= 0 means no limit.
func (ix *Index) Query(prefix string, limit int) []*models.Record {
	words := Tokens(prefix)
	if len(words) == 0 {
		return truncate(append([]*models.Record(nil), ix.records...), limit)
	}

	var matched map[int]struct{}
	for _, w := range words {
		hits := ix.prefixHits(w)
		if matched == nil {
			matched = hits
		} else {
			for ord := range matched {
				if _, ok := hits[ord]; !ok {
					delete(matched, ord)
				}
			}
		}
		if len(matched) == 0 {
			return nil
		}
	}

	ords := make([]int, 0, len(matched))
	for ord := range matched {
		ords = append(ords, ord)
	}

	query := strings.Join(words, " ")
	sort.Slice(ords, func(i, j int) bool {
		a, b := ords[i], ords[j]
		pa, pb := strings.HasPrefix(ix.names[a], query), strings.HasPrefix(ix.names[b], query)
		if pa != pb {
			return pa
		}
		la, lb := utf8.RuneCountInString(ix.names[a]), utf8.RuneCountInString(ix.names[b])
		if la != lb {
			return la < lb
		}
		if ix.records[a].Row != ix.records[b].Row {
			return ix.records[a].Row < ix.records[b].Row
		}
		return ix.records[a].ID < ix.records[b].ID
	})

	result := make([]*models.Record, 0, len(ords))
	for _, ord := range ords {
		result = append(result, ix.records[ord])
	}
	return truncate(result, limit)
}

// prefixHits returns ordinals of records having a token that starts with w
func (ix *Index) prefixHits(w string) map[int]struct{} {
	start := sort.Search(len(ix.entries), func(i int) bool {
		return ix.entries[i].token >= w
	})

	hits := make(map[int]struct{})
	for i := start; i < len(ix.entries) && strings.HasPrefix(ix.entries[i].token, w); i++ {
		hits[ix.entries[i].ord] = struct{}{}
	}
	return hits
}

func truncate(records []*models.Record, limit int) []*models.Record {
	if limit > 0 && len(records) > limit {
		return records[:limit]
	}
	return records
}
