package query

import (
	"fmt"
	"sort"
	"time"

	"github.com/agnivade/levenshtein"

	"github.com/GLee998/church-database-bot/internal/cache"
	"github.com/GLee998/church-database-bot/internal/intent"
	"github.com/GLee998/church-database-bot/internal/models"
	"github.com/GLee998/church-database-bot/internal/search"
)

// DefaultSimilarity минимальная похожесть имени для lookup-by-name
const DefaultSimilarity = 0.7

// Executor evaluates validated intents against a snapshot. It never consults the AI service.
type Executor struct {
	schema    *models.Schema
	now       func() time.Time
	loc       *time.Location
	threshold float64
}

// NewExecutor creates an Executor. loc is the time zone that defines "today" for birthdays.
func NewExecutor(schema *models.Schema, loc *time.Location, threshold float64) *Executor {
	if loc == nil {
		loc = time.UTC
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarity
	}
	return &Executor{
		schema:    schema,
		now:       time.Now,
		loc:       loc,
		threshold: threshold,
	}
}

// SetClock overrides the time source. Intended for tests.
func (e *Executor) SetClock(now func() time.Time) {
	e.now = now
}

// Today returns the reference date in the executor's time zone.
func (e *Executor) Today() models.Date {
	return models.DateOf(e.now().In(e.loc))
}

// Execute evaluates qi against snap. The same intent and snapshot always give the same result.
func (e *Executor) Execute(qi *models.QueryIntent, snap *cache.Snapshot) (*models.Result, error) {
	if qi == nil {
		return nil, fmt.Errorf("%w: nil intent", intent.ErrInvalidIntent)
	}

	match, err := compile(qi.Predicates, e.schema)
	if err != nil {
		return nil, err
	}

	res := &models.Result{Intent: qi, Operation: qi.Operation}

	switch qi.Operation {
	case models.OpLookupByName:
		res.Kind = models.ResultRecords
		res.Records = limit(e.lookup(qi.Name, snap.Records), qi.Limit)
		res.Count = len(res.Records)
	case models.OpFilterByField:
		res.Kind = models.ResultRecords
		res.Records = limit(filter(snap.Records, match), qi.Limit)
		res.Count = len(res.Records)
	case models.OpCount:
		res.Kind = models.ResultCount
		res.Count = len(filter(snap.Records, match))
	case models.OpListByGroup:
		res.Kind = models.ResultRecords
		members := filter(snap.Records, match)
		sortByName(members)
		res.Records = limit(members, qi.Limit)
		res.Count = len(res.Records)
	case models.OpUpcomingBirthdays:
		res.Kind = models.ResultBirthdays
		hits := UpcomingBirthdays(filter(snap.Records, match), e.Today(), qi.WindowDays)
		if qi.Limit > 0 && len(hits) > qi.Limit {
			hits = hits[:qi.Limit]
		}
		res.Birthdays = hits
		res.Count = len(hits)
	default:
		return nil, fmt.Errorf("%w: operation %q", intent.ErrInvalidIntent, qi.Operation)
	}

	res.Empty = res.Count == 0
	return res, nil
}

type scored struct {
	rec   *models.Record
	name  string
	score float64
}

// lookup returns records whose name is similar enough to name,
// ordered by similarity, then name, then sheet row, then id
func (e *Executor) lookup(name string, records []*models.Record) []*models.Record {
	query := search.Normalize(name)
	if query == "" {
		return nil
	}

	var hits []scored
	for _, r := range records {
		full := search.Normalize(r.DisplayName())
		best := 0.0
		candidates := []string{
			full,
			search.Normalize(r.FirstName()),
			search.Normalize(r.LastName()),
			search.Normalize(r.LastName() + " " + r.FirstName()),
		}
		for _, c := range candidates {
			if s := similarity(query, c); s > best {
				best = s
			}
		}
		if best >= e.threshold {
			hits = append(hits, scored{rec: r, name: full, score: best})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		if hits[i].name != hits[j].name {
			return hits[i].name < hits[j].name
		}
		if hits[i].rec.Row != hits[j].rec.Row {
			return hits[i].rec.Row < hits[j].rec.Row
		}
		return hits[i].rec.ID < hits[j].rec.ID
	})

	out := make([]*models.Record, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.rec)
	}
	return out
}

// similarity returns 1 - levenshtein(a, b) / max(len(a), len(b)) over runes
func similarity(a, b string) float64 {
	if a == "" || b == "" {
		return 0
	}
	la, lb := len([]rune(a)), len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	return 1 - float64(levenshtein.ComputeDistance(a, b))/float64(longest)
}

// UpcomingBirthdays returns birthdays falling within window days from ref (inclusive),
// ordered by days until the next occurrence, then name, then sheet row.
func UpcomingBirthdays(records []*models.Record, ref models.Date, window int) []models.BirthdayHit {
	var hits []models.BirthdayHit
	for _, r := range records {
		if r.BirthDate == nil {
			continue
		}
		days := r.BirthDate.DaysUntil(ref)
		if days > window {
			continue
		}
		next := r.BirthDate.NextOccurrence(ref)
		hits = append(hits, models.BirthdayHit{
			Record:    r,
			Next:      next,
			DaysUntil: days,
			Age:       next.Year - r.BirthDate.Year,
		})
	}

	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].DaysUntil != hits[j].DaysUntil {
			return hits[i].DaysUntil < hits[j].DaysUntil
		}
		return lessByName(hits[i].Record, hits[j].Record)
	})
	return hits
}

func filter(records []*models.Record, match matcher) []*models.Record {
	var out []*models.Record
	for _, r := range records {
		if match(r) {
			out = append(out, r)
		}
	}
	return out
}

func sortByName(records []*models.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		return lessByName(records[i], records[j])
	})
}

func lessByName(a, b *models.Record) bool {
	na, nb := search.Normalize(a.DisplayName()), search.Normalize(b.DisplayName())
	if na != nb {
		return na < nb
	}
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.ID < b.ID
}

func limit(records []*models.Record, n int) []*models.Record {
	if n > 0 && len(records) > n {
		return records[:n]
	}
	return records
}
