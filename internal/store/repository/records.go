package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/lib/pq"

	"github.com/fortuna/prepstats/internal/stats"
	"github.com/fortuna/prepstats/internal/store"
)

// FetchPageSize is the number of rows read per round trip.
const FetchPageSize = 1000

// RecordRepository reads raw season stat rows
type RecordRepository struct {
	db      *store.Database
	schools *SchoolRepository
}

// NewRecordRepository creates a new record repository
func NewRecordRepository(db *store.Database) *RecordRepository {
	return &RecordRepository{
		db:      db,
		schools: NewSchoolRepository(db),
	}
}

// RecordQuery is the resolved form of a filter, ready to become SQL.
type RecordQuery struct {
	Search          string
	School          string
	DivisionSchools []string
	Sport           string
	Season          string
	FootballVariant string
}

// Fetch returns every raw row matching the filter, reading in pages of
// FetchPageSize ordered by id until a short page comes back.
func (r *RecordRepository) Fetch(ctx context.Context, filter stats.Filter) ([]stats.RawStatRow, error) {
	q, err := r.resolve(ctx, filter)
	if err != nil {
		return nil, err
	}

	var out []stats.RawStatRow
	for offset := 0; ; offset += FetchPageSize {
		page, err := r.fetchPage(ctx, q, offset, FetchPageSize)
		if err != nil {
			return nil, fmt.Errorf("fetching records at offset %d: %w", offset, err)
		}
		out = append(out, DecodeRecords(page)...)
		if len(page) < FetchPageSize {
			break
		}
	}

	return out, nil
}

// resolve looks up the school and division names a filter refers to
func (r *RecordRepository) resolve(ctx context.Context, filter stats.Filter) (RecordQuery, error) {
	q := RecordQuery{
		Search:          strings.TrimSpace(filter.Query),
		Sport:           activeFilter(filter.Sport),
		Season:          activeFilter(filter.Season),
		FootballVariant: activeFilter(filter.FootballVariant),
	}

	if div := activeFilter(filter.Division); div != "" {
		names, err := r.schools.FullNamesByDivision(ctx, div)
		if err != nil {
			return q, fmt.Errorf("resolving division %q: %w", div, err)
		}
		q.DivisionSchools = names
	}

	if id := activeFilter(filter.SchoolID); id != "" {
		name, err := r.schools.FullNameByID(ctx, id)
		if err != nil {
			return q, fmt.Errorf("resolving school %q: %w", id, err)
		}
		q.School = name
	}

	return q, nil
}

func (r *RecordRepository) fetchPage(ctx context.Context, q RecordQuery, offset, limit int) ([]*store.RawStatRecord, error) {
	query, args := BuildRecordQuery(q, offset, limit)

	rows, err := r.db.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying raw stat rows: %w", err)
	}
	defer rows.Close()

	var records []*store.RawStatRecord
	for rows.Next() {
		rec := &store.RawStatRecord{}
		if err := rows.Scan(&rec.ID, &rec.School, &rec.Sport, &rec.Season, &rec.StatRow, &rec.Source, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning raw stat row: %w", err)
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}

// BuildRecordQuery renders the paginated SELECT for q.
func BuildRecordQuery(q RecordQuery, offset, limit int) (string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if q.Search != "" {
		p := arg("%" + EscapeLike(q.Search) + "%")
		where = append(where, fmt.Sprintf(
			"(school ILIKE %[1]s OR sport ILIKE %[1]s OR season ILIKE %[1]s OR stat_row->>'Athlete Name' ILIKE %[1]s)", p))
	}
	if len(q.DivisionSchools) > 0 {
		where = append(where, "school = ANY("+arg(pq.Array(q.DivisionSchools))+")")
	}
	if q.School != "" {
		where = append(where, "school = "+arg(q.School))
	}
	if q.Sport != "" {
		where = append(where, "sport = "+arg(q.Sport))
	}
	if q.Season != "" {
		where = append(where, "season = "+arg(q.Season))
	}
	if q.FootballVariant != "" {
		where = append(where, "sport ILIKE "+arg("%"+EscapeLike(q.FootballVariant)+"%"))
	}

	var b strings.Builder
	b.WriteString("SELECT id, school, sport, season, stat_row, source, created_at FROM raw_stat_rows")
	if len(where) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY id")
	b.WriteString(" LIMIT " + arg(limit))
	b.WriteString(" OFFSET " + arg(offset))

	return b.String(), args
}

// EscapeLike escapes the LIKE wildcards in user input.
func EscapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// activeFilter treats "" and "all" as no filter
func activeFilter(v string) string {
	v = strings.TrimSpace(v)
	if strings.EqualFold(v, "all") {
		return ""
	}
	return v
}

// DecodeRecords converts a page of stored records. A record whose stat_row is
// not a JSON object is kept with empty stats and logged.
func DecodeRecords(recs []*store.RawStatRecord) []stats.RawStatRow {
	out := make([]stats.RawStatRow, 0, len(recs))
	for _, rec := range recs {
		row, err := ToRawStatRow(rec)
		if err != nil {
			log.Printf("⚠️  record %d: unreadable stat_row, using empty stats: %v", rec.ID, err)
		}
		out = append(out, row)
	}
	return out
}

// ToRawStatRow decodes a stored record into the aggregation input shape.
// Numbers inside stat_row keep their text form. On a decode error the
// returned row still carries the record's school, sport and season with an
// empty StatRow.
func ToRawStatRow(rec *store.RawStatRecord) (stats.RawStatRow, error) {
	row := stats.RawStatRow{
		School:  rec.School,
		Sport:   rec.Sport,
		Season:  rec.Season,
		StatRow: stats.StatRow{},
	}
	if len(rec.StatRow) > 0 {
		dec := json.NewDecoder(strings.NewReader(string(rec.StatRow)))
		dec.UseNumber()
		if err := dec.Decode(&row.StatRow); err != nil {
			row.StatRow = stats.StatRow{}
			return row, fmt.Errorf("decoding stat_row: %w", err)
		}
		if row.StatRow == nil {
			row.StatRow = stats.StatRow{}
		}
	}
	row.AthleteName = stats.ResolveText(row.StatRow, "Athlete Name")
	return row, nil
}

// Insert stores a raw stat row and returns its id
func (r *RecordRepository) Insert(ctx context.Context, row stats.RawStatRow, source string) (int64, error) {
	statRow := row.StatRow
	if statRow == nil {
		statRow = stats.StatRow{}
	}
	if row.AthleteName != "" && stats.ResolveText(statRow, "Athlete Name") == "" {
		cp := make(stats.StatRow, len(statRow)+1)
		for k, v := range statRow {
			cp[k] = v
		}
		cp["Athlete Name"] = row.AthleteName
		statRow = cp
	}

	data, err := json.Marshal(statRow)
	if err != nil {
		return 0, fmt.Errorf("encoding stat row: %w", err)
	}

	var id int64
	err = r.db.DB().QueryRowContext(ctx, `
		INSERT INTO raw_stat_rows (school, sport, season, stat_row, source)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
		RETURNING id
	`, row.School, row.Sport, row.Season, data, source).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("inserting raw stat row: %w", err)
	}
	return id, nil
}

// DistinctSports returns every sport present in the stat rows, sorted
func (r *RecordRepository) DistinctSports(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "sport")
}

// DistinctSeasons returns every season present in the stat rows, sorted
func (r *RecordRepository) DistinctSeasons(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, "season")
}

func (r *RecordRepository) distinct(ctx context.Context, column string) ([]string, error) {
	query := fmt.Sprintf(`SELECT DISTINCT %[1]s FROM raw_stat_rows WHERE %[1]s <> '' ORDER BY %[1]s`, column)

	rows, err := r.db.DB().QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying distinct %s: %w", column, err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scanning %s: %w", column, err)
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
