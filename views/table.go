package views

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"go-attackboard/types"
)

// TableColumn describes one column of the Data tab.
type TableColumn struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Numeric bool   `json:"numeric"`
}

var TableColumns = []TableColumn{
	{ID: "date", Name: "Date"},
	{ID: "city", Name: "City"},
	{ID: "casualties", Name: "Casualties", Numeric: true},
	{ID: "weaponType", Name: "Weapon Type"},
	{ID: "targetType", Name: "Target Type"},
	{ID: "site", Name: "Site"},
}

// TableRow is the projection of a record shown in the Data tab.
type TableRow struct {
	Date       string `json:"date"`
	City       string `json:"city"`
	Casualties *int   `json:"casualties"`
	WeaponType string `json:"weaponType"`
	TargetType string `json:"targetType"`
	Site       string `json:"site"`
}

func (r TableRow) text(col string) string {
	switch col {
	case "date":
		return r.Date
	case "city":
		return r.City
	case "weaponType":
		return r.WeaponType
	case "targetType":
		return r.TargetType
	case "site":
		return r.Site
	case "casualties":
		if r.Casualties == nil {
			return ""
		}
		return strconv.Itoa(*r.Casualties)
	}
	return ""
}

// Table is the projected record set. Rows are never modified after NewTable.
type Table struct {
	rows     []TableRow
	pageSize int
}

// NewTable projects records to the table columns. The weapon column shows the
// weapon subtype, with blanks shown as "Unknown".
func NewTable(records []types.AttackRecord, pageSize int) *Table {
	if pageSize <= 0 {
		pageSize = 10
	}
	rows := make([]TableRow, 0, len(records))
	for _, r := range records {
		var casualties *int
		if n, ok := r.CasualtyCount(); ok {
			casualties = types.IntPtr(n)
		}
		rows = append(rows, TableRow{
			Date:       r.Date,
			City:       r.City,
			Casualties: casualties,
			WeaponType: r.Category(types.ColumnWeaponSubtype),
			TargetType: r.TargetType,
			Site:       r.Citation,
		})
	}
	return &Table{rows: rows, pageSize: pageSize}
}

func (t *Table) Len() int { return len(t.rows) }

// Rows returns a copy of every projected row in source order.
func (t *Table) Rows() []TableRow {
	out := make([]TableRow, len(t.rows))
	copy(out, t.rows)
	return out
}

type SortKey struct {
	Column string `json:"column"`
	Desc   bool   `json:"desc"`
}

// MaxPageSize caps the rows returned by a single Query.
const MaxPageSize = 1000

// Query selects a page of rows. Filters are keyed by column id.
type Query struct {
	Filters  map[string]string
	Sort     []SortKey
	Page     int
	PageSize int
}

type Page struct {
	Columns      []TableColumn `json:"columns"`
	Rows         []TableRow    `json:"rows"`
	Page         int           `json:"page"`
	PageSize     int           `json:"pageSize"`
	PageCount    int           `json:"pageCount"`
	TotalRows    int           `json:"totalRows"`
	FilteredRows int           `json:"filteredRows"`
}

// ParseSort reads "casualties:desc,date" into sort keys.
func ParseSort(s string) ([]SortKey, error) {
	var keys []SortKey
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		col, dir, _ := strings.Cut(part, ":")
		key := SortKey{Column: col}
		switch strings.ToLower(dir) {
		case "", "asc":
		case "desc":
			key.Desc = true
		default:
			return nil, fmt.Errorf("invalid sort direction %q for %s", dir, col)
		}
		if !knownColumn(col) {
			return nil, fmt.Errorf("unknown sort column %q", col)
		}
		keys = append(keys, key)
	}
	return keys, nil
}

func knownColumn(id string) bool {
	for _, c := range TableColumns {
		if c.ID == id {
			return true
		}
	}
	return false
}

// Query filters, sorts, then pages. A page past the end is empty.
func (t *Table) Query(q Query) (Page, error) {
	pageSize := q.PageSize
	if pageSize <= 0 {
		pageSize = t.pageSize
	}
	pageSize = min(pageSize, MaxPageSize)
	if q.Page < 0 {
		return Page{}, fmt.Errorf("page must be >= 0, got %d", q.Page)
	}

	matchers := make([]rowMatcher, 0, len(q.Filters))
	for col, expr := range q.Filters {
		if !knownColumn(col) {
			return Page{}, fmt.Errorf("unknown filter column %q", col)
		}
		m, err := newMatcher(col, expr)
		if err != nil {
			return Page{}, err
		}
		if m != nil {
			matchers = append(matchers, m)
		}
	}
	for _, k := range q.Sort {
		if !knownColumn(k.Column) {
			return Page{}, fmt.Errorf("unknown sort column %q", k.Column)
		}
	}

	filtered := make([]TableRow, 0, len(t.rows))
	for _, r := range t.rows {
		if matchAll(r, matchers) {
			filtered = append(filtered, r)
		}
	}

	if len(q.Sort) > 0 {
		sort.SliceStable(filtered, func(i, j int) bool {
			for _, k := range q.Sort {
				c := compare(filtered[i], filtered[j], k.Column)
				if c == 0 {
					continue
				}
				if k.Desc {
					return c > 0
				}
				return c < 0
			}
			return false
		})
	}

	pageCount := len(filtered) / pageSize
	if len(filtered)%pageSize != 0 {
		pageCount++
	}
	rows := []TableRow{}
	if q.Page < pageCount {
		start := q.Page * pageSize
		end := min(start+pageSize, len(filtered))
		rows = filtered[start:end]
	}

	return Page{
		Columns:      TableColumns,
		Rows:         rows,
		Page:         q.Page,
		PageSize:     pageSize,
		PageCount:    pageCount,
		TotalRows:    len(t.rows),
		FilteredRows: len(filtered),
	}, nil
}

// compare orders missing casualty counts before any known count.
func compare(a, b TableRow, col string) int {
	if col == "casualties" {
		switch {
		case a.Casualties == nil && b.Casualties == nil:
			return 0
		case a.Casualties == nil:
			return -1
		case b.Casualties == nil:
			return 1
		}
		return *a.Casualties - *b.Casualties
	}
	return strings.Compare(strings.ToLower(a.text(col)), strings.ToLower(b.text(col)))
}

type rowMatcher func(TableRow) bool

func matchAll(r TableRow, matchers []rowMatcher) bool {
	for _, m := range matchers {
		if !m(r) {
			return false
		}
	}
	return true
}

// newMatcher builds a filter. Text columns match a case-insensitive substring,
// or the whole value with a leading "=". The casualties column takes an
// optional comparison operator (>, >=, <, <=, =, !=) before a number.
func newMatcher(col, expr string) (rowMatcher, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, nil
	}

	if col != "casualties" {
		if exact, ok := strings.CutPrefix(expr, "="); ok {
			want := strings.ToLower(strings.TrimSpace(exact))
			return func(r TableRow) bool { return strings.ToLower(r.text(col)) == want }, nil
		}
		needle := strings.ToLower(expr)
		return func(r TableRow) bool { return strings.Contains(strings.ToLower(r.text(col)), needle) }, nil
	}

	op := "="
	for _, candidate := range []string{">=", "<=", "!=", ">", "<", "="} {
		if rest, ok := strings.CutPrefix(expr, candidate); ok {
			op, expr = candidate, strings.TrimSpace(rest)
			break
		}
	}
	n, err := strconv.Atoi(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid casualties filter %q: %w", expr, err)
	}

	return func(r TableRow) bool {
		if r.Casualties == nil {
			return false
		}
		v := *r.Casualties
		switch op {
		case ">=":
			return v >= n
		case "<=":
			return v <= n
		case "!=":
			return v != n
		case ">":
			return v > n
		case "<":
			return v < n
		default:
			return v == n
		}
	}, nil
}
