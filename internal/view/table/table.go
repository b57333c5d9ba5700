// Package table implements the shared data-table view model: free-text
// search, page-size selection, and pagination over an arbitrary in-memory
// record list. It is a pure function of its inputs plus the local UI state
// (search text, page, page size) and performs no I/O.
package table

import (
	"fmt"
	"reflect"
	"strings"
)

// Column describes one rendered column. Value projects an item into its cell
// text, keeping the table independent of the item shape.
type Column[T any] struct {
	Header string
	Value  func(T) string
}

// PageSizes is the fixed option set offered by the page-size selector.
var PageSizes = []int{5, 10, 25, 50}

func validPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

type Table[T any] struct {
	columns  []Column[T]
	data     []T
	search   string
	page     int
	pageSize int
}

func New[T any](columns []Column[T], pageSize int) *Table[T] {
	if !validPageSize(pageSize) {
		pageSize = PageSizes[1]
	}
	return &Table[T]{
		columns:  columns,
		page:     1,
		pageSize: pageSize,
	}
}

// SetData swaps the backing list. The current page is kept but clamped so a
// shrinking result set never leaves the table beyond the last page.
func (t *Table[T]) SetData(data []T) {
	t.data = data
	if total := t.TotalPages(); t.page > total {
		t.page = total
	}
}

// SetSearch re-filters synchronously on every change and resets to page 1.
// Data is in-memory and small, so no debounce is applied.
func (t *Table[T]) SetSearch(q string) {
	t.search = q
	t.page = 1
}

func (t *Table[T]) SetPageSize(n int) error {
	if !validPageSize(n) {
		return fmt.Errorf("page size %d not in %v", n, PageSizes)
	}
	t.pageSize = n
	t.page = 1
	return nil
}

func (t *Table[T]) Search() string { return t.search }

func (t *Table[T]) PageSize() int { return t.pageSize }

func (t *Table[T]) Page() int { return t.page }

// filtered runs the case-insensitive substring scan over the string
// representation of every field value of every item. Full scan, not indexed.
func (t *Table[T]) filtered() []T {
	if t.search == "" {
		return t.data
	}
	needle := strings.ToLower(t.search)

	var out []T
	for _, item := range t.data {
		if strings.Contains(searchText(item), needle) {
			out = append(out, item)
		}
	}
	return out
}

func searchText(item any) string {
	v := reflect.ValueOf(item)
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return strings.ToLower(fmt.Sprint(item))
	}

	var b strings.Builder
	for i := 0; i < v.NumField(); i++ {
		if !v.Type().Field(i).IsExported() {
			continue
		}
		f := v.Field(i)
		for f.Kind() == reflect.Pointer {
			if f.IsNil() {
				break
			}
			f = f.Elem()
		}
		if f.Kind() == reflect.Pointer {
			continue
		}
		b.WriteString(fmt.Sprint(f.Interface()))
		b.WriteByte(' ')
	}
	return strings.ToLower(b.String())
}

func (t *Table[T]) TotalPages() int {
	n := len(t.filtered())
	if n == 0 {
		return 1
	}
	return (n + t.pageSize - 1) / t.pageSize
}

// Rows returns only the current page's slice of the filtered set.
func (t *Table[T]) Rows() []T {
	filtered := t.filtered()
	start := (t.page - 1) * t.pageSize
	if start >= len(filtered) {
		return nil
	}
	end := start + t.pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end]
}

func (t *Table[T]) Empty() bool {
	return len(t.filtered()) == 0
}

func (t *Table[T]) HasPrev() bool { return t.page > 1 }
func (t *Table[T]) HasNext() bool { return t.page < t.TotalPages() }

// Navigation is bounded: at the edges these are no-ops, never wraparound.
func (t *Table[T]) NextPage() {
	if t.HasNext() {
		t.page++
	}
}

func (t *Table[T]) PrevPage() {
	if t.HasPrev() {
		t.page--
	}
}

func (t *Table[T]) FirstPage() { t.page = 1 }

func (t *Table[T]) LastPage() { t.page = t.TotalPages() }

func (t *Table[T]) Headers() []string {
	headers := make([]string, len(t.columns))
	for i, col := range t.columns {
		headers[i] = col.Header
	}
	return headers
}

// Cells renders one item through every column, in column order.
func (t *Table[T]) Cells(item T) []string {
	cells := make([]string, len(t.columns))
	for i, col := range t.columns {
		cells[i] = col.Value(item)
	}
	return cells
}

// Summary is the human-readable "showing From to To of Total" range for the
// current page of the filtered set.
type Summary struct {
	From  int
	To    int
	Total int
}

func (t *Table[T]) Summary() Summary {
	total := len(t.filtered())
	if total == 0 {
		return Summary{}
	}
	from := (t.page-1)*t.pageSize + 1
	to := t.page * t.pageSize
	if to > total {
		to = total
	}
	return Summary{From: from, To: to, Total: total}
}

func (s Summary) String() string {
	return fmt.Sprintf("showing %d to %d of %d", s.From, s.To, s.Total)
}
