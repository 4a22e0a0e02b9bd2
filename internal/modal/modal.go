// Package modal implements the task detail view: a two-state modal holding a
// task list that can be sorted by column.
package modal

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"execdash/internal/domain"
)

var ErrUnknownColumn = errors.New("unknown column")

type Column string

const (
	ColumnKey      Column = "key"
	ColumnSummary  Column = "summary"
	ColumnStatus   Column = "status"
	ColumnAssignee Column = "assignee"
	ColumnPriority Column = "priority"
	ColumnUpdated  Column = "updated"
)

// Columns lists the table columns in display order.
var Columns = []Column{ColumnKey, ColumnSummary, ColumnStatus, ColumnAssignee, ColumnPriority, ColumnUpdated}

var columnLabels = map[Column]string{
	ColumnKey:      "Key",
	ColumnSummary:  "Summary",
	ColumnStatus:   "Status",
	ColumnAssignee: "Assignee",
	ColumnPriority: "Priority",
	ColumnUpdated:  "Updated",
}

func (c Column) Label() string { return columnLabels[c] }

func ParseColumn(s string) (Column, error) {
	c := Column(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := columnLabels[c]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownColumn, s)
	}
	return c, nil
}

const (
	ArrowAsc  = "▲"
	ArrowDesc = "▼"
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// SortState is the active sort. An empty Column means unsorted.
type SortState struct {
	Column Column `json:"column,omitempty"`
	Asc    bool   `json:"asc"`
}

func (s SortState) Dir() string {
	if s.Column == "" {
		return ""
	}
	if s.Asc {
		return "asc"
	}
	return "desc"
}

type Modal struct {
	state        State
	title        string
	tasks        []domain.Task
	sort         SortState
	scrollLocked bool
}

func New() *Modal {
	return &Modal{sort: SortState{Asc: true}}
}

// Open shows tasks under title, resetting any previous sort.
func (m *Modal) Open(title string, tasks []domain.Task) {
	m.title = title
	m.tasks = make([]domain.Task, len(tasks))
	copy(m.tasks, tasks)
	m.sort = SortState{Asc: true}
	m.state = Open
	m.scrollLocked = true
}

// Close hides the modal and releases the page scroll lock. It reports whether
// the modal was open.
func (m *Modal) Close() bool {
	wasOpen := m.state == Open
	m.state = Closed
	m.scrollLocked = false
	return wasOpen
}

// CloseButton handles a click on the explicit close control.
func (m *Modal) CloseButton() bool {
	if m.state != Open {
		return false
	}
	return m.Close()
}

// OverlayClick handles a click that reached the overlay. Clicks on the modal
// content bubble up with onOverlay false and are ignored.
func (m *Modal) OverlayClick(onOverlay bool) bool {
	if m.state != Open || !onOverlay {
		return false
	}
	return m.Close()
}

// KeyDown closes the modal on Escape.
func (m *Modal) KeyDown(key string) bool {
	if m.state != Open || key != "Escape" {
		return false
	}
	return m.Close()
}

func (m *Modal) State() State { return m.state }
func (m *Modal) IsOpen() bool { return m.state == Open }
func (m *Modal) ScrollLocked() bool { return m.scrollLocked }
func (m *Modal) Title() string { return m.title }
func (m *Modal) Count() int { return len(m.tasks) }
func (m *Modal) SortState() SortState { return m.sort }

// NextSort reports the sort a click on col would produce.
func (m *Modal) NextSort(col Column) SortState {
	if m.sort.Column == col {
		return SortState{Column: col, Asc: !m.sort.Asc}
	}
	return SortState{Column: col, Asc: true}
}

// Sort toggles the direction when col is already active, otherwise sorts
// ascending on col.
func (m *Modal) Sort(col Column) error {
	if _, ok := columnLabels[col]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownColumn, col)
	}
	m.sort = m.NextSort(col)
	return nil
}

// Indicator returns the arrow shown next to col's header.
func (m *Modal) Indicator(col Column) string {
	if m.sort.Column == "" || m.sort.Column != col {
		return ""
	}
	if m.sort.Asc {
		return ArrowAsc
	}
	return ArrowDesc
}

// Rows returns the tasks in the current sort order. Sorting always starts
// from the order the modal was opened with and is stable.
func (m *Modal) Rows() []domain.Task {
	rows := make([]domain.Task, len(m.tasks))
	copy(rows, m.tasks)
	col, asc := m.sort.Column, m.sort.Asc
	if col == "" {
		return rows
	}
	sort.SliceStable(rows, func(i, j int) bool {
		a, b := sortKey(rows[i], col), sortKey(rows[j], col)
		if asc {
			return a < b
		}
		return a > b
	})
	return rows
}

func sortKey(t domain.Task, col Column) string {
	switch col {
	case ColumnUpdated:
		return t.Updated
	case ColumnKey:
		return strings.ToLower(t.Key)
	case ColumnSummary:
		return strings.ToLower(t.Summary)
	case ColumnStatus:
		return strings.ToLower(t.Status)
	case ColumnAssignee:
		return strings.ToLower(t.Assignee)
	case ColumnPriority:
		return strings.ToLower(t.Priority)
	}
	return ""
}
