package modal

import (
	"errors"
	"fmt"

	"execdash/internal/domain"
	"execdash/internal/insight"
)

var ErrUnknownDirection = errors.New("unknown sort direction")

// ForView opens a modal on v's tasks and replays the sort clicks that give
// column col in direction dir ("asc" or "desc"). An empty col leaves the
// rows in snapshot order.
func ForView(s *domain.Snapshot, v insight.View, col, dir string) (*Modal, error) {
	m := New()
	m.Open(v.Title(s), v.Tasks(s))
	if col == "" {
		return m, nil
	}
	c, err := ParseColumn(col)
	if err != nil {
		return nil, err
	}
	if err := m.Sort(c); err != nil {
		return nil, err
	}
	switch dir {
	case "", "asc":
	case "desc":
		if err := m.Sort(c); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDirection, dir)
	}
	return m, nil
}
