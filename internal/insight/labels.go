package insight

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"execdash/internal/domain"
)

var phaseNumberRe = regexp.MustCompile(`(?i)phase\s*([\d.]+)`)

// avatarPalette is the number of avatar colour classes (av-1 .. av-7).
const avatarPalette = 7

// PhaseLabel extracts the number following "phase" in the summary, falling
// back to the phase's 0-based position.
func PhaseLabel(idx int, summary string) string {
	if m := phaseNumberRe.FindStringSubmatch(summary); m != nil {
		return m[1]
	}
	return strconv.Itoa(idx)
}

// PhaseDoneNames joins the short names of completed phases with " & ".
func PhaseDoneNames(s *domain.Snapshot) string {
	var names []string
	for _, p := range s.Phases {
		if p.Complete() {
			names = append(names, shortName(p.Summary))
		}
	}
	if len(names) == 0 {
		return "None complete yet"
	}
	return strings.Join(names, " & ")
}

func shortName(summary string) string {
	fields := strings.Fields(summary)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// StatusBadgeClass classifies the initiative status for the header badge.
// Unknown statuses fall back to the in-progress style.
func StatusBadgeClass(status string) string {
	lower := strings.ToLower(status)
	switch {
	case strings.Contains(lower, "progress"):
		return "in-progress"
	case lower == "done":
		return "done"
	default:
		return "in-progress"
	}
}

// PhaseClasses holds the CSS classes of one phase row.
type PhaseClasses struct {
	Percent string
	Number  string
	Pill    string
}

func ClassifyPhase(p domain.Phase) PhaseClasses {
	var c PhaseClasses
	switch {
	case p.PercentDone == 100:
		c.Percent, c.Number = "complete", "done"
	case p.PercentDone > 0:
		c.Percent, c.Number = "partial", "in-prog"
	default:
		c.Percent, c.Number = "zero", "todo"
	}
	switch strings.ToLower(p.Status) {
	case "done":
		c.Pill = "done"
	case "in progress":
		c.Pill = "in-progress"
	case "selected for development":
		c.Pill = "selected"
	default:
		c.Pill = "backlog"
	}
	return c
}

// TaskStatusClass maps a status category to its pill class.
func TaskStatusClass(category string) string {
	switch category {
	case domain.CategoryDone:
		return "done"
	case domain.CategoryInProgress:
		return "in-progress"
	default:
		return "todo"
	}
}

// Initials takes the first letter of each word of name, keeps two and
// upper-cases them.
func Initials(name string) string {
	var b strings.Builder
	n := 0
	for _, w := range strings.Fields(name) {
		if n == 2 {
			break
		}
		r, _ := utf8.DecodeRuneInString(w)
		b.WriteRune(unicode.ToUpper(r))
		n++
	}
	return b.String()
}

// AvatarClass assigns a palette class by position.
func AvatarClass(idx int) string {
	return fmt.Sprintf("av-%d", idx%avatarPalette+1)
}

// FormatNumber prints f in its shortest form: 60 rather than 60.000000.
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// Percent returns part/total*100, treating a zero total as 1.
func Percent(part, total int) float64 {
	if total == 0 {
		total = 1
	}
	return float64(part) / float64(total) * 100
}
