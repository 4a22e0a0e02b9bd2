package modal

import (
	"fmt"
	"strings"
	"time"

	"execdash/internal/escape"
	"execdash/internal/insight"
)

const emptyRow = `<tr><td colspan="6" style="text-align:center;padding:40px;color:#484f58;">No tasks found</td></tr>`

// updatedLayouts covers RFC 3339 and the offset style Jira emits (+0000).
var updatedLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.000-0700",
	"2006-01-02T15:04:05-0700",
	"2006-01-02",
}

// FormatUpdated renders a task timestamp as "Jan 2". Unparseable values are
// returned unchanged.
func FormatUpdated(raw string) string {
	if raw == "" {
		return ""
	}
	for _, layout := range updatedLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2")
		}
	}
	return raw
}

// CountLabel is the "N tasks" caption.
func (m *Modal) CountLabel() string {
	return fmt.Sprintf("%d tasks", m.Count())
}

// RenderBody returns the table body markup for the current rows.
func (m *Modal) RenderBody() string {
	rows := m.Rows()
	if len(rows) == 0 {
		return emptyRow
	}
	var b strings.Builder
	for _, t := range rows {
		fmt.Fprintf(&b, `<tr>
<td><a class="key-link" href="%s" target="_blank" rel="noopener">%s</a></td>
<td>%s</td>
<td><span class="status-pill %s">%s</span></td>
<td>%s</td>
<td><span class="priority-pill %s">%s</span></td>
<td>%s</td>
</tr>`,
			escape.Attr(t.WebURL), escape.Text(t.Key),
			escape.Text(t.Summary),
			insight.TaskStatusClass(t.StatusCategory), escape.Text(t.Status),
			escape.Text(t.Assignee),
			escape.Attr(strings.ToLower(t.Priority)), escape.Text(t.Priority),
			escape.Text(FormatUpdated(t.Updated)),
		)
	}
	return b.String()
}
