package render

import (
	"bytes"
	"math"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"execdash/internal/domain"
	"execdash/internal/insight"
	"execdash/internal/modal"
)

func fixture() *domain.Snapshot {
	tasks := []domain.Task{
		{Key: "P-1", Summary: "Design", Status: "Done", StatusCategory: domain.CategoryDone, Assignee: "Ann Lee"},
		{Key: "P-2", Summary: "Build <core>", Status: "In Progress", StatusCategory: domain.CategoryInProgress, Assignee: `Bob "B" O'Hara`},
		{Key: "P-3", Summary: "Ship", Status: "To Do", StatusCategory: domain.CategoryNotStarted, Assignee: domain.UnassignedName},
	}
	return &domain.Snapshot{
		Initiative: domain.Initiative{Key: "MIG-1", Project: "Cloud", Summary: "Move <all> to AWS", Owner: "Ann Lee", Status: "In Progress"},
		FetchedAt:  "2024-03-05T14:07:09.123456+00:00",
		KPI:        domain.KPI{TotalTasks: 10, Done: 6, InProgress: 2, Todo: 2, PercentDone: 60, PhasesTotal: 2, PhasesDone: 1},
		Phases: []domain.Phase{
			{Summary: "Phase 0 - POC", Status: "Done", Assignee: "Ann Lee", TaskCount: 1, Done: 1, PercentDone: 100, Tasks: tasks[:1]},
			{Summary: "Phase 1 <Build>", Status: "In Progress", Assignee: "Bob", TaskCount: 3, Done: 1, InProgress: 1, Todo: 1, PercentDone: 33.3, Tasks: tasks},
		},
		AllTasks: tasks,
		Team: []domain.TeamMember{
			{Name: "Ann Lee", Done: 1},
			{Name: `Bob "B" O'Hara`, InProgress: 1},
		},
	}
}

func parse(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<!DOCTYPE html><html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)
	return doc
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func byClass(n *html.Node, class string) []*html.Node {
	return findAll(n, func(n *html.Node) bool { return hasClass(n, class) })
}

func byID(t *testing.T, n *html.Node, id string) *html.Node {
	t.Helper()
	got := findAll(n, func(n *html.Node) bool { return attr(n, "id") == id })
	require.Len(t, got, 1, id)
	return got[0]
}

func text(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return strings.TrimSpace(b.String())
}

func texts(nodes []*html.Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = text(n)
	}
	return out
}

func TestHeader(t *testing.T) {
	doc := parse(t, string(Header(fixture(), time.UTC)))
	assert.Equal(t, "Move <all> to AWS", text(byID(t, doc, "initiative-title")))
	assert.Equal(t, "MIG-1 · Cloud · Program Owner: Ann Lee", text(byID(t, doc, "initiative-subtitle")))
	assert.Equal(t, "status-badge in-progress", attr(byID(t, doc, "status-badge"), "class"))
	assert.Equal(t, "Data as of Mar 5, 2024, 02:07 PM", text(byID(t, doc, "last-updated")))
}

func TestFormatFetchedAt(t *testing.T) {
	assert.Equal(t, "Jan 9, 2024, 09:05 AM", FormatFetchedAt("2024-01-09T09:05:00Z", time.UTC))
	assert.Equal(t, "not a date", FormatFetchedAt("not a date", time.UTC))
}

func TestKPI(t *testing.T) {
	doc := parse(t, string(KPI(fixture())))
	cards := byClass(doc, "kpi-card")
	require.Len(t, cards, 5)
	assert.Equal(t, []string{"10", "6", "2", "2", "1 / 2"}, texts(byClass(doc, "kpi-value")))
	details := texts(byClass(doc, "kpi-detail"))
	assert.Equal(t, "Across 2 phases", details[0])
	assert.Equal(t, "60% of all tasks", details[1])
	assert.Equal(t, "Phase", details[4])

	assert.Equal(t, "/?view=all", attr(cards[0], "href"))
	assert.Equal(t, "/?view=status%3Adone", attr(cards[1], "href"))
	assert.Equal(t, "/?view=status%3Aindeterminate", attr(cards[2], "href"))
	assert.Equal(t, "/?view=status%3Anew", attr(cards[3], "href"))
	assert.Equal(t, "/?view=overview", attr(cards[4], "href"))
}

func TestOverallProgress(t *testing.T) {
	doc := parse(t, string(OverallProgress(fixture())))
	segs := byClass(doc, "progress-segment")
	require.Len(t, segs, 3)
	assert.Equal(t, "width:60.0%", attr(segs[0], "style"))
	assert.Equal(t, "width:20.0%", attr(segs[1], "style"))
	assert.Equal(t, "width:20.0%", attr(segs[2], "style"))
	assert.Equal(t, "div", segs[2].Data, "the to-do segment is not a link")
	assert.Equal(t, "60%", text(byClass(doc, "progress-pct")[0]))

	s := fixture()
	s.KPI = domain.KPI{}
	doc = parse(t, string(OverallProgress(s)))
	assert.Equal(t, "width:0.0%", attr(byClass(doc, "progress-segment")[0], "style"))
}

func TestFixed1RoundsTiesAwayFromZero(t *testing.T) {
	for in, want := range map[float64]string{
		1.25:  "1.3",
		0.25:  "0.3",
		0.75:  "0.8",
		-1.25: "-1.3",
		0.15:  "0.1",
		12.35: "12.3",
		60:    "60.0",
		33.33: "33.3",
		0:     "0.0",
	} {
		assert.Equal(t, want, fixed1(in), "%v", in)
	}
}

func TestPhases(t *testing.T) {
	out := string(Phases(fixture()))
	assert.NotContains(t, out, "<Build>")
	doc := parse(t, out)
	rows := byClass(doc, "phase-row")
	require.Len(t, rows, 2)
	assert.Equal(t, "/?view=phase%3A1", attr(rows[1], "href"))
	assert.Equal(t, []string{"0", "1"}, texts(byClass(doc, "phase-number")))
	assert.Equal(t, "Phase 1 <Build>", text(byClass(doc, "phase-name")[1]))
	assert.Equal(t, "3 tasks · Bob", text(byClass(doc, "phase-meta")[1]))
	assert.Equal(t, []string{"100%", "33.3%"}, texts(byClass(doc, "phase-pct")))
	assert.True(t, hasClass(byClass(doc, "phase-pct")[0], "complete"))
	assert.True(t, hasClass(byClass(doc, "phase-status-pill")[1], "in-progress"))
}

func dashArray(t *testing.T, n *html.Node) (float64, float64) {
	t.Helper()
	parts := strings.Fields(attr(n, "stroke-dasharray"))
	require.Len(t, parts, 2)
	a, err := strconv.ParseFloat(parts[0], 64)
	require.NoError(t, err)
	c, err := strconv.ParseFloat(parts[1], 64)
	require.NoError(t, err)
	return a, c
}

func TestDonutArcs(t *testing.T) {
	doc := parse(t, string(Donut(fixture())))
	circles := findAll(doc, func(n *html.Node) bool { return n.Data == "circle" })
	require.Len(t, circles, 3)

	circ := 2 * math.Pi * 54
	var arcs []float64
	for _, c := range circles {
		a, total := dashArray(t, c)
		assert.InDelta(t, circ, total, 1e-9)
		arcs = append(arcs, a)
	}
	assert.InDelta(t, circ*0.6, arcs[0], 1e-9)
	assert.InDelta(t, circ*0.2, arcs[1], 1e-9)
	assert.InDelta(t, circ*0.2, arcs[2], 1e-9)
	assert.InDelta(t, circ, arcs[0]+arcs[1]+arcs[2], 1e-9)

	off1, err := strconv.ParseFloat(attr(circles[1], "stroke-dashoffset"), 64)
	require.NoError(t, err)
	off2, err := strconv.ParseFloat(attr(circles[2], "stroke-dashoffset"), 64)
	require.NoError(t, err)
	assert.Equal(t, "0", attr(circles[0], "stroke-dashoffset"))
	assert.InDelta(t, -arcs[0], off1, 1e-9)
	assert.InDelta(t, -(arcs[0] + arcs[1]), off2, 1e-9)

	assert.Equal(t, []string{"6", "2", "2"}, texts(byClass(doc, "legend-count")))
	assert.Equal(t, "10", text(byClass(doc, "num")[0]))
}

func TestDonutEmpty(t *testing.T) {
	s := fixture()
	s.KPI = domain.KPI{}
	doc := parse(t, string(Donut(s)))
	for _, c := range findAll(doc, func(n *html.Node) bool { return n.Data == "circle" }) {
		a, _ := dashArray(t, c)
		assert.Zero(t, a)
		assert.Equal(t, "0", attr(c, "stroke-dashoffset"))
	}
}

func TestTeam(t *testing.T) {
	out := string(Team(fixture()))
	doc := parse(t, out)
	members := byClass(doc, "team-member")
	require.Len(t, members, 2)
	assert.Equal(t, []string{"AL", `B"`}, texts(byClass(doc, "avatar")))
	assert.True(t, hasClass(byClass(doc, "avatar")[1], "av-2"))
	assert.Equal(t, `Bob "B" O'Hara`, text(byClass(doc, "team-name")[1]))
	assert.Equal(t, "/?view=member%3ABob+%22B%22+O%27Hara", attr(members[1], "href"))
	assert.Len(t, byClass(members[0], "task-count"), 1)
	assert.True(t, hasClass(byClass(members[1], "task-count")[0], "active"))
}

func TestRisks(t *testing.T) {
	s := fixture()
	doc := parse(t, string(Risks(s)))
	items := byClass(doc, "risk-item")
	risks := insight.ComputeRisks(s)
	require.Len(t, items, len(risks))
	require.NotEmpty(t, risks)
	for i, n := range items {
		assert.Equal(t, ViewHref(insight.RiskTasks(i)), attr(n, "href"))
		assert.True(t, hasClass(byClass(n, "risk-icon")[0], string(risks[i].Level)))
	}
	assert.Equal(t, "High Risk", text(byClass(doc, "risk-label")[0]))
}

func TestMilestones(t *testing.T) {
	doc := parse(t, string(Milestones(fixture(), insight.DefaultMilestones)))
	items := byClass(doc, "milestone-item")
	require.Len(t, items, 2)
	assert.Equal(t, "POC validation complete", text(byClass(doc, "milestone-text")[0]))
	assert.True(t, hasClass(byClass(doc, "milestone-check")[0], "done"))
	assert.True(t, hasClass(byClass(doc, "milestone-check")[1], "pending"))
	assert.Equal(t, "/?view=phase%3A1", attr(items[1], "href"))
}

func renderPage(t *testing.T, d PageData) *html.Node {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, Page(&buf, d))
	doc, err := html.Parse(&buf)
	require.NoError(t, err)
	return doc
}

func TestPageStates(t *testing.T) {
	doc := renderPage(t, PageData{Loading: true})
	assert.Equal(t, "display:block", attr(byID(t, doc, "loading-state"), "style"))
	assert.Equal(t, "display:none", attr(byID(t, doc, "error-state"), "style"))
	assert.Equal(t, "display:none", attr(byID(t, doc, "main-content"), "style"))
	assert.True(t, hasClass(byID(t, doc, "refresh-btn"), "loading"))

	doc = renderPage(t, PageData{Error: "HTTP <502>", Snapshot: fixture()})
	assert.Equal(t, "display:block", attr(byID(t, doc, "error-state"), "style"))
	assert.Equal(t, "display:none", attr(byID(t, doc, "main-content"), "style"))
	assert.Equal(t, "HTTP <502>", text(byID(t, doc, "error-message")))
	assert.Empty(t, byClass(doc, "kpi-card"))
	assert.False(t, hasClass(byID(t, doc, "refresh-btn"), "loading"))

	doc = renderPage(t, PageData{Snapshot: fixture(), Location: time.UTC})
	assert.Equal(t, "display:block", attr(byID(t, doc, "main-content"), "style"))
	assert.Len(t, byClass(byID(t, doc, "kpi-row"), "kpi-card"), 5)
	for _, id := range []string{"overall-progress", "phases-panel", "donut-panel", "team-panel", "risks-panel", "milestones-panel"} {
		assert.NotEmpty(t, text(byID(t, doc, id)), id)
	}
	assert.False(t, hasClass(byID(t, doc, "modal-overlay"), "active"))
}

func TestPageModal(t *testing.T) {
	s := fixture()
	v := insight.AllTasks()
	m := modal.New()
	m.Open(v.Title(s), v.Tasks(s))
	require.NoError(t, m.Sort(modal.ColumnKey))

	doc := renderPage(t, PageData{Snapshot: s, Modal: m, View: v})
	assert.True(t, hasClass(byID(t, doc, "modal-overlay"), "active"))
	assert.Equal(t, "All Tasks", text(byID(t, doc, "modal-title")))
	assert.Equal(t, "3 tasks", text(byID(t, doc, "modal-count")))
	assert.Len(t, findAll(byID(t, doc, "modal-tbody"), func(n *html.Node) bool { return n.Data == "tr" }), 3)

	headers := findAll(doc, func(n *html.Node) bool { return n.Data == "th" && attr(n, "data-sort") != "" })
	require.Len(t, headers, len(modal.Columns))
	assert.Equal(t, "key", attr(headers[0], "data-sort"))
	assert.Equal(t, modal.ArrowAsc, text(byClass(headers[0], "sort-arrow")[0]))
	assert.Empty(t, text(byClass(headers[1], "sort-arrow")[0]))

	link := findAll(headers[0], func(n *html.Node) bool { return n.Data == "a" })[0]
	assert.Equal(t, "/?dir=desc&sort=key&view=all", attr(link, "href"))
}

func TestSortHref(t *testing.T) {
	assert.Equal(t, "/?view=phase%3A2", SortHref(insight.PhaseTasks(2), modal.SortState{Asc: true}))
	assert.Equal(t, "/?dir=asc&sort=summary&view=member%3AAnn+Lee",
		SortHref(insight.MemberTasks("Ann Lee"), modal.SortState{Column: modal.ColumnSummary, Asc: true}))
}
