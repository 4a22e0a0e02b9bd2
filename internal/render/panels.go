// Package render turns a snapshot into the dashboard markup. Each panel
// renderer rebuilds its whole fragment from the snapshot on every call.
package render

import (
	"fmt"
	"html/template"
	"math"
	"math/big"
	"net/url"
	"strconv"
	"strings"
	"time"

	"execdash/internal/domain"
	"execdash/internal/escape"
	"execdash/internal/insight"
)

const (
	donutRadius = 54

	colorDone       = "#238636"
	colorInProgress = "#d29922"
	colorTodo       = "#484f58"
)

// FetchedAtLayout is the "Data as of" timestamp format.
const FetchedAtLayout = "Jan 2, 2006, 03:04 PM"

// ViewHref is the page link that opens the modal on v.
func ViewHref(v insight.View) string {
	return "/?view=" + url.QueryEscape(v.Ref())
}

func href(v insight.View) string {
	return escape.Attr(ViewHref(v))
}

// FormatFetchedAt renders the snapshot time in loc. Unparseable values are
// shown as received.
func FormatFetchedAt(raw string, loc *time.Location) string {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return raw
	}
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format(FetchedAtLayout)
}

// fixed1 formats a percentage with one decimal. Exact ties round away from
// zero, not to even: 1.25 gives "1.3". The tie test runs on the exact binary
// value, so 0.15 (stored just below) still gives "0.1".
func fixed1(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	x := new(big.Float).SetPrec(256).SetFloat64(f)
	x.Mul(x, big.NewFloat(10))
	n, _ := x.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(x, new(big.Float).SetInt(n))
	frac.Abs(frac)
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return strconv.FormatFloat(f, 'f', 1, 64)
	}
	if f > 0 {
		n.Add(n, big.NewInt(1))
	} else {
		n.Sub(n, big.NewInt(1))
	}
	return strconv.FormatFloat(float64(n.Int64())/10, 'f', 1, 64)
}

func num(f float64) string {
	return insight.FormatNumber(f)
}

// neg returns -f without producing a negative zero.
func neg(f float64) float64 {
	return 0 - f
}

func Header(s *domain.Snapshot, loc *time.Location) template.HTML {
	in := s.Initiative
	var b strings.Builder
	fmt.Fprintf(&b, `<div class="header-left">
<h1 id="initiative-title">%s</h1>
<div id="initiative-subtitle" class="subtitle">%s &middot; %s &middot; Program Owner: %s</div>
</div>
<div class="header-right">
<div id="status-badge" class="status-badge %s"><span id="status-text">%s</span></div>
<div id="last-updated" class="last-updated">Data as of %s</div>
</div>`,
		escape.Text(in.Summary),
		escape.Text(in.Key), escape.Text(in.Project), escape.Text(in.Owner),
		insight.StatusBadgeClass(in.Status), escape.Text(in.Status),
		escape.Text(FormatFetchedAt(s.FetchedAt, loc)),
	)
	return template.HTML(b.String())
}

func KPI(s *domain.Snapshot) template.HTML {
	k := s.KPI
	var b strings.Builder
	card := func(color string, v insight.View, label, value, detail string) {
		fmt.Fprintf(&b, `<a class="kpi-card %s" href="%s">
<div class="kpi-label">%s</div>
<div class="kpi-value">%s</div>
<div class="kpi-detail">%s</div>
</a>
`, color, href(v), label, value, detail)
	}
	card("blue", insight.AllTasks(), "Total Tasks", fmt.Sprint(k.TotalTasks),
		fmt.Sprintf("Across %d phases", k.PhasesTotal))
	card("green", insight.StatusTasks(domain.CategoryDone), "Completed", fmt.Sprint(k.Done),
		num(k.PercentDone)+"% of all tasks")
	card("yellow", insight.StatusTasks(domain.CategoryInProgress), "In Progress", fmt.Sprint(k.InProgress),
		"Actively being worked")
	card("red", insight.StatusTasks(domain.CategoryNotStarted), "Not Started", fmt.Sprint(k.Todo),
		"Backlog / To Do")
	card("purple", insight.OverviewTasks(), "Phases Done", fmt.Sprintf("%d / %d", k.PhasesDone, k.PhasesTotal),
		escape.Text(insight.PhaseDoneNames(s)))
	return template.HTML(b.String())
}

func OverallProgress(s *domain.Snapshot) template.HTML {
	k := s.KPI
	total := k.TotalTasks
	done := insight.Percent(k.Done, total)
	ip := insight.Percent(k.InProgress, total)
	todo := insight.Percent(k.Todo, total)

	doneHref := href(insight.StatusTasks(domain.CategoryDone))
	ipHref := href(insight.StatusTasks(domain.CategoryInProgress))
	todoHref := href(insight.StatusTasks(domain.CategoryNotStarted))

	var b strings.Builder
	fmt.Fprintf(&b, `<div class="section-title"><span>Overall Program Progress</span><span class="progress-pct">%s%%</span></div>
<div class="progress-bar-container">
<a class="progress-segment done" style="width:%s%%" href="%s"></a>
<a class="progress-segment in-prog" style="width:%s%%" href="%s"></a>
<div class="progress-segment todo" style="width:%s%%"></div>
</div>
<div class="progress-labels">
<a class="progress-label" href="%s"><span class="swatch done"></span> Done (%d)</a>
<a class="progress-label" href="%s"><span class="swatch in-prog"></span> In Progress (%d)</a>
<a class="progress-label" href="%s"><span class="swatch todo"></span> To Do (%d)</a>
</div>`,
		num(k.PercentDone),
		fixed1(done), doneHref,
		fixed1(ip), ipHref,
		fixed1(todo),
		doneHref, k.Done,
		ipHref, k.InProgress,
		todoHref, k.Todo,
	)
	return template.HTML(b.String())
}

func Phases(s *domain.Snapshot) template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="section-title">Phase Breakdown</div>`)
	for i, p := range s.Phases {
		c := insight.ClassifyPhase(p)
		var doneW, ipW float64
		if p.TaskCount > 0 {
			doneW = insight.Percent(p.Done, p.TaskCount)
			ipW = insight.Percent(p.InProgress, p.TaskCount)
		}
		fmt.Fprintf(&b, `
<a class="phase-row" href="%s">
<div class="phase-number %s">%s</div>
<div class="phase-info">
<div class="phase-name">%s</div>
<div class="phase-meta">%d tasks &middot; %s</div>
</div>
<div class="phase-bar-wrap"><div class="phase-bar"><div class="done" style="width:%s%%"></div><div class="in-prog" style="width:%s%%"></div></div></div>
<div class="phase-pct %s">%s%%</div>
<div class="phase-status-pill %s">%s</div>
</a>`,
			href(insight.PhaseTasks(i)),
			c.Number, escape.Text(insight.PhaseLabel(i, p.Summary)),
			escape.Text(p.Summary),
			p.TaskCount, escape.Text(p.Assignee),
			num(doneW), num(ipW),
			c.Percent, num(p.PercentDone),
			c.Pill, escape.Text(p.Status),
		)
	}
	return template.HTML(b.String())
}

// DonutArcs returns the done, in-progress and to-do arc lengths and the
// circumference of the distribution chart.
func DonutArcs(k domain.KPI) (done, inProgress, todo, circ float64) {
	total := k.TotalTasks
	if total == 0 {
		total = 1
	}
	circ = 2 * math.Pi * donutRadius
	done = float64(k.Done) / float64(total) * circ
	inProgress = float64(k.InProgress) / float64(total) * circ
	todo = float64(k.Todo) / float64(total) * circ
	return done, inProgress, todo, circ
}

func Donut(s *domain.Snapshot) template.HTML {
	k := s.KPI
	doneArc, ipArc, todoArc, circ := DonutArcs(k)

	doneHref := href(insight.StatusTasks(domain.CategoryDone))
	ipHref := href(insight.StatusTasks(domain.CategoryInProgress))
	todoHref := href(insight.StatusTasks(domain.CategoryNotStarted))

	arc := func(b *strings.Builder, link, color string, length, offset float64) {
		fmt.Fprintf(b, `<a href="%s"><circle cx="70" cy="70" r="%d" fill="none" stroke="%s" stroke-width="16" stroke-dasharray="%s %s" stroke-dashoffset="%s"/></a>
`, link, donutRadius, color, num(length), num(circ), num(offset))
	}

	var b strings.Builder
	b.WriteString(`<div class="section-title">Task Distribution</div>
<div class="donut-wrap">
<div class="donut-chart">
<svg width="140" height="140" viewBox="0 0 140 140">
`)
	arc(&b, doneHref, colorDone, doneArc, 0)
	arc(&b, ipHref, colorInProgress, ipArc, neg(doneArc))
	arc(&b, todoHref, colorTodo, todoArc, neg(doneArc+ipArc))
	fmt.Fprintf(&b, `</svg>
<div class="donut-center"><div class="num">%d</div><div class="label">Total</div></div>
</div>
<div class="donut-legend">
<a class="legend-item" href="%s"><span class="legend-dot" style="background:%s"></span> Done <span class="legend-count">%d</span></a>
<a class="legend-item" href="%s"><span class="legend-dot" style="background:%s"></span> In Progress <span class="legend-count">%d</span></a>
<a class="legend-item" href="%s"><span class="legend-dot" style="background:%s"></span> To Do <span class="legend-count">%d</span></a>
</div>
</div>`,
		k.TotalTasks,
		doneHref, colorDone, k.Done,
		ipHref, colorInProgress, k.InProgress,
		todoHref, colorTodo, k.Todo,
	)
	return template.HTML(b.String())
}

func Team(s *domain.Snapshot) template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="section-title">Team Workload</div>`)
	for i, m := range s.Team {
		var counts strings.Builder
		if m.Done > 0 {
			fmt.Fprintf(&counts, `<span class="task-count done">%d</span>`, m.Done)
		}
		if m.InProgress > 0 {
			fmt.Fprintf(&counts, `<span class="task-count active">%d</span>`, m.InProgress)
		}
		if m.Todo > 0 {
			fmt.Fprintf(&counts, `<span class="task-count pending">%d</span>`, m.Todo)
		}
		fmt.Fprintf(&b, `
<a class="team-member" href="%s">
<div class="avatar %s">%s</div>
<div class="team-name">%s</div>
<div class="team-tasks">%s</div>
</a>`,
			href(insight.MemberTasks(m.Name)),
			insight.AvatarClass(i), escape.Text(insight.Initials(m.Name)),
			escape.Text(m.Name),
			counts.String(),
		)
	}
	return template.HTML(b.String())
}

var riskIcons = map[insight.Level]struct{ icon, label string }{
	insight.LevelHigh:   {"&#9888;", "High Risk"},
	insight.LevelMedium: {"&#9679;", "Medium Risk"},
	insight.LevelInfo:   {"&#9432;", "Note"},
}

func Risks(s *domain.Snapshot) template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="section-title">Risks &amp; Attention Items</div>`)
	for i, r := range insight.ComputeRisks(s) {
		ic := riskIcons[r.Level]
		fmt.Fprintf(&b, `
<a class="risk-item" href="%s">
<div class="risk-icon %s">%s</div>
<div class="risk-text">
<div class="risk-label %s">%s</div>
<strong>%s</strong> &mdash; %s
</div>
</a>`,
			href(insight.RiskTasks(i)),
			r.Level, ic.icon,
			r.Level, ic.label,
			escape.Text(r.Title), escape.Text(r.Detail),
		)
	}
	return template.HTML(b.String())
}

func Milestones(s *domain.Snapshot, table insight.MilestoneTable) template.HTML {
	var b strings.Builder
	b.WriteString(`<div class="section-title">Key Milestones</div>`)
	for _, ms := range insight.ComputeMilestones(s, table) {
		class, icon := "pending", "&#9675;"
		if ms.Done {
			class, icon = "done", "&#10003;"
		}
		fmt.Fprintf(&b, `
<a class="milestone-item" href="%s">
<div class="milestone-check %s">%s</div>
<div class="milestone-text %s">%s</div>
</a>`,
			href(insight.PhaseTasks(ms.PhaseIndex)),
			class, icon,
			class, escape.Text(ms.Label),
		)
	}
	return template.HTML(b.String())
}
