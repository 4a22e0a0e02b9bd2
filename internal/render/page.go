package render

import (
	"html/template"
	"io"
	"net/url"
	"time"

	"execdash/internal/domain"
	"execdash/internal/insight"
	"execdash/internal/modal"
)

// PageData is everything the document shell needs. A nil Snapshot with an
// empty Error is the initial loading state.
type PageData struct {
	Snapshot   *domain.Snapshot
	Error      string
	Loading    bool
	Location   *time.Location
	Milestones insight.MilestoneTable

	// Modal is shown when it is open. View is the selector it was opened on
	// and is used to build the sort links.
	Modal *modal.Modal
	View  insight.View

	// RefreshSeconds, when positive, makes the browser reload the page.
	RefreshSeconds int
}

// SortHref is the page link that shows v sorted by st.
func SortHref(v insight.View, st modal.SortState) string {
	q := url.Values{}
	q.Set("view", v.Ref())
	if st.Column != "" {
		q.Set("sort", string(st.Column))
		q.Set("dir", st.Dir())
	}
	return "/?" + q.Encode()
}

type headerCell struct {
	Column    modal.Column
	Label     string
	Href      string
	Indicator string
}

type modalData struct {
	Title   string
	Count   string
	Body    template.HTML
	Headers []headerCell
}

type pageModel struct {
	PageData
	Header          template.HTML
	KPI             template.HTML
	OverallProgress template.HTML
	Phases          template.HTML
	Donut           template.HTML
	Team            template.HTML
	Risks           template.HTML
	MilestonesPanel template.HTML
	ModalView       *modalData
}

var funcMap = template.FuncMap{
	"stateDisplay": func(show bool) template.CSS {
		if show {
			return "display:block"
		}
		return "display:none"
	},
}

var pageTmpl = template.Must(template.New("page").Funcs(funcMap).Parse(tmplBase + tmplDashboard))

// Page writes the full dashboard document.
func Page(w io.Writer, d PageData) error {
	m := pageModel{PageData: d}
	if s := d.Snapshot; s != nil && d.Error == "" {
		m.Header = Header(s, d.Location)
		m.KPI = KPI(s)
		m.OverallProgress = OverallProgress(s)
		m.Phases = Phases(s)
		m.Donut = Donut(s)
		m.Team = Team(s)
		m.Risks = Risks(s)
		m.MilestonesPanel = Milestones(s, d.Milestones)
	}
	if d.Modal != nil && d.Modal.IsOpen() {
		md := &modalData{
			Title: d.Modal.Title(),
			Count: d.Modal.CountLabel(),
			Body:  template.HTML(d.Modal.RenderBody()),
		}
		for _, c := range modal.Columns {
			md.Headers = append(md.Headers, headerCell{
				Column:    c,
				Label:     c.Label(),
				Href:      SortHref(d.View, d.Modal.NextSort(c)),
				Indicator: d.Modal.Indicator(c),
			})
		}
		m.ModalView = md
	}
	return pageTmpl.ExecuteTemplate(w, "base", m)
}

// State reports which of the three top-level containers the page shows.
func (d PageData) State() string {
	switch {
	case d.Error != "":
		return "error"
	case d.Snapshot == nil:
		return "loading"
	default:
		return "ready"
	}
}
