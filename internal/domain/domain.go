package domain

// Status categories reported by the upstream for every task.
const (
	CategoryDone       = "done"
	CategoryInProgress = "indeterminate"
	CategoryNotStarted = "new"
	UnassignedName     = "Unassigned"
)

type Initiative struct {
	Key     string `json:"key"`
	Project string `json:"project"`
	Summary string `json:"summary"`
	Owner   string `json:"owner"`
	Status  string `json:"status"`
	WebURL  string `json:"webUrl,omitempty"`
}

type KPI struct {
	TotalTasks  int     `json:"totalTasks"`
	Done        int     `json:"done"`
	InProgress  int     `json:"inProgress"`
	Todo        int     `json:"todo"`
	PercentDone float64 `json:"percentDone"`
	PhasesTotal int     `json:"phasesTotal"`
	PhasesDone  int     `json:"phasesDone"`
}

type Task struct {
	Key            string `json:"key"`
	Summary        string `json:"summary"`
	Status         string `json:"status"`
	StatusCategory string `json:"statusCategory" enum:"done,indeterminate,new"`
	Assignee       string `json:"assignee"`
	Priority       string `json:"priority"`
	Updated        string `json:"updated,omitempty"`
	WebURL         string `json:"webUrl"`
}

type Phase struct {
	Key         string  `json:"key,omitempty"`
	Summary     string  `json:"summary"`
	Status      string  `json:"status"`
	Assignee    string  `json:"assignee"`
	DueDate     *string `json:"dueDate,omitempty"`
	TaskCount   int     `json:"taskCount"`
	Done        int     `json:"done"`
	InProgress  int     `json:"inProgress"`
	Todo        int     `json:"todo"`
	PercentDone float64 `json:"percentDone"`
	Tasks       []Task  `json:"tasks"`
}

// Complete reports whether the phase counts as a finished milestone.
// A phase without tasks is never complete, whatever percentDone says.
func (p Phase) Complete() bool {
	return p.PercentDone == 100 && p.TaskCount > 0
}

// HasDueDate reports whether a non-empty due date is set.
func (p Phase) HasDueDate() bool {
	return p.DueDate != nil && *p.DueDate != ""
}

type TeamMember struct {
	Name       string `json:"name"`
	Done       int    `json:"done"`
	InProgress int    `json:"inProgress"`
	Todo       int    `json:"todo"`
}

// Snapshot is one fetched dashboard payload. It is treated as immutable once
// decoded and replaced wholesale on refresh.
type Snapshot struct {
	Initiative Initiative   `json:"initiative"`
	FetchedAt  string       `json:"fetchedAt"`
	KPI        KPI          `json:"kpi"`
	Phases     []Phase      `json:"phases"`
	AllTasks   []Task       `json:"allTasks"`
	Team       []TeamMember `json:"team"`
	Error      string       `json:"error,omitempty"`
}
