package insight

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"execdash/internal/domain"
)

// ErrUnknownView is returned by ParseView for references it cannot resolve.
var ErrUnknownView = errors.New("unknown view")

type ViewKind string

const (
	ViewAll          ViewKind = "all"
	ViewStatus       ViewKind = "status"
	ViewPhase        ViewKind = "phase"
	ViewMember       ViewKind = "member"
	ViewUnassigned   ViewKind = "unassigned"
	ViewZeroProgress ViewKind = "zero-progress"
	ViewOverview     ViewKind = "overview"
	ViewRisk         ViewKind = "risk"
)

// View names a subset of the snapshot's tasks. Panels attach views to their
// clickable elements and the modal resolves them against the current snapshot.
type View struct {
	Kind  ViewKind
	Arg   string
	Index int
}

func AllTasks() View { return View{Kind: ViewAll} }
func StatusTasks(category string) View { return View{Kind: ViewStatus, Arg: category} }
func PhaseTasks(idx int) View { return View{Kind: ViewPhase, Index: idx} }
func MemberTasks(name string) View { return View{Kind: ViewMember, Arg: name} }
func UnassignedTasks() View { return View{Kind: ViewUnassigned} }
func ZeroProgressTasks() View { return View{Kind: ViewZeroProgress} }
func OverviewTasks() View { return View{Kind: ViewOverview} }
func RiskTasks(idx int) View { return View{Kind: ViewRisk, Index: idx} }

// Ref returns the stable string form used in URLs.
func (v View) Ref() string {
	switch v.Kind {
	case ViewStatus, ViewMember:
		return string(v.Kind) + ":" + v.Arg
	case ViewPhase, ViewRisk:
		return string(v.Kind) + ":" + strconv.Itoa(v.Index)
	default:
		return string(v.Kind)
	}
}

func (v View) String() string { return v.Ref() }

// ParseView resolves a reference produced by Ref.
func ParseView(ref string) (View, error) {
	kind, arg, hasArg := strings.Cut(strings.TrimSpace(ref), ":")
	switch ViewKind(kind) {
	case ViewAll, ViewUnassigned, ViewZeroProgress, ViewOverview:
		if hasArg {
			return View{}, fmt.Errorf("%w: %q takes no argument", ErrUnknownView, ref)
		}
		return View{Kind: ViewKind(kind)}, nil
	case ViewStatus:
		switch arg {
		case domain.CategoryDone, domain.CategoryInProgress, domain.CategoryNotStarted:
			return StatusTasks(arg), nil
		}
		return View{}, fmt.Errorf("%w: invalid status category %q", ErrUnknownView, arg)
	case ViewMember:
		if !hasArg || arg == "" {
			return View{}, fmt.Errorf("%w: member name required", ErrUnknownView)
		}
		return MemberTasks(arg), nil
	case ViewPhase, ViewRisk:
		idx, err := strconv.Atoi(arg)
		if err != nil || idx < 0 {
			return View{}, fmt.Errorf("%w: invalid index in %q", ErrUnknownView, ref)
		}
		return View{Kind: ViewKind(kind), Index: idx}, nil
	default:
		return View{}, fmt.Errorf("%w: %q", ErrUnknownView, ref)
	}
}

// Tasks evaluates the view against s. Indexes out of range yield no tasks.
func (v View) Tasks(s *domain.Snapshot) []domain.Task {
	if s == nil {
		return []domain.Task{}
	}
	switch v.Kind {
	case ViewAll:
		return cloneTasks(s.AllTasks)
	case ViewStatus:
		return filterTasks(s.AllTasks, func(t domain.Task) bool { return t.StatusCategory == v.Arg })
	case ViewPhase:
		if v.Index < len(s.Phases) {
			return cloneTasks(s.Phases[v.Index].Tasks)
		}
		return []domain.Task{}
	case ViewMember:
		return filterTasks(s.AllTasks, func(t domain.Task) bool { return t.Assignee == v.Arg })
	case ViewUnassigned:
		return filterTasks(s.AllTasks, func(t domain.Task) bool { return t.Assignee == domain.UnassignedName })
	case ViewZeroProgress:
		out := []domain.Task{}
		for _, p := range s.Phases {
			if p.PercentDone == 0 && p.TaskCount > 0 {
				out = append(out, p.Tasks...)
			}
		}
		return out
	case ViewOverview:
		out := []domain.Task{}
		for _, p := range s.Phases {
			out = append(out, p.Tasks...)
		}
		return out
	case ViewRisk:
		risks := ComputeRisks(s)
		if v.Index < len(risks) {
			return risks[v.Index].Related.Tasks(s)
		}
		return []domain.Task{}
	}
	return []domain.Task{}
}

// Title is the heading shown above the view's task table.
func (v View) Title(s *domain.Snapshot) string {
	switch v.Kind {
	case ViewAll:
		return "All Tasks"
	case ViewStatus:
		switch v.Arg {
		case domain.CategoryDone:
			return "Completed Tasks"
		case domain.CategoryInProgress:
			return "In Progress Tasks"
		default:
			return "Not Started Tasks"
		}
	case ViewOverview:
		return "Phase Overview"
	case ViewUnassigned:
		return "Unassigned Tasks"
	case ViewZeroProgress:
		return "Zero Progress Tasks"
	case ViewMember:
		return v.Arg
	case ViewPhase:
		if s != nil && v.Index < len(s.Phases) {
			return s.Phases[v.Index].Summary
		}
		return fmt.Sprintf("Phase %d", v.Index)
	case ViewRisk:
		if s != nil {
			if risks := ComputeRisks(s); v.Index < len(risks) {
				return risks[v.Index].Title
			}
		}
		return "Risk"
	}
	return ""
}

func filterTasks(tasks []domain.Task, keep func(domain.Task) bool) []domain.Task {
	out := []domain.Task{}
	for _, t := range tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}

func cloneTasks(tasks []domain.Task) []domain.Task {
	out := make([]domain.Task, len(tasks))
	copy(out, tasks)
	return out
}
