package insight

import (
	"fmt"
	"strings"

	"execdash/internal/domain"
)

type Level string

const (
	LevelHigh   Level = "high"
	LevelMedium Level = "medium"
	LevelInfo   Level = "info"
)

// bottleneckThreshold is the minimum remaining task count for an active phase
// to be reported as the largest workload.
const bottleneckThreshold = 5

type RiskItem struct {
	Level   Level  `json:"level" enum:"high,medium,info"`
	Title   string `json:"title"`
	Detail  string `json:"detail"`
	Related View   `json:"-"`
}

// RelatedTasks evaluates the risk's task view against s.
func (r RiskItem) RelatedTasks(s *domain.Snapshot) []domain.Task {
	return r.Related.Tasks(s)
}

// ComputeRisks derives attention items from aggregate phase and task counts.
// Rules run in a fixed order and each contributes at most one item.
func ComputeRisks(s *domain.Snapshot) []RiskItem {
	risks := []RiskItem{}
	if s == nil {
		return risks
	}

	var zero []domain.Phase
	for _, p := range s.Phases {
		if p.PercentDone == 0 && p.TaskCount > 0 {
			zero = append(zero, p)
		}
	}
	if len(zero) > 0 {
		risks = append(risks, RiskItem{
			Level:   LevelHigh,
			Title:   fmt.Sprintf("%d phase(s) have zero progress", len(zero)),
			Detail:  phaseNames(zero) + ". Planning should start before active phases complete.",
			Related: ZeroProgressTasks(),
		})
	}

	unassigned := 0
	for _, t := range s.AllTasks {
		if t.Assignee == domain.UnassignedName {
			unassigned++
		}
	}
	if unassigned > 0 {
		risks = append(risks, RiskItem{
			Level:   LevelHigh,
			Title:   fmt.Sprintf("%d tasks are unassigned", unassigned),
			Detail:  "Resource allocation needed to avoid bottlenecks.",
			Related: UnassignedTasks(),
		})
	}

	if idx, remaining := largestActivePhase(s.Phases); idx >= 0 && remaining >= bottleneckThreshold {
		p := s.Phases[idx]
		risks = append(risks, RiskItem{
			Level:   LevelMedium,
			Title:   fmt.Sprintf("%s is at %s%% with %d tasks remaining", p.Summary, FormatNumber(p.PercentDone), remaining),
			Detail:  "Largest active workload. May need additional resources.",
			Related: PhaseTasks(idx),
		})
	}

	var empty []domain.Phase
	for _, p := range s.Phases {
		if p.TaskCount == 0 {
			empty = append(empty, p)
		}
	}
	if len(empty) > 0 {
		// The phases have no tasks of their own, so the whole list is shown.
		risks = append(risks, RiskItem{
			Level:   LevelMedium,
			Title:   fmt.Sprintf("%d phase(s) have no child tasks", len(empty)),
			Detail:  phaseNames(empty) + ". Scope and effort TBD.",
			Related: AllTasks(),
		})
	}

	noDue := 0
	for _, p := range s.Phases {
		if !p.HasDueDate() {
			noDue++
		}
	}
	switch {
	case len(s.Phases) > 0 && noDue == len(s.Phases):
		risks = append(risks, RiskItem{
			Level:   LevelInfo,
			Title:   "No due dates set on any phase",
			Detail:  "Consider adding milestones for tracking against timeline.",
			Related: AllTasks(),
		})
	case noDue > 0:
		risks = append(risks, RiskItem{
			Level:   LevelInfo,
			Title:   fmt.Sprintf("%d phase(s) missing due dates", noDue),
			Detail:  "Consider adding target completion dates for better tracking.",
			Related: AllTasks(),
		})
	}

	return risks
}

// largestActivePhase returns the index of the partially complete phase with the
// most remaining tasks, or -1. Ties keep the earliest phase.
func largestActivePhase(phases []domain.Phase) (int, int) {
	best, bestRemaining := -1, 0
	for i, p := range phases {
		if p.PercentDone <= 0 || p.PercentDone >= 100 {
			continue
		}
		remaining := p.TaskCount - p.Done
		if best < 0 || remaining > bestRemaining {
			best, bestRemaining = i, remaining
		}
	}
	return best, bestRemaining
}

func phaseNames(phases []domain.Phase) string {
	names := make([]string, len(phases))
	for i, p := range phases {
		names[i] = p.Summary
	}
	return strings.Join(names, ", ")
}
