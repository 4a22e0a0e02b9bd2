package insight

import "execdash/internal/domain"

func strPtr(s string) *string { return &s }

func task(key, category, assignee string) domain.Task {
	return domain.Task{
		Key:            key,
		Summary:        "Task " + key,
		Status:         category,
		StatusCategory: category,
		Assignee:       assignee,
		Priority:       "Medium",
		WebURL:         "https://jira.example/browse/" + key,
	}
}

// sampleSnapshot has one complete, one active and one untouched phase plus an
// empty one.
func sampleSnapshot() *domain.Snapshot {
	p1 := []domain.Task{
		task("A-1", domain.CategoryDone, "Dana Scully"),
		task("A-2", domain.CategoryDone, "Fox Mulder"),
	}
	p2 := []domain.Task{
		task("B-1", domain.CategoryDone, "Dana Scully"),
		task("B-2", domain.CategoryInProgress, "Fox Mulder"),
		task("B-3", domain.CategoryNotStarted, domain.UnassignedName),
		task("B-4", domain.CategoryNotStarted, "Walter Skinner"),
		task("B-5", domain.CategoryNotStarted, "Walter Skinner"),
		task("B-6", domain.CategoryNotStarted, domain.UnassignedName),
	}
	p3 := []domain.Task{
		task("C-1", domain.CategoryNotStarted, "Fox Mulder"),
	}
	var all []domain.Task
	all = append(all, p1...)
	all = append(all, p2...)
	all = append(all, p3...)
	return &domain.Snapshot{
		Initiative: domain.Initiative{Key: "INIT-1", Project: "Cloud", Summary: "Move to AWS", Owner: "Dana Scully", Status: "In Progress"},
		FetchedAt:  "2024-03-05T14:07:00Z",
		KPI:        domain.KPI{TotalTasks: 9, Done: 3, InProgress: 1, Todo: 5, PercentDone: 33.3, PhasesTotal: 4, PhasesDone: 1},
		Phases: []domain.Phase{
			{Summary: "Phase 0 - POC", Status: "Done", Assignee: "Dana Scully", DueDate: strPtr("2024-01-31"), TaskCount: 2, Done: 2, PercentDone: 100, Tasks: p1},
			{Summary: "Phase 1 - Foundation", Status: "In Progress", Assignee: "Fox Mulder", TaskCount: 6, Done: 1, InProgress: 1, Todo: 4, PercentDone: 17, Tasks: p2},
			{Summary: "Phase 2 - Database", Status: "Backlog", Assignee: "Walter Skinner", TaskCount: 1, Todo: 1, PercentDone: 0, Tasks: p3},
			{Summary: "Decommission", Status: "Backlog", Assignee: domain.UnassignedName, TaskCount: 0, PercentDone: 0},
		},
		AllTasks: all,
		Team: []domain.TeamMember{
			{Name: "Fox Mulder", Done: 1, InProgress: 1, Todo: 1},
			{Name: "Dana Scully", Done: 2},
		},
	}
}
