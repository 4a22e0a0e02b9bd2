package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"execdash/internal/domain"
)

func levels(risks []RiskItem) []Level {
	out := make([]Level, len(risks))
	for i, r := range risks {
		out[i] = r.Level
	}
	return out
}

func TestComputeRisksSample(t *testing.T) {
	s := sampleSnapshot()
	risks := ComputeRisks(s)
	require.Len(t, risks, 5)
	assert.Equal(t, []Level{LevelHigh, LevelHigh, LevelMedium, LevelMedium, LevelInfo}, levels(risks))

	assert.Equal(t, "1 phase(s) have zero progress", risks[0].Title)
	assert.Equal(t, "Phase 2 - Database. Planning should start before active phases complete.", risks[0].Detail)
	assert.Equal(t, []string{"C-1"}, keys(risks[0].RelatedTasks(s)))

	assert.Equal(t, "2 tasks are unassigned", risks[1].Title)
	assert.Equal(t, []string{"B-3", "B-6"}, keys(risks[1].RelatedTasks(s)))

	assert.Equal(t, "Phase 1 - Foundation is at 17% with 5 tasks remaining", risks[2].Title)
	assert.Equal(t, PhaseTasks(1), risks[2].Related)

	assert.Equal(t, "1 phase(s) have no child tasks", risks[3].Title)
	assert.Equal(t, "Decommission. Scope and effort TBD.", risks[3].Detail)
	assert.Len(t, risks[3].RelatedTasks(s), len(s.AllTasks))

	assert.Equal(t, "3 phase(s) missing due dates", risks[4].Title)
}

func TestZeroProgressRuleFiresOnlyWithTasks(t *testing.T) {
	cases := []struct {
		name   string
		phases []domain.Phase
		want   bool
	}{
		{"no phases", nil, false},
		{"zero with tasks", []domain.Phase{{Summary: "P", TaskCount: 3}}, true},
		{"zero without tasks", []domain.Phase{{Summary: "P", TaskCount: 0}}, false},
		{"started", []domain.Phase{{Summary: "P", TaskCount: 3, Done: 1, PercentDone: 33}}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			risks := ComputeRisks(&domain.Snapshot{Phases: tc.phases})
			fired := false
			for _, r := range risks {
				if r.Level == LevelHigh && r.Related == ZeroProgressTasks() {
					fired = true
				}
			}
			assert.Equal(t, tc.want, fired)
		})
	}
}

func TestBottleneckRule(t *testing.T) {
	due := strPtr("2025-01-01")
	count := func(phases []domain.Phase) int {
		n := 0
		for _, r := range ComputeRisks(&domain.Snapshot{Phases: phases}) {
			if r.Related.Kind == ViewPhase {
				n++
			}
		}
		return n
	}

	t.Run("no active phase", func(t *testing.T) {
		assert.Equal(t, 0, count([]domain.Phase{
			{Summary: "A", TaskCount: 20, PercentDone: 0, DueDate: due},
			{Summary: "B", TaskCount: 20, Done: 20, PercentDone: 100, DueDate: due},
		}))
	})
	t.Run("below threshold", func(t *testing.T) {
		assert.Equal(t, 0, count([]domain.Phase{
			{Summary: "A", TaskCount: 5, Done: 1, PercentDone: 20, DueDate: due},
		}))
	})
	t.Run("ties keep first", func(t *testing.T) {
		phases := []domain.Phase{
			{Summary: "A", TaskCount: 6, Done: 1, PercentDone: 17, DueDate: due},
			{Summary: "B", TaskCount: 8, Done: 3, PercentDone: 38, DueDate: due},
		}
		risks := ComputeRisks(&domain.Snapshot{Phases: phases})
		require.Len(t, risks, 1)
		assert.Equal(t, PhaseTasks(0), risks[0].Related)
		assert.Equal(t, "A is at 17% with 5 tasks remaining", risks[0].Title)
	})
}

func TestDueDateRuleVariants(t *testing.T) {
	due := strPtr("2025-01-01")
	empty := strPtr("")

	risks := ComputeRisks(&domain.Snapshot{Phases: []domain.Phase{{Summary: "A", TaskCount: 1, Done: 1, PercentDone: 100}, {Summary: "B", DueDate: empty, TaskCount: 1, Done: 1, PercentDone: 100}}})
	require.Len(t, risks, 1)
	assert.Equal(t, "No due dates set on any phase", risks[0].Title)

	risks = ComputeRisks(&domain.Snapshot{Phases: []domain.Phase{{Summary: "A", TaskCount: 1, Done: 1, PercentDone: 100, DueDate: due}}})
	assert.Empty(t, risks)

	assert.Empty(t, ComputeRisks(&domain.Snapshot{}))
	assert.Empty(t, ComputeRisks(nil))
}
