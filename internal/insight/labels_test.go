package insight

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"execdash/internal/domain"
)

func TestPhaseLabel(t *testing.T) {
	assert.Equal(t, "2", PhaseLabel(5, "Phase 2 - Database"))
	assert.Equal(t, "1.5", PhaseLabel(0, "PHASE1.5 Integ"))
	assert.Equal(t, "3", PhaseLabel(3, "Decommission"))
	assert.Equal(t, "0", PhaseLabel(0, "phase x"))
}

func TestPhaseDoneNames(t *testing.T) {
	s := sampleSnapshot()
	assert.Equal(t, "Phase", PhaseDoneNames(s))

	s.Phases[1].PercentDone = 100
	s.Phases[1].Summary = "Foundation   networking"
	assert.Equal(t, "Phase & Foundation", PhaseDoneNames(s))

	s = &domain.Snapshot{Phases: []domain.Phase{{Summary: "Empty", PercentDone: 100}}}
	assert.Equal(t, "None complete yet", PhaseDoneNames(s))
}

func TestStatusBadgeClass(t *testing.T) {
	assert.Equal(t, "in-progress", StatusBadgeClass("In Progress"))
	assert.Equal(t, "in-progress", StatusBadgeClass("WORK IN PROGRESS"))
	assert.Equal(t, "done", StatusBadgeClass("Done"))
	assert.Equal(t, "in-progress", StatusBadgeClass("Done-ish"))
	assert.Equal(t, "in-progress", StatusBadgeClass(""))
}

func TestClassifyPhase(t *testing.T) {
	assert.Equal(t, PhaseClasses{"complete", "done", "done"}, ClassifyPhase(domain.Phase{PercentDone: 100, Status: "Done"}))
	assert.Equal(t, PhaseClasses{"partial", "in-prog", "in-progress"}, ClassifyPhase(domain.Phase{PercentDone: 40, Status: "In Progress"}))
	assert.Equal(t, PhaseClasses{"zero", "todo", "selected"}, ClassifyPhase(domain.Phase{Status: "Selected for Development"}))
	assert.Equal(t, "backlog", ClassifyPhase(domain.Phase{Status: "Blocked"}).Pill)
}

func TestInitialsAndAvatar(t *testing.T) {
	assert.Equal(t, "FM", Initials("Fox Mulder"))
	assert.Equal(t, "JR", Initials("jean ralphio saperstein"))
	assert.Equal(t, "C", Initials("  cher "))
	assert.Equal(t, "ÉZ", Initials("émile zola"))
	assert.Equal(t, "", Initials(""))

	assert.Equal(t, "av-1", AvatarClass(0))
	assert.Equal(t, "av-7", AvatarClass(6))
	assert.Equal(t, "av-1", AvatarClass(7))
	assert.Equal(t, "av-3", AvatarClass(16))
}

func TestFormatNumberAndPercent(t *testing.T) {
	assert.Equal(t, "60", FormatNumber(60))
	assert.Equal(t, "33.3", FormatNumber(33.3))
	assert.Equal(t, 60.0, Percent(6, 10))
	assert.Equal(t, 0.0, Percent(0, 0))
	assert.Equal(t, 300.0, Percent(3, 0))
}
