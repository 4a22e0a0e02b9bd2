package insight

import (
	"strings"

	"execdash/internal/domain"
)

// MilestoneRule maps a phase to a milestone label when Match accepts the
// phase's lowercase summary.
type MilestoneRule struct {
	Label string
	Match func(lowerSummary string) bool
}

// MilestoneTable is evaluated in order; the first matching rule wins, so
// overlapping keyword sets must be listed most specific first.
type MilestoneTable []MilestoneRule

// KeywordRule matches when the summary contains any of the keywords.
func KeywordRule(label string, keywords ...string) MilestoneRule {
	lowered := make([]string, len(keywords))
	for i, k := range keywords {
		lowered[i] = strings.ToLower(k)
	}
	return MilestoneRule{
		Label: label,
		Match: func(summary string) bool {
			for _, k := range lowered {
				if k != "" && strings.Contains(summary, k) {
					return true
				}
			}
			return false
		},
	}
}

// DefaultMilestones is the built-in table for cloud migration programs.
var DefaultMilestones = MilestoneTable{
	KeywordRule("POC validation complete", "poc", "validation"),
	KeywordRule("AWS Foundation & Networking deployed", "foundation", "planning", "networking", "sso", "organization"),
	KeywordRule("Infrastructure as Code modules complete", "infrastructure", "terraform", "iac"),
	KeywordRule("Monitoring & alerting fully operational", "monitoring", "log"),
	KeywordRule("Database migration to RDS complete", "database", "migration", "rds"),
	KeywordRule("App modernization & CI/CD pipelines deployed", "modernization", "ci/cd", "pipeline", "containeriz"),
	KeywordRule("Integ environment migrated to AWS", "integ"),
	KeywordRule("Production cutover executed", "cutover", "full migration", "testing"),
	KeywordRule("Legacy infrastructure decommissioned", "optimization", "decommission"),
}

type MilestoneItem struct {
	Label      string `json:"label"`
	Done       bool   `json:"done"`
	Phase      string `json:"phase"`
	PhaseIndex int    `json:"phaseIndex"`
}

// Label returns the milestone label for a phase summary.
func (t MilestoneTable) Label(summary string) string {
	lower := strings.ToLower(summary)
	for _, rule := range t {
		if rule.Match != nil && rule.Match(lower) {
			return rule.Label
		}
	}
	return summary + " complete"
}

// ComputeMilestones returns one item per phase in phase order.
func ComputeMilestones(s *domain.Snapshot, table MilestoneTable) []MilestoneItem {
	if s == nil {
		return []MilestoneItem{}
	}
	items := make([]MilestoneItem, 0, len(s.Phases))
	for i, p := range s.Phases {
		items = append(items, MilestoneItem{
			Label:      table.Label(p.Summary),
			Done:       p.Complete(),
			Phase:      p.Summary,
			PhaseIndex: i,
		})
	}
	return items
}
