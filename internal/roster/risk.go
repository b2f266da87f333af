package roster

// Continuity risk thresholds over a section's re-enrollment base. A section
// whose base falls under AlertThreshold needs immediate outreach.
const (
	AlertThreshold = 5
	RiskThreshold  = 8
)

// Risk states for a course section
const (
	RiskAlert = "ALERTA"
	RiskWatch = "EN RIESGO"
	RiskOK    = "OK"
)

// SectionRisk classifies a section by the number of students in its
// continuity base.
func SectionRisk(base int) string {
	switch {
	case base < AlertThreshold:
		return RiskAlert
	case base < RiskThreshold:
		return RiskWatch
	default:
		return RiskOK
	}
}
