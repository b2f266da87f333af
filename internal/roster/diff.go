package roster

import (
	"math"
	"strings"
)

// Differ compares two roster periods. Students at the terminal level in the
// old period are graduates and are excluded from the continuity base.
type Differ struct {
	terminalLevel string
}

// NewDiffer creates a differ using the given terminal level; empty means
// DefaultTerminalLevel.
func NewDiffer(terminalLevel string) *Differ {
	if terminalLevel == "" {
		terminalLevel = DefaultTerminalLevel
	}
	return &Differ{terminalLevel: terminalLevel}
}

// Compare classifies the old period's non-graduated students as re-enrolled
// or lost, keyed by enrollment ID. Both lists are deduplicated by ID first,
// keeping the first occurrence; records without an ID are dropped.
func (d *Differ) Compare(oldStudents, newStudents []Student) *ComparisonResult {
	oldUnique := DeduplicateByID(oldStudents)
	newUnique := DeduplicateByID(newStudents)

	newIDs := make(map[string]struct{}, len(newUnique))
	for _, s := range newUnique {
		newIDs[s.ID] = struct{}{}
	}

	var eligible, lost []Student
	reenrolled := 0
	for _, s := range oldUnique {
		if d.IsGraduated(s) {
			continue
		}
		eligible = append(eligible, s)
		if _, ok := newIDs[s.ID]; ok {
			reenrolled++
		} else {
			lost = append(lost, s)
		}
	}

	result := &ComparisonResult{
		TotalOld:     len(oldUnique),
		TotalNew:     len(newUnique),
		EligibleOld:  len(eligible),
		Reenrolled:   reenrolled,
		Lost:         len(lost),
		LostStudents: lost,
	}

	if result.EligibleOld > 0 {
		result.ReenrolledPct = roundPct(reenrolled, result.EligibleOld)
		result.LostPct = roundPct(result.Lost, result.EligibleOld)
	}

	result.LostByLevel, result.LostBySchedule, result.TopLossBlock = groupLost(lost)

	return result
}

// IsGraduated reports whether the student reached the terminal level
func (d *Differ) IsGraduated(s Student) bool {
	return strings.EqualFold(s.LevelNorm, d.terminalLevel)
}

// DeduplicateByID keeps the first occurrence of each enrollment ID,
// preserving input order. Records without an ID are dropped.
func DeduplicateByID(students []Student) []Student {
	seen := make(map[string]struct{}, len(students))
	unique := make([]Student, 0, len(students))

	for _, s := range students {
		if s.ID == "" {
			continue
		}
		if _, ok := seen[s.ID]; ok {
			continue
		}
		seen[s.ID] = struct{}{}
		unique = append(unique, s)
	}

	return unique
}

// groupLost counts lost students per normalized level and schedule block and
// picks the block with the most losses
func groupLost(lost []Student) (byLevel, bySchedule map[string]int, topBlock string) {
	byLevel = make(map[string]int)
	bySchedule = make(map[string]int)

	for _, s := range lost {
		byLevel[orDefault(s.LevelNorm, "N/A")]++
		bySchedule[orDefault(s.ScheduleBlock, "N/A")]++
	}

	top := 0
	for block, count := range bySchedule {
		if count > top || (count == top && block < topBlock) {
			top = count
			topBlock = block
		}
	}

	return byLevel, bySchedule, topBlock
}

func roundPct(part, total int) int {
	return int(math.Round(float64(part) / float64(total) * 100))
}
