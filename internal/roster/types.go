package roster

// Student is one parsed roster row. ID is the enrollment identifier
// (cédula) and is the matching key across periods; everything else is
// descriptive. Raw fields keep the source text of the section metadata the
// row inherited, normalized fields are what comparisons and groupings use.
type Student struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	Category    string `json:"category"`
	CategoryRaw string `json:"category_raw,omitempty"`

	Level     string `json:"level"`
	LevelNorm string `json:"level_norm"`

	Schedule      string `json:"schedule"`
	ScheduleBlock string `json:"schedule_block"`

	Salon    string `json:"salon,omitempty"`
	CourseID string `json:"course_id,omitempty"`
}

// SectionMeta is the section metadata in effect while scanning a document.
// A metadata line overwrites its field; every student row parsed afterwards
// inherits the current values until the next metadata line. One instance
// lives per document parse and is never shared.
type SectionMeta struct {
	CategoryRaw string
	Category    string

	LevelRaw  string
	LevelNorm string

	ScheduleRaw   string
	ScheduleBlock string

	SalonRaw string
	Salon    string
	CourseID string
}

// ComparisonResult is the outcome of comparing two roster periods.
// EligibleOld excludes graduated students; Reenrolled + Lost == EligibleOld.
type ComparisonResult struct {
	TotalOld    int `json:"total_old"`
	TotalNew    int `json:"total_new"`
	EligibleOld int `json:"eligible_old"`

	Reenrolled    int `json:"reenrolled"`
	ReenrolledPct int `json:"reenrolled_pct"`
	Lost          int `json:"lost"`
	LostPct       int `json:"lost_pct"`

	LostStudents []Student `json:"lost_students"`

	LostByLevel    map[string]int `json:"lost_by_level"`
	LostBySchedule map[string]int `json:"lost_by_schedule"`
	TopLossBlock   string         `json:"top_loss_block,omitempty"`
}

// DefaultTerminalLevel is the institution's final level; students at it are
// graduates and are not expected to re-enroll.
const DefaultTerminalLevel = "L19"

// ScheduleBlocks is the institution's closed catalog of canonical schedule
// labels. Normalization maps recognized time ranges onto these; anything
// outside the catalog passes through as best-effort text.
var ScheduleBlocks = []string{
	"8:30 AM - 10:00 AM",
	"10:30 AM - 12:00 PM",
	"1:00 PM - 2:30 PM",
	"2:45 PM - 4:15 PM",
	"4:30 PM - 6:00 PM",
	"6:15 PM - 7:45 PM",
	"8:00 AM - 10:40 AM",
	"10:50 AM - 1:30 PM",
	"2:30 PM - 5:10 PM",
}
