package roster

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	levelDigits = regexp.MustCompile(`(\d{1,2})`)

	// 8:30 A 10:00 AM / 10:30 A 12:00 PM / 8:00 AM - 10:40 AM
	timeRange = regexp.MustCompile(`(?i)(\d{1,2}):(\d{2})\s*(AM|PM)?\s*(?:A|TO|-)\s*(\d{1,2}):(\d{2})\s*(AM|PM)`)
)

// scheduleKey normalizes a schedule label for catalog lookup: uppercase,
// whitespace stripped, en-dash folded to hyphen.
func scheduleKey(s string) string {
	s = strings.ToUpper(s)
	s = strings.ReplaceAll(s, "–", "-")
	return strings.Join(strings.Fields(s), "")
}

// NormalizeLevel maps a raw level value to the canonical L%02d form, using
// the first 1-2 digit run found anywhere in the value. "Level 9" -> "L09".
// Values without digits pass through trimmed, empty ones become "N/A".
func NormalizeLevel(raw string) string {
	m := levelDigits.FindString(raw)
	if m == "" {
		if trimmed := strings.TrimSpace(raw); trimmed != "" {
			return trimmed
		}
		return "N/A"
	}

	n, _ := strconv.Atoi(m)
	return fmt.Sprintf("L%02d", n)
}

// NormalizeCategory maps a raw category value to one of the known audience
// categories. The filename is the lowest-priority signal: it is consulted
// only when the raw value itself matches no keyword, so an explicit category
// line always wins over whatever the file happens to be named.
func NormalizeCategory(raw, fileName string) string {
	if category, ok := matchCategory(raw); ok {
		return category
	}

	if trimmed := strings.TrimSpace(raw); trimmed != "" {
		return trimmed
	}

	if category, ok := matchCategory(fileName); ok {
		return category
	}
	return "Otra"
}

// matchCategory checks a value against the audience keyword sets
func matchCategory(value string) (string, bool) {
	src := strings.ToUpper(value)

	switch {
	case strings.Contains(src, "ADULT"):
		return "Adultos", true
	case strings.Contains(src, "KIDS"), strings.Contains(src, "NIÑ"), strings.Contains(src, "NIN"):
		return "Niños", true
	case strings.Contains(src, "YOUNG"), strings.Contains(src, "JOV"), strings.Contains(src, "TEEN"):
		return "Jóvenes", true
	}

	return "", false
}

// inferStartMeridiem fills in an omitted start AM/PM marker. This is not
// general time parsing: the institution's schedule blocks are a fixed
// catalog, and within that catalog the rule below is unambiguous.
//
//	end AM            -> start AM
//	start hour 8..11  -> start AM (covers "10:30 A 12:00 PM")
//	otherwise         -> start PM
func inferStartMeridiem(startHour int, endMeridiem string) string {
	if endMeridiem == "AM" {
		return "AM"
	}
	if startHour >= 8 && startHour <= 11 {
		return "AM"
	}
	return "PM"
}

// NormalizeSchedule maps a raw schedule value onto the canonical block
// catalog. Documents may prefix the time range with a day or group code
// ("A / 10:30 A 12:00 PM"); only the text after the last slash counts.
// Unrecognized values pass through as best-effort text.
func NormalizeSchedule(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "N/A"
	}

	candidate := raw
	if idx := strings.LastIndex(raw, "/"); idx >= 0 {
		candidate = raw[idx+1:]
	}
	candidate = strings.TrimSpace(candidate)

	m := timeRange.FindStringSubmatch(candidate)
	if m == nil {
		if block, ok := lookupBlock(candidate); ok {
			return block
		}
		return candidate
	}

	startHour, _ := strconv.Atoi(m[1])
	startMin := m[2]
	startMer := strings.ToUpper(m[3])
	endHour, _ := strconv.Atoi(m[4])
	endMin := m[5]
	endMer := strings.ToUpper(m[6])

	if startMer == "" {
		startMer = inferStartMeridiem(startHour, endMer)
	}

	built := fmt.Sprintf("%d:%s %s - %d:%s %s", startHour, startMin, startMer, endHour, endMin, endMer)
	if block, ok := lookupBlock(built); ok {
		return block
	}
	return built
}

// lookupBlock finds the canonical catalog label matching s, if any
func lookupBlock(s string) (string, bool) {
	key := scheduleKey(s)
	for _, block := range ScheduleBlocks {
		if scheduleKey(block) == key {
			return block, true
		}
	}
	return "", false
}
