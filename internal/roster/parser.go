package roster

import "strings"

// Parser turns a document's ordered logical lines into student records.
// Parsing never fails: unrecognized lines are dropped and malformed metadata
// degrades to defaults, so an unreadable document yields an empty list.
type Parser struct{}

// NewParser creates a new roster parser
func NewParser() *Parser {
	return &Parser{}
}

// Parse scans the lines of one document in order, carrying section metadata
// forward, and returns the student rows it recognizes. fileName is used only
// to seed the category when no explicit category line appears.
func (p *Parser) Parse(lines []string, fileName string) []Student {
	meta := SectionMeta{
		Category: NormalizeCategory("", fileName),
	}

	var students []Student
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		// Salon lines are noise rows, but they carry the room and course
		// ID for the section that follows; capture before skipping.
		if salonPattern.MatchString(line) {
			meta.SalonRaw = line
			if m := salonCourse.FindStringSubmatch(line); m != nil {
				meta.Salon = m[1]
				meta.CourseID = m[2]
			}
		}

		if shouldSkipLine(line) {
			continue
		}

		p.applyMetadata(line, &meta, fileName)

		if s, ok := p.parseStudentRow(line, &meta); ok {
			students = append(students, s)
		}
	}

	return students
}

// applyMetadata overwrites the section metadata fields a line sets, if any
func (p *Parser) applyMetadata(line string, meta *SectionMeta, fileName string) {
	if raw, ok := metadataLabel(line, "Categoría:", "Categoria:"); ok {
		meta.CategoryRaw = raw
		meta.Category = NormalizeCategory(raw, fileName)
		return
	}

	if raw, ok := metadataLabel(line, "Nivel:"); ok {
		meta.LevelRaw = raw
		meta.LevelNorm = NormalizeLevel(raw)
		return
	}

	if raw, ok := metadataLabel(line, "Horario:"); ok {
		meta.ScheduleRaw = raw
		meta.ScheduleBlock = NormalizeSchedule(raw)
	}
}

// parseStudentRow recognizes a student row and builds its record from the
// row tokens plus the current section metadata. A row is a sequence number,
// a 6-12 digit identifier, and the remaining tokens: name tokens up to the
// first token containing "@", then optionally an email and a phone.
func (p *Parser) parseStudentRow(line string, meta *SectionMeta) (Student, bool) {
	m := studentRowPattern.FindStringSubmatch(line)
	if m == nil {
		return Student{}, false
	}

	id := m[2]
	tokens := strings.Fields(m[3])

	email := ""
	emailIdx := -1
	for i, token := range tokens {
		if strings.Contains(token, "@") {
			email = token
			emailIdx = i
			break
		}
	}

	nameTokens := tokens
	var afterTokens []string
	if emailIdx >= 0 {
		nameTokens = tokens[:emailIdx]
		afterTokens = tokens[emailIdx+1:]
	}

	name := strings.Join(nameTokens, " ")
	if name == "" {
		return Student{}, false
	}

	phone := ""
	if m := phonePattern.FindString(strings.Join(afterTokens, " ")); m != "" {
		phone = nonPhoneChar.ReplaceAllString(m, "")
	}

	return Student{
		ID:    id,
		Name:  name,
		Email: email,
		Phone: phone,

		Category:    orDefault(meta.Category, "Otra"),
		CategoryRaw: meta.CategoryRaw,

		Level:     orDefault(meta.LevelRaw, "N/A"),
		LevelNorm: orDefault(meta.LevelNorm, "N/A"),

		Schedule:      orDefault(meta.ScheduleRaw, "N/A"),
		ScheduleBlock: orDefault(meta.ScheduleBlock, "N/A"),

		Salon:    meta.Salon,
		CourseID: meta.CourseID,
	}, true
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
