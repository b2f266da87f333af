package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_ParseStudentRow(t *testing.T) {
	parser := NewParser()

	lines := []string{
		"Categoría: ADULTOS",
		"Nivel: Level 5",
		"Horario: 8:30 A 10:00 AM",
		"12 123456789 Maria Perez maria@x.com +1 555-123-4567",
	}

	students := parser.Parse(lines, "roster.pdf")
	require.Len(t, students, 1)

	s := students[0]
	assert.Equal(t, "123456789", s.ID)
	assert.Equal(t, "Maria Perez", s.Name)
	assert.Equal(t, "maria@x.com", s.Email)
	assert.Equal(t, "+15551234567", s.Phone)
	assert.Equal(t, "Adultos", s.Category)
	assert.Equal(t, "L05", s.LevelNorm)
	assert.Equal(t, "8:30 AM - 10:00 AM", s.ScheduleBlock)
	assert.Equal(t, "Level 5", s.Level)
	assert.Equal(t, "8:30 A 10:00 AM", s.Schedule)
}

func TestParser_RowRecognition(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		line     string
		expected int
	}{
		{
			name:     "row without email or phone",
			line:     "3 12345678 Pedro Gonzalez",
			expected: 1,
		},
		{
			name:     "row with email only",
			line:     "4 987654321 Luisa Mora luisa@mail.com",
			expected: 1,
		},
		{
			name:     "identifier too short",
			line:     "5 12345 Ana Diaz",
			expected: 0,
		},
		{
			name:     "identifier too long",
			line:     "5 1234567890123 Ana Diaz",
			expected: 0,
		},
		{
			name:     "no leading sequence number",
			line:     "12345678 Ana Diaz",
			expected: 0,
		},
		{
			name:     "salon line with digits does not become a row",
			line:     "Salón: C5 Curso ID: 64161",
			expected: 0,
		},
		{
			name:     "row with only an email after the id is dropped (empty name)",
			line:     "6 12345678 ana@mail.com",
			expected: 0,
		},
		{
			name:     "plain text line",
			line:     "Observaciones del periodo",
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			students := parser.Parse([]string{tt.line}, "")
			assert.Len(t, students, tt.expected)
		})
	}
}

func TestParser_MetadataInheritance(t *testing.T) {
	parser := NewParser()

	lines := []string{
		"Nivel: Level 3",
		"Horario: 8:30 AM - 10:00 AM",
		"1 11111111 Ana Diaz",
		"2 22222222 Luis Rojas",
		"Nivel: Level 9",
		"3 33333333 Eva Castro",
	}

	students := parser.Parse(lines, "")
	require.Len(t, students, 3)

	assert.Equal(t, "L03", students[0].LevelNorm)
	assert.Equal(t, "L03", students[1].LevelNorm)
	assert.Equal(t, "L09", students[2].LevelNorm)

	// Schedule carries forward across the level change
	for _, s := range students {
		assert.Equal(t, "8:30 AM - 10:00 AM", s.ScheduleBlock)
	}
}

func TestParser_SkipLines(t *testing.T) {
	parser := NewParser()

	lines := []string{
		"CENTRO VENEZOLANO AMERICANO",
		"LISTA DE ALUMNOS",
		"R.I.F J-00000000-0",
		"Sede: Principal",
		"Fecha: 2025-01-15",
		"Periodo: 2025-1",
		"N° Cédula Apellidos y Nombres Email Teléfono",
		"1 11111111 Ana Diaz",
	}

	students := parser.Parse(lines, "")
	require.Len(t, students, 1)
	assert.Equal(t, "Ana Diaz", students[0].Name)
}

func TestParser_SalonLineSetsAuxiliaryFields(t *testing.T) {
	parser := NewParser()

	lines := []string{
		"Salón: C5 Curso ID: 64161",
		"1 11111111 Ana Diaz",
	}

	students := parser.Parse(lines, "")
	require.Len(t, students, 1)
	assert.Equal(t, "C5", students[0].Salon)
	assert.Equal(t, "64161", students[0].CourseID)
}

func TestParser_DefaultsWithoutMetadata(t *testing.T) {
	parser := NewParser()

	students := parser.Parse([]string{"1 11111111 Ana Diaz"}, "")
	require.Len(t, students, 1)

	s := students[0]
	assert.Equal(t, "Otra", s.Category)
	assert.Equal(t, "N/A", s.Level)
	assert.Equal(t, "N/A", s.LevelNorm)
	assert.Equal(t, "N/A", s.Schedule)
	assert.Equal(t, "N/A", s.ScheduleBlock)
}

func TestParser_FilenameSeedsCategory(t *testing.T) {
	parser := NewParser()

	students := parser.Parse([]string{"1 11111111 Ana Diaz"}, "lista_kids_2025.pdf")
	require.Len(t, students, 1)
	assert.Equal(t, "Niños", students[0].Category)
}

func TestParser_ExplicitCategoryOverridesFilename(t *testing.T) {
	parser := NewParser()

	lines := []string{
		"Categoría: Young Teens",
		"1 11111111 Ana Diaz",
	}

	students := parser.Parse(lines, "lista_kids_2025.pdf")
	require.Len(t, students, 1)
	assert.Equal(t, "Jóvenes", students[0].Category)
}

func TestParser_EmptyInput(t *testing.T) {
	parser := NewParser()

	assert.Empty(t, parser.Parse(nil, "roster.pdf"))
	assert.Empty(t, parser.Parse([]string{"", "  ", ""}, "roster.pdf"))
}

func TestParser_Idempotent(t *testing.T) {
	parser := NewParser()

	lines := []string{
		"Nivel: Level 7",
		"1 11111111 Ana Diaz ana@mail.com",
		"2 22222222 Luis Rojas",
	}

	first := parser.Parse(lines, "roster.pdf")
	second := parser.Parse(lines, "roster.pdf")
	assert.Equal(t, first, second)
}
