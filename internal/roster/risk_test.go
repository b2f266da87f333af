package roster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSectionRisk(t *testing.T) {
	tests := []struct {
		base     int
		expected string
	}{
		{0, RiskAlert},
		{4, RiskAlert},
		{5, RiskWatch},
		{7, RiskWatch},
		{8, RiskOK},
		{25, RiskOK},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, SectionRisk(tt.base), "base %d", tt.base)
	}
}
