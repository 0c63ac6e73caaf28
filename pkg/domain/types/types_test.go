package types_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/zaphist/pkg/domain/types"
)

func TestSeverityValidation(t *testing.T) {
	tests := []struct {
		name     string
		severity types.Severity
		expected bool
	}{
		{"Valid High", types.SeverityHigh, true},
		{"Valid Medium", types.SeverityMedium, true},
		{"Valid Low", types.SeverityLow, true},
		{"Valid Informational", types.SeverityInformational, true},
		{"Valid False Positive", types.SeverityFalsePositive, true},
		{"Invalid empty", types.Severity(""), false},
		{"Invalid lowercase", types.Severity("high"), false},
		{"Invalid unknown", types.Severity("Critical"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.severity.IsValid()
			if result != tt.expected {
				t.Errorf("Severity(%q).IsValid() = %v, want %v", tt.severity, result, tt.expected)
			}
		})
	}
}

func TestClassificationPriority(t *testing.T) {
	ordered := types.Classifications()
	gt.A(t, ordered).Length(5)

	for i, c := range ordered {
		gt.Equal(t, c.Priority(), i)
		gt.True(t, c.IsValid())
	}

	gt.Equal(t, types.Classification("moved").Priority(), -1)
	gt.False(t, types.Classification("moved").IsValid())
}

func TestSnapshotIDValidate(t *testing.T) {
	gt.NoError(t, types.SnapshotID(1).Validate())
	gt.Error(t, types.SnapshotID(0).Validate())
	gt.Error(t, types.SnapshotID(-3).Validate())
	gt.Equal(t, types.SnapshotID(42).String(), "42")
}

func TestNewIngestionID(t *testing.T) {
	a, err := types.NewIngestionID()
	gt.NoError(t, err)
	b, err := types.NewIngestionID()
	gt.NoError(t, err)
	gt.NotEqual(t, a, b)
	gt.A(t, []byte(a.String())).Length(36)
}
