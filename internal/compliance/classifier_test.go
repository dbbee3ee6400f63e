package compliance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agritrace/farmtrace/internal/model"
)

func strptr(s string) *string { return &s }

func TestClassify_ThresholdBands(t *testing.T) {
	tests := []struct {
		name string
		mrl  string
		want model.ComplianceStatus
	}{
		{"zero is compliant", "0", model.StatusCompliant},
		{"well under warning", "30", model.StatusCompliant},
		{"just under warning", "49.99", model.StatusCompliant},
		{"warning boundary inclusive", "50", model.StatusWarning},
		{"mid warning band", "75", model.StatusWarning},
		{"just under violation", "99.99", model.StatusWarning},
		{"violation boundary inclusive", "100", model.StatusViolation},
		{"far over violation", "150", model.StatusViolation},
		{"decimal precision preserved", "49.999999", model.StatusCompliant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(strptr(tt.mrl), model.StatusPending)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClassify_MeasurementOverridesSuppliedStatus(t *testing.T) {
	// An explicit status loses to a parseable measurement.
	got := Classify(strptr("150"), model.StatusCompliant)
	assert.Equal(t, model.StatusViolation, got)

	got = Classify(strptr("10"), model.StatusViolation)
	assert.Equal(t, model.StatusCompliant, got)
}

func TestClassify_AbsentMeasurement(t *testing.T) {
	for _, supplied := range []model.ComplianceStatus{
		model.StatusCompliant,
		model.StatusWarning,
		model.StatusViolation,
		model.StatusPending,
	} {
		assert.Equal(t, supplied, Classify(nil, supplied))
	}

	// No measurement, no supplied status: pending.
	assert.Equal(t, model.StatusPending, Classify(nil, ""))
}

func TestClassify_InvalidMeasurementFallsBack(t *testing.T) {
	assert.Equal(t, model.StatusPending, Classify(strptr("not-a-number"), ""))
	assert.Equal(t, model.StatusWarning, Classify(strptr(""), model.StatusWarning))

	// Negative measurements are out of domain and treated like invalid input.
	assert.Equal(t, model.StatusPending, Classify(strptr("-5"), ""))
	assert.Equal(t, model.StatusCompliant, Classify(strptr("-0.01"), model.StatusCompliant))
}

func TestClassifyValue_Boundaries(t *testing.T) {
	assert.Equal(t, model.StatusCompliant, ClassifyValue(0))
	assert.Equal(t, model.StatusCompliant, ClassifyValue(49.99))
	assert.Equal(t, model.StatusWarning, ClassifyValue(50))
	assert.Equal(t, model.StatusWarning, ClassifyValue(99.99))
	assert.Equal(t, model.StatusViolation, ClassifyValue(100))
}
