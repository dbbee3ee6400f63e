package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agritrace/farmtrace/internal/config"
)

func TestAlerter_Evaluate_NoAlerts(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		ViolationThreshold:  1,
		ComplianceRateFloor: 90,
	})

	snap := &ComplianceSnapshot{
		TotalTreatments: 50,
		Violations:      0,
		Warnings:        2,
		ComplianceRate:  96,
	}

	alerts := a.Evaluate(snap)
	assert.Empty(t, alerts)
}

func TestAlerter_Evaluate_Violations(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		ViolationThreshold:  3,
		ComplianceRateFloor: 50,
	})

	snap := &ComplianceSnapshot{
		TotalTreatments: 100,
		Violations:      5,
		ComplianceRate:  95,
	}

	alerts := a.Evaluate(snap)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertViolations, alerts[0].Type)
	assert.Equal(t, "high", alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "5 treatment(s)")
}

func TestAlerter_Evaluate_ComplianceDecline(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		ViolationThreshold:  100,
		ComplianceRateFloor: 90,
	})

	snap := &ComplianceSnapshot{
		TotalTreatments: 40,
		Violations:      1,
		ComplianceRate:  72,
	}

	alerts := a.Evaluate(snap)
	require.Len(t, alerts, 1)
	assert.Equal(t, AlertComplianceDecline, alerts[0].Type)
	assert.Equal(t, "medium", alerts[0].Severity)
	assert.Contains(t, alerts[0].Message, "72%")
}

func TestAlerter_Evaluate_MultipleAlerts(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		ViolationThreshold:  1,
		ComplianceRateFloor: 90,
	})

	snap := &ComplianceSnapshot{
		TotalTreatments: 20,
		Violations:      4,
		Warnings:        3,
		ComplianceRate:  65,
	}

	alerts := a.Evaluate(snap)
	assert.Len(t, alerts, 2)

	types := make(map[AlertType]bool)
	for _, al := range alerts {
		types[al.Type] = true
	}
	assert.True(t, types[AlertViolations])
	assert.True(t, types[AlertComplianceDecline])
}

func TestAlerter_Evaluate_EmptyRegistryNoDeclineAlert(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		ComplianceRateFloor: 90,
	})

	// No treatments at all; the rate floor check should not fire.
	snap := &ComplianceSnapshot{
		TotalTreatments: 0,
		ComplianceRate:  0,
	}

	alerts := a.Evaluate(snap)
	assert.Empty(t, alerts)
}

func TestAlerter_Evaluate_ZeroThresholdsDisabled(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{})

	snap := &ComplianceSnapshot{
		TotalTreatments: 10,
		Violations:      10,
		ComplianceRate:  0,
	}

	alerts := a.Evaluate(snap)
	assert.Empty(t, alerts)
}

func TestAlerter_SendAlerts_Webhook(t *testing.T) {
	var received atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		var alert Alert
		err := json.NewDecoder(r.Body).Decode(&alert)
		require.NoError(t, err)
		assert.NotEmpty(t, alert.Type)
		received.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	a := NewAlerter(config.MonitoringConfig{
		WebhookURL: ts.URL,
	})

	alerts := []Alert{
		{Type: AlertViolations, Severity: "high", Message: "test alert 1"},
		{Type: AlertComplianceDecline, Severity: "medium", Message: "test alert 2"},
	}

	sent := a.SendAlerts(context.Background(), alerts)
	assert.Equal(t, 2, sent)
	assert.Equal(t, int32(2), received.Load())
}

func TestAlerter_SendAlerts_EmptyURL(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		WebhookURL: "",
	})

	sent := a.SendAlerts(context.Background(), []Alert{
		{Type: AlertViolations, Message: "test"},
	})
	assert.Equal(t, 0, sent)
}

func TestAlerter_SendAlerts_EmptyAlerts(t *testing.T) {
	a := NewAlerter(config.MonitoringConfig{
		WebhookURL: "http://example.com",
	})

	sent := a.SendAlerts(context.Background(), nil)
	assert.Equal(t, 0, sent)
}

func TestAlerter_SendAlerts_WebhookError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	a := NewAlerter(config.MonitoringConfig{
		WebhookURL: ts.URL,
	})

	alerts := []Alert{
		{Type: AlertViolations, Message: "test"},
	}

	sent := a.SendAlerts(context.Background(), alerts)
	assert.Equal(t, 0, sent)
}
