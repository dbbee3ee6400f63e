package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/agritrace/farmtrace/internal/config"
)

// AlertType identifies the kind of alert.
type AlertType string

const (
	AlertViolations        AlertType = "mrl_violations"
	AlertComplianceDecline AlertType = "compliance_rate_decline"
)

// Alert represents a single alert to be sent.
type Alert struct {
	Type      AlertType      `json:"type"`
	Severity  string         `json:"severity"`
	Message   string         `json:"message"`
	Details   map[string]any `json:"details,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// Alerter evaluates a ComplianceSnapshot against configured thresholds
// and sends alerts via webhook when thresholds are breached.
type Alerter struct {
	cfg    config.MonitoringConfig
	client *http.Client
}

// NewAlerter creates a new Alerter with the given monitoring config.
func NewAlerter(cfg config.MonitoringConfig) *Alerter {
	return &Alerter{
		cfg:    cfg,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Evaluate checks the snapshot against thresholds and returns any alerts.
func (a *Alerter) Evaluate(snap *ComplianceSnapshot) []Alert {
	var alerts []Alert
	now := time.Now().UTC()

	if a.cfg.ViolationThreshold > 0 && snap.Violations >= a.cfg.ViolationThreshold {
		alerts = append(alerts, Alert{
			Type:     AlertViolations,
			Severity: "high",
			Message: fmt.Sprintf(
				"%d treatment(s) exceed the MRL violation limit (threshold %d)",
				snap.Violations, a.cfg.ViolationThreshold,
			),
			Details: map[string]any{
				"violations": snap.Violations,
				"threshold":  a.cfg.ViolationThreshold,
				"warnings":   snap.Warnings,
			},
			Timestamp: now,
		})
	}

	if a.cfg.ComplianceRateFloor > 0 && snap.TotalTreatments > 0 &&
		float64(snap.ComplianceRate) < a.cfg.ComplianceRateFloor {
		alerts = append(alerts, Alert{
			Type:     AlertComplianceDecline,
			Severity: "medium",
			Message: fmt.Sprintf(
				"Compliance rate %d%% is below the configured floor of %.0f%%",
				snap.ComplianceRate, a.cfg.ComplianceRateFloor,
			),
			Details: map[string]any{
				"compliance_rate":  snap.ComplianceRate,
				"floor":            a.cfg.ComplianceRateFloor,
				"total_treatments": snap.TotalTreatments,
			},
			Timestamp: now,
		})
	}

	return alerts
}

// SendAlerts delivers alerts to the configured webhook URL.
// Returns the number of alerts successfully sent.
func (a *Alerter) SendAlerts(ctx context.Context, alerts []Alert) int {
	if a.cfg.WebhookURL == "" || len(alerts) == 0 {
		return 0
	}

	sent := 0
	for _, alert := range alerts {
		if err := a.sendWebhook(ctx, alert); err != nil {
			zap.L().Error("monitoring: failed to send alert",
				zap.String("type", string(alert.Type)),
				zap.Error(err),
			)
			continue
		}
		zap.L().Info("monitoring: alert sent",
			zap.String("type", string(alert.Type)),
			zap.String("severity", alert.Severity),
		)
		sent++
	}
	return sent
}

// sendWebhook posts a single alert to the webhook URL.
func (a *Alerter) sendWebhook(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return eris.Wrap(err, "monitoring: marshal alert")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.cfg.WebhookURL, bytes.NewReader(payload))
	if err != nil {
		return eris.Wrap(err, "monitoring: create webhook request")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return eris.Wrap(err, "monitoring: webhook request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode >= 400 {
		return eris.Errorf("monitoring: webhook returned status %d", resp.StatusCode)
	}
	return nil
}
