package channel

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"escalation-srv/internal/model"
)

// renderCustom substitutes the fixed placeholder set into the configured body
// template and structurally validates the result as JSON. The template is
// never evaluated, only substituted and parsed. A missing template or a
// template that does not parse falls back to the default payload shape.
func renderCustom(n Notification, cfg model.WebhookConfig) ([]byte, error) {
	if cfg.CustomBodyTemplate != "" {
		body := substitutePlaceholders(cfg.CustomBodyTemplate, n)
		if json.Valid([]byte(body)) {
			return []byte(body), nil
		}
	}
	return json.Marshal(defaultCustomPayload(n))
}

func substitutePlaceholders(tmpl string, n Notification) string {
	metric, threshold := "", ""
	if n.MetricValue != nil {
		metric = formatMetric(*n.MetricValue)
	}
	if n.Threshold != nil {
		threshold = formatMetric(*n.Threshold)
	}
	r := strings.NewReplacer(
		"{{alertType}}", n.AlertType,
		"{{alertTitle}}", n.Title,
		"{{alertMessage}}", n.Message,
		"{{severity}}", string(n.Severity),
		"{{escalationLevel}}", strconv.Itoa(n.EscalationLevel),
		"{{productionLineName}}", n.ProductionLineName,
		"{{machineName}}", n.MachineName,
		"{{metricValue}}", metric,
		"{{threshold}}", threshold,
		"{{timestamp}}", n.Timestamp.Format(time.RFC3339),
	)
	return r.Replace(tmpl)
}

type customPayload struct {
	EscalationLevel    int      `json:"escalationLevel"`
	AlertType          string   `json:"alertType"`
	AlertTitle         string   `json:"alertTitle"`
	AlertMessage       string   `json:"alertMessage"`
	Severity           string   `json:"severity"`
	ProductionLineName string   `json:"productionLineName,omitempty"`
	MachineName        string   `json:"machineName,omitempty"`
	MetricValue        *float64 `json:"metricValue,omitempty"`
	Threshold          *float64 `json:"threshold,omitempty"`
	Timestamp          string   `json:"timestamp"`
}

func defaultCustomPayload(n Notification) customPayload {
	return customPayload{
		EscalationLevel:    n.EscalationLevel,
		AlertType:          n.AlertType,
		AlertTitle:         n.Title,
		AlertMessage:       n.Message,
		Severity:           string(n.Severity),
		ProductionLineName: n.ProductionLineName,
		MachineName:        n.MachineName,
		MetricValue:        n.MetricValue,
		Threshold:          n.Threshold,
		Timestamp:          n.Timestamp.Format(time.RFC3339),
	}
}
