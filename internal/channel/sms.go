package channel

import (
	"fmt"
	"strings"
	"time"
)

// RenderSMS builds the compact text body for SMS delivery. SMS has no
// structure to degrade to, so this always succeeds.
func RenderSMS(n Notification, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🔺 ESCALATION L%d\n", n.EscalationLevel)
	fmt.Fprintf(&b, "%s: %s\n", n.AlertType, n.Message)
	if n.MetricValue != nil {
		fmt.Fprintf(&b, "Value: %s", formatMetric(*n.MetricValue))
		if n.Threshold != nil {
			fmt.Fprintf(&b, " / %s", formatMetric(*n.Threshold))
		}
		b.WriteString("\n")
	}
	if wait := now.Sub(n.Timestamp); wait > 0 {
		fmt.Fprintf(&b, "Waiting: %d min\n", int(wait.Round(time.Minute)/time.Minute))
	}
	b.WriteString("Please handle immediately!")
	return b.String()
}
