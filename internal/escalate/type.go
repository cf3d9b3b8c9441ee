package escalate

// ProcessOutput summarizes one escalation sweep.
type ProcessOutput struct {
	Processed int
	Escalated int
	Errors    int
}

// TestOutput reports which targets a ladder test reached.
type TestOutput struct {
	EmailsSent int
	SMSSent    int
	PushSent   bool
}
