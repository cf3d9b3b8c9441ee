package model

// PolicyLevel is one rung of the escalation ladder. TimeoutMinutes counts
// from the alert's creation or its previous escalation, whichever is later.
type PolicyLevel struct {
	Level          int      `json:"level"`
	Name           string   `json:"name"`
	TimeoutMinutes int      `json:"timeoutMinutes"`
	NotifyEmails   []string `json:"notifyEmails"`
	NotifyPhones   []string `json:"notifyPhones"`
	NotifyPush     bool     `json:"notifyPush"`
}

// EscalationPolicy configures the automatic escalation processor.
type EscalationPolicy struct {
	Enabled bool          `json:"enabled"`
	Levels  []PolicyLevel `json:"levels"`
}

// NextLevel returns the rung directly above current, if the ladder has one.
func (p EscalationPolicy) NextLevel(current int) (PolicyLevel, bool) {
	for _, lvl := range p.Levels {
		if lvl.Level == current+1 {
			return lvl, true
		}
	}
	return PolicyLevel{}, false
}

// LevelByNumber returns the rung with the given level number.
func (p EscalationPolicy) LevelByNumber(level int) (PolicyLevel, bool) {
	for _, lvl := range p.Levels {
		if lvl.Level == level {
			return lvl, true
		}
	}
	return PolicyLevel{}, false
}

// DefaultEscalationPolicy is the ladder used until an operator saves one:
// supervisor after 15 minutes, manager after 30 more, director after 60 more.
func DefaultEscalationPolicy() EscalationPolicy {
	return EscalationPolicy{
		Enabled: false,
		Levels: []PolicyLevel{
			{Level: 1, Name: "Supervisor", TimeoutMinutes: 15},
			{Level: 2, Name: "Manager", TimeoutMinutes: 30, NotifyPush: true},
			{Level: 3, Name: "Director", TimeoutMinutes: 60, NotifyPush: true},
		},
	}
}
