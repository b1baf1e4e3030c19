package combat

import "time"

// Severity tags a log entry.
type Severity string

const (
	SeverityInfo   Severity = "info"
	SeverityAction Severity = "action"
	SeverityError  Severity = "error"
)

// LogEntry is one line of the battle narrative.
type LogEntry struct {
	Time     time.Time `json:"time"`
	Severity Severity  `json:"type"`
	Message  string    `json:"message"`
	ActorID  string    `json:"actorID"`
}

// pushLog appends to the log and notifies observers.
func (b *Battle) pushLog(message string, severity Severity) {
	b.Log = append(b.Log, LogEntry{
		Time:     b.now(),
		Severity: severity,
		Message:  message,
		ActorID:  b.Attacker.ID,
	})
	b.notify()
}
