package verification

import "fmt"

// Mailer sends escalation notices.
type Mailer interface {
	Send(to, body string) error
}

// Audit records escalation milestones.
type Audit interface {
	Note(entry string)
}

// Escalate notifies both responder groups about an incident, bracketing the
// notifications with audit entries.
func Escalate(mailer Mailer, audit Audit, incident string) error {
	audit.Note("escalation started")

	for _, to := range []string{"ops", "oncall"} {
		err := mailer.Send(to, incident)
		if err != nil {
			audit.Note("escalation failed")

			return fmt.Errorf("notifying %s: %w", to, err)
		}
	}

	audit.Note("escalation complete")

	return nil
}
