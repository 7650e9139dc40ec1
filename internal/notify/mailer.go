// Package notify sends best-effort email notifications. Delivery failures
// are logged and swallowed; the workflow never depends on them.
package notify

import (
	"fmt"
	"log"

	"oa-portal/internal/model"

	"gopkg.in/gomail.v2"
)

type Mailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewMailer returns nil when host is empty, which disables notifications
// without any caller-side branching.
func NewMailer(host string, port int, username, password, from string) *Mailer {
	if host == "" {
		return nil
	}
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (m *Mailer) LeaveDecided(req *model.LeaveRequest, applicant *model.User) {
	if applicant.Email == "" {
		return
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", applicant.Email)
	msg.SetHeader("Subject", fmt.Sprintf("Leave request %s", req.Status))
	msg.SetBody("text/plain", fmt.Sprintf(
		"Your %s leave request for %s to %s was %s.\nComment: %s\n",
		req.Type, req.StartDate, req.EndDate, req.Status, req.ApproverComment,
	))

	if err := m.dialer.DialAndSend(msg); err != nil {
		log.Printf("notify: leave decision mail to %s failed: %v", applicant.Email, err)
	}
}
