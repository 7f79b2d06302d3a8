package utils

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"wms-ledger/config"
)

// SendApprovalNotification mails the configured approvers when a submitted
// count plan trips the variance threshold. Callers treat a failure as
// non-fatal.
func SendApprovalNotification(planCode string, flaggedLines int) error {
	if config.SMTPHost == "" || len(config.ApproverEmails) == 0 {
		return nil
	}

	subject := "📦 Count plan " + planCode + " needs approval"
	body := fmt.Sprintf(`
		<html>
			<body>
				<h3>Count plan pending approval</h3>
				<p>Plan: <strong>%s</strong></p>
				<p>Lines over variance threshold: <strong>%d</strong></p>
				<p>This is an auto-generated email. Please do not reply.</p>
			</body>
		</html>
	`, planCode, flaggedLines)

	msg := gomail.NewMessage()
	msg.SetHeader("From", config.SMTPUser)
	msg.SetHeader("To", config.ApproverEmails...)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	dialer := gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword)
	return dialer.DialAndSend(msg)
}
