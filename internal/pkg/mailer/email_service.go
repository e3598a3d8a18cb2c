package mailer

import (
	"fmt"
	"strings"

	"gopkg.in/gomail.v2"

	"pc-estimate-be/pkg/parts"
)

type IEmailService interface {
	SendEstimate(toEmail, title string, estimate *parts.Estimate) error
}

type emailService struct {
	dialer      *gomail.Dialer
	senderEmail string
}

func NewEmailService(host string, port int, username, password, senderEmail string) IEmailService {
	d := gomail.NewDialer(host, port, username, password)

	return &emailService{
		dialer:      d,
		senderEmail: senderEmail,
	}
}

func (s *emailService) SendEstimate(toEmail, title string, estimate *parts.Estimate) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.senderEmail)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("PC Estimate: %s", title))

	m.SetBody("text/html", renderEstimateBody(title, estimate))

	if err := s.dialer.DialAndSend(m); err != nil {
		fmt.Printf("[MAILER ERROR] Failed to send estimate to %s: %v\n", toEmail, err)
		return err
	}

	fmt.Printf("[MAILER] Estimate sent to %s\n", toEmail)
	return nil
}

func renderEstimateBody(title string, estimate *parts.Estimate) string {
	var rows strings.Builder
	for _, key := range parts.RequiredKeys {
		part := estimate.Part(key)
		if part == nil {
			continue
		}
		rows.WriteString(fmt.Sprintf(`
			<tr>
				<td style="padding: 8px; border-bottom: 1px solid #eee;">%s</td>
				<td style="padding: 8px; border-bottom: 1px solid #eee;"><a href="%s">%s</a></td>
				<td style="padding: 8px; border-bottom: 1px solid #eee; text-align: right;">%d KRW</td>
			</tr>
		`, key, part.Link, part.Name, part.Price))
	}

	return fmt.Sprintf(`
		<div style="font-family: Arial, sans-serif; padding: 20px; color: #333;">
			<h2>%s</h2>
			<table style="border-collapse: collapse; width: 100%%;">
				%s
			</table>
			<h3 style="text-align: right;">Total: %d KRW</h3>
			<p>This estimate was shared with you from PC Estimate.</p>
		</div>
	`, title, rows.String(), estimate.TotalPrice)
}
