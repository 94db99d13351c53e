package services

import (
	"fmt"
	"log"

	"gopkg.in/gomail.v2"

	"github.com/habab6/ipec-campus-connect-sub000/app/config"
)

// SendEmail sends an email using the configured SMTP account.
func SendEmail(to string, subject string, body string) error {
	smtp := config.AppConfig.SMTP

	mailer := gomail.NewMessage()
	mailer.SetHeader("From", smtp.From)
	mailer.SetHeader("To", to)
	mailer.SetHeader("Subject", subject)
	mailer.SetBody("text/html", body)

	dialer := gomail.NewDialer(smtp.Host, smtp.Port, smtp.Username, smtp.Password)

	if err := dialer.DialAndSend(mailer); err != nil {
		log.Printf("Failed to send email to %s: %v", to, err)
		return err
	}

	log.Printf("Email sent successfully to %s", to)
	return nil
}

// SendAccountCredentials mails a freshly created student account its initial
// password. Delivery is best effort: the account exists either way.
func SendAccountCredentials(to, firstName, password string) {
	body := fmt.Sprintf(`
		<p>Bonjour %s,</p>
		<p>Votre compte étudiant IPEC a été créé.</p>
		<p>Identifiant&nbsp;: %s<br>Mot de passe initial&nbsp;: <strong>%s</strong></p>
		<p>Merci de changer ce mot de passe lors de votre première connexion.</p>
		<p>IPEC &mdash; Service administratif</p>`,
		firstName, to, password)

	if err := SendEmail(to, "Votre compte étudiant IPEC", body); err != nil {
		log.Printf("Account created but credential email failed for %s", to)
	}
}
