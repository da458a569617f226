package mail

import (
	"fmt"
	"log"
	"net/smtp"

	"github.com/formaflow/formaflow/internal/pkg/env"
)

// SendMail sends an email via SMTP
func SendMail(to string, subject string, body string) error {
	host := env.GetEnv("SMTP_HOST", "")
	port := env.GetEnv("SMTP_PORT", "")
	username := env.GetEnv("SMTP_USERNAME", "")
	password := env.GetEnv("SMTP_PASSWORD", "")
	sender := env.GetEnv("SMTP_SENDER", "")

	if sender == "" {
		sender = fmt.Sprintf("no-reply@%s", "localhost")
		log.Printf("SMTP_SENDER not set, using default sender: %s", sender)
	}

	var auth smtp.Auth
	if username != "" && password != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}

	addr := fmt.Sprintf("%s:%s", host, port)

	msg := []byte(
		fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n", sender, to, subject) +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/html; charset=UTF-8\r\n\r\n" +
			body,
	)

	err := smtp.SendMail(addr, auth, sender, []string{to}, msg)
	if err != nil {
		log.Printf("SMTP send error: %v", err)
	}
	return err
}

// SendActivationMail sends the account activation link to a new user.
func SendActivationMail(to, name, token string) error {
	base := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:4000")
	link := fmt.Sprintf("%s/activate/%s", base, token)
	body := fmt.Sprintf("<p>Bonjour %s,</p><p>Activez votre compte FormaFlow : <a href=%q>%s</a></p>", name, link, link)
	return SendMail(to, "Activez votre compte FormaFlow", body)
}

// SendPasswordResetMail sends the password reset link.
func SendPasswordResetMail(to, name, token string) error {
	base := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:4000")
	link := fmt.Sprintf("%s/reset-password?token=%s", base, token)
	body := fmt.Sprintf("<p>Bonjour %s,</p><p>Réinitialisez votre mot de passe : <a href=%q>%s</a></p>", name, link, link)
	return SendMail(to, "Réinitialisation de votre mot de passe", body)
}

// SendInviteMail notifies a user that they were added to an organization.
func SendInviteMail(to, orgName, role string) error {
	base := env.GetEnv("PUBLIC_DOMAIN", "http://localhost:4000")
	body := fmt.Sprintf("<p>Vous avez été ajouté à l'organisation %s en tant que %s.</p><p><a href=%q>Se connecter</a></p>", orgName, role, base+"/login")
	return SendMail(to, fmt.Sprintf("Invitation : %s", orgName), body)
}
