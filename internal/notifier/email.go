package notifier

import (
	"context"
	"fmt"
	"html"
	"log"
	"time"

	"apthire/config"

	"gopkg.in/gomail.v2"
)

// Purpose selects the wording of a one-time code email.
type Purpose string

const (
	PurposeVerify Purpose = "verify"
	PurposeReset  Purpose = "reset"
)

// EmailNotifier delivers one-time codes over SMTP.
type EmailNotifier struct {
	dialer *gomail.Dialer
	from   string
	ttl    time.Duration
}

// NewEmailNotifier creates a notifier from the SMTP settings. ttl is only
// used to tell the recipient how long the code is valid.
func NewEmailNotifier(cfg config.SMTPConfig, ttl time.Duration) *EmailNotifier {
	return &EmailNotifier{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		ttl:    ttl,
	}
}

// SendOTP sends the code and gives up when ctx is done. An abandoned send
// may still complete in the background.
func (n *EmailNotifier) SendOTP(ctx context.Context, to, name, otp string, purpose Purpose) error {
	m := n.newMessage(to, otpMessage(purpose, name, otp, n.ttl))

	done := make(chan error, 1)
	go func() {
		done <- n.dialer.DialAndSend(m)
	}()

	select {
	case err := <-done:
		if err != nil {
			log.Printf("EmailNotifier: Failed to send %s code to %s: %v", purpose, to, err)
			return fmt.Errorf("send email: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Printf("EmailNotifier: Gave up sending %s code to %s: %v", purpose, to, ctx.Err())
		return fmt.Errorf("send email: %w", ctx.Err())
	}
}

// otpMail is one rendered code email. HTML is the primary body and Text
// the plain alternative.
type otpMail struct {
	Subject string
	HTML    string
	Text    string
}

func (n *EmailNotifier) newMessage(to string, mail otpMail) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", n.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", mail.Subject)
	m.SetBody("text/html", mail.HTML)
	m.AddAlternative("text/plain", mail.Text)
	return m
}

func otpMessage(purpose Purpose, name, otp string, ttl time.Duration) otpMail {
	greeting := "Hi"
	if name != "" {
		greeting = "Hi " + name
	}
	validity := fmt.Sprintf("The code expires in %s.", ttl.Round(time.Second))
	htmlGreeting := html.EscapeString(greeting)
	htmlCode := "<strong>" + html.EscapeString(otp) + "</strong>"

	switch purpose {
	case PurposeReset:
		return otpMail{
			Subject: "Reset your Apthire password",
			HTML: fmt.Sprintf("<p>%s,</p><p>Use %s to reset your Apthire password.</p><p>%s</p><p>If you did not ask for a reset you can ignore this email.</p>",
				htmlGreeting, htmlCode, validity),
			Text: fmt.Sprintf("%s,\n\nUse %s to reset your Apthire password.\n%s\n\nIf you did not ask for a reset you can ignore this email.\n",
				greeting, otp, validity),
		}
	default:
		return otpMail{
			Subject: "Verify your Apthire account",
			HTML:    fmt.Sprintf("<p>%s,</p><p>Your Apthire verification code is %s.</p><p>%s</p>", htmlGreeting, htmlCode, validity),
			Text:    fmt.Sprintf("%s,\n\nYour Apthire verification code is %s.\n%s\n", greeting, otp, validity),
		}
	}
}

// LogNotifier writes codes to the log. It stands in for SMTP in local setups.
type LogNotifier struct{}

// SendOTP logs the code.
func (LogNotifier) SendOTP(_ context.Context, to, _, otp string, purpose Purpose) error {
	log.Printf("LogNotifier: SMTP not configured, %s code for %s is %s", purpose, to, otp)
	return nil
}
