package mail

import (
	"context"
	"fmt"

	gomail "github.com/wneessen/go-mail"
)

// SMTPConfig carries the connection settings for a real SMTP relay.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string

	// From is the sender address, e.g. "EasyHR <no-reply@easyhr.app>".
	From string
}

// SMTPMailer sends email through an authenticated SMTP relay.
type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(cfg SMTPConfig) (*SMTPMailer, error) {
	opts := []gomail.Option{
		gomail.WithPort(cfg.Port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(cfg.Username),
		gomail.WithPassword(cfg.Password),
	}

	client, err := gomail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("smtp client: %w", err)
	}

	return &SMTPMailer{client: client, from: cfg.From}, nil
}

// SendVerificationEmail delivers the verification link to the given address.
func (m *SMTPMailer) SendVerificationEmail(ctx context.Context, to, name, link string) (Receipt, error) {
	body, err := renderVerification(name, link)
	if err != nil {
		return Receipt{}, err
	}

	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return Receipt{}, fmt.Errorf("from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return Receipt{}, fmt.Errorf("to address: %w", err)
	}
	msg.Subject(verificationSubject)
	msg.SetMessageID()
	msg.SetBodyString(gomail.TypeTextHTML, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return Receipt{}, fmt.Errorf("send: %w", err)
	}

	return Receipt{MessageID: msg.GetMessageID()}, nil
}
