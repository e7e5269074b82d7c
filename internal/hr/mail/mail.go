// Package mail delivers transactional email. Two implementations exist:
// SMTPMailer for real delivery and PreviewMailer for local development,
// where the "email" is just logged with the link ready to click.
package mail

import (
	"bytes"
	"html/template"
)

// Receipt describes a delivered (or previewed) message.
type Receipt struct {
	// MessageID is the SMTP Message-ID, empty for previews.
	MessageID string

	// PreviewURL lets development flows surface the verification link
	// without a real mailbox. Empty in production.
	PreviewURL string
}

const verificationSubject = "Verify your email address"

var verificationTmpl = template.Must(template.New("verification").Parse(`<!DOCTYPE html>
<html>
  <body style="font-family: sans-serif; color: #1f2933;">
    <h2>Welcome to EasyHR{{if .Name}}, {{.Name}}{{end}}!</h2>
    <p>Please confirm your email address to activate your account.</p>
    <p>
      <a href="{{.Link}}"
         style="display: inline-block; padding: 10px 20px; background: #2563eb; color: #ffffff; text-decoration: none; border-radius: 4px;">
        Verify Email
      </a>
    </p>
    <p>Or paste this link into your browser:</p>
    <p><a href="{{.Link}}">{{.Link}}</a></p>
    <p>This link expires in 24 hours. If you didn't sign up, you can ignore this email.</p>
  </body>
</html>
`))

func renderVerification(name, link string) (string, error) {
	var buf bytes.Buffer
	err := verificationTmpl.Execute(&buf, struct {
		Name string
		Link string
	}{Name: name, Link: link})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
