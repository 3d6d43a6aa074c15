package mailer

import (
	"bytes"
	"fmt"
	"html/template"

	portssvc "github.com/SscSPs/taskmgr_backend/internal/core/ports/services"
)

type mailTemplate struct {
	subject string
	body    *template.Template
}

var templates = map[string]mailTemplate{
	portssvc.TemplateEmailVerification: {
		subject: "Verify your email address",
		body:    template.Must(template.New(portssvc.TemplateEmailVerification).Parse(emailVerificationHTML)),
	},
	portssvc.TemplateResetPassword: {
		subject: "Your password reset code",
		body:    template.Must(template.New(portssvc.TemplateResetPassword).Parse(resetPasswordHTML)),
	},
	portssvc.TemplatePasswordChanged: {
		subject: "Your password was changed",
		body:    template.Must(template.New(portssvc.TemplatePasswordChanged).Parse(passwordChangedHTML)),
	},
}

// Render returns the subject and HTML body for a named template.
func Render(name string, props map[string]any) (string, string, error) {
	t, ok := templates[name]
	if !ok {
		return "", "", fmt.Errorf("unknown email template %q", name)
	}
	var b bytes.Buffer
	if err := t.body.Execute(&b, props); err != nil {
		return "", "", fmt.Errorf("failed to render email template %q: %w", name, err)
	}
	return t.subject, b.String(), nil
}

const emailVerificationHTML = `<p>Confirm that {{.email}} belongs to you by opening the link below.</p>
<p><a href="{{.link}}">{{.link}}</a></p>
<p>The link expires in {{.expiresInMinutes}} minutes. If you did not request this, you can ignore this email.</p>
`

const resetPasswordHTML = `<p>Hi {{.username}},</p>
<p>Use this code to reset your password:</p>
<p><strong>{{.code}}</strong></p>
<p>The code expires in {{.expiresInMinutes}} minutes. If you did not ask for a reset, you can ignore this email.</p>
`

const passwordChangedHTML = `<p>Hi {{.username}},</p>
<p>The password for {{.email}} was just changed and every device was signed out.</p>
<p>If this was not you, reset your password right away.</p>
`
