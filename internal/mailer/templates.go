package mailer

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	templateWelcome             = "welcome"
	templateContactConfirmation = "contact_confirmation"
	templateContactNotification = "contact_notification"
)

// templateSet holds all email templates, compiled once at construction.
type templateSet struct {
	templates *template.Template
}

func loadTemplates() (*templateSet, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("%w: parse templates: %v", ErrInvalidConfig, err)
	}

	return &templateSet{templates: tmpl}, nil
}

func (ts *templateSet) render(name string, data map[string]string) (string, error) {
	var sb strings.Builder

	if err := ts.templates.ExecuteTemplate(&sb, name+".html", data); err != nil {
		return "", fmt.Errorf("%w: render template %q: %v", ErrSendFailed, name, err)
	}

	return sb.String(), nil
}
