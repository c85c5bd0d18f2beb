package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
)

//go:embed *.tmpl
var FS embed.FS

// template name -> subject line and plain-text fallback
var meta = map[string]struct {
	Subject string
	Text    string
}{
	"welcome": {
		Subject: "Sua conta foi criada com sucesso na Complet",
		Text:    "Olá! Sua conta foi criada com sucesso na Complet.",
	},
}

// Render renders the named email template and returns subject, text and HTML.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	m, ok := meta[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	t, err := htmpl.ParseFS(FS, name+".tmpl")
	if err != nil {
		return "", "", "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", "", "", err
	}
	return m.Subject, m.Text, buf.String(), nil
}
