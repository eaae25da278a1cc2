// Package templates renders the outbound email bodies embedded in the binary.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmltemplate "html/template"
	texttemplate "text/template"
)

//go:embed *.html *.txt
var templateFS embed.FS

// PasswordResetData is the view of the password_reset template.
type PasswordResetData struct {
	UserName  string
	ResetURL  string
	ExpiresIn string
}

// BudgetAlertData is the view of the budget_alert template.
type BudgetAlertData struct {
	UserName     string
	BankName     string
	Alerts       []string
	DashboardURL string
}

// views turns a queued job's stored data into the typed view its template
// expects. Every template must have an entry.
var views = map[string]func(data map[string]any) any{
	"password_reset": func(data map[string]any) any {
		return PasswordResetData{
			UserName:  stringField(data, "user_name"),
			ResetURL:  stringField(data, "reset_url"),
			ExpiresIn: stringField(data, "expires_in"),
		}
	},
	"budget_alert": func(data map[string]any) any {
		return BudgetAlertData{
			UserName:     stringField(data, "user_name"),
			BankName:     stringField(data, "bank_name"),
			Alerts:       stringsField(data, "alerts"),
			DashboardURL: stringField(data, "dashboard_url"),
		}
	},
}

// Renderer holds the parsed HTML and plain text templates.
type Renderer struct {
	html *htmltemplate.Template
	text *texttemplate.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	html, err := htmltemplate.ParseFS(templateFS, "*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML templates: %w", err)
	}
	text, err := texttemplate.ParseFS(templateFS, "*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to parse text templates: %w", err)
	}
	return &Renderer{html: html, text: text}, nil
}

// Has reports whether name is a known template.
func (r *Renderer) Has(name string) bool {
	_, ok := views[name]
	return ok && r.html.Lookup(name+".html") != nil
}

// Render renders the HTML body and, if the template has a plain text twin,
// the text body. data is the JSON-shaped map stored with the job.
func (r *Renderer) Render(name string, data map[string]any) (html, text string, err error) {
	view, ok := views[name]
	if !ok {
		return "", "", fmt.Errorf("no view for template %q", name)
	}
	model := view(data)

	var htmlBuf bytes.Buffer
	if err := r.html.ExecuteTemplate(&htmlBuf, name+".html", model); err != nil {
		return "", "", fmt.Errorf("failed to render %s.html: %w", name, err)
	}

	if r.text.Lookup(name+".txt") == nil {
		return htmlBuf.String(), "", nil
	}
	var textBuf bytes.Buffer
	if err := r.text.ExecuteTemplate(&textBuf, name+".txt", model); err != nil {
		return "", "", fmt.Errorf("failed to render %s.txt: %w", name, err)
	}
	return htmlBuf.String(), textBuf.String(), nil
}

func stringField(data map[string]any, key string) string {
	s, _ := data[key].(string)
	return s
}

// stringsField reads a string list, which comes back as []any after a JSON
// round trip through the outbox.
func stringsField(data map[string]any, key string) []string {
	switch v := data[key].(type) {
	case []string:
		return v
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
