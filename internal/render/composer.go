package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/qtje/comic/internal/model"
)

// Rendered is the final output for one page view: the executed page
// template body plus one rendered fragment per populated theme slot.
type Rendered struct {
	Body  string            `json:"body"`
	Slots map[string]string `json:"slots"`
	Meta  string            `json:"meta"`
}

// Execute parses and runs one template body against a page projection.
// html/template provides the contextual escaping the sandbox requires.
func Execute(name, text string, page SafePage) (string, error) {
	tpl, err := template.New(name).Parse(text)
	if err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}

	var out strings.Builder
	if err := tpl.Execute(&out, page); err != nil {
		return "", fmt.Errorf("template %s: %w", name, err)
	}

	return out.String(), nil
}

// Compose executes the resolved template and each populated theme slot with
// the sanitized page as context.
func Compose(tpl *model.PageTemplate, theme *model.PageTheme, page SafePage) (*Rendered, error) {
	page.ThemeMeta = theme.Meta

	body, err := Execute("page", tpl.Template, page)
	if err != nil {
		return nil, err
	}

	slots := make(map[string]string)
	for name, text := range theme.Slots() {
		rendered, err := Execute(name, text, page)
		if err != nil {
			return nil, err
		}
		slots[name] = rendered
	}

	return &Rendered{
		Body:  body,
		Slots: slots,
		Meta:  theme.Meta,
	}, nil
}
