package telegram

import (
	"bytes"
	"fmt"
	"path/filepath"
	"text/template"

	"go.uber.org/zap"

	"github.com/apetrov/econ-tracker/pkg/logger"
)

// TemplateManager manages all Telegram notification templates
type TemplateManager struct {
	templates *template.Template
}

// NewTemplateManager creates and loads all templates
func NewTemplateManager(templatesDir string) (*TemplateManager, error) {
	if templatesDir == "" {
		templatesDir = "./templates/telegram"
	}

	pattern := filepath.Join(templatesDir, "*.tmpl")
	templates, err := template.ParseGlob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates from %s: %w", templatesDir, err)
	}

	requiredTemplates := []string{
		"risk_alert.tmpl",
		"fetch_error.tmpl",
		"fetch_summary.tmpl",
	}

	for _, name := range requiredTemplates {
		if templates.Lookup(name) == nil {
			return nil, fmt.Errorf("required template not found: %s", name)
		}
	}

	logger.Info("telegram templates loaded",
		zap.Int("count", len(templates.Templates())),
		zap.String("directory", templatesDir),
	)

	return &TemplateManager{
		templates: templates,
	}, nil
}

// GetTemplate returns template by name
func (tm *TemplateManager) GetTemplate(name string) *template.Template {
	return tm.templates.Lookup(name)
}

// ExecuteTemplate renders template with data
func (tm *TemplateManager) ExecuteTemplate(name string, data interface{}) (string, error) {
	tmpl := tm.templates.Lookup(name)
	if tmpl == nil {
		return "", fmt.Errorf("template %s not found", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	return buf.String(), nil
}
