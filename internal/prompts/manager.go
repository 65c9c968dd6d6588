package prompts

import (
	"embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// embeds all .yaml files in the templates folder at compile time
//
//go:embed templates/*.yaml
var templateFS embed.FS

// PromptProvider is what callers depend on; tests swap in mocks.
type PromptProvider interface {
	BuildPrompt(kind, variant string, data map[string]string) (string, error)
	SystemPrompt(kind string, data map[string]string) string
	Kinds() []string
}

type PromptManager struct {
	systemPrompts map[string]string
	prompts       map[string]map[string]string // kind -> variant -> template
}

// on-disk template shape
type promptTemplate struct {
	SystemPrompt string            `yaml:"system_prompt"`
	BasePrompt   string            `yaml:"base_prompt"`
	Variants     map[string]string `yaml:"variants"`
}

// creates a new prompt manager and loads templates
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		systemPrompts: make(map[string]string),
		prompts:       make(map[string]map[string]string),
	}
	if err := pm.loadPrompts(); err != nil {
		return nil, fmt.Errorf("failed to load prompt templates: %w", err)
	}
	return pm, nil
}

// BuildPrompt assembles the template for kind/variant and substitutes every
// {{.Key}} placeholder from data. Simple string replacement, no template
// compilation.
func (pm *PromptManager) BuildPrompt(kind, variant string, data map[string]string) (string, error) {
	variants, exists := pm.prompts[kind]
	if !exists {
		return "", fmt.Errorf("template not found for kind: %s", kind)
	}

	tmpl, exists := variants[variant]
	if !exists {
		return "", fmt.Errorf("variant %q not found for kind %q", variant, kind)
	}

	result := tmpl
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result, nil
}

// SystemPrompt returns the system instruction for a kind with placeholders
// substituted, or an empty string when the kind has none.
func (pm *PromptManager) SystemPrompt(kind string, data map[string]string) string {
	result := pm.systemPrompts[kind]
	for key, value := range data {
		result = strings.ReplaceAll(result, "{{."+key+"}}", value)
	}
	return result
}

// Kinds lists loaded template kinds, for readiness checks.
func (pm *PromptManager) Kinds() []string {
	kinds := make([]string, 0, len(pm.prompts))
	for kind := range pm.prompts {
		kinds = append(kinds, kind)
	}
	return kinds
}

// loadPrompts loads all YAML prompt files from the embedded filesystem
func (pm *PromptManager) loadPrompts() error {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return fmt.Errorf("failed to read templates directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".yaml") {
			continue
		}

		data, err := templateFS.ReadFile("templates/" + entry.Name())
		if err != nil {
			return fmt.Errorf("failed to read template file %s: %w", entry.Name(), err)
		}

		var tmpl promptTemplate
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return fmt.Errorf("failed to parse template file %s: %w", entry.Name(), err)
		}

		kind := strings.TrimSuffix(entry.Name(), ".yaml")
		pm.systemPrompts[kind] = tmpl.SystemPrompt
		pm.prompts[kind] = make(map[string]string)

		for variant, body := range tmpl.Variants {
			var full strings.Builder
			if tmpl.BasePrompt != "" {
				full.WriteString(tmpl.BasePrompt)
				full.WriteString("\n\n")
			}
			full.WriteString(body)
			pm.prompts[kind][variant] = full.String()
		}
	}

	return nil
}
