package scoring

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

const DefaultTemplate = "classic"

//go:embed templates.yaml
var embeddedTemplates []byte

// Template is a named, validated RuleSet.
type Template struct {
	Name  string
	Rules RuleSet
}

var builtinTemplates = mustParseTemplates(embeddedTemplates)

// ParseTemplates decodes a YAML document mapping template names to rule sets.
// Every rule set must validate.
func ParseTemplates(raw []byte) ([]Template, error) {
	var byName map[string]RuleSet
	if err := yaml.Unmarshal(raw, &byName); err != nil {
		return nil, fmt.Errorf("decode rule templates: %w", err)
	}

	out := make([]Template, 0, len(byName))
	for name, rules := range byName {
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("%w: template name is empty", ErrInvalidConfiguration)
		}
		if err := rules.Validate(); err != nil {
			return nil, fmt.Errorf("template %s: %w", name, err)
		}
		out = append(out, Template{Name: name, Rules: rules})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	return out, nil
}

// Templates returns the built-in templates sorted by name.
func Templates() []Template {
	return append([]Template(nil), builtinTemplates...)
}

func TemplateByName(name string) (Template, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		name = DefaultTemplate
	}
	for _, t := range builtinTemplates {
		if t.Name == name {
			return t, nil
		}
	}
	return Template{}, fmt.Errorf("%w: %s", ErrUnknownTemplate, name)
}

func mustParseTemplates(raw []byte) []Template {
	out, err := ParseTemplates(raw)
	if err != nil {
		panic(err)
	}
	return out
}
