package scoring

import (
	"errors"
	"testing"
)

func TestTemplates_BuiltinsAreValid(t *testing.T) {
	t.Parallel()

	templates := Templates()
	if len(templates) != 3 {
		t.Fatalf("unexpected template count: got=%d want=3", len(templates))
	}
	for _, tpl := range templates {
		if err := tpl.Rules.Validate(); err != nil {
			t.Fatalf("template %s invalid: %v", tpl.Name, err)
		}
	}
}

func TestTemplateByName(t *testing.T) {
	t.Parallel()

	tpl, err := TemplateByName("")
	if err != nil {
		t.Fatalf("default template: %v", err)
	}
	if tpl.Name != DefaultTemplate {
		t.Fatalf("unexpected default template: got=%s want=%s", tpl.Name, DefaultTemplate)
	}

	if _, err := TemplateByName("High-Risk"); err != nil {
		t.Fatalf("expected case-insensitive lookup, got %v", err)
	}

	if _, err := TemplateByName("fantasy"); !errors.Is(err, ErrUnknownTemplate) {
		t.Fatalf("expected ErrUnknownTemplate, got %v", err)
	}
}

func TestParseTemplates_RejectsInvalidRules(t *testing.T) {
	t.Parallel()

	raw := []byte("broken:\n  correctOutcome: 7\n")
	if _, err := ParseTemplates(raw); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("expected ErrInvalidConfiguration, got %v", err)
	}

	if _, err := ParseTemplates([]byte("::not yaml")); err == nil {
		t.Fatalf("expected decode error")
	}
}
