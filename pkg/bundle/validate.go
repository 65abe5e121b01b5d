package bundle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-contractgen/pkg/model"
)

// ValidationError describes one authoring problem in a template.
type ValidationError struct {
	TemplateID string
	Field      string
	Message    string
}

func (e *ValidationError) Error() string {
	if e.TemplateID == "" {
		return fmt.Sprintf("bundle: %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("bundle: template %q: %s: %s", e.TemplateID, e.Field, e.Message)
}

// Validate checks a template against the authoring rules: id and text are
// required, capsule ids, slugs and titles are unique, numbering titles are
// set, and capsule directives point at a known capsule slug. All problems are
// returned together.
func Validate(tpl model.Template) error {
	var errs []error
	fail := func(field, format string, args ...any) {
		errs = append(errs, &ValidationError{TemplateID: tpl.ID, Field: field, Message: fmt.Sprintf(format, args...)})
	}

	if strings.TrimSpace(tpl.ID) == "" {
		fail("id", "is required")
	}
	if strings.TrimSpace(tpl.Text) == "" {
		fail("text", "is required")
	}

	ids := make(map[int]struct{}, len(tpl.Capsules))
	slugs := make(map[string]struct{}, len(tpl.Capsules))
	titles := make(map[string]struct{}, len(tpl.Capsules))
	for i, c := range tpl.Capsules {
		field := fmt.Sprintf("capsules[%d]", i)
		if _, dup := ids[c.ID]; dup {
			fail(field+".id", "duplicate capsule id %d", c.ID)
		}
		ids[c.ID] = struct{}{}

		if c.Slug != "" {
			if _, dup := slugs[c.Slug]; dup {
				fail(field+".slug", "duplicate capsule slug %q", c.Slug)
			}
			slugs[c.Slug] = struct{}{}
		}

		if strings.TrimSpace(c.Title) == "" {
			fail(field+".title", "is required")
			continue
		}
		if _, dup := titles[c.Title]; dup {
			fail(field+".title", "duplicate capsule title %q", c.Title)
		}
		titles[c.Title] = struct{}{}
	}

	for i, d := range tpl.Numbering {
		field := fmt.Sprintf("numbering[%d]", i)
		if strings.TrimSpace(d.Title) == "" {
			fail(field+".title", "is required")
		}
		if !d.InCapsule {
			continue
		}
		if d.CapsuleSlug == "" {
			fail(field+".capsule_slug", "is required for a capsule clause")
			continue
		}
		if _, ok := slugs[d.CapsuleSlug]; !ok {
			fail(field+".capsule_slug", "unknown capsule slug %q", d.CapsuleSlug)
		}
	}

	return errors.Join(errs...)
}
