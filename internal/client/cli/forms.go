package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/myadmin/internal/client/models"
	"github.com/dmitrijs2005/myadmin/internal/client/validation"
	"github.com/dmitrijs2005/myadmin/internal/common"
)

var loginRules = map[string][]validation.Rule{
	"email":    {validation.Required(), validation.Email()},
	"password": {validation.Required(), validation.MinLength(6)},
}

// entityRuleDefs are the form rules of each entity editor.
var entityRuleDefs = map[string]map[string]string{
	"skills":     {"name": "required|maxLength:255"},
	"schools":    {"name": "required|maxLength:255"},
	"degrees":    {"name": "required|maxLength:255"},
	"subjects":   {"name": "required|maxLength:255"},
	"categories": {"name": "required|maxLength:255", "description": "maxLength:1000"},
	"users": {
		"name":     "required|maxLength:255",
		"email":    "required|email",
		"phone":    "pattern:^\\+?[0-9 ()-]+$,Please enter a valid phone number",
		"website":  "url",
		"password": "minLength:8",
	},
}

// entityForm builds the editor form for resource around p. Optional fields
// are only checked when present; partial forms (updates) skip every absent
// field.
func entityForm(resource string, p models.Payload, partial bool) (*validation.Form, error) {
	rules := make(map[string][]validation.Rule)
	for field, def := range entityRuleDefs[resource] {
		required := strings.HasPrefix(def, "required")
		if _, present := p[field]; !present && (partial || !required) {
			continue
		}
		parsed, err := validation.ParseRules(def)
		if err != nil {
			return nil, fmt.Errorf("rules for %s.%s: %w", resource, field, err)
		}
		rules[field] = parsed
	}
	return validation.NewForm(p.Scalars(), rules), nil
}

// formError collects the failed fields of a validated form, sorted by name.
func formError(f *validation.Form) error {
	errs := f.Errors()
	fields := make([]string, 0, len(errs))
	for field := range errs {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, field+": "+errs[field])
	}
	return fmt.Errorf("%w: %s", common.ErrInvalidPayload, strings.Join(parts, "; "))
}
