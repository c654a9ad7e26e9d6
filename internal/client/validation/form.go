package validation

import (
	"maps"
	"sort"
	"sync"
)

// FieldState is a point-in-time view of one field.
type FieldState struct {
	Value   any
	Error   string
	Touched bool
	Dirty   bool
	Valid   bool
}

// Form tracks values, error messages and touched/dirty flags of a form.
// The initial values are captured at construction for Reset.
type Form struct {
	mu      sync.RWMutex
	initial map[string]any
	rules   map[string][]Rule
	values  map[string]any
	errors  map[string]string
	touched map[string]bool
	dirty   map[string]bool
}

func NewForm(initial map[string]any, rules map[string][]Rule) *Form {
	return &Form{
		initial: maps.Clone(initial),
		rules:   rules,
		values:  maps.Clone(initial),
		errors:  map[string]string{},
		touched: map[string]bool{},
		dirty:   map[string]bool{},
	}
}

// Fields returns the names of fields that have rules, sorted.
func (f *Form) Fields() []string {
	names := make([]string, 0, len(f.rules))
	for name := range f.rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SetFieldValue stores v and marks the field dirty.
func (f *Form) SetFieldValue(name string, v any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.values == nil {
		f.values = map[string]any{}
	}
	f.values[name] = v
	f.dirty[name] = true
}

func (f *Form) Value(name string) any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.values[name]
}

func (f *Form) Touch(name string) {
	f.mu.Lock()
	f.touched[name] = true
	f.mu.Unlock()
}

func (f *Form) MarkDirty(name string) {
	f.mu.Lock()
	f.dirty[name] = true
	f.mu.Unlock()
}

// SetFieldError overrides the field's message, e.g. with a server-side
// validation error. An empty message clears it.
func (f *Form) SetFieldError(name, msg string) {
	f.mu.Lock()
	f.errors[name] = msg
	f.mu.Unlock()
}

// ValidateField runs the field's rules in order and stores the first
// failure. Fields without rules are valid and keep their error slot.
func (f *Form) ValidateField(name string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked(name)
}

// Validate evaluates every field with rules, without stopping at the first
// invalid one, and reports whether all passed.
func (f *Form) Validate() bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	valid := true
	for name := range f.rules {
		if !f.validateLocked(name) {
			valid = false
		}
	}
	return valid
}

func (f *Form) validateLocked(name string) bool {
	rules, ok := f.rules[name]
	if !ok {
		return true
	}

	value := f.values[name]
	snapshot := maps.Clone(f.values)
	for _, r := range rules {
		if msg := r.Check(value, snapshot); msg != "" {
			f.errors[name] = msg
			return false
		}
	}
	f.errors[name] = ""
	return true
}

// Reset restores every field to its initial value and clears errors,
// touched and dirty flags.
func (f *Form) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.values = maps.Clone(f.initial)
	clear(f.errors)
	clear(f.touched)
	clear(f.dirty)
}

func (f *Form) FieldState(name string) FieldState {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return FieldState{
		Value:   f.values[name],
		Error:   f.errors[name],
		Touched: f.touched[name],
		Dirty:   f.dirty[name],
		Valid:   f.errors[name] == "",
	}
}

func (f *Form) HasErrors() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, msg := range f.errors {
		if msg != "" {
			return true
		}
	}
	return false
}

func (f *Form) IsDirty() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	for _, d := range f.dirty {
		if d {
			return true
		}
	}
	return false
}

func (f *Form) IsValid() bool {
	return !f.HasErrors()
}

// Values returns a copy of the current values.
func (f *Form) Values() map[string]any {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := maps.Clone(f.values)
	if out == nil {
		out = map[string]any{}
	}
	return out
}

// Errors returns the non-empty error messages by field.
func (f *Form) Errors() map[string]string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	out := make(map[string]string, len(f.errors))
	for name, msg := range f.errors {
		if msg != "" {
			out[name] = msg
		}
	}
	return out
}
