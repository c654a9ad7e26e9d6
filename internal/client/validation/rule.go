// Package validation is the form validation engine of the dashboard.
//
// A field carries an ordered list of Rules. Rules are plain values (a kind
// plus its arguments) interpreted by Rule.Check, so forms can be declared
// in code or parsed from text such as "required|minLength:8".
package validation

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

type Kind int

const (
	KindRequired Kind = iota
	KindEmail
	KindMinLength
	KindMaxLength
	KindMin
	KindMax
	KindPattern
	KindMatches
	KindURL
	KindCustom
)

var kindNames = map[Kind]string{
	KindRequired:  "required",
	KindEmail:     "email",
	KindMinLength: "minLength",
	KindMaxLength: "maxLength",
	KindMin:       "min",
	KindMax:       "max",
	KindPattern:   "pattern",
	KindMatches:   "matches",
	KindURL:       "url",
	KindCustom:    "custom",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Predicate backs custom rules. values is a snapshot of the whole form.
type Predicate func(value any, values map[string]any) bool

// Rule is one constraint on a field. Only the arguments relevant to Kind
// are set.
type Rule struct {
	Kind    Kind
	Limit   float64
	Regexp  *regexp.Regexp
	Field   string
	Fn      Predicate
	Message string
}

var (
	ErrUnknownRule = errors.New("unknown validation rule")
	ErrRuleArgs    = errors.New("invalid validation rule arguments")
)

// formats delegates email and url checks to validator.
var formats = validator.New()

func Required() Rule { return Rule{Kind: KindRequired} }

func Email() Rule { return Rule{Kind: KindEmail} }

func MinLength(n int) Rule { return Rule{Kind: KindMinLength, Limit: float64(n)} }

func MaxLength(n int) Rule { return Rule{Kind: KindMaxLength, Limit: float64(n)} }

func Min(n float64) Rule { return Rule{Kind: KindMin, Limit: n} }

func Max(n float64) Rule { return Rule{Kind: KindMax, Limit: n} }

// Pattern panics on an invalid expression, like regexp.MustCompile.
func Pattern(expr, message string) Rule {
	return Rule{Kind: KindPattern, Regexp: regexp.MustCompile(expr), Message: message}
}

func Matches(field string) Rule { return Rule{Kind: KindMatches, Field: field} }

func URL() Rule { return Rule{Kind: KindURL} }

func Custom(fn Predicate, message string) Rule {
	return Rule{Kind: KindCustom, Fn: fn, Message: message}
}

// Check evaluates the rule. It returns "" when value passes, otherwise the
// message to show.
func (r Rule) Check(value any, values map[string]any) string {
	switch r.Kind {
	case KindRequired:
		if isEmpty(value) {
			return "This field is required"
		}
	case KindEmail:
		if !isBlank(value) && formats.Var(text(value), "email") != nil {
			return "Please enter a valid email address"
		}
	case KindMinLength:
		if isBlank(value) || length(value) < int(r.Limit) {
			return fmt.Sprintf("Minimum length is %s characters", num(r.Limit))
		}
	case KindMaxLength:
		if length(value) > int(r.Limit) {
			return fmt.Sprintf("Maximum length is %s characters", num(r.Limit))
		}
	case KindMin:
		if isBlank(value) {
			return ""
		}
		if n, ok := number(value); !ok || n < r.Limit {
			return fmt.Sprintf("Value must be at least %s", num(r.Limit))
		}
	case KindMax:
		if isBlank(value) {
			return ""
		}
		if n, ok := number(value); !ok || n > r.Limit {
			return fmt.Sprintf("Value must be at most %s", num(r.Limit))
		}
	case KindPattern:
		if !isBlank(value) && r.Regexp != nil && !r.Regexp.MatchString(text(value)) {
			return r.message("Invalid format")
		}
	case KindMatches:
		if !reflect.DeepEqual(value, values[r.Field]) {
			return "Fields do not match"
		}
	case KindURL:
		if !isBlank(value) && formats.Var(text(value), "url") != nil {
			return "Please enter a valid URL"
		}
	case KindCustom:
		if r.Fn != nil && !r.Fn(value, values) {
			return r.message("Invalid value")
		}
	}
	return ""
}

func (r Rule) message(fallback string) string {
	if r.Message != "" {
		return r.Message
	}
	return fallback
}

// ParseRule builds a rule from its registry name and textual arguments, as
// in "minLength", "8". Custom rules cannot be parsed.
func ParseRule(name string, args ...string) (Rule, error) {
	switch name {
	case "required":
		return Required(), nil
	case "email":
		return Email(), nil
	case "url":
		return URL(), nil
	case "minLength", "maxLength":
		if len(args) != 1 {
			return Rule{}, fmt.Errorf("%w: %s needs one length", ErrRuleArgs, name)
		}
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 0 {
			return Rule{}, fmt.Errorf("%w: %s length %q", ErrRuleArgs, name, args[0])
		}
		if name == "minLength" {
			return MinLength(n), nil
		}
		return MaxLength(n), nil
	case "min", "max":
		if len(args) != 1 {
			return Rule{}, fmt.Errorf("%w: %s needs one bound", ErrRuleArgs, name)
		}
		n, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %s bound %q", ErrRuleArgs, name, args[0])
		}
		if name == "min" {
			return Min(n), nil
		}
		return Max(n), nil
	case "pattern":
		if len(args) < 1 || len(args) > 2 {
			return Rule{}, fmt.Errorf("%w: pattern needs an expression and an optional message", ErrRuleArgs)
		}
		re, err := regexp.Compile(args[0])
		if err != nil {
			return Rule{}, fmt.Errorf("%w: %v", ErrRuleArgs, err)
		}
		r := Rule{Kind: KindPattern, Regexp: re}
		if len(args) == 2 {
			r.Message = args[1]
		}
		return r, nil
	case "matches":
		if len(args) != 1 || args[0] == "" {
			return Rule{}, fmt.Errorf("%w: matches needs a field name", ErrRuleArgs)
		}
		return Matches(args[0]), nil
	}
	return Rule{}, fmt.Errorf("%w: %q", ErrUnknownRule, name)
}

// ParseRules parses "required|minLength:8|pattern:^[a-z]+$,lowercase only".
// Rules are separated by '|', a rule name from its arguments by ':', and
// arguments from each other by ','.
func ParseRules(def string) ([]Rule, error) {
	var rules []Rule
	for _, part := range strings.Split(def, "|") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, rawArgs, hasArgs := strings.Cut(part, ":")
		var args []string
		if hasArgs {
			args = strings.Split(rawArgs, ",")
		}
		r, err := ParseRule(name, args...)
		if err != nil {
			return nil, err
		}
		rules = append(rules, r)
	}
	return rules, nil
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && strings.TrimSpace(s) == ""
}

// isEmpty treats numbers as always present.
func isEmpty(v any) bool {
	if isBlank(v) {
		return true
	}
	if b, ok := v.(bool); ok {
		return !b
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func text(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func length(v any) int {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return rv.Len()
	}
	return utf8.RuneCountInString(text(v))
}

func number(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	n, err := strconv.ParseFloat(strings.TrimSpace(text(v)), 64)
	return n, err == nil
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
