// Package validate checks parameter values against their template rules.
//
// Rules are evaluated in a fixed order and the first failure wins:
//
//  1. required: a blank value fails; an empty optional value is valid
//  2. number kind: the value must be a decimal number within min and max
//  3. pattern
//  4. min and max length, counted in runes
//  5. the custom predicate
//
// The fixed order keeps error messages reproducible. Failures are advisory
// data for the caller to display, never errors or panics.
package validate

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/bastiangx/cadprompt/pkg/template"
	"github.com/charmbracelet/log"
)

// GenericFailure is reported when a rule itself panics.
const GenericFailure = "Validation error occurred"

var decimal = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Result is the outcome of validating one value.
type Result struct {
	Valid  bool
	Reason string
}

func ok() Result { return Result{Valid: true} }

func fail(format string, args ...any) Result {
	return Result{Valid: false, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks value against the rules of p. ctx carries the values of the
// parameters resolved before p and is passed to the custom predicate.
func Validate(p *template.Parameter, value string, ctx template.Context) (res Result) {
	if p == nil || p.Rules == nil {
		return ok()
	}
	defer func() {
		if r := recover(); r != nil {
			log.Debugf("Validation of %q panicked: %v", p.Name, r)
			res = Result{Valid: false, Reason: GenericFailure}
		}
	}()

	rules := p.Rules
	name := p.Name

	if rules.Required && strings.TrimSpace(value) == "" {
		return fail("%s is required", name)
	}
	if value == "" {
		return ok()
	}

	if p.Kind == template.KindNumber {
		if !decimal.MatchString(value) {
			return fail("%s must be a number", name)
		}
		num, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fail("%s must be a number", name)
		}
		if rules.Min != nil && num < *rules.Min {
			return fail("%s must be at least %s", name, FormatNumber(*rules.Min))
		}
		if rules.Max != nil && num > *rules.Max {
			return fail("%s must be at most %s", name, FormatNumber(*rules.Max))
		}
	}

	if rules.Pattern != nil && !rules.Pattern.MatchString(value) {
		return fail("%s format is invalid", name)
	}

	length := utf8.RuneCountInString(value)
	if rules.MinLength != nil && length < *rules.MinLength {
		return fail("%s must be at least %d characters", name, *rules.MinLength)
	}
	if rules.MaxLength != nil && length > *rules.MaxLength {
		return fail("%s must be at most %d characters", name, *rules.MaxLength)
	}

	if rules.Custom != nil && !rules.Custom(value, ctx.Clone()) {
		return fail("%s does not meet requirements", name)
	}
	return ok()
}

// FormatNumber renders a bound in its shortest decimal form, e.g. 0.1 or 1000.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
