package template

import (
	"errors"
	"fmt"
)

// Definition errors, matched with errors.Is against a *DefinitionError.
var (
	ErrNilTemplate        = errors.New("template is nil")
	ErrEmptyID            = errors.New("template id is empty")
	ErrDuplicateID        = errors.New("duplicate template id")
	ErrNoParts            = errors.New("template has no parts")
	ErrEmptyLiteral       = errors.New("literal part is empty")
	ErrEmptyName          = errors.New("parameter name is empty")
	ErrDuplicateParameter = errors.New("duplicate parameter name")
	ErrMissingOptions     = errors.New("options parameter has no option source")
	ErrUnknownKind        = errors.New("unknown parameter kind")
	ErrInvalidPattern     = errors.New("invalid template pattern")
	ErrForwardReference   = errors.New("options depend on a parameter that is not declared earlier")
)

// DefinitionError describes a malformed template. It is reported when the
// template is registered, never while matching. Part is -1 when the error
// concerns the template as a whole.
type DefinitionError struct {
	TemplateID string
	Part       int
	Parameter  string
	Err        error
}

func (e *DefinitionError) Error() string {
	switch {
	case e.TemplateID == "":
		return fmt.Sprintf("template: %v", e.Err)
	case e.Part < 0:
		return fmt.Sprintf("template %q: %v", e.TemplateID, e.Err)
	case e.Parameter != "":
		return fmt.Sprintf("template %q: part %d (%s): %v", e.TemplateID, e.Part, e.Parameter, e.Err)
	default:
		return fmt.Sprintf("template %q: part %d: %v", e.TemplateID, e.Part, e.Err)
	}
}

func (e *DefinitionError) Unwrap() error { return e.Err }
