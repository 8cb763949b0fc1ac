package poet

import (
	"errors"
	"fmt"
)

var (
	// ErrFormat reports a malformed format string or an argument that does not fit its directive
	ErrFormat = errors.New("invalid format")
	// ErrSpec reports a builder state that cannot produce valid Kotlin
	ErrSpec = errors.New("invalid spec")
	// ErrRender reports a problem only detectable while rendering, such as unbalanced statements
	ErrRender = errors.New("render failed")
)

func formatError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrFormat, fmt.Sprintf(format, args...))
}

func specError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrSpec, fmt.Sprintf(format, args...))
}

func renderError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrRender, fmt.Sprintf(format, args...))
}
