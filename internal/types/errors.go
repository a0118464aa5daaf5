package types

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// NonFieldKey is used for validation failures not tied to a single field.
const NonFieldKey = "non_field_errors"

var (
	// ErrNotFound covers both a missing id and an id owned by someone else,
	// so callers cannot probe for other users' data.
	ErrNotFound = errors.New("not found")

	// ErrInvalidCredentials is returned for unknown email, inactive account
	// and password mismatch alike.
	ErrInvalidCredentials = errors.New("unable to authenticate with provided credentials")

	// ErrInvalidToken rejects requests carrying a missing or unknown token.
	ErrInvalidToken = errors.New("invalid authentication token")
)

// FieldErrors maps a field name to the validation messages raised against it.
type FieldErrors map[string][]string

func (e FieldErrors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(e[k], "; ")))
	}
	return strings.Join(parts, ", ")
}

// Add appends a message to the given field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// AsFieldErrors unwraps err into FieldErrors if it is one.
func AsFieldErrors(err error) (FieldErrors, bool) {
	var fe FieldErrors
	if errors.As(err, &fe) {
		return fe, true
	}
	return nil, false
}
