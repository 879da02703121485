package ec2

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrEmptyResult reports a lookup that matched no instances.
var ErrEmptyResult = errors.New("no matching instances")

// ArgumentError reports a blank caller-supplied lookup argument.
type ArgumentError struct {
	// Name is the role of the offending argument, e.g. "name".
	Name string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("%s must not be blank", e.Name)
}

// AmbiguousResultError reports a lookup that matched more than one
// instance. The full match set is kept for operator diagnosis.
type AmbiguousResultError struct {
	Matches []any
}

func (e *AmbiguousResultError) Error() string {
	dump, err := json.MarshalIndent(e.Matches, "", "  ")
	if err != nil {
		dump = fmt.Appendf(nil, "%v", e.Matches)
	}
	return fmt.Sprintf("query matched %d instances, want exactly one:\n%s", len(e.Matches), dump)
}

// UnexpectedResultError reports a lookup payload that did not have the
// shape the provider documents.
type UnexpectedResultError struct {
	// Value is the offending fragment of the payload.
	Value any
}

func (e *UnexpectedResultError) Error() string {
	return fmt.Sprintf("expected a list of instances, got %T: %v", e.Value, e.Value)
}
