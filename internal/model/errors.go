package model

import (
	"errors"
	"fmt"
)

// Stage identifies which lookup of the pricing pipeline failed.
type Stage string

const (
	StageZipCounty  Stage = "zip-county"
	StageCountyName Stage = "county-name"
	StageLocality   Stage = "locality"
	StageGPCI       Stage = "gpci"
	StageRVU        Stage = "rvu"
)

// InputError reports a malformed input rejected before any lookup is attempted.
type InputError struct {
	Field  string
	Value  string
	Reason string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// NotFoundError reports a failed lookup against the immutable reference
// tables. Stage and Key let callers distinguish a bad ZIP from an
// unsupported code.
type NotFoundError struct {
	Stage Stage
	Key   string
}

func (e *NotFoundError) Error() string {
	switch e.Stage {
	case StageZipCounty:
		return fmt.Sprintf("ZIP code %s not found in ZIP-county data", e.Key)
	case StageCountyName:
		return fmt.Sprintf("no county reference found for code %s", e.Key)
	case StageLocality:
		return fmt.Sprintf("no locality mapping found for %s", e.Key)
	case StageGPCI:
		return fmt.Sprintf("GPCI multipliers missing for %s", e.Key)
	case StageRVU:
		return fmt.Sprintf("code %s not found in RVU data", e.Key)
	}
	return fmt.Sprintf("%s: %s not found", e.Stage, e.Key)
}

// IsNotFound reports whether err is (or wraps) a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}
