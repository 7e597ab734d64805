package model

import (
	"fmt"
	"strings"
)

// BillingLine is one submitted procedure instance: a code, its modifiers in
// submission order, and a unit count. Lines are inputs to a single evaluation
// call and are never persisted.
type BillingLine struct {
	Code      string
	Modifiers []string
	Units     int
}

// HasModifier reports whether the line carries the given modifier.
func (l BillingLine) HasModifier(mod string) bool {
	for _, m := range l.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// ViolationKind is the closed set of compliance violation categories.
type ViolationKind string

const (
	ViolationPTP   ViolationKind = "PTP"
	ViolationMUE   ViolationKind = "MUE"
	ViolationAddon ViolationKind = "ORPHAN_ADDON"
)

// Violation is one detected compliance issue. Codes lists the involved
// procedure codes; Detail is a human-readable explanation suitable for
// presenting to the caller as-is.
type Violation struct {
	Kind   ViolationKind
	Codes  []string
	Detail string
}

func (v Violation) String() string {
	return fmt.Sprintf("%s [%s]: %s", v.Kind, strings.Join(v.Codes, ", "), v.Detail)
}
