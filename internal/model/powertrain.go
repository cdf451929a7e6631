// Package model defines the sales data structures shared across the application.
package model

import "strings"

// TypeKey identifies a powertrain category.
type TypeKey string

// Powertrain categories, in stacking order.
const (
	TypeHEV  TypeKey = "HEV"
	TypePHEV TypeKey = "PHEV"
	TypeBEV  TypeKey = "BEV"
	TypeFCEV TypeKey = "FCEV"
)

// TypeKeys is the fixed order in which type bands are stacked.
var TypeKeys = []TypeKey{TypeHEV, TypePHEV, TypeBEV, TypeFCEV}

// String returns the key as written in the sheet header.
func (t TypeKey) String() string {
	return string(t)
}

// IsValid reports whether t is one of the four known categories.
func (t TypeKey) IsValid() bool {
	switch t {
	case TypeHEV, TypePHEV, TypeBEV, TypeFCEV:
		return true
	default:
		return false
	}
}

// ParseTypeKey matches a header cell against the known categories.
func ParseTypeKey(s string) (TypeKey, bool) {
	t := TypeKey(strings.TrimSpace(s))
	return t, t.IsValid()
}

// TypeKeyStrings returns TypeKeys as plain strings.
func TypeKeyStrings() []string {
	keys := make([]string, len(TypeKeys))
	for i, t := range TypeKeys {
		keys[i] = string(t)
	}
	return keys
}
