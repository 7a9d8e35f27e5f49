package models

import (
	"fmt"
	"strings"
	"unicode/utf8"

	dErrors "scaffold/pkg/domain-errors"
)

// MaxNameLength is counted in characters after trimming.
const MaxNameLength = 100

// Name is a validated example name. The zero value is not valid; build one
// with NewName.
type Name struct {
	value string
}

// NewName trims raw and validates it.
func NewName(raw string) (Name, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return Name{}, dErrors.New(dErrors.CodeValidation, "name cannot be empty")
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return Name{}, dErrors.New(dErrors.CodeValidation, fmt.Sprintf("name cannot exceed %d characters", MaxNameLength))
	}
	return Name{value: trimmed}, nil
}

func (n Name) String() string {
	return n.value
}

func (n Name) Equals(other Name) bool {
	return n.value == other.value
}
