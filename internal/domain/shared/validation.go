package shared

import (
	"errors"
	"strings"
	"unicode/utf8"
)

// Field limits shared by Status and UOM.
const (
	NameMaxLength        = 50
	DescriptionMaxLength = 200
)

// Field validation errors, worded as field: constraint.
var (
	ErrNameBlank          = errors.New("name: must not be blank")
	ErrNameTooLong        = errors.New("name: size must be between 0 and 50")
	ErrDescriptionTooLong = errors.New("description: size must be between 0 and 200")
)

// ValidateName checks that name is non-blank and at most NameMaxLength characters.
func ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return InvalidData(ErrNameBlank)
	}
	if utf8.RuneCountInString(name) > NameMaxLength {
		return InvalidData(ErrNameTooLong)
	}
	return nil
}

// ValidateDescription checks that description is at most DescriptionMaxLength characters.
func ValidateDescription(description string) error {
	if utf8.RuneCountInString(description) > DescriptionMaxLength {
		return InvalidData(ErrDescriptionTooLong)
	}
	return nil
}
