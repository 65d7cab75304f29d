package fare

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNegativeAge is returned when classifying an age below zero.
var ErrNegativeAge = errors.New("age cannot be negative")

// ErrUnknownCategory is returned when parsing a name that is not a fare category.
var ErrUnknownCategory = errors.New("unknown fare category")

// Category is an age-based ticket class.
type Category string

const (
	Child  Category = "CHILD"
	Teen   Category = "TEEN"
	Adult  Category = "ADULT"
	Senior Category = "SENIOR"
)

// Categories lists every fare category in name order.
var Categories = []Category{Adult, Child, Senior, Teen}

// Counts holds the number of tickets per category in one transaction.
type Counts map[Category]int

// Total sums the tickets across every category.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// String implements fmt.Stringer.
func (c Category) String() string { return string(c) }

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case Child, Teen, Adult, Senior:
		return true
	default:
		return false
	}
}

// ParseCategory converts a case-insensitive name into a Category.
func ParseCategory(value string) (Category, error) {
	c := Category(strings.ToUpper(strings.TrimSpace(value)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownCategory, value)
	}
	return c, nil
}

// Classify maps an age to its fare category. Upper bounds are inclusive.
func Classify(age int) (Category, error) {
	switch {
	case age < 0:
		return "", ErrNegativeAge
	case age <= 10:
		return Child, nil
	case age <= 17:
		return Teen, nil
	case age <= 64:
		return Adult, nil
	default:
		return Senior, nil
	}
}
