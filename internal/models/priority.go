package models

import (
	"fmt"
	"slices"
)

// Priority represents the priority of a task
type Priority string

const (
	PriorityNormal Priority = "normal"
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

var priorities = [...]Priority{PriorityNormal, PriorityLow, PriorityMedium, PriorityHigh}

// Priorities returns the permitted priority values in display order.
func Priorities() []Priority {
	return slices.Clone(priorities[:])
}

// Valid reports whether p is one of the permitted values.
func (p Priority) Valid() bool {
	return slices.Contains(priorities[:], p)
}

// ParsePriority converts s into a Priority. The empty string maps to PriorityNormal.
func ParsePriority(s string) (Priority, error) {
	if s == "" {
		return PriorityNormal, nil
	}
	p := Priority(s)
	if !p.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidPriority, s)
	}
	return p, nil
}
