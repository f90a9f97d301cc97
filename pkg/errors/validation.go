package errors

import (
	"strings"
	"unicode"
)

// MaxNameLength bounds solver names and record identifiers accepted from
// untrusted input.
const MaxNameLength = 64

// ValidateSolverName checks that name is one of known, ignoring case.
// Known names are compared after trimming surrounding whitespace.
func ValidateSolverName(name string, known []string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return New(ErrCodeInvalidSolver, "solver name cannot be empty")
	}
	if len(name) > MaxNameLength {
		return New(ErrCodeInvalidSolver, "solver name too long (max %d characters)", MaxNameLength)
	}
	for _, k := range known {
		if strings.EqualFold(k, name) {
			return nil
		}
	}
	return New(ErrCodeInvalidSolver, "unknown solver %q (expected one of %s)", name, strings.Join(known, ", "))
}

// ValidateRecordID validates an identifier used to look up stored solve
// records. Identifiers are opaque but must be short, printable and free of
// path separators, since the file store uses them as file names.
func ValidateRecordID(id string) error {
	if id == "" {
		return New(ErrCodeInvalidInput, "record id cannot be empty")
	}
	if len(id) > MaxNameLength {
		return New(ErrCodeInvalidInput, "record id too long (max %d characters)", MaxNameLength)
	}
	for _, r := range id {
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return New(ErrCodeInvalidInput, "record id contains invalid characters")
		}
	}
	if strings.ContainsAny(id, "/\\") || strings.Contains(id, "..") {
		return New(ErrCodeInvalidInput, "record id contains path characters")
	}
	return nil
}

// ValidateArenaSize rejects arenas larger than limit. A limit of zero or less
// disables the check.
func ValidateArenaSize(nodes, limit int) error {
	if limit > 0 && nodes > limit {
		return New(ErrCodeInvalidInput, "arena has %d nodes (max %d)", nodes, limit)
	}
	return nil
}
