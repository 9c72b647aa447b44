package grading

import "errors"

// Errors returned by the grading computations. Sparse data (no grades, zero
// credits) is never an error: callers get a well-defined zero/nil result so
// "ungraded" stays distinguishable from "failing".
var (
	// ErrInvalidGradeInput indicates malformed grade data: non-positive
	// points possible, negative points earned, or a letter grade unknown
	// to the scale in use.
	ErrInvalidGradeInput = errors.New("invalid grade input")

	// ErrInvalidConfiguration indicates a malformed grading scale or
	// course weight configuration. Detected eagerly when the scale or
	// config is constructed, before any per-student computation runs.
	ErrInvalidConfiguration = errors.New("invalid grading configuration")
)
