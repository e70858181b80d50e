package framework

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the three failure kinds a run can report.
var (
	ErrConfig             = errors.New("invalid configuration")
	ErrInputFormat        = errors.New("malformed input graph")
	ErrInfeasibleBackbone = errors.New("infeasible backbone")
)

// Graph construction errors. They are wrapped into an InputFormatError by the
// parser, but NewGraph returns them bare so programmatic callers can match them.
var (
	ErrNoVertices      = errors.New("graph has no vertices")
	ErrVertexRange     = errors.New("vertex out of range")
	ErrSelfLoop        = errors.New("self-loop edge")
	ErrBackboneSize    = errors.New("backbone size does not match vertex count")
	ErrNegativeLabel   = errors.New("negative backbone label")
	ErrEmptyLabelRange = errors.New("empty label range")
)

// ConfigError reports invalid run parameters.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("%v: %v", ErrConfig, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

func (e *ConfigError) Is(target error) bool { return target == ErrConfig }

// InputFormatError reports a malformed graph file. Line and Column are 1-based;
// zero means the position is unknown.
type InputFormatError struct {
	Line   int
	Column int
	Err    error
}

func (e *InputFormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("%v (line %d, column %d): %v", ErrInputFormat, e.Line, e.Column, e.Err)
	}
	return fmt.Sprintf("%v: %v", ErrInputFormat, e.Err)
}

func (e *InputFormatError) Unwrap() error { return e.Err }

func (e *InputFormatError) Is(target error) bool { return target == ErrInputFormat }

// InfeasibleBackboneWarning lists fixed vertex pairs whose labels already
// violate the separation constraints. It never aborts a run.
type InfeasibleBackboneWarning struct {
	// Pairs holds 0-based vertex pairs (u < v).
	Pairs [][2]int
}

func (w *InfeasibleBackboneWarning) Error() string {
	parts := make([]string, 0, len(w.Pairs))
	for i, p := range w.Pairs {
		if i == 5 {
			parts = append(parts, fmt.Sprintf("and %d more", len(w.Pairs)-i))
			break
		}
		parts = append(parts, fmt.Sprintf("%d-%d", p[0]+1, p[1]+1))
	}
	return fmt.Sprintf("%v: fixed vertices violate separation: %s", ErrInfeasibleBackbone, strings.Join(parts, ", "))
}

func (w *InfeasibleBackboneWarning) Is(target error) bool { return target == ErrInfeasibleBackbone }
