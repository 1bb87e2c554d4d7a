package buem

import "fmt"

// ConfigurationError reports malformed or physically inconsistent building
// input. It is always raised before the first simulation step.
type ConfigurationError struct {
	Building  string // building identifier, may be empty for ad-hoc runs
	Component string // offending component or element id, may be empty
	Reason    string
}

func (e *ConfigurationError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("configuration error (building %q, component %q): %s", e.Building, e.Component, e.Reason)
	}
	return fmt.Sprintf("configuration error (building %q): %s", e.Building, e.Reason)
}

func newConfigurationError(building, component, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{
		Building:  building,
		Component: component,
		Reason:    fmt.Sprintf(format, args...),
	}
}

// DataAlignmentError reports input series whose lengths or timestamps do not
// line up. Detected before the recurrence runs.
type DataAlignmentError struct {
	Building string
	Reason   string
}

func (e *DataAlignmentError) Error() string {
	return fmt.Sprintf("data alignment error (building %q): %s", e.Building, e.Reason)
}

func newDataAlignmentError(building, format string, args ...interface{}) *DataAlignmentError {
	return &DataAlignmentError{Building: building, Reason: fmt.Sprintf(format, args...)}
}

// NumericalSolveError reports a degenerate per-step solve or a non-finite
// value in a result series. Fatal for the building it occurred in.
type NumericalSolveError struct {
	Building string
	Step     int // step index n at which the solve failed
	Reason   string
}

func (e *NumericalSolveError) Error() string {
	return fmt.Sprintf("numerical solve error (building %q, step %d): %s", e.Building, e.Step, e.Reason)
}

func newNumericalSolveError(building string, step int, format string, args ...interface{}) *NumericalSolveError {
	return &NumericalSolveError{Building: building, Step: step, Reason: fmt.Sprintf(format, args...)}
}

// SolverInfeasibleError reports that the horizon optimizer could not satisfy
// the comfort constraints within the equipment limits. The window start step
// localizes the violated constraints; the error is never retried internally.
type SolverInfeasibleError struct {
	Building    string
	WindowStart int // first step of the infeasible window
	WindowEnd   int // one past the last step of the infeasible window
	Reason      string
}

func (e *SolverInfeasibleError) Error() string {
	return fmt.Sprintf("solver infeasible (building %q, steps %d..%d): %s",
		e.Building, e.WindowStart, e.WindowEnd, e.Reason)
}
