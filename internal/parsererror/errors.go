// Package parsererror defines the typed errors raised while reading the kitchen workbook.
package parsererror

import "fmt"

// ParseError represents a cell that could not be converted to the expected type.
type ParseError struct {
	Sheet  string
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s row %d: failed to parse %s='%s': %v",
		e.Sheet, e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// MissingSheetError is returned when a source has no sheet with the requested name.
type MissingSheetError struct {
	Sheet  string
	Source string
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("could not find sheet '%s' in %s", e.Sheet, e.Source)
}

// MissingColumnError is returned when a required header is absent from a sheet.
type MissingColumnError struct {
	Sheet  string
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("could not find column '%s' in sheet '%s'", e.Column, e.Sheet)
}

// ValidationError represents a sheet whose structure is unusable as a whole.
type ValidationError struct {
	Sheet  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed for sheet '%s': %s", e.Sheet, e.Reason)
}

// MalformedIntervalError describes a residency row that was left out of the allocation.
type MalformedIntervalError struct {
	Sheet  string
	Row    int
	Name   string
	Room   string
	Reason string
	Err    error
}

func (e *MalformedIntervalError) Error() string {
	msg := fmt.Sprintf("%s row %d: invalid residency for name=%s, room=%s: %s",
		e.Sheet, e.Row, e.Name, e.Room, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedIntervalError) Unwrap() error {
	return e.Err
}
