package export

import (
	"errors"
	"fmt"
)

// ErrEmptyGrid is returned when a sheet is composed against a grid without
// any timeline columns.
var ErrEmptyGrid = errors.New("timeline grid has no columns")

// IOError is the one fatal export failure: serializing or saving the
// workbook did not complete.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("export %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// LayoutWarning records a computed position that fell outside the sheet and
// was clamped.
type LayoutWarning struct {
	TaskID    string `json:"task_id,omitempty"`
	Row       int    `json:"row"`
	Col       int    `json:"col"`
	ClampedTo int    `json:"clamped_to"`
	Reason    string `json:"reason"`
}

func (w LayoutWarning) String() string {
	if w.TaskID == "" {
		return fmt.Sprintf("row %d col %d: %s (clamped to %d)", w.Row, w.Col, w.Reason, w.ClampedTo)
	}
	return fmt.Sprintf("task %s row %d col %d: %s (clamped to %d)", w.TaskID, w.Row, w.Col, w.Reason, w.ClampedTo)
}
