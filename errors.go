package slidegen

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSlides is returned when the content has no slides to render.
	ErrNoSlides = errors.New("presentation has no slides")
	// ErrTemplateNotFound is returned when the template file does not exist.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrDestination is returned when the output file cannot be created.
	ErrDestination = errors.New("cannot create output")
	// ErrInvalidPackage is returned when a template is not a usable PPTX package.
	ErrInvalidPackage = errors.New("invalid presentation package")
)

// StageError wraps a fatal fault with the pipeline stage that failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

func stageErr(stage string, err error) error {
	if err == nil {
		return nil
	}
	var se *StageError
	if errors.As(err, &se) {
		return err
	}
	return &StageError{Stage: stage, Err: err}
}
