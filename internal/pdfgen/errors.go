// Package pdfgen turns a resume bundle into PDF bytes using one of several engines.
package pdfgen

import "fmt"

// Error represents a general PDF generation failure
type Error struct {
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("pdf error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("pdf error: %s", e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// CompilationError represents a LaTeX compilation failure
type CompilationError struct {
	Message   string
	LogOutput string
	Cause     error
}

func (e *CompilationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("LaTeX compilation error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("LaTeX compilation error: %s", e.Message)
}

func (e *CompilationError) Unwrap() error {
	return e.Cause
}

// UnknownEngineError is returned by Select for an unsupported engine name
type UnknownEngineError struct {
	Name string
}

func (e *UnknownEngineError) Error() string {
	return fmt.Sprintf("unknown pdf engine %q (want one of: %s, %s, %s)", e.Name, EngineLaTeX, EngineChrome, EngineNative)
}
