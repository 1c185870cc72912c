package main

import (
	"context"
	"io"
	"os"
	"time"

	md2docx "github.com/alnah/go-md2docx"
)

// DocumentConverter is the conversion service used by the batch.
type DocumentConverter interface {
	Convert(ctx context.Context, input md2docx.Input) (*md2docx.ConvertResult, error)
	Close() error
}

// Compile-time interface implementation check.
var _ DocumentConverter = (*md2docx.Converter)(nil)

// Environment holds injectable dependencies for testability.
// Includes I/O, time, and the converter factory.
type Environment struct {
	Now          func() time.Time
	Stdout       io.Writer
	Stderr       io.Writer
	NewConverter func(opts ...md2docx.Option) (DocumentConverter, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		NewConverter: func(opts ...md2docx.Option) (DocumentConverter, error) {
			return md2docx.NewConverter(opts...)
		},
	}
}
