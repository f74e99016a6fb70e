package config

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
)

// Sources reported by ParseError.
const (
	SourceCommandLine = "command line"
	SourceEnvironment = "environment"
	SourceFile        = "file"
)

var (
	// ErrHelp is returned by command-line loading when help was requested.
	// No config is produced; it is not a failure.
	ErrHelp = pflag.ErrHelp

	// ErrNotSupported is returned by file-based loading and saving when no
	// implementation exists for the requested format.
	ErrNotSupported = errors.New("not supported")
)

// ParseError reports a malformed value in a configuration source.
type ParseError struct {
	Source string // SourceCommandLine, SourceEnvironment or SourceFile
	Field  string // flag or variable name, when known
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: %v", e.Source, e.Err)
	}
	return fmt.Sprintf("%s: invalid value %q for %s: %v", e.Source, e.Value, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Loader produces a new configuration from one source.
type Loader interface {
	LoadFromCommandLine(args []string) (*InferenceConfig, error)
	LoadFromEnvironment() (*InferenceConfig, error)
	LoadFromFile(path string) (*InferenceConfig, error)
	CreateDefault() (*InferenceConfig, error)
}

// DefaultLoader reads flags and INFERENCE_* environment variables. It does
// not read files.
type DefaultLoader struct {
	// Output receives usage text when help is requested. Defaults to stdout.
	Output io.Writer
}

var _ Loader = (*DefaultLoader)(nil)

// LoadFromFile always fails; file formats are handled by serializers.
func (l *DefaultLoader) LoadFromFile(path string) (*InferenceConfig, error) {
	return nil, fmt.Errorf("loading %q: JSON/YAML config files: %w", path, ErrNotSupported)
}

// CreateDefault returns a config with every field at its default.
func (l *DefaultLoader) CreateDefault() (*InferenceConfig, error) {
	return NewInferenceConfig(), nil
}

func (l *DefaultLoader) output() io.Writer {
	if l.Output == nil {
		return os.Stdout
	}
	return l.Output
}
