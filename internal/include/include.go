// Package include resolves <!-- include: path --> directives by splicing the
// referenced files into the source before compilation, keeping the compiler
// itself free of I/O. Missing files, cycles, and runaway nesting each surface
// as a distinct error kind rather than silent omission.
package include

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// ErrorKind classifies include expansion failures.
type ErrorKind string

const (
	ErrNotFound ErrorKind = "include_not_found"
	ErrCycle    ErrorKind = "include_cycle"
	ErrTooDeep  ErrorKind = "include_too_deep"
)

// Error reports one include expansion failure with the path chain that led
// to it.
type Error struct {
	Kind  ErrorKind
	Path  string
	Chain []string
	Err   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Kind, e.Path)
	if len(e.Chain) > 0 {
		msg += " (included via " + strings.Join(e.Chain, " -> ") + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

// AsError unwraps err into a *Error when it is one.
func AsError(err error) (*Error, bool) {
	var ie *Error
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}

// Loader resolves an include path to its text.
type Loader interface {
	Load(path string) (string, error)
}

// FSLoader loads include targets from a root directory. Paths that escape
// the root are rejected as not found.
type FSLoader struct {
	root string
}

// NewFSLoader creates a loader rooted at dir.
func NewFSLoader(dir string) *FSLoader {
	return &FSLoader{root: dir}
}

// Load reads the file at path, resolved under the loader's root.
func (l *FSLoader) Load(path string) (string, error) {
	full := filepath.Join(l.root, filepath.Clean("/"+path))
	data, err := os.ReadFile(full)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DefaultMaxDepth bounds include nesting when no limit is configured.
const DefaultMaxDepth = 10

var includePattern = regexp.MustCompile(`^\s*<!--\s*include\s*:\s*(.*?)\s*-->\s*$`)

// Expander splices include targets into source text ahead of compilation.
type Expander struct {
	loader   Loader
	maxDepth int
}

// NewExpander creates an expander using loader, nesting at most maxDepth
// levels (DefaultMaxDepth when maxDepth is not positive).
func NewExpander(loader Loader, maxDepth int) *Expander {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Expander{loader: loader, maxDepth: maxDepth}
}

// Expand replaces every include directive line with the loaded file content,
// recursively, and returns the fully expanded source.
func (e *Expander) Expand(source string) (string, error) {
	return e.expand(source, nil)
}

func (e *Expander) expand(source string, chain []string) (string, error) {
	lines := strings.Split(source, "\n")
	var out []string

	for _, line := range lines {
		m := includePattern.FindStringSubmatch(line)
		if m == nil {
			out = append(out, line)
			continue
		}
		path := m[1]

		if len(chain) >= e.maxDepth {
			return "", &Error{Kind: ErrTooDeep, Path: path, Chain: chain}
		}
		for _, seen := range chain {
			if seen == path {
				return "", &Error{Kind: ErrCycle, Path: path, Chain: chain}
			}
		}

		text, err := e.loader.Load(path)
		if err != nil {
			return "", &Error{Kind: ErrNotFound, Path: path, Chain: chain, Err: err}
		}
		expanded, err := e.expand(strings.ReplaceAll(text, "\r\n", "\n"), append(chain, path))
		if err != nil {
			return "", err
		}
		out = append(out, expanded)
	}
	return strings.Join(out, "\n"), nil
}
