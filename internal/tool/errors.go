package tool

import (
	"errors"
	"regexp"
	"strings"
)

// Sentinel errors. Every failure returned by [ExecRunner.Run] and the
// converters matches exactly one of these via errors.Is.
var (
	ErrToolNotFound  = errors.New("tool not found")
	ErrToolFailed    = errors.New("tool exited with an error")
	ErrToolTimeout   = errors.New("tool timed out")
	ErrToolCanceled  = errors.New("tool canceled")
	ErrOutputMissing = errors.New("tool reported success but wrote no output")
)

// Pre-compiled regex for stderr that means the program or package could not
// be resolved, even though the launcher itself (npx, sh) started fine.
var reNotFound = regexp.MustCompile(
	`(?i)command not found|: not found|` +
		`could not determine executable to run|` +
		`npm ERR! 404|npm error 404|` +
		`No such file or directory.*(npx|node)`)

// MatchNotFound reports whether stderr says the tool could not be resolved.
func MatchNotFound(stderr string) bool {
	return reNotFound.MatchString(stderr)
}

// Error describes one failed invocation. Kind is one of the package
// sentinels; Err is the underlying os/exec or context error.
type Error struct {
	Kind     error
	Command  string
	ExitCode int
	Stderr   string
	Err      error
}

// Error returns "<command>: <cause>: <stderr>", with stderr verbatim
// (trimmed) so the tool's own message reaches the user unchanged.
func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Command)
	b.WriteString(": ")
	if e.Err != nil {
		b.WriteString(e.Err.Error())
	} else {
		b.WriteString(e.Kind.Error())
	}
	if s := strings.TrimSpace(e.Stderr); s != "" {
		b.WriteString(": ")
		b.WriteString(s)
	}
	return b.String()
}

// Unwrap exposes both the sentinel kind and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}
