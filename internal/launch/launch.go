// Package launch turns a descriptor's Exec template into a running process.
package launch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/google/shlex"
)

// DefaultExitCode is returned when no child ran or it did not exit normally.
const DefaultExitCode = 0

// ErrEmptyCommand is returned when a template has nothing left to run once
// field codes are removed.
var ErrEmptyCommand = errors.New("empty command")

// Error reports a failed launch step.
type Error struct {
	Op      string // "parse", "lookup", "start" or "wait"
	Command string
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("launch %s %q: %v", e.Op, e.Command, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// fieldCodes are the Exec placeholders for arguments the launcher never
// supplies.
var fieldCodes = map[byte]bool{
	'f': true, 'F': true, 'u': true, 'U': true,
	'd': true, 'D': true, 'n': true, 'N': true,
	'i': true, 'c': true, 'k': true, 'v': true, 'm': true,
}

// StripFieldCodes removes field-code placeholders from args. Arguments that
// are only a field code are dropped; codes embedded in a longer argument are
// removed from it; "%%" becomes a literal "%".
func StripFieldCodes(args []string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if len(a) == 2 && a[0] == '%' && fieldCodes[a[1]] {
			continue
		}
		out = append(out, expandPercent(a))
	}
	return out
}

func expandPercent(s string) string {
	if !strings.Contains(s, "%") {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] != '%' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}
		next := s[i+1]
		switch {
		case next == '%':
			b.WriteByte('%')
			i++
		case fieldCodes[next]:
			i++
		default:
			b.WriteByte('%')
		}
	}
	return b.String()
}

// Args tokenizes an Exec template with shell quoting rules and removes field
// codes.
func Args(raw string) ([]string, error) {
	tokens, err := shlex.Split(raw)
	if err != nil {
		return nil, &Error{Op: "parse", Command: raw, Err: err}
	}
	args := StripFieldCodes(tokens)
	if len(args) == 0 {
		return nil, &Error{Op: "parse", Command: raw, Err: ErrEmptyCommand}
	}
	return args, nil
}

// Options wires the child's standard streams. Nil streams inherit the
// launcher's own.
type Options struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *log.Logger

	// Settle, if set, runs after a command arrives and before it is started.
	// The picker uses it to give the terminal back first.
	Settle func() error
}

// Run starts the command described by raw, waits for it, and returns its exit
// code. A child killed by a signal yields DefaultExitCode.
func Run(raw string, opts Options) (int, error) {
	args, err := Args(raw)
	if err != nil {
		return DefaultExitCode, err
	}

	path, err := exec.LookPath(args[0])
	if err != nil {
		return DefaultExitCode, &Error{Op: "lookup", Command: raw, Err: err}
	}

	cmd := exec.Command(path, args[1:]...)
	cmd.Args[0] = args[0]
	cmd.Stdin = orReader(opts.Stdin, os.Stdin)
	cmd.Stdout = orWriter(opts.Stdout, os.Stdout)
	cmd.Stderr = orWriter(opts.Stderr, os.Stderr)

	if opts.Logger != nil {
		opts.Logger.Debug("launching", "path", path, "args", args[1:])
	}
	if err := cmd.Start(); err != nil {
		return DefaultExitCode, &Error{Op: "start", Command: raw, Err: err}
	}

	err = cmd.Wait()
	if err == nil {
		return cmd.ProcessState.ExitCode(), nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Exited() {
			return exitErr.ExitCode(), nil
		}
		return DefaultExitCode, nil
	}
	return DefaultExitCode, &Error{Op: "wait", Command: raw, Err: err}
}

// Coordinate waits for the handoff to deliver a command and runs it.
// launched is false when the handoff closed (or ctx ended) without a command;
// the exit code is then DefaultExitCode.
func Coordinate(ctx context.Context, h *Handoff, opts Options) (code int, launched bool, err error) {
	raw, ok := h.Wait(ctx)
	if !ok {
		return DefaultExitCode, false, nil
	}
	if opts.Settle != nil {
		if err := opts.Settle(); err != nil {
			return DefaultExitCode, false, fmt.Errorf("settle before launch: %w", err)
		}
	}
	code, err = Run(raw, opts)
	return code, true, err
}

func orReader(r, def io.Reader) io.Reader {
	if r == nil {
		return def
	}
	return r
}

func orWriter(w, def io.Writer) io.Writer {
	if w == nil {
		return def
	}
	return w
}
