// Package shell implements the interactive assistant that drives an
// AddressBook one command line at a time.
package shell

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	"github.com/mesh-intelligence/addressbook/pkg/types"
)

// Messages printed by the shell.
const (
	msgWelcome        = "Welcome to the assistant bot!"
	msgGoodbye        = "Good bye!"
	msgInvalidCommand = "Invalid command."
)

// errInvalidCommand marks unknown commands, bad flags and wrong arity.
var errInvalidCommand = errors.New("invalid command")

// Shell reads commands and applies them to an AddressBook.
// A Shell is not safe for concurrent use.
type Shell struct {
	book   *types.AddressBook
	cfg    Config
	logger log.Logger
	done   bool
}

// New returns a Shell operating on book. A nil logger discards log output.
func New(book *types.AddressBook, cfg Config, logger log.Logger) *Shell {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Shell{book: book, cfg: cfg, logger: logger}
}

// Book returns the address book the shell operates on.
func (s *Shell) Book() *types.AddressBook {
	return s.book
}

// Done reports whether an exit command has been executed.
func (s *Shell) Done() bool {
	return s.done
}

// Run prompts for and executes lines from in until an exit command or end
// of input. Output goes to out.
func (s *Shell) Run(in io.Reader, out io.Writer) error {
	s.done = false
	fmt.Fprintln(out, msgWelcome)

	r := bufio.NewReader(in)
	for !s.done {
		fmt.Fprint(out, s.cfg.Prompt)
		line, tooLong, err := readLine(r)
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(out)
			fmt.Fprintln(out, msgGoodbye)
			level.Debug(s.logger).Log("msg", "end of input")
			return nil
		}
		if err != nil {
			return fmt.Errorf("read command: %w", err)
		}
		if tooLong {
			level.Warn(s.logger).Log("msg", "invalid command", "err", "line too long", "limit", maxLineLen)
			fmt.Fprintln(out, msgInvalidCommand)
			continue
		}
		if err := s.Exec(line, out); err != nil {
			return err
		}
	}
	return nil
}

// maxLineLen bounds a single command line in bytes.
const maxLineLen = 64 * 1024

// readLine returns the next line from r without its terminator. A line
// longer than maxLineLen is consumed to its end and reported as tooLong.
// Returns io.EOF only when no input is left.
func readLine(r *bufio.Reader) (line string, tooLong bool, err error) {
	var buf []byte
	for {
		chunk, isPrefix, err := r.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) && (len(buf) > 0 || tooLong) {
				return string(buf), tooLong, nil
			}
			return "", false, err
		}
		if !tooLong {
			if len(buf)+len(chunk) > maxLineLen {
				tooLong = true
				buf = nil
			} else {
				buf = append(buf, chunk...)
			}
		}
		if !isPrefix {
			return string(buf), tooLong, nil
		}
	}
}

// Exec runs a single command line. Validation and lookup failures and
// invalid commands are reported on out and are not returned; any other
// error is.
func (s *Shell) Exec(line string, out io.Writer) error {
	args := strings.Fields(line)
	if len(args) == 0 {
		return nil
	}

	root := s.newCommandTree()
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(out)

	err := root.Execute()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, types.ErrValidation), errors.Is(err, types.ErrNotFound):
		level.Warn(s.logger).Log("msg", "command rejected", "cmd", args[0], "err", err)
		fmt.Fprintln(out, userMessage(err))
		return nil
	case errors.Is(err, errInvalidCommand):
		level.Warn(s.logger).Log("msg", "invalid command", "cmd", args[0], "err", err)
		fmt.Fprintln(out, msgInvalidCommand)
		return nil
	default:
		level.Error(s.logger).Log("msg", "command failed", "cmd", args[0], "err", err)
		return fmt.Errorf("%s: %w", args[0], err)
	}
}

// userMessage capitalizes the error text for display.
func userMessage(err error) string {
	msg := err.Error()
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:] + "."
}
