package shell

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var errInputClosed = errors.New("input closed")

// line prints prompt and reads one line of input
func (s *Shell) line(prompt string) (string, error) {
	fmt.Fprint(s.out, prompt)
	if !s.in.Scan() {
		if err := s.in.Err(); err != nil {
			return "", fmt.Errorf("read input: %w", err)
		}
		fmt.Fprintln(s.out)
		return "", errInputClosed
	}
	return strings.TrimRight(s.in.Text(), "\r"), nil
}

// isNumber accepts non-empty runs of ASCII digits
func isNumber(str string) bool {
	if str == "" {
		return false
	}
	for _, c := range str {
		if c < '0' || c > '9' {
			return false
		}
	}
	return true
}

// number asks until the answer is a number of at least minimum
func (s *Shell) number(prompt string, minimum int) (int, error) {
	for {
		input, err := s.line(prompt)
		if err != nil {
			return 0, err
		}
		input = strings.TrimSpace(input)
		if !isNumber(input) {
			fmt.Fprint(s.out, "Invalid input. ")
			continue
		}
		n, err := strconv.Atoi(input)
		if err != nil {
			fmt.Fprint(s.out, "Invalid input. ")
			continue
		}
		if n < minimum {
			if minimum == 1 {
				fmt.Fprint(s.out, "Value must be greater than 0. ")
			} else {
				fmt.Fprintf(s.out, "Value must be at least %d. ", minimum)
			}
			continue
		}
		return n, nil
	}
}

// flag asks until the answer is 0 or 1
func (s *Shell) flag(prompt string) (bool, error) {
	for {
		input, err := s.line(prompt)
		if err != nil {
			return false, err
		}
		switch strings.TrimSpace(input) {
		case "0":
			return false, nil
		case "1":
			return true, nil
		}
		fmt.Fprint(s.out, "Invalid input. ")
	}
}

// name reads a free-text name; names cannot span lines so any answer is valid
func (s *Shell) name(prompt string) (string, error) {
	return s.line(prompt)
}

// pause waits for Enter when pausing is enabled
func (s *Shell) pause() error {
	if !s.opts.Pause {
		return nil
	}
	_, err := s.line("Enter to continue...")
	return err
}

// readerOrEmpty guards against a nil input
func readerOrEmpty(r io.Reader) io.Reader {
	if r == nil {
		return strings.NewReader("")
	}
	return r
}
