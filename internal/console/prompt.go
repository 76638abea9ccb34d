package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	defaultSelectorRowLength = 80
	defaultSelectorRowCount  = 5
)

type promptValidator func(string) (bool, string)

type promptConfig struct {
	tries     int
	validator promptValidator
}

type promptOption func(*promptConfig)

func WithValidator(v promptValidator) promptOption {
	return func(cfg *promptConfig) {
		cfg.validator = v
	}
}

func WithMaxTries(i int) promptOption {
	return func(cfg *promptConfig) {
		cfg.tries = i
	}
}

// Prompt writes prompt and reads one line, repeating while the validator
// rejects the input.
func Prompt(r *bufio.Reader, w io.Writer, prompt string, opts ...promptOption) (string, error) {
	config := &promptConfig{}
	for _, opt := range opts {
		opt(config)
	}

	tries := 0
	for {
		if _, err := io.WriteString(w, prompt); err != nil {
			return "", err
		}

		line, err := r.ReadString('\n')
		if err != nil && (err != io.EOF || line == "") {
			return "", err
		}
		input := strings.TrimSpace(line)

		if config.validator != nil {
			ok, msg := config.validator(input)
			if !ok {
				io.WriteString(w, msg)

				tries++
				if config.tries > 0 && config.tries == tries {
					return "", fmt.Errorf("too many tries")
				}
				continue
			}
		}

		return input, nil
	}
}

func PromptYN(r *bufio.Reader, w io.Writer, prompt string) (bool, error) {
	str, err := Prompt(r, w, prompt, WithMaxTries(3), WithValidator(
		func(str string) (bool, string) {
			switch strings.ToLower(str) {
			case "y", "yes", "n", "no":
				return true, ""
			default:
				return false, "enter 'yes' or 'no'\n"
			}
		},
	))
	if err != nil {
		return false, err
	}

	switch strings.ToLower(str) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

type option[T any] struct {
	label string
	val   T
}

// selector lays numbered options out in columns, filling each column top to
// bottom before moving right.
type selector[T any] struct {
	options []option[T]
	output  []string
}

func newSelector[T any]() *selector[T] {
	return &selector[T]{}
}

func (s *selector[T]) add(label string, val T) {
	s.options = append(s.options, option[T]{label: label, val: val})
}

func (s *selector[T]) Prompt(r *bufio.Reader, w io.Writer, prompt string) (T, error) {
	s.build()

	fmt.Fprintf(w, "%s\n", prompt)
	for _, str := range s.output {
		if len(str) > 0 {
			fmt.Fprintf(w, "%s\n", strings.TrimRight(str, " "))
		}
	}

	var zero T
	selection, err := Prompt(r, w, "Make your selection: ", WithMaxTries(3), WithValidator(
		func(str string) (bool, string) {
			i, err := strconv.Atoi(str)
			if err != nil || i < 1 || i > len(s.options) {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return zero, err
	}

	i, err := strconv.Atoi(selection)
	if err != nil {
		return zero, err
	}
	return s.options[i-1].val, nil
}

func (s *selector[T]) build() {
	colWidth := 1
	for _, v := range s.options {
		// number and spacing: "nn. <val>  "
		if l := len(v.label) + 7; l > colWidth {
			colWidth = l
		}
	}

	numCols := max(defaultSelectorRowLength/colWidth, 1)
	numRows := max((len(s.options)+numCols-1)/numCols, defaultSelectorRowCount)

	rows := make([]string, numRows)
	for i, v := range s.options {
		rows[i%numRows] += fmt.Sprintf("%2d. %-*s  ", i+1, colWidth-5, v.label)
	}
	s.output = rows
}
