package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"source.hodakov.me/hdkv/vid2audio/internal/formats"
)

// Prompter asks the user for the values the command line did not provide.
type Prompter struct {
	in  *bufio.Reader
	out io.Writer
}

func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// SourceDirectory asks until the answer is an existing directory. A number
// picks one of the recent directories.
func (p *Prompter) SourceDirectory(recent []string) (string, error) {
	if len(recent) > 0 {
		fmt.Fprintln(p.out, "Recent source directories:")

		for i, dir := range recent {
			fmt.Fprintf(p.out, "  %d) %s\n", i+1, dir)
		}
	}

	for {
		answer, err := p.ask("Source directory: ")
		if err != nil {
			return "", err
		}

		if answer == "" {
			continue
		}

		if index, err := strconv.Atoi(answer); err == nil && index >= 1 && index <= len(recent) {
			answer = recent[index-1]
		}

		info, err := os.Stat(answer)
		if err != nil {
			fmt.Fprintf(p.out, "Directory %q does not exist, try again.\n", answer)

			continue
		}

		if !info.IsDir() {
			fmt.Fprintf(p.out, "%q is not a directory, try again.\n", answer)

			continue
		}

		return answer, nil
	}
}

// Format lists the supported formats and asks until the answer parses.
func (p *Prompter) Format() (formats.Format, error) {
	fmt.Fprintln(p.out, "Output formats:")

	for i, format := range formats.List() {
		fmt.Fprintf(p.out, "  %d) %s\n", i+1, format.Description())
	}

	for {
		answer, err := p.ask(fmt.Sprintf("Format [1-%d]: ", len(formats.List())))
		if err != nil {
			return 0, err
		}

		format, err := formats.Parse(answer)
		if err != nil {
			fmt.Fprintf(p.out, "%v, try again.\n", err)

			continue
		}

		return format, nil
	}
}

func (p *Prompter) ask(question string) (string, error) {
	fmt.Fprint(p.out, question)

	line, err := p.in.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) != "" {
				return strings.TrimSpace(line), nil
			}

			return "", fmt.Errorf("%w: %w", ErrUI, ErrNoInput)
		}

		return "", fmt.Errorf("%w: %w (%w)", ErrUI, ErrFailedToPrompt, err)
	}

	return strings.TrimSpace(line), nil
}
