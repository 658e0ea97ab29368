package engine

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

// Input supplies one answer per turn. Next returns io.EOF when no answers
// are left.
type Input interface {
	Next(ctx context.Context) (string, error)
}

// LineInput reads answers line by line, typically from stdin. Reads happen
// on a separate goroutine so a cancelled context is noticed while waiting.
// Close releases that goroutine once it next has a line to deliver; a read
// already blocked on r only returns when r does.
type LineInput struct {
	r         io.Reader
	once      sync.Once
	closeOnce sync.Once
	lines     chan line
	done      chan struct{}
}

type line struct {
	text string
	err  error
}

func NewLineInput(r io.Reader) *LineInput {
	return &LineInput{r: r, lines: make(chan line), done: make(chan struct{})}
}

func (in *LineInput) read() {
	defer close(in.lines)
	scanner := bufio.NewScanner(in.r)
	for scanner.Scan() {
		if !in.send(line{text: scanner.Text()}) {
			return
		}
	}
	if err := scanner.Err(); err != nil {
		in.send(line{err: fmt.Errorf("read answer: %w", err)})
	}
}

func (in *LineInput) send(l line) bool {
	select {
	case in.lines <- l:
		return true
	case <-in.done:
		return false
	}
}

func (in *LineInput) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	select {
	case <-in.done:
		return "", io.EOF
	default:
	}
	in.once.Do(func() { go in.read() })

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l, ok := <-in.lines:
		if !ok {
			return "", io.EOF
		}
		return l.text, l.err
	}
}

// Close stops delivering lines. Next returns io.EOF afterwards.
func (in *LineInput) Close() error {
	in.closeOnce.Do(func() { close(in.done) })
	return nil
}

// Script is the YAML form of a prepared list of answers:
//
//	answers:
//	  - "Retirement"
//	  - "2"
type Script struct {
	Answers []string `yaml:"answers"`
}

// ScriptInput replays prepared answers in order.
type ScriptInput struct {
	answers []string
	next    int
}

func NewScriptInput(answers ...string) *ScriptInput {
	return &ScriptInput{answers: answers}
}

func ParseScript(r io.Reader) (*ScriptInput, error) {
	var script Script
	if err := yaml.NewDecoder(r).Decode(&script); err != nil {
		return nil, fmt.Errorf("decode script: %w", err)
	}
	return NewScriptInput(script.Answers...), nil
}

func LoadScript(path string) (*ScriptInput, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open script: %w", err)
	}
	defer f.Close()
	return ParseScript(f)
}

func (in *ScriptInput) Next(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if in.next >= len(in.answers) {
		return "", io.EOF
	}
	answer := in.answers[in.next]
	in.next++
	return answer, nil
}
