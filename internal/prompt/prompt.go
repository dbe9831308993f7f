// Package prompt asks the user a fixed list of questions on an interactive
// terminal and returns the answers keyed by question.
//
// Questions declare their own defaults, whether the answer should be
// remembered for the next run, a filter applied to the raw answer and a
// validator. A rejected answer is reported and the question is asked again.
package prompt

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/simonhull/firebird-suite/flugzeug/internal/logging"
	"github.com/simonhull/firebird-suite/flugzeug/internal/settings"
)

var (
	// ErrInvalidAnswer is returned when input ends while the current answer
	// still fails validation.
	ErrInvalidAnswer = errors.New("invalid answer")

	// ErrCollected is returned by a second Collect on the same collector.
	ErrCollected = errors.New("answers already collected")
)

var (
	markStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	promptStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan")).Bold(true)
	hintStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("red"))
)

// Kind selects how a question is asked and what type its answer has.
type Kind int

const (
	// Input asks for free text; the answer is a string.
	Input Kind = iota
	// Confirm asks a yes/no question; the answer is a bool.
	Confirm
)

// Question describes one prompt.
type Question struct {
	Key     string
	Message string
	Kind    Kind

	Default    string // Input default
	DefaultYes bool   // Confirm default

	// Store makes the answer the default for the same key on later runs.
	Store bool

	// Filter transforms an Input answer (typed or defaulted) before validation.
	Filter func(string) string
	// Validate rejects an Input answer after filtering.
	Validate func(string) error
}

// Result maps question keys to answers (string for Input, bool for Confirm).
type Result map[string]any

// String returns the Input answer for key, or "".
func (r Result) String(key string) string {
	s, _ := r[key].(string)
	return s
}

// Bool returns the Confirm answer for key, or false.
func (r Result) Bool(key string) bool {
	b, _ := r[key].(bool)
	return b
}

type line struct {
	text string
	err  error
}

// Collector asks questions on out and reads answers from in. A collector
// is used for a single Collect.
type Collector struct {
	in    io.Reader
	out   io.Writer
	store settings.Store
	log   zerolog.Logger

	lines   chan line
	done    chan struct{}
	stopped chan struct{}
	stop    sync.Once
	used    bool
	eof     bool
}

// NewCollector creates a collector. store may be nil, in which case
// remembered answers are neither read nor written.
func NewCollector(in io.Reader, out io.Writer, store settings.Store) *Collector {
	return &Collector{
		in:    in,
		out:   out,
		store: store,
		log:   logging.For("prompt"),

		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
}

// Collect asks every question in order. Remembered answers are saved only
// after all questions were answered.
func (c *Collector) Collect(ctx context.Context, questions []Question) (Result, error) {
	if c.used {
		return nil, ErrCollected
	}
	c.used = true
	defer c.stop.Do(func() { close(c.done) })

	result := make(Result, len(questions))

	for _, q := range questions {
		if q.Key == "" {
			return nil, fmt.Errorf("question %q has no key", q.Message)
		}

		var (
			answer any
			err    error
		)
		switch q.Kind {
		case Confirm:
			answer, err = c.confirm(ctx, q)
		default:
			answer, err = c.input(ctx, q)
		}
		if err != nil {
			return nil, err
		}

		c.log.Debug().Str("key", q.Key).Interface("answer", answer).Msg("Answer collected")
		result[q.Key] = answer
	}

	c.remember(questions, result)
	return result, nil
}

func (c *Collector) input(ctx context.Context, q Question) (string, error) {
	def := c.defaultFor(q)

	for {
		if def != "" {
			fmt.Fprint(c.out, c.label(q)+" "+hintStyle.Render(fmt.Sprintf("(%s)", def))+" ")
		} else {
			fmt.Fprint(c.out, c.label(q)+" ")
		}

		text, err := c.readLine(ctx)
		if err != nil {
			return "", err
		}

		value := text
		if value == "" {
			value = def
		}
		if q.Filter != nil {
			value = q.Filter(value)
		}

		if q.Validate != nil {
			if verr := q.Validate(value); verr != nil {
				if c.eof {
					fmt.Fprintln(c.out)
					return "", fmt.Errorf("%w for %s: %w", ErrInvalidAnswer, q.Key, verr)
				}
				fmt.Fprintln(c.out, errorStyle.Render(">> "+verr.Error()))
				continue
			}
		}

		if c.eof {
			fmt.Fprintln(c.out)
		}
		return value, nil
	}
}

func (c *Collector) confirm(ctx context.Context, q Question) (bool, error) {
	hint := "(y/N)"
	if q.DefaultYes {
		hint = "(Y/n)"
	}
	fmt.Fprint(c.out, c.label(q)+" "+hintStyle.Render(hint)+" ")

	text, err := c.readLine(ctx)
	if err != nil {
		return false, err
	}
	if c.eof {
		fmt.Fprintln(c.out)
	}

	if text == "" {
		return q.DefaultYes, nil
	}
	// Anything starting with y is a yes.
	return strings.HasPrefix(strings.ToLower(text), "y"), nil
}

func (c *Collector) label(q Question) string {
	return markStyle.Render("?") + " " + promptStyle.Render(q.Message)
}

// defaultFor returns the remembered answer for stored questions, falling
// back to the static default.
func (c *Collector) defaultFor(q Question) string {
	if !q.Store || c.store == nil {
		return q.Default
	}

	v, ok, err := c.store.Get(q.Key)
	if err != nil {
		c.log.Warn().Err(err).Str("key", q.Key).Msg("Could not read remembered answer")
		return q.Default
	}
	if !ok || v == "" {
		return q.Default
	}
	return v
}

func (c *Collector) remember(questions []Question, result Result) {
	if c.store == nil {
		return
	}
	for _, q := range questions {
		if !q.Store || q.Kind != Input {
			continue
		}
		if err := c.store.Set(q.Key, result.String(q.Key)); err != nil {
			c.log.Warn().Err(err).Str("key", q.Key).Msg("Could not remember answer")
		}
	}
}

// readLine returns the next trimmed line. Once input is exhausted every call
// returns "" so questions fall back to their defaults.
func (c *Collector) readLine(ctx context.Context) (string, error) {
	if c.eof {
		return "", nil
	}
	if c.lines == nil {
		c.lines = make(chan line)
		go c.scan()
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case l := <-c.lines:
		if errors.Is(l.err, io.EOF) {
			c.eof = true
			return strings.TrimSpace(l.text), nil
		}
		if l.err != nil {
			return "", fmt.Errorf("reading answer: %w", l.err)
		}
		return strings.TrimSpace(l.text), nil
	}
}

// scan feeds lines to readLine until input ends or Collect returns. A scan
// blocked in Read exits once that Read returns.
func (c *Collector) scan() {
	defer close(c.stopped)

	reader := bufio.NewReader(c.in)
	for {
		text, err := reader.ReadString('\n')
		select {
		case c.lines <- line{text: text, err: err}:
		case <-c.done:
			return
		}
		if err != nil {
			return
		}
	}
}
