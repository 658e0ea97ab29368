// Package engine drives an interview session: it asks the controller's
// questions, feeds answers back, and reports the finished tree.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"navigator/interview"
	"navigator/metrics"
	"navigator/narrative"
	"navigator/rank"
	"navigator/render"
	"navigator/tree"
)

var ErrAbandoned = errors.New("input ended before the interview was complete")

const separator = "------------------------------------------------------------"

// Report is the outcome of a session.
type Report struct {
	Root      *tree.StrategyNode
	Completed bool
	Session   metrics.SessionMetric
}

type Option func(s *Session)

func WithNarrator(g narrative.Generator) Option {
	return func(s *Session) {
		if g != nil {
			s.narrator = g
		}
	}
}

// WithMetricsDir records session and turn CSVs under dir.
func WithMetricsDir(dir string) Option {
	return func(s *Session) {
		if dir != "" {
			s.metricsDir = dir
			s.metrics = metrics.NewCollector()
		}
	}
}

// WithEcho writes each answer after its prompt, for scripted sessions.
func WithEcho(echo bool) Option {
	return func(s *Session) {
		s.echo = echo
	}
}

func WithSessionID(id string) Option {
	return func(s *Session) {
		if id != "" {
			s.id = id
		}
	}
}

type Session struct {
	id         string
	controller *interview.Controller
	input      Input
	out        io.Writer
	narrator   narrative.Generator
	metrics    metrics.Collector
	metricsDir string
	echo       bool
	log        zerolog.Logger
}

func NewSession(input Input, out io.Writer, options ...Option) *Session {
	s := &Session{ // Default values
		id:         uuid.NewString(),
		controller: interview.NewController(),
		input:      input,
		out:        out,
		narrator:   narrative.Static{},
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(s)
	}
	s.log = log.With().Str("session", s.id).Logger()
	return s
}

func (s *Session) ID() string {
	return s.id
}

// Run loops until the interview completes or the input ends. Ending early
// returns ErrAbandoned along with whatever tree was built.
func (s *Session) Run(ctx context.Context) (Report, error) {
	tracer := otel.Tracer("navigator/engine")
	ctx, span := tracer.Start(ctx, "interview.session", trace.WithAttributes(attribute.String("session.id", s.id)))
	defer span.End()

	s.log.Info().Msg("session started")
	s.metrics.Start(s.id)

	prompt := s.controller.Prompt()
	for !s.controller.Done() {
		fmt.Fprintf(s.out, "\n%s\n> ", prompt)

		answer, err := s.input.Next(ctx)
		if err != nil {
			fmt.Fprintln(s.out)
			if errors.Is(err, io.EOF) {
				err = ErrAbandoned
			}
			s.log.Warn().Err(err).Stringer("phase", s.controller.State().Phase).Msg("session abandoned")
			return s.finish(false), err
		}
		if s.echo {
			fmt.Fprintln(s.out, answer)
		}

		res := s.turn(ctx, tracer, answer)
		if res.Retry != nil {
			fmt.Fprintf(s.out, "Sorry, that answer can't be used: %v\n", res.Retry)
		}
		prompt = res.Prompt
	}

	s.conclude(ctx)
	return s.finish(true), nil
}

func (s *Session) turn(ctx context.Context, tracer trace.Tracer, answer string) interview.Result {
	before := s.controller.State()
	_, span := tracer.Start(ctx, "interview.turn", trace.WithAttributes(
		attribute.String("phase", before.Phase.String()),
		attribute.String("step", before.Step.String()),
	))
	defer span.End()

	start := time.Now()
	res := s.controller.Submit(answer)

	turn := metrics.TurnMetric{
		Phase:     before.Phase.String(),
		Step:      before.Step.String(),
		Input:     answer,
		Advanced:  res.Advanced,
		Committed: res.Committed,
		Promoted:  res.Promoted,
		Duration:  time.Since(start),
	}
	if res.Retry != nil {
		turn.Reason = res.Retry.Error()
		turn.RetryKind = retryKind(res.Retry)
		span.SetAttributes(attribute.String("retry", turn.Reason))
		s.log.Debug().Err(res.Retry).Msgf("re-asking %s", before.Phase)
	}
	span.SetAttributes(attribute.Bool("advanced", res.Advanced))
	s.metrics.AddTurn(turn)
	return res
}

var retryKinds = []error{
	interview.ErrParse,
	interview.ErrInvalidCount,
	interview.ErrBudgetExceeded,
	interview.ErrEmptyName,
	interview.ErrLookupMiss,
	interview.ErrComplete,
}

// retryKind names the category of a rejected answer without the answer itself.
func retryKind(err error) string {
	for _, kind := range retryKinds {
		if errors.Is(err, kind) {
			return kind.Error()
		}
	}
	var verr *tree.ValidationError
	if errors.As(err, &verr) {
		return "invalid " + verr.Field
	}
	return "other"
}

// conclude prints the finished tree and the recommendation for its root.
func (s *Session) conclude(ctx context.Context) {
	root := s.controller.Root()
	fmt.Fprintf(s.out, "\n%s\n", s.controller.Prompt())
	fmt.Fprintf(s.out, "\n--- VISUAL MODEL ---\n%s\n", render.Tree(root))

	best, ok := rank.Best(root)
	if !ok {
		fmt.Fprintf(s.out, "\n%s\n", rank.NothingRanked)
		return
	}
	justification := s.narrator.Justify(ctx, narrative.Request{
		Scenario:   root.Name,
		BestMove:   best.Name,
		WeightedEV: best.WeightedEV,
	})
	fmt.Fprintf(s.out, "\n%s\nSTRATEGIC RECOMMENDATION: %s WITH EV OF %.1f\n%s\n%s\n",
		separator, strings.ToUpper(best.Name), best.WeightedEV, justification, separator)
}

func (s *Session) finish(completed bool) Report {
	scenario := ""
	if root := s.controller.Root(); root != nil {
		scenario = root.Name
	}
	session, turns := s.metrics.Complete(scenario, completed)
	s.log.Info().
		Bool("completed", completed).
		Int("turns", session.Turns).
		Int("retries", session.Retries).
		Msg("session finished")

	if s.metricsDir != "" {
		if err := s.writeMetrics(session, turns); err != nil {
			s.log.Warn().Err(err).Msg("could not write session metrics")
		}
	}

	return Report{
		Root:      s.controller.Root(),
		Completed: completed,
		Session:   session,
	}
}

func (s *Session) writeMetrics(session metrics.SessionMetric, turns []metrics.TurnMetric) error {
	w, err := metrics.NewWriter(s.metricsDir, s.id)
	if err != nil {
		return err
	}
	if err := w.WriteSession(session); err != nil {
		return err
	}
	if err := w.WriteTurns(turns); err != nil {
		return err
	}
	s.log.Info().Msgf("stored session records in %s", w.Dir())
	return nil
}
