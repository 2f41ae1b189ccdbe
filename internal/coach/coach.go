// Package coach asks a text model for motivation, advice and performance
// reports about the player's habits. It only reads habits and never fails:
// every problem turns into a fixed fallback message.
package coach

import (
	"bytes"
	"context"
	_ "embed"
	"io"
	"log"
	"math"
	"strings"
	"text/template"
	"time"

	"github.com/tatianab/just-do-now/internal/models"
	"golang.org/x/time/rate"
)

//go:embed prompts/motivation.txt
var motivationPrompt string

//go:embed prompts/advise.txt
var advisePrompt string

//go:embed prompts/report.txt
var reportPrompt string

var (
	motivationTmpl = template.Must(template.New("motivation").Parse(motivationPrompt))
	adviseTmpl     = template.Must(template.New("advise").Parse(advisePrompt))
	reportTmpl     = template.Must(template.New("report").Parse(reportPrompt))
)

// Request kinds.
const (
	KindMotivation = "motivation"
	KindAdvice     = "advice"
	KindReport     = "report"
)

// Request outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeEmpty     = "empty"
	OutcomeError     = "error"
	OutcomeOffline   = "offline"
	OutcomeThrottled = "throttled"
)

const (
	OfflineMessage   = "System Offline: AI Core functionality requires an API Key."
	ThrottledMessage = "Neural link cooling down. Retry in a moment."
)

type fallback struct {
	empty  string
	failed string
}

var fallbacks = map[string]fallback{
	KindMotivation: {
		empty:  "Systems active. Proceed with objective.",
		failed: "Connection interrupted. Maintain internal discipline.",
	},
	KindAdvice: {
		empty:  "Analysis complete. No output generated.",
		failed: "Error processing request. Check neural link.",
	},
	KindReport: {
		empty:  "Diagnostic failed. No data returned.",
		failed: "Connection interrupted. Analysis aborted. Check neural link.",
	},
}

// Recorder receives one count per request.
type Recorder interface {
	RecordCoach(kind, outcome string)
}

type nopRecorder struct{}

func (nopRecorder) RecordCoach(string, string) {}

type Coach struct {
	gen      Generator
	limiter  *rate.Limiter
	timeout  time.Duration
	recorder Recorder
	logger   *log.Logger
}

type Option func(*Coach)

func WithRecorder(r Recorder) Option {
	return func(c *Coach) { c.recorder = r }
}

func WithLogger(l *log.Logger) Option {
	return func(c *Coach) { c.logger = l }
}

// WithRateLimit allows rpm requests per minute with the given burst.
func WithRateLimit(rpm, burst int) Option {
	return func(c *Coach) {
		c.limiter = rate.NewLimiter(rate.Limit(float64(rpm)/60), burst)
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Coach) { c.timeout = d }
}

// New builds a coach. A nil gen means no API key: every call answers with
// OfflineMessage.
func New(gen Generator, opts ...Option) *Coach {
	c := &Coach{
		gen:      gen,
		limiter:  rate.NewLimiter(rate.Inf, 0),
		timeout:  30 * time.Second,
		recorder: nopRecorder{},
		logger:   log.New(io.Discard, "", 0),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Online reports whether a generator is configured.
func (c *Coach) Online() bool {
	return c.gen != nil
}

type habitLine struct {
	Title         string
	Streak        int
	Completions   int
	AvgEfficiency int
}

func summarize(habits []models.Habit) []habitLine {
	lines := make([]habitLine, 0, len(habits))
	for _, h := range habits {
		lines = append(lines, habitLine{
			Title:         h.Title,
			Streak:        h.Streak,
			Completions:   len(h.Logs),
			AvgEfficiency: AverageEfficiency(h),
		})
	}
	return lines
}

// AverageEfficiency is the rounded mean efficiency over all logs, counting a
// log without a rating as 100. A habit with no logs averages 0.
func AverageEfficiency(h models.Habit) int {
	if len(h.Logs) == 0 {
		return 0
	}
	sum := 0
	for _, l := range h.Logs {
		sum += l.EfficiencyOr(100)
	}
	return int(math.Floor(float64(sum)/float64(len(h.Logs)) + 0.5))
}

// Motivation returns a short pep talk based on the habit list.
func (c *Coach) Motivation(ctx context.Context, habits []models.Habit) string {
	return c.ask(ctx, KindMotivation, motivationTmpl, struct{ Habits []habitLine }{summarize(habits)})
}

// Advise answers a free-text question with the habit list as context.
func (c *Coach) Advise(ctx context.Context, habits []models.Habit, query string) string {
	data := struct {
		Habits []habitLine
		Query  string
	}{summarize(habits), strings.TrimSpace(query)}
	return c.ask(ctx, KindAdvice, adviseTmpl, data)
}

// Report returns the three-section diagnostic. The text is for display only.
func (c *Coach) Report(ctx context.Context, habits []models.Habit) string {
	return c.ask(ctx, KindReport, reportTmpl, struct{ Habits []habitLine }{summarize(habits)})
}

func (c *Coach) ask(ctx context.Context, kind string, tmpl *template.Template, data any) string {
	fb := fallbacks[kind]
	if c.gen == nil {
		c.recorder.RecordCoach(kind, OutcomeOffline)
		return OfflineMessage
	}
	if !c.limiter.Allow() {
		c.recorder.RecordCoach(kind, OutcomeThrottled)
		return ThrottledMessage
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		c.logger.Printf("coach %s: render prompt: %v", kind, err)
		c.recorder.RecordCoach(kind, OutcomeError)
		return fb.failed
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	text, err := c.gen.Generate(ctx, buf.String())
	if err != nil {
		c.logger.Printf("coach %s: %v", kind, err)
		c.recorder.RecordCoach(kind, OutcomeError)
		return fb.failed
	}
	text = strings.TrimSpace(text)
	if text == "" {
		c.recorder.RecordCoach(kind, OutcomeEmpty)
		return fb.empty
	}
	c.recorder.RecordCoach(kind, OutcomeOK)
	return text
}
