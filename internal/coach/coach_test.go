package coach

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tatianab/just-do-now/internal/models"
)

type fakeGenerator struct {
	reply   string
	err     error
	prompts []string
	block   bool
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return f.reply, f.err
}

type outcomes map[string]int

func (o outcomes) RecordCoach(kind, outcome string) { o[kind+"/"+outcome]++ }

func sampleHabits() []models.Habit {
	eff := 40
	return []models.Habit{
		{
			Title:  "Run",
			Streak: 3,
			Logs: map[string]models.HabitLog{
				"2026-03-04": {Date: "2026-03-04", Completed: true, Efficiency: &eff},
				"2026-03-03": {Date: "2026-03-03", Completed: true},
			},
		},
		{Title: "Read", Logs: map[string]models.HabitLog{}},
	}
}

func TestOffline(t *testing.T) {
	rec := outcomes{}
	c := New(nil, WithRecorder(rec))
	ctx := context.Background()

	assert.False(t, c.Online())
	assert.Equal(t, OfflineMessage, c.Motivation(ctx, nil))
	assert.Equal(t, OfflineMessage, c.Advise(ctx, nil, "how?"))
	assert.Equal(t, OfflineMessage, c.Report(ctx, nil))
	assert.Equal(t, 1, rec["report/offline"])
}

func TestPrompts(t *testing.T) {
	gen := &fakeGenerator{reply: "  Level up.  "}
	c := New(gen)
	ctx := context.Background()

	assert.Equal(t, "Level up.", c.Motivation(ctx, sampleHabits()))
	c.Advise(ctx, sampleHabits(), " I keep skipping runs ")
	c.Report(ctx, sampleHabits())

	require.Len(t, gen.prompts, 3)
	assert.Contains(t, gen.prompts[0], "- Run (Streak: 3 days)")
	assert.Contains(t, gen.prompts[0], "- Read (Streak: 0 days)")
	assert.Contains(t, gen.prompts[1], `User query: "I keep skipping runs"`)
	assert.Contains(t, gen.prompts[2], "Habit: Run | Streak: 3 | Total Completions: 2 | Avg Efficiency: 70%")
	assert.Contains(t, gen.prompts[2], "Habit: Read | Streak: 0 | Total Completions: 0 | Avg Efficiency: 0%")
	assert.Contains(t, gen.prompts[2], "TACTICAL UPGRADE")
}

func TestFallbacks(t *testing.T) {
	ctx := context.Background()
	rec := outcomes{}

	empty := New(&fakeGenerator{reply: "   "}, WithRecorder(rec))
	assert.Equal(t, "Systems active. Proceed with objective.", empty.Motivation(ctx, nil))
	assert.Equal(t, "Analysis complete. No output generated.", empty.Advise(ctx, nil, "q"))
	assert.Equal(t, "Diagnostic failed. No data returned.", empty.Report(ctx, nil))

	failing := New(&fakeGenerator{err: errors.New("503")}, WithRecorder(rec))
	assert.Equal(t, "Connection interrupted. Maintain internal discipline.", failing.Motivation(ctx, nil))
	assert.Equal(t, "Error processing request. Check neural link.", failing.Advise(ctx, nil, "q"))
	assert.Equal(t, "Connection interrupted. Analysis aborted. Check neural link.", failing.Report(ctx, nil))

	assert.Equal(t, 1, rec["motivation/empty"])
	assert.Equal(t, 1, rec["advice/error"])
}

func TestTimeout(t *testing.T) {
	c := New(&fakeGenerator{block: true}, WithTimeout(10*time.Millisecond))
	assert.Equal(t, "Connection interrupted. Maintain internal discipline.", c.Motivation(context.Background(), nil))
}

func TestRateLimit(t *testing.T) {
	rec := outcomes{}
	gen := &fakeGenerator{reply: "ok"}
	c := New(gen, WithRateLimit(1, 2), WithRecorder(rec))
	ctx := context.Background()

	assert.Equal(t, "ok", c.Motivation(ctx, nil))
	assert.Equal(t, "ok", c.Motivation(ctx, nil))
	assert.Equal(t, ThrottledMessage, c.Motivation(ctx, nil))
	assert.Len(t, gen.prompts, 2)
	assert.Equal(t, 1, rec["motivation/throttled"])
}

func TestAverageEfficiency(t *testing.T) {
	assert.Equal(t, 70, AverageEfficiency(sampleHabits()[0]))
	assert.Equal(t, 0, AverageEfficiency(models.Habit{}))

	zero, half := 0, 55
	h := models.Habit{Logs: map[string]models.HabitLog{
		"a": {Efficiency: &zero},
		"b": {Efficiency: &half},
	}}
	// 27.5 rounds up.
	assert.Equal(t, 28, AverageEfficiency(h))
}
