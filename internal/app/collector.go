package app

import (
	"context"
	"math"
	"regexp"
	"strconv"
	"strings"

	"quizlink/internal/codec"
	"quizlink/internal/domain"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

var linkSeparator = regexp.MustCompile(`\r?\n|,|;`)

// decodeWorkers bounds how many pasted lines are decoded at once.
const decodeWorkers = 8

// CollectReport counts the outcome of one Collect call.
type CollectReport struct {
	Collected int
	Invalid   int
}

// ResultSummary aggregates the collected results for display and export.
type ResultSummary struct {
	TotalStudents     int
	AverageScore      float64
	AveragePercentage int
	Highest           int
	Lowest            int
}

// ResultCollector ingests pasted result links into the author's result set.
type ResultCollector struct {
	storage   *LocalStorage
	clipboard Clipboard
	notifier  Notifier
	logger    zerolog.Logger
	results   *domain.CollectedResults
}

func NewResultCollector(storage *LocalStorage, clip Clipboard, notifier Notifier, logger zerolog.Logger) *ResultCollector {
	return &ResultCollector{
		storage:   storage,
		clipboard: clip,
		notifier:  notifier,
		logger:    logger,
		results:   domain.NewCollectedResults(),
	}
}

// Load restores previously collected results.
func (c *ResultCollector) Load(ctx context.Context) {
	results := domain.NewCollectedResults()
	if c.storage.LoadJSON(ctx, KeyResults, results) {
		c.results = results
	}
}

// Results returns the collected results in insertion order.
func (c *ResultCollector) Results() []domain.QuizResult {
	return c.results.All()
}

// Collect parses raw (or the clipboard when raw is blank), decodes every result
// link in it and merges the valid ones into the collected set.
func (c *ResultCollector) Collect(ctx context.Context, raw string) (CollectReport, error) {
	text := strings.TrimSpace(codec.StripZeroWidth(raw))
	if text == "" {
		text = strings.TrimSpace(codec.StripZeroWidth(c.readClipboard(ctx)))
	}
	if text == "" {
		notify(c.notifier, LevelWarning, "Please paste student result links!")
		return CollectReport{}, domain.ErrNoResultLinks
	}

	lines := lo.FilterMap(linkSeparator.Split(text, -1), func(line string, _ int) (string, bool) {
		line = strings.TrimSpace(line)
		return line, line != ""
	})

	decoded, err := decodeAll(ctx, lines)
	if err != nil {
		return CollectReport{}, err
	}

	var report CollectReport
	for i, r := range decoded {
		if r == nil {
			report.Invalid++
			c.logger.Debug().Int("line", i+1).Msg("skipping undecodable result link")
			continue
		}
		if c.results.Put(*r) {
			c.logger.Debug().Str("student", r.StudentName).Str("quiz", r.QuizID).Msg("result replaced")
		}
		report.Collected++
	}

	c.storage.Save(ctx, map[string]any{KeyResults: c.results})

	if report.Collected > 0 {
		notify(c.notifier, LevelSuccess, "✅ Successfully collected "+strconv.Itoa(report.Collected)+" student results!")
	}
	if report.Invalid > 0 {
		notify(c.notifier, LevelWarning, "⚠️ "+strconv.Itoa(report.Invalid)+" links were invalid or couldn't be processed.")
	}
	c.logger.Info().Int("collected", report.Collected).Int("invalid", report.Invalid).Int("total", c.results.Len()).Msg("results collected")
	return report, nil
}

// Clear drops every collected result.
func (c *ResultCollector) Clear(ctx context.Context) {
	c.results.Clear()
	c.storage.Remove(ctx, KeyResults)
	notify(c.notifier, LevelSuccess, "All collected results cleared!")
}

// Summary aggregates the collected results. The average percentage is taken
// against questionCount when it is positive, otherwise against each result's own total.
func (c *ResultCollector) Summary(questionCount int) ResultSummary {
	return Summarize(c.results.All(), questionCount)
}

// Summarize computes the aggregate block shown under a results table.
func Summarize(results []domain.QuizResult, questionCount int) ResultSummary {
	if len(results) == 0 {
		return ResultSummary{}
	}
	scores := lo.Map(results, func(r domain.QuizResult, _ int) int { return r.Score })
	avg := float64(lo.Sum(scores)) / float64(len(scores))
	avgPercent := domain.Percent(avg, questionCount)
	if questionCount <= 0 {
		percents := lo.Map(results, func(r domain.QuizResult, _ int) int { return r.Percentage() })
		avgPercent = int(math.Round(float64(lo.Sum(percents)) / float64(len(percents))))
	}
	return ResultSummary{
		TotalStudents:     len(results),
		AverageScore:      math.Round(avg*10) / 10,
		AveragePercentage: avgPercent,
		Highest:           lo.Max(scores),
		Lowest:            lo.Min(scores),
	}
}

func (c *ResultCollector) readClipboard(ctx context.Context) string {
	if c.clipboard == nil {
		return ""
	}
	text, err := c.clipboard.ReadText(ctx)
	if err != nil {
		c.logger.Debug().Err(err).Msg("clipboard unavailable")
		return ""
	}
	return text
}

// decodeAll decodes lines concurrently; the slot for an invalid line stays nil.
func decodeAll(ctx context.Context, lines []string) ([]*domain.QuizResult, error) {
	out := make([]*domain.QuizResult, len(lines))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(decodeWorkers)
	for i, line := range lines {
		i, line := i, line
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if r, ok := codec.DecodeResult(line); ok {
				out[i] = &r
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
