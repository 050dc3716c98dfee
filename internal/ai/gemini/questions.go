package gemini

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/talentscout/hiring-assistant/internal/ai"
	"github.com/talentscout/hiring-assistant/internal/util"
	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const (
	defaultMaxLogLength = 200

	// Parsed lines shorter than this are treated as noise, not questions.
	minQuestionRunes = 10
)

// Questions is the remote question source. Every failure mode, from a
// transport error to an unparseable response, surfaces as ai.ErrUnavailable
// so the dispatcher can substitute the fallback.
type Questions struct {
	generator contentGenerator
	min       int
	max       int
	logger    *zap.Logger
	maxLogLen int
}

func NewQuestions(generator contentGenerator, minQuestions, maxQuestions, maxLogLength int, logger *zap.Logger) *Questions {
	if minQuestions <= 0 {
		minQuestions = 3
	}
	if maxQuestions < minQuestions {
		maxQuestions = minQuestions
	}
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Questions{
		generator: generator,
		min:       minQuestions,
		max:       maxQuestions,
		logger:    logger,
		maxLogLen: maxLogLength,
	}
}

// Generate asks Gemini for a numbered list of screening questions about the
// technology and parses it into discrete strings.
func (q *Questions) Generate(ctx context.Context, technology string) ([]string, error) {
	technology = strings.TrimSpace(technology)
	if technology == "" {
		return nil, fmt.Errorf("%w: technology name is empty", ai.ErrUnavailable)
	}

	prompt := buildPrompt(technology, q.min, q.max)

	q.logger.Debug("gemini generate questions request",
		zap.String("technology", technology),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", util.TruncateForLog(prompt, q.maxLogLen)),
	)

	raw, err := q.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ai.ErrUnavailable, err)
	}

	q.logger.Debug("gemini generate questions response",
		zap.String("technology", technology),
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", util.TruncateForLog(raw, q.maxLogLen)),
	)

	questions := parseNumberedList(raw)
	if len(questions) < q.min {
		return nil, fmt.Errorf("%w: parsed %d questions, need at least %d", ai.ErrUnavailable, len(questions), q.min)
	}
	if len(questions) > q.max {
		questions = questions[:q.max]
	}

	return questions, nil
}

func buildPrompt(technology string, minQuestions, maxQuestions int) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Produce between {{MIN}} and {{MAX}} technical screening questions about {{TECHNOLOGY}}, as a numbered list."
	}
	prompt := strings.ReplaceAll(template, "{{TECHNOLOGY}}", technology)
	prompt = strings.ReplaceAll(prompt, "{{MIN}}", strconv.Itoa(minQuestions))
	prompt = strings.ReplaceAll(prompt, "{{MAX}}", strconv.Itoa(maxQuestions))
	return prompt
}

// parseNumberedList splits a model response into question strings, stripping
// code fences, numbering, and bullets.
func parseNumberedList(raw string) []string {
	questions := make([]string, 0)
	for _, line := range strings.Split(stripFences(raw), "\n") {
		cleaned := stripListMarker(strings.TrimSpace(line))
		if utf8.RuneCountInString(cleaned) < minQuestionRunes {
			continue
		}
		questions = append(questions, cleaned)
	}
	return questions
}

func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "```") {
		raw = strings.TrimPrefix(raw, "```markdown")
		raw = strings.TrimPrefix(raw, "```text")
		raw = strings.TrimPrefix(raw, "```")
		raw = strings.TrimSpace(raw)
		if idx := strings.LastIndex(raw, "```"); idx != -1 {
			raw = raw[:idx]
		}
	}
	return strings.TrimSpace(raw)
}

func stripListMarker(line string) string {
	cleaned := strings.TrimLeft(line, "-* ")

	for _, sep := range []string{". ", ") ", " - "} {
		before, after, found := strings.Cut(cleaned, sep)
		if !found {
			continue
		}
		if _, err := strconv.Atoi(strings.TrimSpace(before)); err == nil {
			cleaned = after
			break
		}
	}

	return strings.TrimSpace(cleaned)
}
