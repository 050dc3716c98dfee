package gemini

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/talentscout/hiring-assistant/internal/ai"
	"go.uber.org/zap"
)

type stubGenerator struct {
	response   string
	err        error
	lastPrompt string
}

func (s *stubGenerator) GenerateContent(_ context.Context, prompt string) (string, error) {
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.response, nil
}

func TestQuestionsGenerate(t *testing.T) {
	stub := &stubGenerator{response: `1. Explain goroutines and how they differ from OS threads.
2. How does the garbage collector affect latency-sensitive services?
3. Write a function that merges two sorted slices and state its complexity.
4. What tooling do you use to detect data races?`}

	source := NewQuestions(stub, 3, 5, 0, zap.NewNop())

	questions, err := source.Generate(context.Background(), "Go")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) != 4 {
		t.Fatalf("expected 4 questions, got %d: %v", len(questions), questions)
	}

	if questions[0] != "Explain goroutines and how they differ from OS threads." {
		t.Fatalf("numbering not stripped: %q", questions[0])
	}

	if !strings.Contains(stub.lastPrompt, "about Go") {
		t.Fatalf("expected technology in prompt, got: %s", stub.lastPrompt)
	}

	if !strings.Contains(stub.lastPrompt, "between 3 and 5") {
		t.Fatalf("expected question bounds in prompt, got: %s", stub.lastPrompt)
	}
}

func TestQuestionsGenerateStripsFencesAndBullets(t *testing.T) {
	stub := &stubGenerator{response: "```markdown\n- What are React hooks and why were they introduced?\n* Explain the difference between props and state.\n1) How does the virtual DOM reconcile updates?\n```"}

	source := NewQuestions(stub, 3, 5, 0, zap.NewNop())

	questions, err := source.Generate(context.Background(), "React")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) != 3 {
		t.Fatalf("expected 3 questions, got %d: %v", len(questions), questions)
	}

	for _, q := range questions {
		if strings.HasPrefix(q, "-") || strings.HasPrefix(q, "*") || strings.HasPrefix(q, "1") {
			t.Fatalf("list marker not stripped: %q", q)
		}
	}
}

func TestQuestionsGenerateTruncatesToMax(t *testing.T) {
	var lines []string
	for i := 0; i < 8; i++ {
		lines = append(lines, "1. A sufficiently long screening question about the topic?")
	}
	stub := &stubGenerator{response: strings.Join(lines, "\n")}

	source := NewQuestions(stub, 3, 5, 0, zap.NewNop())

	questions, err := source.Generate(context.Background(), "SQL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(questions) != 5 {
		t.Fatalf("expected truncation to 5 questions, got %d", len(questions))
	}
}

func TestQuestionsGenerateUnavailableOnFailure(t *testing.T) {
	cases := []struct {
		name string
		stub *stubGenerator
	}{
		{name: "transport error", stub: &stubGenerator{err: errors.New("connection refused")}},
		{name: "too few questions", stub: &stubGenerator{response: "Sure! Here are some questions."}},
		{name: "empty response", stub: &stubGenerator{response: ""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			source := NewQuestions(tc.stub, 3, 5, 0, zap.NewNop())

			_, err := source.Generate(context.Background(), "Go")
			if !errors.Is(err, ai.ErrUnavailable) {
				t.Fatalf("expected ErrUnavailable, got %v", err)
			}
		})
	}
}

func TestQuestionsGenerateEmptyTechnology(t *testing.T) {
	source := NewQuestions(&stubGenerator{}, 3, 5, 0, zap.NewNop())

	_, err := source.Generate(context.Background(), "   ")
	if !errors.Is(err, ai.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", err)
	}
}
