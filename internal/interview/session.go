// Package interview drives the conversation turn by turn: greeting, field
// collection, tech stack parsing, question generation, and finalization.
// Each session owns its candidate exclusively; there is no shared state
// between conversations.
package interview

import (
	"context"
	"fmt"
	"strings"

	"github.com/talentscout/hiring-assistant/internal/ai"
	"github.com/talentscout/hiring-assistant/internal/candidate"
	"go.uber.org/zap"
)

// State is the controller's position in the conversation.
type State int

const (
	StateGreeting State = iota
	StateCollectingField
	StateCollectingTechStack
	StateGeneratingQuestions
	StateAwaitingMoreOrExit
	StateFinalized
)

func (s State) String() string {
	switch s {
	case StateGreeting:
		return "greeting"
	case StateCollectingField:
		return "collecting_field"
	case StateCollectingTechStack:
		return "collecting_tech_stack"
	case StateGeneratingQuestions:
		return "generating_questions"
	case StateAwaitingMoreOrExit:
		return "awaiting_more_or_exit"
	case StateFinalized:
		return "finalized"
	default:
		return "unknown"
	}
}

// DefaultExitKeywords end the conversation immediately from any state.
var DefaultExitKeywords = []string{"exit", "quit", "done"}

// Fields are collected in this order before the tech stack is requested.
// Phone and location are optional profile extras filled outside the chat
// flow (the seed command and synthetic candidates carry them).
var collectedFields = []candidate.Field{
	candidate.FieldFullName,
	candidate.FieldEmail,
	candidate.FieldYearsExperience,
	candidate.FieldDesiredRole,
}

// Config holds the conversation settings.
type Config struct {
	ExitKeywords []string
}

// Reply is what the controller hands back to the presentation layer after
// each turn.
type Reply struct {
	Text string
	Done bool
}

// Session is one conversation instance. It mutates its candidate as fields
// arrive and generates questions once the tech stack is known.
type Session struct {
	source    *ai.Dispatcher
	logger    *zap.Logger
	keywords  []string
	state     State
	fieldIdx  int
	candidate *candidate.Candidate
	questions map[string][]string
	origins   map[string]string
}

func New(source *ai.Dispatcher, cfg Config, logger *zap.Logger) *Session {
	keywords := cfg.ExitKeywords
	if len(keywords) == 0 {
		keywords = DefaultExitKeywords
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Session{
		source:    source,
		logger:    logger,
		keywords:  keywords,
		state:     StateGreeting,
		candidate: candidate.New(),
		questions: make(map[string][]string),
		origins:   make(map[string]string),
	}
}

// Greeting returns the assistant's opening message.
func (s *Session) Greeting() string {
	return fmt.Sprintf("Hi, I'm TalentScout, your hiring assistant. "+
		"I will collect a few details and generate technical screening questions "+
		"for each technology you list. Type %s at any point to finish.\n\n%s",
		s.exitHint(), collectedFields[0].Prompt())
}

func (s *Session) exitHint() string {
	return strings.Join(s.keywords, ", ")
}

func farewell() string {
	return "Thanks! Your session is complete. Good luck!"
}

// Turn processes one raw user input and returns the assistant's reply.
// An exit keyword finalizes the conversation from any state.
func (s *Session) Turn(ctx context.Context, input string) (Reply, error) {
	trimmed := strings.TrimSpace(input)

	if s.isExitKeyword(trimmed) {
		s.logger.Debug("exit keyword received",
			zap.String("state", s.state.String()),
			zap.Bool("candidate_complete", s.candidate.Complete()),
		)
		s.state = StateFinalized
		return Reply{Text: farewell(), Done: true}, nil
	}

	switch s.state {
	case StateGreeting, StateCollectingField:
		return s.collectField(trimmed), nil
	case StateCollectingTechStack:
		return s.collectTechStack(ctx, trimmed)
	case StateAwaitingMoreOrExit:
		return Reply{Text: fmt.Sprintf("Noted. Type %s when you are finished.", s.exitHint())}, nil
	case StateFinalized:
		return Reply{Text: farewell(), Done: true}, nil
	default:
		return Reply{}, fmt.Errorf("invalid session state: %d", s.state)
	}
}

func (s *Session) collectField(input string) Reply {
	field := collectedFields[s.fieldIdx]

	if err := s.candidate.SetField(field, input); err != nil {
		return Reply{Text: fmt.Sprintf("Sorry, %s. %s", err, field.Prompt())}
	}

	s.fieldIdx++
	if s.fieldIdx < len(collectedFields) {
		s.state = StateCollectingField
		return Reply{Text: collectedFields[s.fieldIdx].Prompt()}
	}

	s.state = StateCollectingTechStack
	return Reply{Text: "List your tech stack, comma-separated (e.g. Python, Django, React, SQL)."}
}

func (s *Session) collectTechStack(ctx context.Context, input string) (Reply, error) {
	techs := candidate.ParseTechStack(input)
	if len(techs) == 0 {
		return Reply{Text: "I could not find any technologies in that. List your tech stack, comma-separated."}, nil
	}

	s.state = StateGeneratingQuestions

	var out strings.Builder
	out.WriteString("Here are your screening questions:\n")

	// Duplicate technologies are generated once; the record keeps the
	// deduplicated stack in the order the candidate listed it.
	deduped := make([]string, 0, len(techs))
	seen := make(map[string]bool, len(techs))
	for _, tech := range techs {
		key := strings.ToLower(tech)
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, tech)

		result, err := s.source.Generate(ctx, tech)
		if err != nil {
			return Reply{}, fmt.Errorf("generating questions for %s: %w", tech, err)
		}

		s.questions[tech] = result.Questions
		s.origins[tech] = result.Origin

		s.logger.Info("generated questions",
			zap.String("technology", tech),
			zap.String("origin", result.Origin),
			zap.Int("count", len(result.Questions)),
		)

		out.WriteString(fmt.Sprintf("\n%s:\n", tech))
		for i, question := range result.Questions {
			out.WriteString(fmt.Sprintf("%d. %s\n", i+1, question))
		}
	}

	s.candidate.TechStack = deduped

	out.WriteString(fmt.Sprintf("\nAnything else? Type %s to finish.", s.exitHint()))

	s.state = StateAwaitingMoreOrExit
	return Reply{Text: out.String()}, nil
}

func (s *Session) isExitKeyword(input string) bool {
	for _, keyword := range s.keywords {
		if strings.EqualFold(input, keyword) {
			return true
		}
	}
	return false
}

// State returns the controller's current state.
func (s *Session) State() State { return s.state }

// Candidate returns the session's candidate profile.
func (s *Session) Candidate() *candidate.Candidate { return s.candidate }

// Record freezes the candidate with the generated questions. It returns nil
// while the candidate is incomplete: an incomplete record is never persisted.
func (s *Session) Record(anonymize bool) *candidate.Record {
	if !s.candidate.Complete() {
		return nil
	}
	return s.candidate.Record(anonymize, s.questions, s.origins)
}
