// Package fallback provides the offline question source: a fixed bank of
// screening questions for common technologies, padded with generic templates
// for anything the bank does not know. Output is deterministic.
package fallback

import (
	"context"
	"strings"
)

var bank = map[string][]string{
	"python": {
		"Explain the difference between a list and a tuple in Python.",
		"How does Python's GIL affect multi-threaded programs?",
		"Write a function to reverse a string and explain its complexity.",
	},
	"django": {
		"What is Django's MTV architecture? How is it different from MVC?",
		"How do you manage database migrations in Django?",
		"Explain middlewares in Django and a use-case for creating a custom middleware.",
	},
	"react": {
		"What are React hooks and why were they introduced?",
		"Explain the difference between props and state in React.",
		"How does the virtual DOM work?",
	},
	"sql": {
		"Write a SQL query to find duplicate rows in a table.",
		"Explain the difference between INNER JOIN and LEFT JOIN.",
		"What is indexing and how does it improve query performance?",
	},
	"aws": {
		"What is IAM and why is it important?",
		"Describe how S3 versioning works and a use-case.",
		"Compare EC2 and Lambda for running compute workloads.",
	},
}

// Technology name is substituted for the %s placeholder.
var genericTemplates = []string{
	"Describe a challenging problem you solved using %s.",
	"What are the main strengths and weaknesses of %s?",
	"How do you test code written with %s?",
	"How would you explain %s to a junior engineer?",
	"What recent changes or trends in %s do you follow?",
}

// Source answers from the static bank. It always returns between min and
// max questions, regardless of input.
type Source struct {
	min int
	max int
}

func New(minQuestions, maxQuestions int) *Source {
	if minQuestions <= 0 {
		minQuestions = 3
	}
	if maxQuestions < minQuestions {
		maxQuestions = minQuestions
	}
	return &Source{min: minQuestions, max: maxQuestions}
}

// Generate looks the technology up case-insensitively; unknown technologies
// get the generic templates with the name substituted in. Calling twice with
// the same technology yields identical output.
func (s *Source) Generate(_ context.Context, technology string) ([]string, error) {
	key := strings.ToLower(strings.TrimSpace(technology))

	questions := append([]string(nil), bank[key]...)
	for i := 0; len(questions) < s.min; i++ {
		questions = append(questions, renderTemplate(genericTemplates[i%len(genericTemplates)], technology))
	}

	if len(questions) > s.max {
		questions = questions[:s.max]
	}

	return questions, nil
}

func renderTemplate(template, technology string) string {
	name := strings.TrimSpace(technology)
	if name == "" {
		name = "this technology"
	}
	return strings.ReplaceAll(template, "%s", name)
}
