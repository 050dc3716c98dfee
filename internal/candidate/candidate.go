package candidate

import (
	"crypto/sha256"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Field identifies one collectable attribute of a candidate profile.
type Field int

const (
	FieldFullName Field = iota
	FieldEmail
	FieldYearsExperience
	FieldDesiredRole
	FieldPhone
	FieldLocation
)

// Prompt returns the question the assistant asks to collect the field.
func (f Field) Prompt() string {
	switch f {
	case FieldFullName:
		return "What is your full name?"
	case FieldEmail:
		return "What is your email address?"
	case FieldYearsExperience:
		return "How many years of professional experience do you have?"
	case FieldDesiredRole:
		return "What role are you applying for?"
	case FieldPhone:
		return "What is your phone number? (optional, press enter to skip)"
	case FieldLocation:
		return "Where are you currently located? (optional, press enter to skip)"
	default:
		return ""
	}
}

// Optional reports whether an empty answer is acceptable for the field.
func (f Field) Optional() bool {
	return f == FieldPhone || f == FieldLocation
}

// Candidate is the profile collected over one conversation. It is mutated
// field by field while the interview runs and frozen into a Record once the
// conversation finalizes.
type Candidate struct {
	FullName        string
	Email           string
	YearsExperience float64
	DesiredRole     string
	Phone           string
	Location        string
	TechStack       []string
	CreatedAt       time.Time
}

func New() *Candidate {
	return &Candidate{CreatedAt: time.Now().UTC()}
}

// SetField validates and stores a single raw answer. Input is trimmed and
// otherwise stored verbatim. A non-nil error means the answer must be asked
// again; the candidate is left unchanged.
func (c *Candidate) SetField(f Field, raw string) error {
	value := strings.TrimSpace(raw)
	if value == "" {
		if f.Optional() {
			return nil
		}
		return fmt.Errorf("answer must not be empty")
	}

	switch f {
	case FieldFullName:
		c.FullName = value
	case FieldEmail:
		if !strings.Contains(value, "@") {
			return fmt.Errorf("%q does not look like an email address", value)
		}
		c.Email = value
	case FieldYearsExperience:
		years, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("%q is not a number", value)
		}
		if years < 0 {
			return fmt.Errorf("years of experience must not be negative")
		}
		c.YearsExperience = years
	case FieldDesiredRole:
		c.DesiredRole = value
	case FieldPhone:
		c.Phone = value
	case FieldLocation:
		c.Location = value
	default:
		return fmt.Errorf("unknown field %d", f)
	}

	return nil
}

// Complete reports whether every required field holds a value. Incomplete
// candidates are never persisted.
func (c *Candidate) Complete() bool {
	return c.FullName != "" &&
		c.Email != "" &&
		c.YearsExperience >= 0 &&
		c.DesiredRole != "" &&
		len(c.TechStack) > 0
}

// ParseTechStack splits a comma-separated technology list, trimming each
// token and dropping empty ones. Order and casing are preserved as supplied.
func ParseTechStack(raw string) []string {
	parts := strings.Split(raw, ",")
	techs := make([]string, 0, len(parts))
	for _, part := range parts {
		if tech := strings.TrimSpace(part); tech != "" {
			techs = append(techs, tech)
		}
	}
	return techs
}

// Record is the persisted form of a finalized candidate. When anonymized,
// the id is derived from the identity fields and the raw identifiers are
// omitted entirely.
type Record struct {
	ID              string              `json:"id"`
	FullName        string              `json:"full_name,omitempty"`
	Email           string              `json:"email,omitempty"`
	Phone           string              `json:"phone,omitempty"`
	Location        string              `json:"location,omitempty"`
	YearsExperience float64             `json:"years_experience"`
	DesiredRole     string              `json:"desired_role"`
	TechStack       []string            `json:"tech_stack"`
	Questions       map[string][]string `json:"questions"`
	GeneratedVia    map[string]string   `json:"generated_via"`
	Anonymized      bool                `json:"anonymized"`
	CreatedAt       time.Time           `json:"created_at"`
}

// Record freezes the candidate into its persisted form. Questions and
// origins are keyed by technology as listed by the candidate.
func (c *Candidate) Record(anonymize bool, questions map[string][]string, origins map[string]string) *Record {
	rec := &Record{
		YearsExperience: c.YearsExperience,
		DesiredRole:     c.DesiredRole,
		TechStack:       append([]string(nil), c.TechStack...),
		Questions:       questions,
		GeneratedVia:    origins,
		Anonymized:      anonymize,
		CreatedAt:       c.CreatedAt,
	}

	if anonymize {
		rec.ID = AnonymousID(c.FullName, c.Email)
		return rec
	}

	rec.ID = uuid.NewString()
	rec.FullName = c.FullName
	rec.Email = c.Email
	rec.Phone = c.Phone
	rec.Location = c.Location
	return rec
}

// AnonymousID derives a stable opaque identifier from the candidate's
// identity fields. The same name and email always map to the same id.
func AnonymousID(fullName, email string) string {
	normalized := strings.ToLower(strings.TrimSpace(fullName)) + "|" + strings.ToLower(strings.TrimSpace(email))
	sum := sha256.Sum256([]byte(normalized))
	return fmt.Sprintf("%x", sum[:16])
}
