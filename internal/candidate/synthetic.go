package candidate

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

var (
	syntheticFirstNames = []string{"Aditi", "Karan", "Meera", "Rohan", "Priya", "Saubhagya"}
	syntheticLastNames  = []string{"Sharma", "Patel", "Mishra", "Kumar", "Singh", "Das"}
	syntheticLocations  = []string{"Bengaluru, India", "Mumbai, India", "Pune, India", "Delhi, India"}

	syntheticTechPools = [][]string{
		{"Python", "Django", "PostgreSQL"},
		{"React", "TypeScript", "Node.js"},
		{"Java", "Spring Boot", "MySQL"},
		{"Python", "Pandas", "scikit-learn"},
		{"AWS", "Terraform", "Docker"},
	}
)

// Synthesize produces a well-formed complete candidate for exercising the
// store and question sources without a live conversation.
func Synthesize(rng *rand.Rand) *Candidate {
	name := fmt.Sprintf("%s %s",
		syntheticFirstNames[rng.Intn(len(syntheticFirstNames))],
		syntheticLastNames[rng.Intn(len(syntheticLastNames))],
	)

	pool := syntheticTechPools[rng.Intn(len(syntheticTechPools))]

	return &Candidate{
		FullName:        name,
		Email:           strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "@example.com",
		Phone:           fmt.Sprintf("+91%d", 9000000000+rng.Int63n(1000000000)),
		YearsExperience: float64(int(rng.Float64()*75+5)) / 10,
		DesiredRole:     "Software Engineer",
		Location:        syntheticLocations[rng.Intn(len(syntheticLocations))],
		TechStack:       append([]string(nil), pool...),
		CreatedAt:       time.Now().UTC(),
	}
}
