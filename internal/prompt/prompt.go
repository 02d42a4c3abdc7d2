// Package prompt renders the instructions sent to the generative model.
// Builders are pure: the same input always yields the same text.
package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"ayursathi-api/internal/domain/entity"
)

const (
	unspecified = "unspecified"
	none        = "none"
)

// AssessmentInput is the patient snapshot every assessment stage renders.
type AssessmentInput struct {
	Symptoms       []string
	Age            *int
	Gender         string
	History        []string
	AdditionalInfo string
}

// InputFromDiagnosis rebuilds the snapshot stored on a record.
func InputFromDiagnosis(d *entity.Diagnosis) AssessmentInput {
	return AssessmentInput{
		Symptoms:       d.Symptoms,
		Age:            d.Age,
		Gender:         d.Gender,
		History:        d.History,
		AdditionalInfo: d.AdditionalInfo,
	}
}

// GuidanceInput drives the lifestyle guidance call.
type GuidanceInput struct {
	Age            *int
	Gender         string
	HealthConcerns string
	Lifestyle      string
	Season         string
}

const (
	DefaultHealthConcerns = "General wellness"
	DefaultLifestyle      = "Modern lifestyle"
	DefaultSeason         = "Current season"
)

// WithDefaults fills blank guidance fields.
func (in GuidanceInput) WithDefaults() GuidanceInput {
	if strings.TrimSpace(in.HealthConcerns) == "" {
		in.HealthConcerns = DefaultHealthConcerns
	}
	if strings.TrimSpace(in.Lifestyle) == "" {
		in.Lifestyle = DefaultLifestyle
	}
	if strings.TrimSpace(in.Season) == "" {
		in.Season = DefaultSeason
	}
	return in
}

func age(v *int) string {
	if v == nil {
		return unspecified
	}
	return strconv.Itoa(*v)
}

func text(s string) string {
	if strings.TrimSpace(s) == "" {
		return unspecified
	}
	return s
}

func list(items []string) string {
	kept := make([]string, 0, len(items))
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			kept = append(kept, item)
		}
	}
	if len(kept) == 0 {
		return none
	}
	return strings.Join(kept, ", ")
}

func attr(b *strings.Builder, label, value string) {
	fmt.Fprintf(b, "- %s: %s\n", label, value)
}

func section(b *strings.Builder, heading string, lines []string) {
	b.WriteString(heading)
	b.WriteString("\n")
	for _, line := range lines {
		fmt.Fprintf(b, "- %s\n", line)
	}
	b.WriteString("\n")
}

func schema(b *strings.Builder, instruction, shape string) {
	b.WriteString(instruction)
	b.WriteString("\n")
	b.WriteString(shape)
	b.WriteString("\n")
}

func enumValues[T ~string](values ...T) string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return strings.Join(out, "|")
}
