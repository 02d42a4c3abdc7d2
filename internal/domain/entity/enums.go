package entity

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEnumViolation is returned when model output carries a value outside a
// closed enumeration.
var ErrEnumViolation = errors.New("value outside closed enumeration")

// Severity is ordered from least to most serious.
type Severity string

const (
	SeverityLow       Severity = "low"
	SeverityModerate  Severity = "moderate"
	SeverityHigh      Severity = "high"
	SeveritySevere    Severity = "severe"
	SeverityEmergency Severity = "emergency"
)

var severities = []Severity{SeverityLow, SeverityModerate, SeverityHigh, SeveritySevere, SeverityEmergency}

// Rank returns the position of s in the severity ordering, or -1.
func (s Severity) Rank() int {
	for i, v := range severities {
		if v == s {
			return i
		}
	}
	return -1
}

func (s Severity) IsValid() bool {
	return s.Rank() >= 0
}

func (s *Severity) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "severity", severities)
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// UrgencyLevel is the prediction stage's coarse recommendation.
type UrgencyLevel string

const (
	UrgencyRoutine   UrgencyLevel = "routine"
	UrgencySoon      UrgencyLevel = "soon"
	UrgencyUrgent    UrgencyLevel = "urgent"
	UrgencyEmergency UrgencyLevel = "emergency"
)

var urgencyLevels = []UrgencyLevel{UrgencyRoutine, UrgencySoon, UrgencyUrgent, UrgencyEmergency}

func (u UrgencyLevel) IsValid() bool {
	for _, v := range urgencyLevels {
		if v == u {
			return true
		}
	}
	return false
}

func (u *UrgencyLevel) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "urgencyLevel", urgencyLevels)
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// ConsultationTimeframe is how soon a medical consultation should happen.
type ConsultationTimeframe string

const (
	TimeframeImmediate    ConsultationTimeframe = "immediate"
	TimeframeWithinDay    ConsultationTimeframe = "24 hours"
	TimeframeWithinWeek   ConsultationTimeframe = "within a week"
	TimeframeRoutineVisit ConsultationTimeframe = "routine"
)

var timeframes = []ConsultationTimeframe{TimeframeImmediate, TimeframeWithinDay, TimeframeWithinWeek, TimeframeRoutineVisit}

func (t ConsultationTimeframe) IsValid() bool {
	for _, v := range timeframes {
		if v == t {
			return true
		}
	}
	return false
}

func (t *ConsultationTimeframe) UnmarshalJSON(data []byte) error {
	v, err := decodeEnum(data, "timeframe", timeframes)
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// decodeEnum matches a JSON string against allowed, ignoring case and
// surrounding whitespace.
func decodeEnum[T ~string](data []byte, field string, allowed []T) (T, error) {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return "", fmt.Errorf("%w: %s must be a string", ErrEnumViolation, field)
	}
	norm := strings.ToLower(strings.TrimSpace(raw))
	for _, v := range allowed {
		if string(v) == norm {
			return v, nil
		}
	}
	return "", fmt.Errorf("%w: %s %q", ErrEnumViolation, field, raw)
}
