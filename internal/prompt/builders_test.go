package prompt

import (
	"testing"

	"ayursathi-api/internal/domain/entity"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestPrediction_RendersPatientAttributes(t *testing.T) {
	got := Prediction(AssessmentInput{
		Symptoms:       []string{"fever", "headache"},
		Age:            intPtr(30),
		Gender:         "male",
		History:        []string{"asthma"},
		AdditionalInfo: "started two days ago",
	})

	assert.Contains(t, got, "- Age: 30\n")
	assert.Contains(t, got, "- Gender: male\n")
	assert.Contains(t, got, "- Medical History: asthma\n")
	assert.Contains(t, got, "- Reported Symptoms: fever, headache\n")
	assert.Contains(t, got, "- Additional Information: started two days ago\n")
	assert.Contains(t, got, `"severity": "low|moderate|high|severe|emergency"`)
	assert.Contains(t, got, `"urgencyLevel": "routine|soon|urgent|emergency"`)
}

func TestPrediction_MissingAttributesUsePlaceholders(t *testing.T) {
	got := Prediction(AssessmentInput{Symptoms: []string{"cough"}})

	assert.Contains(t, got, "- Age: unspecified\n")
	assert.Contains(t, got, "- Gender: unspecified\n")
	assert.Contains(t, got, "- Medical History: none\n")
	assert.Contains(t, got, "- Additional Information: unspecified\n")
}

func TestPrediction_Deterministic(t *testing.T) {
	in := AssessmentInput{Symptoms: []string{"fever"}, Age: intPtr(41)}
	assert.Equal(t, Prediction(in), Prediction(in))
}

func TestDietPlan_ReadsPredictionConditions(t *testing.T) {
	prediction := &entity.PredictionResult{
		PossibleConditions: []entity.Condition{{Condition: "Viral Fever"}, {Condition: ""}, {Condition: "Dengue"}},
	}

	got := DietPlan(AssessmentInput{Symptoms: []string{"fever"}}, prediction)
	assert.Contains(t, got, "- Possible Conditions: Viral Fever, Dengue\n")
	assert.Contains(t, got, `"mealPlan"`)

	got = DietPlan(AssessmentInput{Symptoms: []string{"fever"}}, nil)
	assert.Contains(t, got, "- Possible Conditions: none\n")
}

func TestNextSteps_IncludesSymptomsAndSeverities(t *testing.T) {
	moderate := entity.SeverityModerate
	prediction := &entity.PredictionResult{
		PossibleConditions: []entity.Condition{{Condition: "Migraine", Severity: &moderate}},
	}

	got := NextSteps(AssessmentInput{Symptoms: []string{"headache", " ", "nausea"}}, prediction)

	assert.Contains(t, got, "- Reported Symptoms: headache, nausea\n")
	assert.Contains(t, got, "- Possible Conditions: Migraine\n")
	assert.Contains(t, got, "- Severity Assessment: moderate\n")
	assert.Contains(t, got, `"timeframe": "immediate|24 hours|within a week|routine"`)
}

func TestLifestyleGuidance_Defaults(t *testing.T) {
	got := LifestyleGuidance(GuidanceInput{})

	assert.Contains(t, got, "- Current Health Concerns: General wellness\n")
	assert.Contains(t, got, "- Lifestyle: Modern lifestyle\n")
	assert.Contains(t, got, "- Season: Current season\n")

	got = LifestyleGuidance(GuidanceInput{Age: intPtr(25), HealthConcerns: "poor sleep", Season: "monsoon"})
	assert.Contains(t, got, "- Age: 25\n")
	assert.Contains(t, got, "- Current Health Concerns: poor sleep\n")
	assert.Contains(t, got, "- Season: monsoon\n")
}

func TestInputFromDiagnosis(t *testing.T) {
	d := &entity.Diagnosis{
		Symptoms: []string{"fever"},
		Age:      intPtr(30),
		Gender:   "female",
		History:  []string{"diabetes"},
	}

	in := InputFromDiagnosis(d)
	assert.Equal(t, []string{"fever"}, in.Symptoms)
	assert.Equal(t, 30, *in.Age)
	assert.Equal(t, "female", in.Gender)
	assert.Equal(t, []string{"diabetes"}, in.History)
}
