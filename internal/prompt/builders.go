package prompt

import (
	"fmt"
	"strings"

	"ayursathi-api/internal/domain/entity"
)

const respondOnly = "Analyze the above information and respond ONLY in the following JSON format:"

var indianHealthContext = []string{
	"Common diseases prevalent in India (dengue, malaria, typhoid, seasonal infections)",
	"Monsoon and seasonal health issues",
	"Indian lifestyle factors (diet, climate, stress)",
	"Traditional Ayurvedic understanding of doshas and imbalances",
}

var indianDietContext = []string{
	"Traditional Indian foods and cooking methods",
	"Regional specialties (North Indian, South Indian, etc.)",
	"Ayurvedic food principles (hot/cold foods, digestive fire - Agni)",
	"Seasonal eating according to Indian climate",
	"Easily available ingredients in Indian markets",
	"Home remedies and traditional preparations",
}

var indianCareContext = []string{
	"Healthcare accessibility in India",
	"Traditional Ayurvedic practices",
	"Common home remedies used in Indian households",
	"Seasonal health considerations",
	"Family and community support systems",
	"Cost-effective treatment options",
}

// Prediction renders the first stage: candidate conditions for the reported
// symptoms.
func Prediction(in AssessmentInput) string {
	var b strings.Builder

	b.WriteString("You are AyurSathi, a medical AI assistant with expertise in both modern medicine and traditional Indian Ayurveda. ")
	b.WriteString("You analyze symptoms and provide possible conditions, considering both contemporary medical knowledge and traditional Indian health principles. ")
	b.WriteString("DO NOT provide definitive diagnoses, but rather possibilities based on the information.\n\n")

	b.WriteString("PATIENT INFORMATION:\n")
	attr(&b, "Age", age(in.Age))
	attr(&b, "Gender", text(in.Gender))
	attr(&b, "Medical History", list(in.History))
	attr(&b, "Reported Symptoms", list(in.Symptoms))
	attr(&b, "Additional Information", text(in.AdditionalInfo))
	b.WriteString("\n")

	section(&b, "Consider the Indian context including:", indianHealthContext)
	schema(&b, respondOnly, predictionShape)

	return b.String()
}

// DietPlan renders the second stage. It reads the conditions named by the
// prediction block.
func DietPlan(in AssessmentInput, prediction *entity.PredictionResult) string {
	var b strings.Builder

	b.WriteString("You are AyurSathi, a nutritional AI assistant with expertise in Indian cuisine and Ayurvedic nutrition. ")
	b.WriteString("Create diet plans that incorporate traditional Indian foods, regional specialties, and Ayurvedic principles alongside modern nutritional science.\n\n")

	b.WriteString("PATIENT INFORMATION:\n")
	attr(&b, "Age", age(in.Age))
	attr(&b, "Gender", text(in.Gender))
	attr(&b, "Medical History", list(in.History))
	attr(&b, "Possible Conditions", list(prediction.ConditionNames()))
	b.WriteString("\n")

	section(&b, "Focus on Indian dietary preferences and include:", indianDietContext)
	schema(&b, "Create a recovery-focused diet plan. Respond ONLY in the following JSON format:", dietShape)

	return b.String()
}

// NextSteps renders the third stage from the snapshot, its symptoms and the
// prediction block.
func NextSteps(in AssessmentInput, prediction *entity.PredictionResult) string {
	var b strings.Builder

	b.WriteString("You are AyurSathi, a medical AI assistant with expertise in both modern healthcare and traditional Indian healing practices. ")
	b.WriteString("Provide culturally relevant next steps that consider the Indian healthcare context, traditional remedies, and lifestyle factors.\n\n")

	b.WriteString("PATIENT INFORMATION:\n")
	attr(&b, "Age", age(in.Age))
	attr(&b, "Gender", text(in.Gender))
	attr(&b, "Medical History", list(in.History))
	attr(&b, "Reported Symptoms", list(in.Symptoms))
	attr(&b, "Possible Conditions", list(prediction.ConditionNames()))
	attr(&b, "Severity Assessment", list(prediction.Severities()))
	b.WriteString("\n")

	section(&b, "Consider Indian context including:", indianCareContext)
	schema(&b, "Provide detailed next steps recommendations in the following JSON format:", nextStepsShape)

	return b.String()
}

// LifestyleGuidance renders the single-stage guidance call. Blank fields take
// the GuidanceInput defaults.
func LifestyleGuidance(in GuidanceInput) string {
	in = in.WithDefaults()

	var b strings.Builder

	b.WriteString("You are AyurSathi, an Ayurvedic wellness advisor with deep knowledge of traditional Indian health practices, yoga, and holistic lifestyle guidance. ")
	b.WriteString("Provide personalized recommendations based on Ayurvedic principles.\n\n")

	b.WriteString("USER INFORMATION:\n")
	attr(&b, "Age", age(in.Age))
	attr(&b, "Gender", text(in.Gender))
	attr(&b, "Current Health Concerns", in.HealthConcerns)
	attr(&b, "Lifestyle", in.Lifestyle)
	attr(&b, "Season", in.Season)
	b.WriteString("\n")

	schema(&b, "Provide comprehensive Ayurvedic lifestyle guidance in the following JSON format:", guidanceShape)

	return b.String()
}

var predictionShape = fmt.Sprintf(`{
  "possibleConditions": [
    {
      "condition": "Condition name",
      "probability": 0.XX, // number between 0 and 1
      "severity": "%s",
      "description": "Brief description considering both modern and traditional perspectives",
      "ayurvedicPerspective": "Brief Ayurvedic understanding if applicable"
    }
  ],
  "nextSteps": {
    "recommendedTests": ["Test 1", "Test 2"],
    "doctorVisitRecommended": true|false,
    "urgencyLevel": "%s",
    "generalAdvice": "Advice considering Indian healthcare context",
    "immediateReliefTips": ["Natural remedy 1", "Traditional practice 2"]
  },
  "disclaimer": "This is for informational purposes only. Always consult with qualified healthcare professionals. Traditional remedies should complement, not replace, modern medical treatment."
}`,
	enumValues(entity.SeverityLow, entity.SeverityModerate, entity.SeverityHigh, entity.SeveritySevere, entity.SeverityEmergency),
	enumValues(entity.UrgencyRoutine, entity.UrgencySoon, entity.UrgencyUrgent, entity.UrgencyEmergency),
)

const dietShape = `{
  "summary": "Brief summary incorporating Ayurvedic and modern nutritional principles",
  "ayurvedicApproach": "Dosha balancing recommendations and traditional wisdom",
  "recommendations": ["Recommendation 1", "Recommendation 2"],
  "foods": {
    "recommended": ["Traditional Indian foods relevant to condition"],
    "moderate": ["Moderately consume these Indian foods"],
    "avoid": ["Avoid these during recovery"]
  },
  "mealPlan": {
    "breakfast": ["Option 1", "Option 2"],
    "lunch": ["Option 1", "Option 2"],
    "dinner": ["Option 1", "Option 2"],
    "snacks": ["Option 1", "Option 2"]
  },
  "traditionalRemedies": {
    "herbalTeas": ["Ginger-tulsi tea", "Ajwain water"],
    "spicesForHealing": ["Turmeric", "Ginger", "Cumin"],
    "homePreparations": ["Kadha recipes", "Traditional broths"]
  },
  "hydration": "Hydration guidance",
  "seasonalAdvice": "Seasonal adjustments for the Indian climate",
  "disclaimer": "This combines traditional Ayurvedic wisdom with modern nutrition. Consult healthcare providers for serious conditions."
}`

var nextStepsShape = fmt.Sprintf(`{
  "homeCare": ["Instruction 1", "Instruction 2"],
  "traditionalRemedies": {
    "ayurvedicPractices": ["Practice 1"],
    "herbalSupplements": ["Supplement 1"],
    "homePreparations": ["Preparation 1"]
  },
  "monitoring": {
    "symptoms": ["Symptom to track"],
    "vitals": ["Vital to check"],
    "warningSignsToWatch": ["Warning sign"]
  },
  "medicalConsultation": {
    "recommended": true|false,
    "timeframe": "%s",
    "specialistType": ["MBBS Doctor", "Ayurvedic Practitioner"],
    "costsConsiderations": "Affordable care options"
  },
  "medicationConsiderations": "Guidance on combining prescribed medicine with traditional remedies",
  "lifestyleModifications": ["Modification 1", "Modification 2"],
  "seasonalAdvice": "Seasonal lifestyle adjustments",
  "familySupport": "How family can support recovery",
  "preventiveMeasures": ["Measure 1", "Measure 2"],
  "whenToSeekEmergencyCare": "Signs that require visiting the nearest hospital immediately",
  "disclaimer": "This combines modern medical advice with traditional Indian healing practices. Always prioritize urgent medical care when needed."
}`,
	enumValues(entity.TimeframeImmediate, entity.TimeframeWithinDay, entity.TimeframeWithinWeek, entity.TimeframeRoutineVisit),
)

const guidanceShape = `{
  "doshaAnalysis": {
    "dominantDosha": "Vata|Pitta|Kapha",
    "imbalanceIndications": "Signs of dosha imbalance",
    "balancingApproach": "How to balance the predominant dosha"
  },
  "dinacharya": {
    "wakeUpTime": "Ideal wake-up time according to Ayurveda",
    "morningRoutine": ["Step 1", "Step 2"],
    "eveningRoutine": ["Step 1", "Step 2"]
  },
  "seasonalGuidance": {
    "currentSeasonAdvice": "Guidance for the current Indian season",
    "dietaryAdjustments": "Seasonal food recommendations",
    "lifestyleChanges": "Activities to align with seasonal energy"
  },
  "yogaAndExercise": {
    "recommendedAsanas": ["Asana 1", "Pranayama technique"],
    "exerciseIntensity": "Light|Moderate|Vigorous",
    "bestTimeToExercise": "Optimal time for physical activity"
  },
  "mindfulnessPractices": {
    "meditation": "Suitable meditation",
    "stressManagement": "Traditional stress-relief practices",
    "spiritualPractices": "Optional spiritual wellness suggestions"
  },
  "traditionalWisdom": {
    "ancientSayings": "Relevant traditional sayings about health",
    "naturalHealing": "Traditional Indian healing practices",
    "communityWellness": "Role of family and community in healing"
  },
  "disclaimer": "This guidance is based on traditional Ayurvedic principles. For serious health conditions, please consult qualified healthcare practitioners."
}`
