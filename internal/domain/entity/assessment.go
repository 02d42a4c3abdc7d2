package entity

// The stage schemas below mirror what the model is asked to return. Every
// field is optional: model output is not guaranteed to match the requested
// shape, so consumers must tolerate absent values.

// PredictionResult is the output of the prediction stage.
type PredictionResult struct {
	PossibleConditions []Condition          `json:"possibleConditions,omitempty"`
	NextSteps          *PredictionNextSteps `json:"nextSteps,omitempty"`
	Disclaimer         string               `json:"disclaimer,omitempty"`
}

type Condition struct {
	Condition            string    `json:"condition,omitempty"`
	Probability          *float64  `json:"probability,omitempty"`
	Severity             *Severity `json:"severity,omitempty"`
	Description          string    `json:"description,omitempty"`
	AyurvedicPerspective string    `json:"ayurvedicPerspective,omitempty"`
}

type PredictionNextSteps struct {
	RecommendedTests       []string      `json:"recommendedTests,omitempty"`
	DoctorVisitRecommended *bool         `json:"doctorVisitRecommended,omitempty"`
	UrgencyLevel           *UrgencyLevel `json:"urgencyLevel,omitempty"`
	GeneralAdvice          string        `json:"generalAdvice,omitempty"`
	ImmediateReliefTips    []string      `json:"immediateReliefTips,omitempty"`
}

// ConditionNames lists the candidate condition names in order, skipping
// blank entries.
func (p *PredictionResult) ConditionNames() []string {
	if p == nil {
		return nil
	}
	names := make([]string, 0, len(p.PossibleConditions))
	for _, c := range p.PossibleConditions {
		if c.Condition != "" {
			names = append(names, c.Condition)
		}
	}
	return names
}

// Severities lists the reported severities in condition order.
func (p *PredictionResult) Severities() []string {
	if p == nil {
		return nil
	}
	out := make([]string, 0, len(p.PossibleConditions))
	for _, c := range p.PossibleConditions {
		if c.Severity != nil {
			out = append(out, string(*c.Severity))
		}
	}
	return out
}

// DietPlan is the output of the diet stage.
type DietPlan struct {
	Summary             string           `json:"summary,omitempty"`
	AyurvedicApproach   string           `json:"ayurvedicApproach,omitempty"`
	Recommendations     []string         `json:"recommendations,omitempty"`
	Foods               *FoodBuckets     `json:"foods,omitempty"`
	MealPlan            *MealPlan        `json:"mealPlan,omitempty"`
	TraditionalRemedies *DietaryRemedies `json:"traditionalRemedies,omitempty"`
	Hydration           string           `json:"hydration,omitempty"`
	SeasonalAdvice      string           `json:"seasonalAdvice,omitempty"`
	Disclaimer          string           `json:"disclaimer,omitempty"`
}

type FoodBuckets struct {
	Recommended []string `json:"recommended,omitempty"`
	Moderate    []string `json:"moderate,omitempty"`
	Avoid       []string `json:"avoid,omitempty"`
}

type MealPlan struct {
	Breakfast []string `json:"breakfast,omitempty"`
	Lunch     []string `json:"lunch,omitempty"`
	Dinner    []string `json:"dinner,omitempty"`
	Snacks    []string `json:"snacks,omitempty"`
}

type DietaryRemedies struct {
	HerbalTeas       []string `json:"herbalTeas,omitempty"`
	SpicesForHealing []string `json:"spicesForHealing,omitempty"`
	HomePreparations []string `json:"homePreparations,omitempty"`
}

// NextSteps is the output of the next-steps stage.
type NextSteps struct {
	HomeCare                 []string             `json:"homeCare,omitempty"`
	TraditionalRemedies      *CareRemedies        `json:"traditionalRemedies,omitempty"`
	Monitoring               *Monitoring          `json:"monitoring,omitempty"`
	MedicalConsultation      *MedicalConsultation `json:"medicalConsultation,omitempty"`
	MedicationConsiderations string               `json:"medicationConsiderations,omitempty"`
	LifestyleModifications   []string             `json:"lifestyleModifications,omitempty"`
	SeasonalAdvice           string               `json:"seasonalAdvice,omitempty"`
	FamilySupport            string               `json:"familySupport,omitempty"`
	PreventiveMeasures       []string             `json:"preventiveMeasures,omitempty"`
	WhenToSeekEmergencyCare  string               `json:"whenToSeekEmergencyCare,omitempty"`
	Disclaimer               string               `json:"disclaimer,omitempty"`
}

type CareRemedies struct {
	AyurvedicPractices []string `json:"ayurvedicPractices,omitempty"`
	HerbalSupplements  []string `json:"herbalSupplements,omitempty"`
	HomePreparations   []string `json:"homePreparations,omitempty"`
}

type Monitoring struct {
	Symptoms            []string `json:"symptoms,omitempty"`
	Vitals              []string `json:"vitals,omitempty"`
	WarningSignsToWatch []string `json:"warningSignsToWatch,omitempty"`
}

type MedicalConsultation struct {
	Recommended         *bool                  `json:"recommended,omitempty"`
	Timeframe           *ConsultationTimeframe `json:"timeframe,omitempty"`
	SpecialistType      []string               `json:"specialistType,omitempty"`
	CostsConsiderations string                 `json:"costsConsiderations,omitempty"`
}

// LifestyleGuidance is the output of the single-stage guidance call. It is
// never persisted.
type LifestyleGuidance struct {
	DoshaAnalysis        *DoshaAnalysis        `json:"doshaAnalysis,omitempty"`
	Dinacharya           *Dinacharya           `json:"dinacharya,omitempty"`
	SeasonalGuidance     *SeasonalGuidance     `json:"seasonalGuidance,omitempty"`
	YogaAndExercise      *YogaAndExercise      `json:"yogaAndExercise,omitempty"`
	MindfulnessPractices *MindfulnessPractices `json:"mindfulnessPractices,omitempty"`
	TraditionalWisdom    *TraditionalWisdom    `json:"traditionalWisdom,omitempty"`
	Disclaimer           string                `json:"disclaimer,omitempty"`
}

type DoshaAnalysis struct {
	DominantDosha        string `json:"dominantDosha,omitempty"`
	ImbalanceIndications string `json:"imbalanceIndications,omitempty"`
	BalancingApproach    string `json:"balancingApproach,omitempty"`
}

type Dinacharya struct {
	WakeUpTime     string   `json:"wakeUpTime,omitempty"`
	MorningRoutine []string `json:"morningRoutine,omitempty"`
	EveningRoutine []string `json:"eveningRoutine,omitempty"`
}

type SeasonalGuidance struct {
	CurrentSeasonAdvice string `json:"currentSeasonAdvice,omitempty"`
	DietaryAdjustments  string `json:"dietaryAdjustments,omitempty"`
	LifestyleChanges    string `json:"lifestyleChanges,omitempty"`
}

type YogaAndExercise struct {
	RecommendedAsanas  []string `json:"recommendedAsanas,omitempty"`
	ExerciseIntensity  string   `json:"exerciseIntensity,omitempty"`
	BestTimeToExercise string   `json:"bestTimeToExercise,omitempty"`
}

type MindfulnessPractices struct {
	Meditation         string `json:"meditation,omitempty"`
	StressManagement   string `json:"stressManagement,omitempty"`
	SpiritualPractices string `json:"spiritualPractices,omitempty"`
}

type TraditionalWisdom struct {
	AncientSayings    string `json:"ancientSayings,omitempty"`
	NaturalHealing    string `json:"naturalHealing,omitempty"`
	CommunityWellness string `json:"communityWellness,omitempty"`
}
