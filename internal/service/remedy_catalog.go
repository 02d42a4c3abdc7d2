package service

import (
	"strings"

	"ayursathi-api/internal/domain/entity"
)

// RemediesDisclaimer accompanies every catalog lookup.
const RemediesDisclaimer = "These are traditional home remedies for informational purposes. Consult healthcare providers for serious conditions."

// Known remedy categories.
const (
	CategoryFever           = "fever"
	CategoryCold            = "cold"
	CategoryDigestive       = "digestive"
	CategoryStress          = "stress"
	CategoryRespiratory     = "respiratory"
	CategorySkin            = "skin"
	CategoryMusculoskeletal = "musculoskeletal"
	CategoryHeadache        = "headache"
	CategoryWomensHealth    = "womens_health"
)

var remedyTable = map[string]entity.RemedySet{
	CategoryFever: {
		Name: "बुखार के लिए घरेलू उपचार (Fever Home Remedies)",
		Remedies: []string{
			"Tulsi and ginger kadha - Boil 10-15 tulsi leaves with ginger and black pepper",
			"Turmeric milk with a pinch of black pepper before bedtime",
			"Cool forehead compress with wet cloth",
			"Drink plenty of coconut water and ORS",
			"Giloy juice with honey for immunity boost",
			"Coriander seeds water to reduce body heat",
		},
		Spices:    []string{"Tulsi", "Ginger", "Black pepper", "Turmeric", "Giloy", "Coriander"},
		Avoidance: []string{"Heavy meals", "Cold drinks", "Oily foods", "Dairy products"},
	},
	CategoryCold: {
		Name: "सर्दी-जुकाम के उपचार (Cold and Cough Remedies)",
		Remedies: []string{
			"Steam inhalation with ajwain or mint leaves",
			"Honey with ginger juice and tulsi",
			"Warm salt water gargling",
			"Jeera-dhania-saunf tea",
			"Mulethi (licorice) tea for throat relief",
			"Clove and cardamom with warm water",
		},
		Spices:    []string{"Ajwain", "Honey", "Ginger", "Tulsi", "Mulethi", "Clove"},
		Avoidance: []string{"Cold foods", "Dairy", "Fried items", "Ice cream"},
	},
	CategoryDigestive: {
		Name: "पाचन संबंधी समस्याओं का इलाज (Digestive Issues Treatment)",
		Remedies: []string{
			"Jeera water on empty stomach",
			"Hing with warm water for gas relief",
			"Buttermilk with roasted cumin powder",
			"Light khichdi with ghee and hing",
			"Fennel seeds after meals",
			"Ginger-lemon tea before meals",
		},
		Spices:    []string{"Jeera", "Hing", "Ajwain", "Dhania", "Saunf", "Ginger"},
		Avoidance: []string{"Heavy meals", "Spicy food", "Cold drinks", "Late night eating"},
	},
	CategoryStress: {
		Name: "तनाव और चिंता का इलाज (Stress and Anxiety Relief)",
		Remedies: []string{
			"Ashwagandha powder with warm milk",
			"Brahmi tea or powder",
			"Pranayama and meditation",
			"Chamomile tea with honey",
			"Jatamansi powder for better sleep",
			"Oil massage with sesame or coconut oil",
		},
		Spices:    []string{"Ashwagandha", "Brahmi", "Jatamansi", "Shankhpushpi"},
		Avoidance: []string{"Caffeine", "Heavy meals", "Late nights", "Excessive screen time"},
	},
	CategoryRespiratory: {
		Name: "श्वसन संबंधी समस्याओं का इलाज (Respiratory Issues Treatment)",
		Remedies: []string{
			"Steam inhalation with eucalyptus or mint",
			"Honey with black pepper for cough",
			"Turmeric milk with ghee for chest congestion",
			"Ginger-tulsi-honey syrup",
			"Warm mustard oil massage on chest",
			"Breathing exercises (Pranayama)",
		},
		Spices:    []string{"Honey", "Black pepper", "Turmeric", "Ginger", "Tulsi", "Eucalyptus"},
		Avoidance: []string{"Cold beverages", "Smoking", "Dusty environments", "Air pollution exposure"},
	},
	CategorySkin: {
		Name: "त्वचा संबंधी समस्याओं का इलाज (Skin Issues Treatment)",
		Remedies: []string{
			"Neem paste for infections and acne",
			"Turmeric with rose water for glowing skin",
			"Aloe vera gel for burns and rashes",
			"Sandalwood powder with milk for cooling",
			"Coconut oil for dry skin",
			"Besan (gram flour) face pack for oily skin",
		},
		Spices:    []string{"Neem", "Turmeric", "Sandalwood", "Rose water", "Aloe vera"},
		Avoidance: []string{"Harsh chemicals", "Excessive sun exposure", "Spicy foods", "Processed foods"},
	},
	CategoryMusculoskeletal: {
		Name: "मांसपेशियों और हड्डियों की समस्याओं का इलाज (Muscle and Bone Issues Treatment)",
		Remedies: []string{
			"Warm sesame oil massage for joint pain",
			"Turmeric milk for inflammation",
			"Ginger tea for muscle soreness",
			"Hot water compress for stiffness",
			"Fenugreek seeds soaked overnight for joint health",
			"Yoga and gentle stretching exercises",
		},
		Spices:    []string{"Sesame oil", "Turmeric", "Ginger", "Fenugreek", "Ajwain"},
		Avoidance: []string{"Cold weather exposure", "Prolonged sitting", "Heavy lifting", "Processed foods"},
	},
	CategoryHeadache: {
		Name: "सिरदर्द का इलाज (Headache Treatment)",
		Remedies: []string{
			"Peppermint oil on temples",
			"Ginger tea with honey",
			"Cold compress on forehead",
			"Cinnamon paste on forehead",
			"Clove oil for tension headaches",
			"Adequate hydration and rest",
		},
		Spices:    []string{"Peppermint", "Ginger", "Cinnamon", "Clove"},
		Avoidance: []string{"Bright lights", "Loud noises", "Stress", "Dehydration"},
	},
	CategoryWomensHealth: {
		Name: "महिलाओं के स्वास्थ्य संबंधी समस्याओं का इलाज (Women's Health Issues Treatment)",
		Remedies: []string{
			"Fenugreek seeds for menstrual irregularities",
			"Sesame seeds for hormone balance",
			"Shatavari powder with milk",
			"Warm compress for menstrual cramps",
			"Carom seeds (ajwain) water for period pain",
			"Iron-rich foods like dates and jaggery",
		},
		Spices:    []string{"Fenugreek", "Sesame seeds", "Shatavari", "Ajwain", "Dates"},
		Avoidance: []string{"Cold foods during periods", "Excessive physical exertion", "Stress", "Junk food"},
	},
}

var generalRemedies = entity.RemedySet{
	Name: "सामान्य घरेलू उपचार (General Home Remedies)",
	Remedies: []string{
		"Drink warm water throughout the day",
		"Include turmeric in daily cooking",
		"Practice deep breathing exercises",
		"Maintain regular sleep schedule",
		"Eat fresh, seasonal fruits and vegetables",
		"Regular physical activity and yoga",
	},
	Spices:    []string{"Turmeric", "Ginger", "Cumin", "Coriander", "Tulsi"},
	Avoidance: []string{"Processed foods", "Late meals", "Stress", "Irregular sleep"},
}

// NormalizeCategory lower-cases and trims category and maps '-' and spaces
// to '_', so "Womens-Health" finds "womens_health".
func NormalizeCategory(category string) string {
	c := strings.ToLower(strings.TrimSpace(category))
	return strings.NewReplacer("-", "_", " ", "_").Replace(c)
}

// LookupRemedies returns the remedy set for category, or the general set when
// the category is unknown. The returned set is a copy.
func LookupRemedies(category string) entity.RemedySet {
	set, ok := remedyTable[NormalizeCategory(category)]
	if !ok {
		set = generalRemedies
	}
	return cloneRemedySet(set)
}

// RemedyCategories lists the known categories.
func RemedyCategories() []string {
	return []string{
		CategoryFever, CategoryCold, CategoryDigestive, CategoryStress, CategoryRespiratory,
		CategorySkin, CategoryMusculoskeletal, CategoryHeadache, CategoryWomensHealth,
	}
}

func cloneRemedySet(s entity.RemedySet) entity.RemedySet {
	return entity.RemedySet{
		Name:      s.Name,
		Remedies:  append([]string(nil), s.Remedies...),
		Spices:    append([]string(nil), s.Spices...),
		Avoidance: append([]string(nil), s.Avoidance...),
	}
}
