package entity

// RemedySet is a canned list of home remedies for one symptom category.
type RemedySet struct {
	Name      string   `json:"name"`
	Remedies  []string `json:"remedies"`
	Spices    []string `json:"spices"`
	Avoidance []string `json:"avoidance"`
}
