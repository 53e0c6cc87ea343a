package models

type Child struct {
	ID           string `json:"id"`
	ParentID     string `json:"parent_id"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Allergies    string `json:"allergies,omitempty"`
	SpecialNeeds string `json:"special_needs,omitempty"`
}
