package models

// Exercise is a suggested exercise for a muscle group.
type Exercise struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	Difficulty   string `json:"difficulty"`
	Muscle       string `json:"muscle"`
	Equipment    string `json:"equipment"`
	Instructions string `json:"instructions"`
}
