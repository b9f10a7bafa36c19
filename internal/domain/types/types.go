// Package types contains the JSON shapes shared by the API, the service and the CLI.
package types

// TeamEntry is one ranked team as returned to clients.
type TeamEntry struct {
	Rank         int      `json:"rank"`
	Team         string   `json:"team"`
	Members      []string `json:"members"`
	SkillScore   float64  `json:"skill_score"`
	SynergyScore float64  `json:"synergy_score"`
	TotalScore   float64  `json:"total_score"`
	Explanation  string   `json:"explanation"`
}

// TeamRanking is the response for a team ranking request.
type TeamRanking struct {
	RunID string      `json:"run_id"`
	Task  string      `json:"task"`
	TopN  int         `json:"top_n"`
	Teams []TeamEntry `json:"teams"`
}

// SoloEntry is one ranked individual.
type SoloEntry struct {
	Rank     int     `json:"rank"`
	Employee string  `json:"employee"`
	Score    float64 `json:"score"`
}
