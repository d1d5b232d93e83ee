package models

// Ranking periods
const (
	RankingWeekly  = "weekly"
	RankingMonthly = "monthly"
	RankingOverall = "overall"
)

// AuthorStats is one $group row from the answers aggregation.
type AuthorStats struct {
	Author        string `bson:"_id" json:"author"`
	AnswersCount  int    `bson:"answersCount" json:"answersCount"`
	AcceptedCount int    `bson:"acceptedCount" json:"acceptedCount"`
}

// RankingEntry is a scored, ranked leaderboard row.
// Score = answersCount + acceptedCount*5.
type RankingEntry struct {
	Rank          int    `json:"rank"`
	Author        string `json:"author"`
	UserName      string `json:"userName,omitempty"`
	AnswersCount  int    `json:"answersCount"`
	AcceptedCount int    `json:"acceptedCount"`
	Score         int    `json:"score"`
}
