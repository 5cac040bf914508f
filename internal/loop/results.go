package loop

import "fmt"

// EndReason tells why a game ended.
type EndReason string

const (
	EndNone  EndReason = ""
	EndLives EndReason = "lives"
	EndTime  EndReason = "time"
)

// Result is what the result panel shows.
type Result struct {
	Title   string
	Message string
	Score   int
	Reason  EndReason
}

// tier maps a score range to a result text. Message takes the score.
type tier struct {
	below   int // Exclusive upper score bound
	title   string
	message string
}

// Score <= 0 is handled before the table.
var tiers = []tier{
	{100, "TCS", "Kya majduri thi: %d"},
	{200, "Local Startup", "Kuch to ukhadoge hi: %d"},
	{300, "Cognizant", "Score: %d. Chalo badhiya h"},
	{400, "ORACLE", "Score: %d. Badhai ho aapko"},
}

// ResultFor returns the result panel for a final score.
func ResultFor(score int) Result {
	r := Result{Score: score}
	if score <= 0 {
		r.Title = "Berozgari"
		r.Message = fmt.Sprintf("Ek game katha %d", score)
		return r
	}
	for _, t := range tiers {
		if score < t.below {
			r.Title = t.title
			r.Message = fmt.Sprintf(t.message, score)
			return r
		}
	}
	r.Title = "Dream Offer 🌟"
	r.Message = fmt.Sprintf("Score: %d. MANG!! bhai aag lagadi", score)
	return r
}
