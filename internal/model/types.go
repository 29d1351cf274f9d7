// Package model defines shared data structures.
package model

// Situations is the enumerated domain of game situations.
var Situations = []string{"EV", "PP", "SH", "EN"}

// SituationLabels maps situation codes to display names.
var SituationLabels = map[string]string{
	"EV": "Even Strength",
	"PP": "Power Play",
	"SH": "Shorthanded",
	"EN": "Empty Net",
}

// Periods is the enumerated domain of game periods.
var Periods = []string{"1", "2", "3", "OT"}

// Outcomes is the enumerated domain of game outcomes.
var Outcomes = []string{"W", "L", "OTW", "OTL", "SOW", "SOL"}

// Positions is the enumerated domain of player positions.
var Positions = []string{"C", "LW", "RW", "D", "G", "F"}

// Sports is the enumerated domain of tracked sports.
var Sports = []string{"NHL", "NBA", "NFL", "MLB", "OTHER"}

// FilterAll bypasses filtering on a dimension.
const FilterAll = "All"

// IsWin reports whether an outcome is a win variant.
func IsWin(outcome string) bool {
	switch outcome {
	case "W", "OTW", "SOW":
		return true
	default:
		return false
	}
}

// User is the authenticated account.
type User struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Plan  string `json:"plan"`
}

// CanImport reports whether the user's plan allows external imports.
func (u User) CanImport() bool {
	return u.Plan == "PRO" || u.Plan == "ELITE"
}

// Player is a tracked player.
type Player struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Team         string `json:"team"`
	JerseyNumber string `json:"jerseyNumber"`
	Position     string `json:"position"`
	Sport        string `json:"sport"`
}

// GameEntry records one game for a player.
type GameEntry struct {
	ID           string `json:"id"`
	PlayerID     string `json:"playerId"`
	Date         string `json:"date"`
	Opponent     string `json:"opponent"`
	Period       string `json:"period"`
	TimeInPeriod string `json:"timeInPeriod"`
	Situation    string `json:"situation"`
	GameOutcome  string `json:"gameOutcome"`
	WasFirstGoal bool   `json:"wasFirstGoal"`
	HomeAway     string `json:"homeAway"`
	Notes        string `json:"notes"`
}

// SituationBreakdown aggregates first goals for one situation.
type SituationBreakdown struct {
	Count           int     `json:"count"`
	PctOfFirstGoals float64 `json:"pctOfFirstGoals"`
	PctOfAllGames   float64 `json:"pctOfAllGames"`
}

// PeriodBreakdown aggregates first goals for one period.
type PeriodBreakdown struct {
	Count           int     `json:"count"`
	PctOfFirstGoals float64 `json:"pctOfFirstGoals"`
}

// StatsBundle is the derived statistics for one player's entries.
// Always a pure function of the entry collection; never persisted
// by the client.
type StatsBundle struct {
	TotalGames          int                           `json:"totalGames"`
	FirstGoalCount      int                           `json:"firstGoalCount"`
	FirstGoalPct        float64                       `json:"firstGoalPct"`
	BySituation         map[string]SituationBreakdown `json:"bySituation"`
	ByPeriod            map[string]PeriodBreakdown    `json:"byPeriod"`
	CrossTable          map[string]map[string]int     `json:"crossTable"`
	WinRateFirst        float64                       `json:"winRateFirst"`
	Period1FirstGoalPct float64                       `json:"period1FirstGoalPct"`
	AvgTime             string                        `json:"avgTime"`
	Streak              int                           `json:"streak"`
}

// ImportResult is one external player match from an import search.
type ImportResult struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Team     string `json:"team"`
	Position string `json:"position"`
}

// Credentials is the login/register form payload.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	Name     string `json:"name,omitempty"`
}

// PlayerInput is the new-player form payload.
type PlayerInput struct {
	Name         string `json:"name" validate:"required"`
	Team         string `json:"team"`
	JerseyNumber string `json:"jerseyNumber"`
	Position     string `json:"position" validate:"oneof=C LW RW D G F"`
	Sport        string `json:"sport" validate:"oneof=NHL NBA NFL MLB OTHER"`
}

// EntryInput is the log-game form payload. Edits are full-record
// replacements, so the same struct serves create and update.
type EntryInput struct {
	PlayerID     string `json:"playerId" validate:"required"`
	Date         string `json:"date" validate:"required,datetime=2006-01-02"`
	Opponent     string `json:"opponent" validate:"required"`
	Period       string `json:"period" validate:"oneof=1 2 3 OT"`
	TimeInPeriod string `json:"timeInPeriod" validate:"omitempty,clock"`
	Situation    string `json:"situation" validate:"oneof=EV PP SH EN"`
	GameOutcome  string `json:"gameOutcome" validate:"oneof=W L OTW OTL SOW SOL"`
	WasFirstGoal bool   `json:"wasFirstGoal"`
	HomeAway     string `json:"homeAway" validate:"oneof=HOME AWAY"`
	Notes        string `json:"notes"`
}
