package domain

// Difficulty levels understood by the catalog and the per-question timer table.
const (
	LevelEasy   = "Easy"
	LevelMedium = "Medium"
	LevelHard   = "Hard"
)

// MixedGenre widens a room's genre filter to the whole catalog.
const MixedGenre = "Mixed"

// TimePerQuestion maps a level to the seconds allotted per question.
// Unknown levels fall back to the Medium budget.
func TimePerQuestion(level string) int {
	switch level {
	case LevelEasy:
		return 10
	case LevelMedium:
		return 15
	case LevelHard:
		return 20
	default:
		return 15
	}
}

// User is the profile attached to a live connection after authentication.
type User struct {
	ID        string   `json:"id"`
	FirstName string   `json:"firstname,omitempty"`
	LastName  string   `json:"lastname,omitempty"`
	Name      string   `json:"name"`
	Avatar    string   `json:"avatar"`
	Genres    []string `json:"genres"`
	IsGuest   bool     `json:"isGuest"`
}

// UserUpdate carries the mutable profile fields for directory writes.
type UserUpdate struct {
	Avatar    string   `json:"avatar"`
	Genres    []string `json:"genres"`
	FirstName string   `json:"firstname"`
	LastName  string   `json:"lastname"`
}

// Question is one catalog item. IDs are stable so used-question tracking
// does not depend on prompt text being unique.
type Question struct {
	ID      string   `json:"id"`
	Genre   string   `json:"genre"`
	Prompt  string   `json:"question"`
	Options []string `json:"options"`
	Correct int      `json:"correct"`
	Level   string   `json:"level"`
	Hint    string   `json:"hint"`
}

// PlayerInfo is the wire view of a room occupant.
type PlayerInfo struct {
	ID        string `json:"id"`
	User      User   `json:"user"`
	HintsLeft int    `json:"hintsLeft"`
	CostHints int    `json:"costHints"`
}

// RoomInfo is the wire view of a room as carried by room-joined and room-list events.
type RoomInfo struct {
	ID      string       `json:"id"`
	Name    string       `json:"name,omitempty"`
	Genres  []string     `json:"genres"`
	Level   string       `json:"level"`
	Players []PlayerInfo `json:"players"`
	Host    string       `json:"host"`
	Puzzle  bool         `json:"puzzle"`
}
