package app

import "quiz-rooms-service/internal/domain"

// Outbound event types. Refusals share the auth-error shape regardless of
// cause so the client contract stays uniform.
const (
	EventAuthSuccess  = "auth-success"
	EventAuthError    = "auth-error"
	EventRoomJoined   = "room-joined"
	EventRoomList     = "room-list"
	EventQuizStart    = "quiz-start"
	EventQuestion     = "question"
	EventAnswerResult = "answer-result"
	EventScores       = "scores"
	EventHintResult   = "hint-result"
	EventResults      = "results"
	EventPlayerLeft   = "player-left"
)

// Event is one outbound message on the wire: a type tag plus its payload.
type Event struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

// Publisher is the fan-out port of the session gateway. It can address all
// connected clients, the clients in one room, or a single connection, and it
// tracks room membership the way socket.io rooms do.
type Publisher interface {
	Broadcast(e Event)
	ToRoom(roomID string, e Event)
	ToConn(connID string, e Event)
	Join(connID, roomID string)
	Leave(connID, roomID string)
}

// AuthSuccess is sent to a connection after login, signup, or guest entry.
// SkipAvatar tells the client whether the profile step can be skipped.
type AuthSuccess struct {
	User       domain.User `json:"user"`
	IsGuest    bool        `json:"isGuest"`
	SkipAvatar bool        `json:"skipAvatar,omitempty"`
}

// Refusal is the uniform message shape for user-visible errors.
type Refusal struct {
	Message string `json:"message"`
}

// QuizStart announces a session transitioning to InProgress. RoomID lets
// quick-start clients address answers and hints without a prior room-joined.
type QuizStart struct {
	RoomID          string `json:"roomId"`
	IsMultiplayer   bool   `json:"isMultiplayer"`
	TimePerQuestion int    `json:"timePerQuestion"`
	Puzzle          bool   `json:"puzzle"`
}

// QuestionEvent carries one question to the whole room.
type QuestionEvent struct {
	QuestionID int      `json:"questionId"`
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Time       int      `json:"time"`
}

// AnswerResult acknowledges a submission privately, correct or not.
type AnswerResult struct {
	QuestionID    int  `json:"questionId"`
	Correct       bool `json:"correct"`
	Answer        int  `json:"answer"`
	CorrectAnswer int  `json:"correctAnswer"`
}

// ScorePair marshals as a [name, score] tuple; the scores event is a list of them.
type ScorePair [2]any

// HintResult covers all hint outcomes: a granted hint, a cost quote, or a refusal.
type HintResult struct {
	Success         *bool  `json:"success,omitempty"`
	HintsLeft       *int   `json:"hintsLeft,omitempty"`
	Hint            string `json:"hint,omitempty"`
	Message         string `json:"message,omitempty"`
	Cost            int    `json:"cost,omitempty"`
	TimePerQuestion int    `json:"timePerQuestion,omitempty"`
	QuestionID      int    `json:"questionId"`
}

// ScoreLine is one row of the final ranking.
type ScoreLine struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// Results is the multiplayer end-of-session summary.
type Results struct {
	Winner ScoreLine   `json:"winner"`
	Runner *ScoreLine  `json:"runner"`
	Others []ScoreLine `json:"others"`
}

// SoloResult is the single-player end-of-session summary.
type SoloResult struct {
	Name  string `json:"name"`
	Score int    `json:"score"`
}

// PlayerLeft notifies a room that an occupant is gone.
type PlayerLeft struct {
	PlayerName string `json:"playerName"`
}

func refusal(msg string) Event {
	return Event{Type: EventAuthError, Payload: Refusal{Message: msg}}
}

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }
