package app

import "quiz-rooms-service/internal/domain"

// MaxPlayers is the join cap per room.
const MaxPlayers = 5

// Player is a room occupant bound to one live connection.
type Player struct {
	ConnID    string
	User      domain.User
	HintsLeft int
	CostHints int
}

// session is the runtime state of an InProgress room. It exists from the
// moment a start action is accepted until results are sent.
type session struct {
	index           int // next question index to send
	timePerQuestion int
	multiplayer     bool
}

// Room owns one quiz session's full state. The registry is its sole owner;
// all mutation happens under the engine lock.
type Room struct {
	ID      string
	Name    string
	Genres  []string
	Level   string
	Players []*Player
	Host    string
	Puzzle  bool

	Scores          map[string]int
	Answered        string              // who answered first this question
	AnsweredPlayers map[string]struct{} // who has answered this question
	ResultsSent     bool
	UsedQuestionIDs []string // unique, drives selection filtering
	AskedQuestions  []string // index-aligned with question events, drives answer/hint lookup

	session *session
}

// NewRoom builds a lobby-state room with its creator as host and first player.
func NewRoom(id, name string, genres []string, level string, host *Player) *Room {
	return &Room{
		ID:      id,
		Name:    name,
		Genres:  genres,
		Level:   level,
		Players: []*Player{host},
		Host:    host.ConnID,
	}
}

// Player returns the occupant bound to connID, or nil.
func (r *Room) Player(connID string) *Player {
	for _, p := range r.Players {
		if p.ConnID == connID {
			return p
		}
	}
	return nil
}

// RemovePlayer strips connID from the room and reports whether it was present.
func (r *Room) RemovePlayer(connID string) bool {
	for i, p := range r.Players {
		if p.ConnID == connID {
			r.Players = append(r.Players[:i], r.Players[i+1:]...)
			return true
		}
	}
	return false
}

// View is the wire representation of the room.
func (r *Room) View() domain.RoomInfo {
	players := make([]domain.PlayerInfo, 0, len(r.Players))
	for _, p := range r.Players {
		players = append(players, domain.PlayerInfo{
			ID:        p.ConnID,
			User:      p.User,
			HintsLeft: p.HintsLeft,
			CostHints: p.CostHints,
		})
	}
	return domain.RoomInfo{
		ID:      r.ID,
		Name:    r.Name,
		Genres:  r.Genres,
		Level:   r.Level,
		Players: players,
		Host:    r.Host,
		Puzzle:  r.Puzzle,
	}
}

func (r *Room) resetScores() {
	r.Scores = make(map[string]int, len(r.Players))
	for _, p := range r.Players {
		r.Scores[p.ConnID] = 0
	}
}

// markAsked records a served question. The asked history always grows so the
// Nth question event resolves by index; the used set stays unique even when
// the fallback chain re-serves an already-seen question.
func (r *Room) markAsked(questionID string) {
	r.AskedQuestions = append(r.AskedQuestions, questionID)
	for _, id := range r.UsedQuestionIDs {
		if id == questionID {
			return
		}
	}
	r.UsedQuestionIDs = append(r.UsedQuestionIDs, questionID)
}
