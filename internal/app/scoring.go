package app

import (
	"context"
	"log"
	"sort"
)

// Points awarded per question: first correct answer, then later corrects.
const (
	firstAnswerPoints = 3
	laterAnswerPoints = 1
	winThreshold      = 15
)

// SubmitAnswer processes one answer. Unknown rooms, foreign connections, and
// stale question indexes are dropped silently; they are benign races under
// at-least-once delivery, not client errors. Every accepted call acknowledges
// the submitter privately and publishes a scores snapshot to the room.
func (g *GameService) SubmitAnswer(ctx context.Context, connID, roomID string, answer, questionIndex int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms.Get(roomID)
	if !ok || room.Player(connID) == nil || room.session == nil {
		return
	}
	if questionIndex < 0 || questionIndex >= len(room.AskedQuestions) {
		return
	}
	_, byID, err := g.questionBank(ctx)
	if err != nil {
		log.Printf("room %s: load catalog: %v", room.ID, err)
		return
	}
	question, ok := byID[room.AskedQuestions[questionIndex]]
	if !ok {
		return
	}

	correct := answer == question.Correct
	if room.Scores == nil {
		room.resetScores()
	}
	if correct {
		if room.Answered == "" {
			room.Scores[connID] += firstAnswerPoints
			room.Answered = connID
		} else {
			room.Scores[connID] += laterAnswerPoints
		}
	}

	if room.AnsweredPlayers == nil {
		room.AnsweredPlayers = make(map[string]struct{})
	}
	room.AnsweredPlayers[connID] = struct{}{}

	g.pub.ToConn(connID, Event{Type: EventAnswerResult, Payload: AnswerResult{
		QuestionID:    questionIndex,
		Correct:       correct,
		Answer:        answer,
		CorrectAnswer: question.Correct,
	}})
	g.pub.ToRoom(room.ID, Event{Type: EventScores, Payload: g.scorePairs(room)})

	if winner := g.winner(room); winner != nil {
		g.endSession(room, winner)
		return
	}

	// Once everyone has answered, advance immediately; the pending timer
	// becomes a no-op through the index check.
	if len(room.AnsweredPlayers) == len(room.Players) {
		room.AnsweredPlayers = nil
		g.sendQuestion(room)
	}
}

// winner returns the first player in join order at or past the threshold.
func (g *GameService) winner(room *Room) *ScoreLine {
	for _, p := range room.Players {
		if room.Scores[p.ConnID] >= winThreshold {
			return &ScoreLine{Name: p.User.Name, Score: room.Scores[p.ConnID]}
		}
	}
	return nil
}

// scorePairs renders the scoreboard as [name, score] tuples in join order.
func (g *GameService) scorePairs(room *Room) []ScorePair {
	pairs := make([]ScorePair, 0, len(room.Players))
	for _, p := range room.Players {
		pairs = append(pairs, ScorePair{p.User.Name, room.Scores[p.ConnID]})
	}
	return pairs
}

// endSession emits results exactly once, removes the room from the registry,
// and clears the used-question tracking. A second invocation is a no-op.
func (g *GameService) endSession(room *Room, win *ScoreLine) {
	if room.ResultsSent {
		return
	}
	room.ResultsSent = true

	if len(room.Players) > 1 {
		ranked := g.rankings(room)
		winner := ranked[0]
		if win != nil {
			winner = *win
		}
		var runner *ScoreLine
		if len(ranked) > 1 {
			runner = &ranked[1]
		}
		others := []ScoreLine{}
		if len(ranked) > 2 {
			others = ranked[2:]
		}
		g.pub.ToRoom(room.ID, Event{Type: EventResults, Payload: Results{
			Winner: winner,
			Runner: runner,
			Others: others,
		}})
	} else if len(room.Players) == 1 {
		p := room.Players[0]
		name := p.User.Name
		if name == "" {
			name = "You"
		}
		g.pub.ToRoom(room.ID, Event{Type: EventResults, Payload: SoloResult{
			Name:  name,
			Score: room.Scores[p.ConnID],
		}})
	}

	room.session = nil
	room.UsedQuestionIDs = nil
	room.AskedQuestions = nil
	g.rooms.Remove(room.ID)
	g.broadcastRoomList()
}

// rankings sorts the scoreboard descending, breaking ties by join order.
func (g *GameService) rankings(room *Room) []ScoreLine {
	lines := make([]ScoreLine, 0, len(room.Players))
	for _, p := range room.Players {
		lines = append(lines, ScoreLine{Name: p.User.Name, Score: room.Scores[p.ConnID]})
	}
	sort.SliceStable(lines, func(i, j int) bool {
		return lines[i].Score > lines[j].Score
	})
	return lines
}
