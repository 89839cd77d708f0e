package app

import (
	"context"
	"fmt"
	"log"

	"quiz-rooms-service/internal/domain"
)

// Free hint budgets per mode.
const (
	multiplayerHints = 3
	soloHints        = 2
)

// minTimePerQuestion is the floor cost hints can push the timer down to.
const minTimePerQuestion = 5

// costHintCap returns how many priced hints a level allows. Unknown levels
// allow none.
func costHintCap(level string) int {
	switch level {
	case domain.LevelEasy:
		return 2
	case domain.LevelMedium, domain.LevelHard:
		return 3
	default:
		return 0
	}
}

// costHintSeconds escalates with each use: 2s, then 3s, then 6s.
func costHintSeconds(use int) int {
	switch use {
	case 1:
		return 2
	case 2:
		return 3
	default:
		return 6
	}
}

// UseHint serves a free hint, or in solo/custom mode a cost quote once the
// free budget is spent. Hints address the most recently sent question.
func (g *GameService) UseHint(ctx context.Context, connID, roomID string, questionID int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, player, question, ok := g.hintContext(ctx, connID, roomID)
	if !ok {
		return
	}

	if player.HintsLeft > 0 {
		player.HintsLeft--
		g.pub.ToConn(connID, Event{Type: EventHintResult, Payload: HintResult{
			Success:    boolPtr(true),
			HintsLeft:  intPtr(player.HintsLeft),
			Hint:       question.Hint,
			QuestionID: questionID,
		}})
		return
	}

	if !room.session.multiplayer && player.CostHints < costHintCap(room.Level) {
		cost := costHintSeconds(player.CostHints + 1)
		g.pub.ToConn(connID, Event{Type: EventHintResult, Payload: HintResult{
			Cost:       cost,
			Message:    hintCostMessage(cost),
			QuestionID: questionID,
		}})
		return
	}

	g.pub.ToConn(connID, Event{Type: EventHintResult, Payload: HintResult{
		Success:    boolPtr(false),
		Message:    "No hints left",
		QuestionID: questionID,
	}})
}

// UseCostHint confirms a previously quoted priced hint: it consumes one paid
// slot and deducts the quoted seconds from the room's time budget, floored at
// 5. The deduction is room-global while hint budgets are per-player; that
// asymmetry is inherited product behavior.
func (g *GameService) UseCostHint(ctx context.Context, connID, roomID string, questionID int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, player, question, ok := g.hintContext(ctx, connID, roomID)
	if !ok {
		return
	}
	if player.CostHints >= costHintCap(room.Level) {
		g.pub.ToConn(connID, Event{Type: EventHintResult, Payload: HintResult{
			Success:    boolPtr(false),
			Message:    "No hints left",
			QuestionID: questionID,
		}})
		return
	}

	player.CostHints++
	cost := costHintSeconds(player.CostHints)
	s := room.session
	s.timePerQuestion -= cost
	if s.timePerQuestion < minTimePerQuestion {
		s.timePerQuestion = minTimePerQuestion
	}
	g.pub.ToConn(connID, Event{Type: EventHintResult, Payload: HintResult{
		Success:         boolPtr(true),
		HintsLeft:       intPtr(player.HintsLeft),
		TimePerQuestion: s.timePerQuestion,
		Hint:            question.Hint,
		QuestionID:      questionID,
	}})
}

// hintContext resolves the room, the requesting player, and the question a
// hint refers to: the one immediately preceding the in-flight index, since
// hints are requested while answering. Missing pieces drop the request.
func (g *GameService) hintContext(ctx context.Context, connID, roomID string) (*Room, *Player, domain.Question, bool) {
	room, ok := g.rooms.Get(roomID)
	if !ok || room.session == nil {
		return nil, nil, domain.Question{}, false
	}
	player := room.Player(connID)
	if player == nil {
		return nil, nil, domain.Question{}, false
	}
	last := room.session.index - 1
	if last < 0 || last >= len(room.AskedQuestions) {
		return nil, nil, domain.Question{}, false
	}
	_, byID, err := g.questionBank(ctx)
	if err != nil {
		log.Printf("room %s: load catalog: %v", room.ID, err)
		return nil, nil, domain.Question{}, false
	}
	question, ok := byID[room.AskedQuestions[last]]
	if !ok {
		return nil, nil, domain.Question{}, false
	}
	return room, player, question, true
}

func hintCostMessage(cost int) string {
	return fmt.Sprintf("Using this hint will reduce time by %d seconds", cost)
}
