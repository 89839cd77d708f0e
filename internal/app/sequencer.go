package app

import (
	"context"
	"log"
	"time"

	"quiz-rooms-service/internal/domain"
)

// questionLimit ends a session after this many questions unless a win or
// catalog exhaustion ends it first.
const questionLimit = 12

// startQuiz resets per-session state, announces quiz-start, and emits the
// first question. Callers hold the engine lock.
func (g *GameService) startQuiz(room *Room, multiplayer bool) {
	room.UsedQuestionIDs = nil
	room.AskedQuestions = nil
	room.AnsweredPlayers = nil
	room.Answered = ""
	room.ResultsSent = false
	room.resetScores()
	room.session = &session{
		timePerQuestion: domain.TimePerQuestion(room.Level),
		multiplayer:     multiplayer,
	}

	g.pub.ToRoom(room.ID, Event{Type: EventQuizStart, Payload: QuizStart{
		RoomID:          room.ID,
		IsMultiplayer:   multiplayer,
		TimePerQuestion: room.session.timePerQuestion,
		Puzzle:          room.Puzzle,
	}})
	g.sendQuestion(room)
}

// sendQuestion selects and emits the next question, then arms the auto-advance
// timer. Callers hold the engine lock.
func (g *GameService) sendQuestion(room *Room) {
	s := room.session
	if s == nil || room.ResultsSent {
		return
	}
	if s.index >= questionLimit {
		g.endSession(room, nil)
		return
	}

	room.Answered = ""

	bank, _, err := g.questionBank(context.Background())
	if err != nil {
		log.Printf("room %s: load catalog: %v", room.ID, err)
		bank = nil
	}
	question, ok := g.selectNext(room, bank)
	if !ok {
		g.pub.ToRoom(room.ID, refusal("No questions available for selected criteria."))
		g.endSession(room, nil)
		return
	}

	room.markAsked(question.ID)
	sent := s.index
	g.pub.ToRoom(room.ID, Event{Type: EventQuestion, Payload: QuestionEvent{
		QuestionID: sent,
		Question:   question.Prompt,
		Options:    question.Options,
		Time:       s.timePerQuestion,
	}})
	s.index++

	g.schedule(time.Duration(s.timePerQuestion+1)*time.Second, func() {
		g.mu.Lock()
		defer g.mu.Unlock()
		g.advanceIfCurrent(room, sent)
	})
}

// advanceIfCurrent is the timer half of the advance race. Whichever transition
// still observes the sent index as current wins; a stale timer is a no-op.
func (g *GameService) advanceIfCurrent(room *Room, sentIndex int) {
	s := room.session
	if s == nil || room.ResultsSent || len(room.Players) == 0 {
		return
	}
	if s.index != sentIndex+1 {
		return
	}
	room.AnsweredPlayers = nil
	g.sendQuestion(room)
}

// selectNext picks an unused question matching the room's filters, relaxing
// them in order: drop the level filter, then reset the used history, then fall
// back to the entire catalog. Only an empty catalog fails.
func (g *GameService) selectNext(room *Room, bank []domain.Question) (domain.Question, bool) {
	byGenre := filterGenres(bank, room.Genres)

	candidates := excludeUsed(filterLevel(byGenre, room.Level), room.UsedQuestionIDs)
	if len(candidates) == 0 {
		candidates = byGenre
	}
	if len(candidates) == 0 {
		room.UsedQuestionIDs = nil
		candidates = filterLevel(byGenre, room.Level)
	}
	if len(candidates) == 0 {
		candidates = bank
	}
	if len(candidates) == 0 {
		return domain.Question{}, false
	}
	return candidates[g.rnd.Intn(len(candidates))], true
}

func filterGenres(bank []domain.Question, genres []string) []domain.Question {
	for _, genre := range genres {
		if genre == domain.MixedGenre {
			return bank
		}
	}
	var out []domain.Question
	for _, q := range bank {
		for _, genre := range genres {
			if q.Genre == genre {
				out = append(out, q)
				break
			}
		}
	}
	return out
}

func filterLevel(bank []domain.Question, level string) []domain.Question {
	var out []domain.Question
	for _, q := range bank {
		if q.Level == level {
			out = append(out, q)
		}
	}
	return out
}

func excludeUsed(bank []domain.Question, used []string) []domain.Question {
	if len(used) == 0 {
		return bank
	}
	usedSet := make(map[string]struct{}, len(used))
	for _, id := range used {
		usedSet[id] = struct{}{}
	}
	var out []domain.Question
	for _, q := range bank {
		if _, ok := usedSet[q.ID]; !ok {
			out = append(out, q)
		}
	}
	return out
}
