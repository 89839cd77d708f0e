package app_test

import (
	"context"
	"testing"

	"quiz-rooms-service/internal/app"
	"quiz-rooms-service/internal/domain"
)

func lastHint(t *testing.T, te *testEngine) app.HintResult {
	t.Helper()
	return te.pub.lastOfType(t, app.EventHintResult).event.Payload.(app.HintResult)
}

func TestSoloHintEconomy(t *testing.T) {
	ctx := context.Background()
	te := newTestEngine(t, []domain.Question{natureQuestion()})
	te.engine.Guest("c1", "Alice")
	te.engine.StartNormal("c1", domain.LevelEasy, []string{"Nature"})

	// Two free hints.
	te.engine.UseHint(ctx, "c1", "c1", 0)
	hr := lastHint(t, te)
	if hr.Success == nil || !*hr.Success || *hr.HintsLeft != 1 || hr.Hint == "" {
		t.Fatalf("unexpected first hint %+v", hr)
	}
	te.engine.UseHint(ctx, "c1", "c1", 0)
	if hr = lastHint(t, te); *hr.HintsLeft != 0 {
		t.Fatalf("expected hint budget exhausted, got %+v", hr)
	}

	// Free budget spent: solo mode quotes a cost instead of refusing.
	te.engine.UseHint(ctx, "c1", "c1", 0)
	hr = lastHint(t, te)
	if hr.Success != nil || hr.Cost != 2 {
		t.Fatalf("expected a 2s quote, got %+v", hr)
	}
	if hr.Message != "Using this hint will reduce time by 2 seconds" {
		t.Fatalf("unexpected quote message %q", hr.Message)
	}

	// Confirming deducts from the room's time budget.
	te.engine.UseCostHint(ctx, "c1", "c1", 0)
	hr = lastHint(t, te)
	if hr.Success == nil || !*hr.Success || hr.TimePerQuestion != 8 || hr.Hint == "" {
		t.Fatalf("unexpected paid hint %+v", hr)
	}

	// Second paid hint costs 3s: 8 - 3 = 5.
	te.engine.UseHint(ctx, "c1", "c1", 0)
	if hr = lastHint(t, te); hr.Cost != 3 {
		t.Fatalf("expected escalated 3s quote, got %+v", hr)
	}
	te.engine.UseCostHint(ctx, "c1", "c1", 0)
	if hr = lastHint(t, te); hr.TimePerQuestion != 5 {
		t.Fatalf("expected time budget 5, got %+v", hr)
	}

	// Easy caps paid hints at two; further requests are refused.
	te.engine.UseHint(ctx, "c1", "c1", 0)
	hr = lastHint(t, te)
	if hr.Success == nil || *hr.Success || hr.Message != "No hints left" {
		t.Fatalf("expected refusal past the cap, got %+v", hr)
	}
	te.engine.UseCostHint(ctx, "c1", "c1", 0)
	hr = lastHint(t, te)
	if hr.Success == nil || *hr.Success || hr.Message != "No hints left" {
		t.Fatalf("expected cost-hint refusal past the cap, got %+v", hr)
	}
}

func TestCostHintDeductionFloorsAtFive(t *testing.T) {
	ctx := context.Background()
	medium := natureQuestion()
	medium.Level = domain.LevelMedium
	te := newTestEngine(t, []domain.Question{medium})
	te.engine.Guest("c1", "Alice")
	te.engine.StartNormal("c1", domain.LevelMedium, []string{"Nature"})

	// Medium starts at 15s and allows three paid hints: -2, -3, then -6
	// would reach 4 but the budget never drops below 5.
	te.engine.UseCostHint(ctx, "c1", "c1", 0)
	if hr := lastHint(t, te); hr.TimePerQuestion != 13 {
		t.Fatalf("expected 13 after first paid hint, got %+v", hr)
	}
	te.engine.UseCostHint(ctx, "c1", "c1", 0)
	if hr := lastHint(t, te); hr.TimePerQuestion != 10 {
		t.Fatalf("expected 10 after second paid hint, got %+v", hr)
	}
	te.engine.UseCostHint(ctx, "c1", "c1", 0)
	if hr := lastHint(t, te); hr.TimePerQuestion != 5 {
		t.Fatalf("expected floor of 5, got %+v", hr)
	}
}

func TestMultiplayerHintsRefuseWithoutQuote(t *testing.T) {
	ctx := context.Background()
	te := newTestEngine(t, []domain.Question{natureQuestion()})
	te.engine.Guest("c1", "Host")
	te.engine.CreateRoom("c1", "game", []string{"Nature"}, domain.LevelEasy)
	roomID := te.pub.lastOfType(t, app.EventRoomJoined).event.Payload.(domain.RoomInfo).ID
	te.engine.StartRoom("c1", roomID)

	for i := 0; i < 3; i++ {
		te.engine.UseHint(ctx, "c1", roomID, 0)
		hr := lastHint(t, te)
		if hr.Success == nil || !*hr.Success || *hr.HintsLeft != 2-i {
			t.Fatalf("unexpected hint %d: %+v", i, hr)
		}
	}

	// Multiplayer has no priced fallback.
	te.engine.UseHint(ctx, "c1", roomID, 0)
	hr := lastHint(t, te)
	if hr.Success == nil || *hr.Success || hr.Message != "No hints left" || hr.Cost != 0 {
		t.Fatalf("expected plain refusal, got %+v", hr)
	}
}

// A hint always describes the question currently on screen, not an earlier one.
func TestHintFollowsCurrentQuestion(t *testing.T) {
	ctx := context.Background()
	first := natureQuestion()
	second := domain.Question{
		ID:      "nature-2",
		Genre:   "Nature",
		Prompt:  "How many hearts does an octopus have?",
		Options: []string{"Three", "One", "Two", "Four"},
		Correct: 0,
		Level:   domain.LevelEasy,
		Hint:    "More than a human, fewer than four.",
	}
	hintByPrompt := map[string]string{first.Prompt: first.Hint, second.Prompt: second.Hint}

	te := newTestEngine(t, []domain.Question{first, second})
	te.engine.Guest("c1", "Alice")
	te.engine.StartNormal("c1", domain.LevelEasy, []string{"Nature"})

	te.engine.SubmitAnswer(ctx, "c1", "c1", 0, 0) // advance to the next question
	current := te.pub.lastOfType(t, app.EventQuestion).event.Payload.(app.QuestionEvent)

	te.engine.UseHint(ctx, "c1", "c1", current.QuestionID)
	hr := lastHint(t, te)
	if hr.Hint != hintByPrompt[current.Question] {
		t.Fatalf("hint %q does not match question %q", hr.Hint, current.Question)
	}
}

func TestHintOutsideSessionIsDropped(t *testing.T) {
	ctx := context.Background()
	te := newTestEngine(t, []domain.Question{natureQuestion()})
	te.engine.Guest("c1", "Alice")
	te.engine.CreateRoom("c1", "idle", []string{"Nature"}, domain.LevelEasy)
	roomID := te.pub.lastOfType(t, app.EventRoomJoined).event.Payload.(domain.RoomInfo).ID

	te.engine.UseHint(ctx, "c1", roomID, 0)
	te.engine.UseHint(ctx, "c1", "missing", 0)
	if n := len(te.pub.ofType(app.EventHintResult)); n != 0 {
		t.Fatalf("hints outside a running session must be dropped, got %d", n)
	}
}
