package memory

import (
	"fmt"
	"testing"

	"quiz-rooms-service/internal/app"
	"quiz-rooms-service/internal/domain"
)

func newRoom(id string, conns ...string) *app.Room {
	host := &app.Player{ConnID: conns[0], User: domain.User{Name: conns[0]}}
	room := app.NewRoom(id, "room "+id, []string{"Nature"}, domain.LevelEasy, host)
	for _, conn := range conns[1:] {
		room.Players = append(room.Players, &app.Player{ConnID: conn, User: domain.User{Name: conn}})
	}
	return room
}

func TestRoomStoreLifecycle(t *testing.T) {
	store := NewRoomStore()

	store.Insert(newRoom("r1", "c1"))
	store.Insert(newRoom("r2", "c2"))

	if _, ok := store.Get("r1"); !ok {
		t.Fatalf("r1 missing after insert")
	}
	if got := len(store.All()); got != 2 {
		t.Fatalf("expected 2 rooms, got %d", got)
	}

	store.Remove("r1")
	if _, ok := store.Get("r1"); ok {
		t.Fatalf("r1 still present after remove")
	}
	if got := store.All(); len(got) != 1 || got[0].ID != "r2" {
		t.Fatalf("unexpected remaining rooms %+v", got)
	}
}

func TestRoomStorePreservesInsertionOrder(t *testing.T) {
	store := NewRoomStore()
	for i := 0; i < 5; i++ {
		store.Insert(newRoom(fmt.Sprintf("r%d", i), fmt.Sprintf("c%d", i)))
	}
	for i, room := range store.All() {
		if want := fmt.Sprintf("r%d", i); room.ID != want {
			t.Fatalf("position %d: got %s, want %s", i, room.ID, want)
		}
	}
}

func TestJoinableExcludesFullRooms(t *testing.T) {
	store := NewRoomStore()
	store.Insert(newRoom("open", "c1"))
	store.Insert(newRoom("full", "f1", "f2", "f3", "f4", "f5"))

	joinable := store.Joinable()
	if len(joinable) != 1 || joinable[0].ID != "open" {
		t.Fatalf("unexpected joinable set %+v", joinable)
	}
}

func TestRemovePlayerDropsEmptiedRooms(t *testing.T) {
	store := NewRoomStore()
	store.Insert(newRoom("solo", "c1"))
	store.Insert(newRoom("pair", "c1", "c2"))
	store.Insert(newRoom("other", "c3"))

	affected := store.RemovePlayer("c1")
	if len(affected) != 2 {
		t.Fatalf("expected 2 affected rooms, got %d", len(affected))
	}
	if _, ok := store.Get("solo"); ok {
		t.Fatalf("emptied room must be dropped")
	}
	pair, ok := store.Get("pair")
	if !ok || len(pair.Players) != 1 || pair.Players[0].ConnID != "c2" {
		t.Fatalf("unexpected pair state %+v", pair)
	}

	if affected = store.RemovePlayer("c1"); affected != nil {
		t.Fatalf("second removal must be a no-op, got %+v", affected)
	}
}
