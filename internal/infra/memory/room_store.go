package memory

import (
	"sync"

	"quiz-rooms-service/internal/app"
)

// RoomStore is the in-memory implementation of app.RoomStore. Insertion order
// is preserved so lobby listings stay stable.
type RoomStore struct {
	mu    sync.RWMutex
	rooms map[string]*app.Room
	order []string
}

func NewRoomStore() *RoomStore {
	return &RoomStore{rooms: make(map[string]*app.Room)}
}

func (s *RoomStore) Insert(room *app.Room) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rooms[room.ID]; !ok {
		s.order = append(s.order, room.ID)
	}
	s.rooms[room.ID] = room
}

func (s *RoomStore) Get(id string) (*app.Room, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	room, ok := s.rooms[id]
	return room, ok
}

// Joinable returns rooms with spare capacity, for lobby display.
func (s *RoomStore) Joinable() []*app.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []*app.Room
	for _, id := range s.order {
		if room := s.rooms[id]; room != nil && len(room.Players) < app.MaxPlayers {
			out = append(out, room)
		}
	}
	return out
}

func (s *RoomStore) All() []*app.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*app.Room, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.rooms[id])
	}
	return out
}

func (s *RoomStore) Remove(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(id)
}

// RemovePlayer strips connID from every room containing it and drops rooms
// left empty. Idempotent; used for both leave and disconnect.
func (s *RoomStore) RemovePlayer(connID string) []*app.Room {
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected []*app.Room
	for _, id := range append([]string(nil), s.order...) {
		room := s.rooms[id]
		if room == nil || !room.RemovePlayer(connID) {
			continue
		}
		affected = append(affected, room)
		if len(room.Players) == 0 {
			s.removeLocked(id)
		}
	}
	return affected
}

func (s *RoomStore) removeLocked(id string) {
	if _, ok := s.rooms[id]; !ok {
		return
	}
	delete(s.rooms, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
