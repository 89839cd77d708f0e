package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"quiz-rooms-service/internal/app"
	"quiz-rooms-service/internal/infra/memory"
)

// RoomStore is a Redis-aware implementation of app.RoomStore.
// Notes:
//   - The live Room objects stay in a local in-memory store; the engine is a
//     single in-process authority and timers hold direct room pointers.
//   - Redis carries best-effort liveness markers per room (and could be
//     extended to share lobby snapshots across instances).
type RoomStore struct {
	client *redis.Client
	ttl    time.Duration
	inner  *memory.RoomStore
}

func NewRoomStore(client *redis.Client, ttl time.Duration) *RoomStore {
	return &RoomStore{
		client: client,
		ttl:    ttl,
		inner:  memory.NewRoomStore(),
	}
}

func (s *RoomStore) Insert(room *app.Room) {
	s.inner.Insert(room)
	_ = s.client.Set(context.Background(), s.key(room.ID), "1", s.ttl).Err()
}

func (s *RoomStore) Get(id string) (*app.Room, bool) {
	return s.inner.Get(id)
}

func (s *RoomStore) Joinable() []*app.Room {
	return s.inner.Joinable()
}

func (s *RoomStore) All() []*app.Room {
	return s.inner.All()
}

func (s *RoomStore) Remove(id string) {
	s.inner.Remove(id)
	_ = s.client.Del(context.Background(), s.key(id)).Err()
}

func (s *RoomStore) RemovePlayer(connID string) []*app.Room {
	affected := s.inner.RemovePlayer(connID)
	for _, room := range affected {
		if len(room.Players) == 0 {
			_ = s.client.Del(context.Background(), s.key(room.ID)).Err()
		}
	}
	return affected
}

func (s *RoomStore) key(id string) string {
	return "quiz:room:" + id
}
