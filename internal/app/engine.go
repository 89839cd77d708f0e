package app

import (
	"context"
	"errors"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"

	"quiz-rooms-service/internal/domain"
)

// RoomStore abstracts the room registry (in-memory, Redis-marked, etc).
// It is the sole owner of all Room objects.
type RoomStore interface {
	Insert(room *Room)
	Get(id string) (*Room, bool)
	Joinable() []*Room
	All() []*Room
	Remove(id string)
	// RemovePlayer strips connID from every room containing it, drops rooms
	// left empty, and returns the rooms that contained the player.
	RemovePlayer(connID string) []*Room
}

// CatalogRepository serves the read-only question bank.
type CatalogRepository interface {
	Questions(ctx context.Context) ([]domain.Question, error)
}

// UserDirectory is the external user store consumed by the auth actions.
type UserDirectory interface {
	Authenticate(ctx context.Context, identifier, password string) (domain.User, error)
	Create(ctx context.Context, user domain.User, password string) error
	Update(ctx context.Context, identifier string, fields domain.UserUpdate) error
}

// GameService is the single in-memory authority for all rooms. Every mutation
// of registry or room state is serialized through one mutex, so inbound
// actions and timer callbacks run to completion without interleaving; the
// advance race is then just a question-index comparison.
type GameService struct {
	mu       sync.Mutex
	rooms    RoomStore
	catalog  CatalogRepository
	users    UserDirectory
	pub      Publisher
	profiles map[string]domain.User // connID -> authenticated profile

	rnd      *rand.Rand
	schedule func(d time.Duration, f func())
	newID    func() string
}

// Option tweaks GameService construction; used by tests for determinism.
type Option func(*GameService)

// WithScheduler replaces the auto-advance timer source.
func WithScheduler(schedule func(d time.Duration, f func())) Option {
	return func(g *GameService) { g.schedule = schedule }
}

// WithRand replaces the question-selection randomness.
func WithRand(rnd *rand.Rand) Option {
	return func(g *GameService) { g.rnd = rnd }
}

// WithIDGenerator replaces room/guest ID generation.
func WithIDGenerator(newID func() string) Option {
	return func(g *GameService) { g.newID = newID }
}

func NewGameService(rooms RoomStore, catalog CatalogRepository, users UserDirectory, pub Publisher, opts ...Option) *GameService {
	g := &GameService{
		rooms:    rooms,
		catalog:  catalog,
		users:    users,
		pub:      pub,
		profiles: make(map[string]domain.User),
		rnd:      rand.New(rand.NewSource(time.Now().UnixNano())),
		schedule: func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		newID:    func() string { return uuid.NewString()[:8] },
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Login checks credentials against the directory and binds the profile to the
// connection. Directory outages degrade to an auth-error, never a crash.
func (g *GameService) Login(ctx context.Context, connID, identifier, password string) {
	user, err := g.users.Authenticate(ctx, identifier, password)
	switch {
	case err == nil:
		g.setProfile(connID, user)
		g.pub.ToConn(connID, Event{Type: EventAuthSuccess, Payload: AuthSuccess{User: user, SkipAvatar: true}})
	case errors.Is(err, domain.ErrInvalidCredentials) || errors.Is(err, domain.ErrUserNotFound):
		g.pub.ToConn(connID, refusal("Invalid credentials"))
	default:
		log.Printf("login %s: %v", identifier, err)
		g.pub.ToConn(connID, refusal("Database error. Please try again later."))
	}
}

// Signup creates a directory record and signs the connection in. SkipAvatar is
// false so the client collects avatar and genre preferences next.
func (g *GameService) Signup(ctx context.Context, connID, firstName, lastName, identifier, password string) {
	user := domain.User{
		ID:        identifier,
		FirstName: firstName,
		LastName:  lastName,
		Name:      firstName + " " + lastName,
		Genres:    []string{},
	}
	err := g.users.Create(ctx, user, password)
	switch {
	case err == nil:
		g.setProfile(connID, user)
		g.pub.ToConn(connID, Event{Type: EventAuthSuccess, Payload: AuthSuccess{User: user}})
	case errors.Is(err, domain.ErrUserExists):
		g.pub.ToConn(connID, refusal("User already exists"))
	default:
		log.Printf("signup %s: %v", identifier, err)
		g.pub.ToConn(connID, refusal("Database error. Please try again later."))
	}
}

// Guest signs the connection in without touching the directory.
func (g *GameService) Guest(connID, name string) {
	user := domain.User{
		ID:      "guest_" + g.newID(),
		Name:    name,
		Genres:  []string{},
		IsGuest: true,
	}
	g.setProfile(connID, user)
	g.pub.ToConn(connID, Event{Type: EventAuthSuccess, Payload: AuthSuccess{User: user, IsGuest: true}})
}

// UpdateUser mutates the connection profile. Registered users write through to
// the directory; an unreachable directory is logged and skipped.
func (g *GameService) UpdateUser(ctx context.Context, connID string, fields domain.UserUpdate) {
	g.mu.Lock()
	user, ok := g.profiles[connID]
	g.mu.Unlock()
	if !ok {
		return
	}

	if !user.IsGuest {
		if err := g.users.Update(ctx, user.ID, fields); err != nil {
			log.Printf("update user %s: %v", user.ID, err)
			return
		}
		user.FirstName = fields.FirstName
		user.LastName = fields.LastName
		user.Name = fields.FirstName + " " + fields.LastName
	}
	user.Avatar = fields.Avatar
	user.Genres = fields.Genres
	g.setProfile(connID, user)
}

// CreateRoom opens a lobby with the caller as host.
func (g *GameService) CreateRoom(connID, name string, genres []string, level string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	host := &Player{ConnID: connID, User: g.profiles[connID], HintsLeft: multiplayerHints}
	room := NewRoom(g.newID(), name, genres, level, host)
	g.rooms.Insert(room)
	log.Printf("room created: %s (%s, %s)", room.ID, level, name)

	g.pub.Join(connID, room.ID)
	g.pub.ToConn(connID, Event{Type: EventRoomJoined, Payload: room.View()})
	g.broadcastRoomList()
}

// GetRooms replies with the joinable room list for lobby display.
func (g *GameService) GetRooms(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.pub.ToConn(connID, Event{Type: EventRoomList, Payload: g.joinableViews()})
}

// JoinRoom adds the caller to a room if it exists and has capacity.
func (g *GameService) JoinRoom(connID, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms.Get(roomID)
	if !ok || len(room.Players) >= MaxPlayers {
		g.pub.ToConn(connID, refusal("Room full or not found"))
		return
	}
	room.Players = append(room.Players, &Player{ConnID: connID, User: g.profiles[connID], HintsLeft: multiplayerHints})
	g.pub.Join(connID, room.ID)
	// The whole room learns the updated roster.
	g.pub.ToRoom(room.ID, Event{Type: EventRoomJoined, Payload: room.View()})
	g.broadcastRoomList()
}

// StartRoom transitions a created room to InProgress. Host only; a single
// occupant is deliberately enough (testing mode).
func (g *GameService) StartRoom(connID, roomID string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	room, ok := g.rooms.Get(roomID)
	if !ok {
		g.pub.ToConn(connID, refusal("Room not found"))
		return
	}
	if room.Host != connID {
		g.pub.ToConn(connID, refusal("Only the host can start the game"))
		return
	}
	if len(room.Players) < 1 {
		g.pub.ToConn(connID, refusal("At least 1 player required to start (testing mode)"))
		return
	}
	g.startQuiz(room, true)
}

// StartNormal creates a solo quick-start room keyed by the connection ID.
func (g *GameService) StartNormal(connID, level string, genres []string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(genres) == 0 {
		genres = []string{domain.MixedGenre}
	}
	player := &Player{ConnID: connID, User: g.profiles[connID], HintsLeft: soloHints}
	room := NewRoom(connID, "", genres, level, player)
	g.rooms.Insert(room)
	g.pub.Join(connID, room.ID)
	g.broadcastRoomList()
	g.startQuiz(room, false)
}

// StartCustom is StartNormal with explicit genres and the puzzle flag.
func (g *GameService) StartCustom(connID string, genres []string, level string, puzzle bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	player := &Player{ConnID: connID, User: g.profiles[connID], HintsLeft: soloHints}
	room := NewRoom(connID, "", genres, level, player)
	room.Puzzle = puzzle
	g.rooms.Insert(room)
	g.pub.Join(connID, room.ID)
	g.broadcastRoomList()
	g.startQuiz(room, false)
}

// LeaveRoom removes the caller from whatever room they occupy. Remaining
// players continue the session.
func (g *GameService) LeaveRoom(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeFromRooms(connID)
}

// Disconnect has leave semantics plus profile cleanup. It is driven by the
// connection lifecycle, not by the user.
func (g *GameService) Disconnect(connID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeFromRooms(connID)
	delete(g.profiles, connID)
	log.Printf("client disconnected: %s", connID)
}

// removeFromRooms is shared by leave and disconnect; callers hold the lock.
func (g *GameService) removeFromRooms(connID string) {
	name := g.profiles[connID].Name
	if name == "" {
		name = "Unknown Player"
	}
	affected := g.rooms.RemovePlayer(connID)
	if len(affected) == 0 {
		return
	}
	for _, room := range affected {
		g.pub.Leave(connID, room.ID)
		if len(room.Players) > 0 {
			g.pub.ToRoom(room.ID, Event{Type: EventPlayerLeft, Payload: PlayerLeft{PlayerName: name}})
		}
	}
	g.broadcastRoomList()
}

func (g *GameService) setProfile(connID string, user domain.User) {
	g.mu.Lock()
	g.profiles[connID] = user
	g.mu.Unlock()
}

func (g *GameService) joinableViews() []domain.RoomInfo {
	rooms := g.rooms.Joinable()
	views := make([]domain.RoomInfo, 0, len(rooms))
	for _, room := range rooms {
		views = append(views, room.View())
	}
	return views
}

func (g *GameService) broadcastRoomList() {
	g.pub.Broadcast(Event{Type: EventRoomList, Payload: g.joinableViews()})
}

// questionBank loads the catalog and indexes it by question ID.
func (g *GameService) questionBank(ctx context.Context) ([]domain.Question, map[string]domain.Question, error) {
	bank, err := g.catalog.Questions(ctx)
	if err != nil {
		return nil, nil, err
	}
	byID := make(map[string]domain.Question, len(bank))
	for _, q := range bank {
		byID[q.ID] = q
	}
	return bank, byID, nil
}
