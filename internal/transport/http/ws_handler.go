package http

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"quiz-rooms-service/internal/app"
	"quiz-rooms-service/internal/domain"
)

// WSHandler upgrades connections and routes inbound actions to the engine.
// It stays thin: decode, validate, dispatch.
type WSHandler struct {
	engine   *app.GameService
	hub      *Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(engine *app.GameService, hub *Hub) *WSHandler {
	return &WSHandler{
		engine: engine,
		hub:    hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

type loginPayload struct {
	ID       string `json:"id"`
	Password string `json:"password"`
}

type signupPayload struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	ID        string `json:"id"`
	Password  string `json:"password"`
}

type guestPayload struct {
	Name string `json:"name"`
}

type updateUserPayload struct {
	Avatar    string   `json:"avatar"`
	Genres    []string `json:"genres"`
	FirstName string   `json:"firstname"`
	LastName  string   `json:"lastname"`
}

func (p updateUserPayload) toDomain() domain.UserUpdate {
	return domain.UserUpdate{
		Avatar:    p.Avatar,
		Genres:    p.Genres,
		FirstName: p.FirstName,
		LastName:  p.LastName,
	}
}

type createRoomPayload struct {
	Name   string   `json:"name"`
	Genres []string `json:"genres"`
	Level  string   `json:"level"`
}

type roomPayload struct {
	RoomID string `json:"roomId"`
}

type startNormalPayload struct {
	Level  string   `json:"level"`
	Genres []string `json:"genres"`
}

type startCustomPayload struct {
	Genres []string `json:"genres"`
	Level  string   `json:"level"`
	Puzzle bool     `json:"puzzle"`
}

type answerPayload struct {
	Answer     int    `json:"answer"`
	RoomID     string `json:"roomId"`
	QuestionID int    `json:"questionId"`
}

type hintPayload struct {
	RoomID     string `json:"roomId"`
	QuestionID int    `json:"questionId"`
}

// ServeWS runs one connection's session: register with the hub, loop over
// inbound actions, and tear the player down on close.
func (h *WSHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("ws upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	connID := uuid.NewString()
	h.hub.Register(connID, conn)
	log.Printf("client connected: %s", connID)
	defer func() {
		h.engine.Disconnect(connID)
		h.hub.Unregister(connID)
	}()

	ctx := r.Context()
	for {
		var inbound inboundMessage
		if err := conn.ReadJSON(&inbound); err != nil {
			return
		}
		switch inbound.Type {
		case "login":
			var p loginPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.Login(ctx, connID, p.ID, p.Password)
		case "signup":
			var p signupPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.Signup(ctx, connID, p.FirstName, p.LastName, p.ID, p.Password)
		case "guest":
			var p guestPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.Guest(connID, p.Name)
		case "update-user":
			var p updateUserPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.UpdateUser(ctx, connID, p.toDomain())
		case "create-room":
			var p createRoomPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.CreateRoom(connID, p.Name, p.Genres, p.Level)
		case "get-rooms":
			h.engine.GetRooms(connID)
		case "join-room":
			var p roomPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.JoinRoom(connID, p.RoomID)
		case "start-room":
			var p roomPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.StartRoom(connID, p.RoomID)
		case "start-normal":
			var p startNormalPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.StartNormal(connID, p.Level, p.Genres)
		case "start-custom":
			var p startCustomPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.StartCustom(connID, p.Genres, p.Level, p.Puzzle)
		case "answer":
			var p answerPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.SubmitAnswer(ctx, connID, p.RoomID, p.Answer, p.QuestionID)
		case "use-hint":
			var p hintPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.UseHint(ctx, connID, p.RoomID, p.QuestionID)
		case "use-cost-hint":
			var p hintPayload
			if !h.decode(connID, inbound.Payload, &p) {
				continue
			}
			h.engine.UseCostHint(ctx, connID, p.RoomID, p.QuestionID)
		case "leave-room":
			h.engine.LeaveRoom(connID)
		default:
			h.hub.ToConn(connID, app.Event{Type: app.EventAuthError, Payload: app.Refusal{Message: "unsupported message type"}})
		}
	}
}

func (h *WSHandler) decode(connID string, raw json.RawMessage, v any) bool {
	if err := json.Unmarshal(raw, v); err != nil {
		h.hub.ToConn(connID, app.Event{Type: app.EventAuthError, Payload: app.Refusal{Message: "invalid payload"}})
		return false
	}
	return true
}
