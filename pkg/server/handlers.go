package server

import (
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/xid"

	"github.com/vconnect/event-chat/pkg/chat"
)

// Handler holds the backend dependencies.
type Handler struct {
	Storage *Storage
	Tokens  *TokenManager
	Config  Config

	Clients   map[*websocket.Conn]bool
	ClientMu  sync.RWMutex
	Broadcast chan DeleteEvent
}

func NewHandler(storage *Storage, tokens *TokenManager, cfg Config) *Handler {
	return &Handler{
		Storage:   storage,
		Tokens:    tokens,
		Config:    cfg,
		Clients:   make(map[*websocket.Conn]bool),
		Broadcast: make(chan DeleteEvent, 100),
	}
}

// SetupRouter wires the REST surface. The unread badge endpoint is the one
// route that works without a bearer token.
func (h *Handler) SetupRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/auth/token", h.MintToken).Methods("POST")
	r.HandleFunc("/api/events", h.RequireAuth(h.GetEvents)).Methods("GET")

	r.HandleFunc("/api/chat/events/{eventID}/messages/unread", h.GetUnread).Methods("GET")
	r.HandleFunc("/api/chat/events/{eventID}/messages", h.RequireAuth(h.GetMessages)).Methods("GET")
	r.HandleFunc("/api/chat/events/{eventID}/messages", h.RequireAuth(h.CreateMessage)).Methods("POST")
	r.HandleFunc("/api/chat/events/{eventID}/messages/volunteer/{volunteerID}", h.RequireAuth(h.GetMessages)).Methods("GET")
	r.HandleFunc("/api/chat/events/{eventID}/messages/volunteer/{volunteerID}", h.RequireAuth(h.CreateMessage)).Methods("POST")
	r.HandleFunc("/api/chat/messages/{messageID}", h.RequireAuth(h.DeleteMessage)).Methods("DELETE")

	r.HandleFunc("/ws", h.HandleWebSocket).Methods("GET")

	return r
}

// MintToken issues a signed bearer token for the supplied identity. This
// stands in for the platform's real login flow in development.
func (h *Handler) MintToken(w http.ResponseWriter, r *http.Request) {
	var claims Claims
	if err := json.NewDecoder(r.Body).Decode(&claims); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	if claims.UserID == "" || claims.UserType == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "user_id and user_type are required"})
		return
	}

	token, err := h.Tokens.Generate(claims)
	if err != nil {
		log.Printf("[POST /api/auth/token] token generation failed: %s", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not generate token"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (h *Handler) GetEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.Storage.ListEvents(r.Context())
	if err != nil {
		log.Printf("[GET /api/events] storage error: %s", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not list events"})
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// GetMessages returns the ordered message list for the requested scope.
// A volunteer reading their own private thread resets its unread counter.
func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventID"]
	volunteerID := chat.NormalizeVolunteerID(vars["volunteerID"])

	messages, err := h.Storage.ListMessages(r.Context(), ScopeKey(eventID, volunteerID))
	if err != nil {
		log.Printf("[GET messages %s] storage error: %s", eventID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not load messages"})
		return
	}

	if volunteerID != "" {
		claims := claimsFrom(r)
		if claims != nil && claims.UserID == volunteerID {
			if err := h.Storage.ResetUnread(r.Context(), eventID, volunteerID); err != nil {
				log.Printf("[GET messages %s] could not reset unread: %s", eventID, err)
			}
		}
	}

	writeJSON(w, http.StatusOK, messages)
}

// CreateMessage appends a message to the scope. Identity fields come from
// the verified token, never from the request body.
func (h *Handler) CreateMessage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	eventID := vars["eventID"]
	volunteerID := chat.NormalizeVolunteerID(vars["volunteerID"])
	claims := claimsFrom(r)

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var body struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request body"})
		return
	}
	text := strings.TrimSpace(body.Message)
	if text == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "message is required"})
		return
	}

	senderName := claims.Name
	if senderName == "" {
		senderName = claims.OrganizationName
	}

	message := &chat.Message{
		ID:         xid.New().String(),
		EventID:    eventID,
		UserID:     claims.UserID,
		Body:       text,
		SenderType: claims.UserType,
		SenderName: senderName,
		CreatedAt:  time.Now().UTC(),
	}

	if err := h.Storage.AppendMessage(r.Context(), ScopeKey(eventID, volunteerID), message); err != nil {
		log.Printf("[POST messages %s] storage error: %s", eventID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not create message"})
		return
	}

	// A private-scope post by the other party bumps the volunteer's badge.
	if volunteerID != "" && claims.UserID != volunteerID {
		if err := h.Storage.IncrUnread(r.Context(), eventID, volunteerID); err != nil {
			log.Printf("[POST messages %s] could not bump unread: %s", eventID, err)
		}
	}

	writeJSON(w, http.StatusCreated, message)
}

// DeleteMessage enforces ownership and the delete window server-side; the
// client's pre-filtering is a UI convenience only.
func (h *Handler) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	messageID := mux.Vars(r)["messageID"]
	claims := claimsFrom(r)

	message, err := h.Storage.GetMessage(r.Context(), messageID)
	if err == ErrMessageNotFound {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "message not found"})
		return
	}
	if err != nil {
		log.Printf("[DELETE messages/%s] storage error: %s", messageID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not delete message"})
		return
	}

	if message.UserID != claims.UserID {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "not the message author"})
		return
	}
	if time.Since(message.CreatedAt) > chat.DeleteWindow {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "delete window has closed"})
		return
	}

	if err := h.Storage.DeleteMessage(r.Context(), messageID); err != nil {
		log.Printf("[DELETE messages/%s] storage error: %s", messageID, err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "could not delete message"})
		return
	}

	h.Broadcast <- DeleteEvent{Type: "message_deleted", ID: messageID, DeletedAt: time.Now().UTC()}

	w.WriteHeader(http.StatusNoContent)
}

// GetUnread serves the badge count. No token required; failures on the
// client side are cosmetic anyway.
func (h *Handler) GetUnread(w http.ResponseWriter, r *http.Request) {
	eventID := mux.Vars(r)["eventID"]
	volunteerID := chat.NormalizeVolunteerID(r.URL.Query().Get("volunteer_id"))

	count, err := h.Storage.GetUnread(r.Context(), eventID, volunteerID)
	if err != nil {
		log.Printf("[GET unread %s] storage error: %s", eventID, err)
		count = 0
	}
	writeJSON(w, http.StatusOK, map[string]int{"unread": count})
}
