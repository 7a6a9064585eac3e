package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/periebm/batepapo-uol-api/models"
	"github.com/periebm/batepapo-uol-api/pkg/router"
	"github.com/periebm/batepapo-uol-api/room"
)

type RoomHandler struct {
	room *room.Room
}

func NewRoomHandler(room *room.Room) *RoomHandler {
	return &RoomHandler{room: room}
}

// Mount registers the room endpoints and the facade-error translations on r.
func (h *RoomHandler) Mount(r *router.Router) {
	r.Map(room.ErrInvalidInput, router.NewJsonError(http.StatusUnprocessableEntity, "invalid input"))
	r.Map(room.ErrNameTaken, router.NewJsonError(http.StatusConflict, "name already taken"))
	r.Map(room.ErrNotInRoom, router.NewJsonError(http.StatusUnprocessableEntity, "sender is not in the room"))
	r.Map(room.ErrNotFound, router.NewJsonError(http.StatusNotFound, "not found"))
	r.Map(room.ErrNotOwner, router.NewJsonError(http.StatusUnauthorized, "not the message owner"))

	r.Post("/participants", h.JoinHandler)
	r.Get("/participants", h.ListParticipantsHandler)
	r.Delete("/participants", h.ResetParticipantsHandler)

	r.Post("/messages", h.SendMessageHandler)
	r.Get("/messages", h.ListMessagesHandler)
	r.Delete("/messages", h.ResetMessagesHandler)
	r.Put("/messages/{id}", h.EditMessageHandler)
	r.Delete("/messages/{id}", h.DeleteMessageHandler)

	r.Post("/status", h.HeartbeatHandler)
}

func (h *RoomHandler) JoinHandler(w http.ResponseWriter, r *http.Request) error {
	var payload JoinPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return router.NewJsonError(http.StatusUnprocessableEntity, "invalid body")
	}
	r.Body.Close()

	if err := h.room.Join(r.Context(), payload.Name); err != nil {
		return err
	}

	w.WriteHeader(http.StatusCreated)
	return nil
}

func (h *RoomHandler) ListParticipantsHandler(w http.ResponseWriter, r *http.Request) error {
	participants, err := h.room.Participants(r.Context())
	if err != nil {
		return err
	}

	if participants == nil {
		participants = []models.Participant{}
	}
	return json.NewEncoder(w).Encode(participants)
}

func (h *RoomHandler) ResetParticipantsHandler(w http.ResponseWriter, r *http.Request) error {
	return h.room.ResetParticipants(r.Context())
}

func (h *RoomHandler) SendMessageHandler(w http.ResponseWriter, r *http.Request) error {
	var payload MessagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return router.NewJsonError(http.StatusUnprocessableEntity, "invalid body")
	}
	r.Body.Close()

	msg, err := h.room.Send(r.Context(), Identity(r), payload.To, payload.Text, payload.Type)
	if err != nil {
		return err
	}

	w.WriteHeader(http.StatusCreated)
	return json.NewEncoder(w).Encode(msg)
}

func (h *RoomHandler) ListMessagesHandler(w http.ResponseWriter, r *http.Request) error {
	var limit *int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return router.NewJsonError(http.StatusUnprocessableEntity, "invalid limit")
		}
		limit = &n
	}

	msgs, err := h.room.Messages(r.Context(), Identity(r), limit)
	if err != nil {
		return err
	}

	if msgs == nil {
		msgs = []models.Message{}
	}
	return json.NewEncoder(w).Encode(msgs)
}

func (h *RoomHandler) ResetMessagesHandler(w http.ResponseWriter, r *http.Request) error {
	return h.room.ResetMessages(r.Context())
}

func (h *RoomHandler) EditMessageHandler(w http.ResponseWriter, r *http.Request) error {
	var payload MessagePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return router.NewJsonError(http.StatusUnprocessableEntity, "invalid body")
	}
	r.Body.Close()

	id := r.PathValue("id")
	return h.room.Edit(r.Context(), Identity(r), id, payload.To, payload.Text, payload.Type)
}

func (h *RoomHandler) DeleteMessageHandler(w http.ResponseWriter, r *http.Request) error {
	return h.room.Delete(r.Context(), Identity(r), r.PathValue("id"))
}

func (h *RoomHandler) HeartbeatHandler(w http.ResponseWriter, r *http.Request) error {
	identity := Identity(r)
	if identity == "" {
		return router.NewJsonError(http.StatusNotFound, "not found")
	}
	return h.room.Heartbeat(r.Context(), identity)
}
