package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/lixenwraith/keepsake/model"
	"github.com/lixenwraith/keepsake/store"
	"github.com/lixenwraith/keepsake/theme"
)

const maxBodyBytes = 64 << 10

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func validateCard(m *model.Message) string {
	if strings.TrimSpace(m.RecipientName) == "" {
		return "recipient_name is required"
	}
	if strings.TrimSpace(m.Body) == "" {
		return "body is required"
	}
	if len(m.Body) > 16<<10 {
		return "body too long"
	}
	// Unknown themes fail closed rather than rejecting the write
	m.Theme = string(theme.Resolve(m.Theme).ID)
	return ""
}

func (s *Server) handleCreateCard(w http.ResponseWriter, r *http.Request) {
	var m model.Message
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&m); err != nil {
		writeError(w, http.StatusBadRequest, "invalid card payload")
		return
	}
	if msg := validateCard(&m); msg != "" {
		writeError(w, http.StatusBadRequest, msg)
		return
	}
	// Counters are server-owned from the first write
	m.ID = ""
	m.Views = 0
	m.Likes = 0

	id, err := s.st.Create(r.Context(), m)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save card")
		return
	}
	cardsCreated.Inc()
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	m, err := s.st.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to load card")
		return
	}
	writeJSON(w, http.StatusOK, m)
}

type listResponse struct {
	Cards     []model.Message `json:"cards"`
	NextToken string          `json:"next_token,omitempty"`
}

func (s *Server) handleListCards(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	page, err := s.st.List(r.Context(), r.URL.Query().Get("page"), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list cards")
		return
	}
	if page.Messages == nil {
		page.Messages = []model.Message{}
	}
	writeJSON(w, http.StatusOK, listResponse{Cards: page.Messages, NextToken: page.NextToken})
}

func (s *Server) handleView(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.st.IncrementView(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to count view")
		return
	}
	viewsCounted.Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type likeRequest struct {
	DeviceID string `json:"device_id"`
}

type likeResponse struct {
	Liked bool `json:"liked"`
}

func (s *Server) handleLike(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req likeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil || req.DeviceID == "" {
		writeError(w, http.StatusBadRequest, "device_id is required")
		return
	}
	liked, err := s.st.ToggleLike(r.Context(), id, req.DeviceID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "card not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "failed to toggle like")
		return
	}
	writeJSON(w, http.StatusOK, likeResponse{Liked: liked})
}
