package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/obma24/Quest-Board/internal/app/quest"
	"github.com/obma24/Quest-Board/internal/domain"
)

// ─── Quests ─────────────────────────────────────────────────────────────────

func (s *Server) handleListQuests(w http.ResponseWriter, r *http.Request) {
	quests, err := s.quests.List(r.URL.Query().Get("user_id"))
	if err != nil {
		fail(w, err)
		return
	}
	if quests == nil {
		quests = []domain.Quest{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"quests": quests})
}

type createQuestRequest struct {
	UserID      string  `json:"userId"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Frequency   string  `json:"frequency"`
	DueAt       *string `json:"dueAt,omitempty"` // RFC 3339
}

func (s *Server) handleCreateQuest(w http.ResponseWriter, r *http.Request) {
	var req createQuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	dueAt, ok := parseTimePtr(w, req.DueAt)
	if !ok {
		return
	}

	q, err := s.quests.Create(req.UserID, req.Title, req.Description, domain.Frequency(req.Frequency), dueAt)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, q)
}

func (s *Server) handleGetQuest(w http.ResponseWriter, r *http.Request) {
	q, err := s.quests.Get(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

type editQuestRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	Frequency   *string `json:"frequency,omitempty"`
	// Omitted leaves the due date unchanged; an empty string clears it.
	DueAt *string `json:"dueAt,omitempty"`
}

func (s *Server) handleEditQuest(w http.ResponseWriter, r *http.Request) {
	var req editQuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	patch := quest.EditPatch{
		Title:       req.Title,
		Description: req.Description,
	}
	if req.Frequency != nil {
		f := domain.Frequency(*req.Frequency)
		patch.Frequency = &f
	}
	if req.DueAt != nil {
		if *req.DueAt == "" {
			patch.ClearDueAt = true
		} else {
			t, ok := parseTimePtr(w, req.DueAt)
			if !ok {
				return
			}
			patch.DueAt = t
		}
	}

	q, err := s.quests.Edit(chi.URLParam(r, "id"), patch)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

func (s *Server) handleDeleteQuest(w http.ResponseWriter, r *http.Request) {
	if err := s.quests.Delete(chi.URLParam(r, "id")); err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type userRequest struct {
	UserID string `json:"userId"`
}

func (s *Server) handleCompleteQuest(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := s.quests.Complete(chi.URLParam(r, "id"), req.UserID)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleUncompleteQuest(w http.ResponseWriter, r *http.Request) {
	q, err := s.quests.Uncomplete(chi.URLParam(r, "id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, q)
}

// ─── Progression ────────────────────────────────────────────────────────────

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.quests.RecordLogin(req.UserID)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	u, err := s.quests.Profile(r.URL.Query().Get("user_id"))
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleDailyActivity(w http.ResponseWriter, r *http.Request) {
	days, err := s.activity.LastWeek(r.URL.Query().Get("user_id"), time.Now())
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

// ─── Shop ───────────────────────────────────────────────────────────────────

func (s *Server) handleShopItems(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": s.shop.Items()})
}

type shopRequest struct {
	UserID string `json:"userId"`
	ItemID string `json:"itemId"`
}

func (s *Server) handleShopBuy(w http.ResponseWriter, r *http.Request) {
	var req shopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.shop.Buy(req.UserID, req.ItemID)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleShopAvatar(w http.ResponseWriter, r *http.Request) {
	var req shopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.shop.ApplyAvatar(req.UserID, req.ItemID)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) handleShopEffect(w http.ResponseWriter, r *http.Request) {
	var req shopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	u, err := s.shop.ApplyEffect(req.UserID, req.ItemID)
	if err != nil {
		fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func parseTimePtr(w http.ResponseWriter, s *string) (*time.Time, bool) {
	if s == nil || *s == "" {
		return nil, true
	}
	t, err := time.Parse(time.RFC3339, *s)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid timestamp: "+err.Error())
		return nil, false
	}
	return &t, true
}
