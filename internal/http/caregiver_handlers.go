package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"carecircle/internal/domain"
	"carecircle/internal/repository"
	"carecircle/internal/service"
)

// CaregiverHandler serves the caregiver dashboard endpoints: profile,
// authorized clients, the updates feed, and circle-link management.
type CaregiverHandler struct {
	circle *service.CircleService
	feed   *service.FeedService
	logger *zap.Logger
}

func NewCaregiverHandler(circle *service.CircleService, feed *service.FeedService, logger *zap.Logger) *CaregiverHandler {
	return &CaregiverHandler{circle: circle, feed: feed, logger: logger}
}

// GET /caregivers/{id}/profile
func (h *CaregiverHandler) Profile(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Caregiver not found.")
		return
	}

	caregiver, err := h.circle.RequireCaregiver(r.Context(), id)
	if err != nil {
		h.respondCaregiverErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, caregiver)
}

// GET /caregivers/{id}/clients
func (h *CaregiverHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Caregiver not found.")
		return
	}

	clients, err := h.circle.ListClients(r.Context(), id)
	if err != nil {
		h.respondCaregiverErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, clients)
}

// GET /caregivers/{id}/updates?limit=
func (h *CaregiverHandler) Updates(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Caregiver not found.")
		return
	}
	limit := parseInt(r.URL.Query().Get("limit"), service.DefaultFeedLimit)

	feed, err := h.feed.BuildFeed(r.Context(), id, limit)
	if err != nil {
		h.respondCaregiverErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, feed)
}

type upsertLinkRequest struct {
	ClientID     int64  `json:"client_id"`
	Role         string `json:"role"`
	Relationship string `json:"relationship"`
	CanEdit      bool   `json:"can_edit"`
	Notify       bool   `json:"notify"`
}

// POST /caregivers/{id}/links
func (h *CaregiverHandler) UpsertLink(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Caregiver not found.")
		return
	}

	var req upsertLinkRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if req.Role == "" {
		req.Role = domain.LinkRoleCaregiver
	}
	switch req.Role {
	case domain.LinkRolePrimaryCaregiver, domain.LinkRoleCaregiver, domain.LinkRoleFamily, domain.LinkRoleFriend:
	default:
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid link role.")
		return
	}

	// Resolve the caregiver first so a missing caregiver and a missing
	// client produce distinct messages.
	if _, err := h.circle.RequireCaregiver(r.Context(), id); err != nil {
		h.respondCaregiverErr(w, err)
		return
	}

	summary, err := h.circle.UpsertLink(r.Context(), id, req.ClientID, req.Role, req.Relationship, req.CanEdit, req.Notify)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Client not found.")
			return
		}
		h.logger.Error("upsert link failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *CaregiverHandler) respondCaregiverErr(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Caregiver not found.")
		return
	}
	h.logger.Error("caregiver request failed", zap.Error(err))
	writeDetail(w, http.StatusInternalServerError, "Internal error.")
}
