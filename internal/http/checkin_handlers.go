package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"carecircle/internal/domain"
	"carecircle/internal/repository"
)

// CheckinHandler serves daily wellness check-ins. Check-ins are immutable
// once recorded, so there is no update route.
type CheckinHandler struct {
	checkins repository.CheckInsRepository
	persons  repository.PersonsRepository
	logger   *zap.Logger
}

func NewCheckinHandler(checkins repository.CheckInsRepository, persons repository.PersonsRepository, logger *zap.Logger) *CheckinHandler {
	return &CheckinHandler{checkins: checkins, persons: persons, logger: logger}
}

type checkinCreateRequest struct {
	By         string   `json:"by"`
	Mood       string   `json:"mood"`
	SleepHours *float64 `json:"sleep_hours"`
	Hydration  string   `json:"hydration"`
	Notes      string   `json:"notes"`
}

// POST /users/{id}/checkins
func (h *CheckinHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Person not found.")
		return
	}

	var req checkinCreateRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	// Explicit default rather than inferred after the fact.
	if req.By == "" {
		req.By = "caregiver"
	}

	ctx := r.Context()
	if _, err := h.persons.GetPerson(ctx, userID); err != nil {
		h.respondPersonErr(w, err)
		return
	}

	checkin := &domain.CheckIn{
		UserID:     userID,
		By:         req.By,
		Mood:       req.Mood,
		SleepHours: req.SleepHours,
		Hydration:  req.Hydration,
		Notes:      req.Notes,
	}
	if _, err := h.checkins.CreateCheckIn(ctx, checkin); err != nil {
		h.logger.Error("create checkin failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusCreated, checkin)
}

// GET /users/{id}/checkins?limit=
func (h *CheckinHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Person not found.")
		return
	}

	ctx := r.Context()
	if _, err := h.persons.GetPerson(ctx, userID); err != nil {
		h.respondPersonErr(w, err)
		return
	}

	limit := parseInt(r.URL.Query().Get("limit"), 30)
	checkins, err := h.checkins.ListCheckInsForUser(ctx, userID, limit)
	if err != nil {
		h.logger.Error("list checkins failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusOK, checkins)
}

func (h *CheckinHandler) respondPersonErr(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Person not found.")
		return
	}
	h.logger.Error("person lookup failed", zap.Error(err))
	writeDetail(w, http.StatusInternalServerError, "Internal error.")
}
