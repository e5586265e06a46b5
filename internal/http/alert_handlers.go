package httpapi

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"carecircle/internal/domain"
	"carecircle/internal/repository"
)

// AlertHandler serves alert creation, listing, and acknowledgment. Alerts
// are written synchronously by callers; nothing detects conditions here.
type AlertHandler struct {
	alerts  repository.AlertsRepository
	persons repository.PersonsRepository
	logger  *zap.Logger
}

func NewAlertHandler(alerts repository.AlertsRepository, persons repository.PersonsRepository, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{alerts: alerts, persons: persons, logger: logger}
}

type alertCreateRequest struct {
	CaregiverID int64  `json:"caregiver_id"`
	Kind        string `json:"kind"`
	Message     string `json:"message"`
}

// POST /users/{id}/alerts
func (h *AlertHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Person not found.")
		return
	}

	var req alertCreateRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if !validAlertKind(req.Kind) {
		writeDetail(w, http.StatusUnprocessableEntity, "Invalid alert kind.")
		return
	}

	ctx := r.Context()
	if _, err := h.persons.GetPerson(ctx, userID); err != nil {
		h.respondPersonErr(w, err)
		return
	}
	if _, err := h.persons.GetPerson(ctx, req.CaregiverID); err != nil {
		h.respondPersonErr(w, err)
		return
	}

	alert := &domain.Alert{
		UserID:      userID,
		CaregiverID: req.CaregiverID,
		Kind:        req.Kind,
		Message:     req.Message,
	}
	if _, err := h.alerts.CreateAlert(ctx, alert); err != nil {
		h.logger.Error("create alert failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusCreated, alert)
}

// GET /caregivers/{id}/alerts?only_unread=&limit=
func (h *AlertHandler) List(w http.ResponseWriter, r *http.Request) {
	caregiverID, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Person not found.")
		return
	}

	ctx := r.Context()
	if _, err := h.persons.GetPerson(ctx, caregiverID); err != nil {
		h.respondPersonErr(w, err)
		return
	}

	onlyUnread := r.URL.Query().Get("only_unread") == "true"
	limit := parseInt(r.URL.Query().Get("limit"), 100)

	alerts, err := h.alerts.ListAlertsForCaregiver(ctx, caregiverID, onlyUnread, limit)
	if err != nil {
		h.logger.Error("list alerts failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// PATCH /alerts/{id}
func (h *AlertHandler) Patch(w http.ResponseWriter, r *http.Request) {
	alertID, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Alert not found.")
		return
	}

	var patch domain.AlertPatch
	if err := readBodyJSON(r, 1<<20, &patch); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	ctx := r.Context()
	alert, err := h.alerts.GetAlert(ctx, alertID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Alert not found.")
			return
		}
		h.logger.Error("get alert failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	patch.Apply(alert)
	if err := h.alerts.UpdateAlert(ctx, alert); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Alert not found.")
			return
		}
		h.logger.Error("update alert failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusOK, alert)
}

func validAlertKind(kind string) bool {
	for _, k := range domain.AlertKinds {
		if kind == k {
			return true
		}
	}
	return false
}

func (h *AlertHandler) respondPersonErr(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Person not found.")
		return
	}
	h.logger.Error("person lookup failed", zap.Error(err))
	writeDetail(w, http.StatusInternalServerError, "Internal error.")
}
