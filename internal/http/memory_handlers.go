package httpapi

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"carecircle/internal/domain"
	"carecircle/internal/repository"
)

// MemoryHandler serves memory CRUD.
type MemoryHandler struct {
	memories repository.MemoriesRepository
	logger   *zap.Logger
}

func NewMemoryHandler(memories repository.MemoriesRepository, logger *zap.Logger) *MemoryHandler {
	return &MemoryHandler{memories: memories, logger: logger}
}

// memoryRequest keeps occurred_at as a string so parse failures map to 422
// instead of a generic decode error. RFC 3339 accepts both "Z" and numeric
// offsets, so "2025-10-02T22:19:00Z" and "2025-10-02T22:19:00+00:00" are the
// same instant.
type memoryRequest struct {
	UserID     *int64 `json:"user_id"`
	Title      string `json:"title"`
	Note       string `json:"note"`
	ImageURL   string `json:"image_url"`
	OccurredAt string `json:"occurred_at"`
}

func (req *memoryRequest) toMemory() (*domain.Memory, string) {
	if req.Title == "" {
		return nil, "title required"
	}
	occurredAt := time.Now().UTC()
	if req.OccurredAt != "" {
		t, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			return nil, "occurred_at must be an ISO-8601 timestamp"
		}
		occurredAt = t
	}
	return &domain.Memory{
		UserID:     req.UserID,
		Title:      req.Title,
		Note:       req.Note,
		ImageURL:   req.ImageURL,
		OccurredAt: occurredAt,
	}, ""
}

// GET /memories?limit=&offset=
func (h *MemoryHandler) List(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 50)
	offset := parseInt(r.URL.Query().Get("offset"), 0)

	memories, err := h.memories.ListMemories(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("list memories failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusOK, memories)
}

// POST /memories
func (h *MemoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req memoryRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	memory, problem := req.toMemory()
	if problem != "" {
		writeDetail(w, http.StatusUnprocessableEntity, problem)
		return
	}
	if _, err := h.memories.CreateMemory(r.Context(), memory); err != nil {
		h.logger.Error("create memory failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusCreated, memory)
}

// GET /memories/{id}
func (h *MemoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found")
		return
	}

	memory, err := h.memories.GetMemory(r.Context(), id)
	if err != nil {
		h.respondMemoryErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, memory)
}

// PUT /memories/{id}
func (h *MemoryHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found")
		return
	}

	var req memoryRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	memory, problem := req.toMemory()
	if problem != "" {
		writeDetail(w, http.StatusUnprocessableEntity, problem)
		return
	}
	memory.ID = id

	if err := h.memories.UpdateMemory(r.Context(), memory); err != nil {
		h.respondMemoryErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, memory)
}

// DELETE /memories/{id}
func (h *MemoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Not found")
		return
	}

	if err := h.memories.DeleteMemory(r.Context(), id); err != nil {
		h.respondMemoryErr(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (h *MemoryHandler) respondMemoryErr(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Not found")
		return
	}
	h.logger.Error("memory request failed", zap.Error(err))
	writeDetail(w, http.StatusInternalServerError, "Internal error.")
}
