package httpapi

import (
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"carecircle/internal/domain"
	"carecircle/internal/repository"
)

// TaskHandler serves task CRUD for a client's care plan.
type TaskHandler struct {
	tasks   repository.TasksRepository
	persons repository.PersonsRepository
	logger  *zap.Logger
}

func NewTaskHandler(tasks repository.TasksRepository, persons repository.PersonsRepository, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{tasks: tasks, persons: persons, logger: logger}
}

type taskCreateRequest struct {
	AssignedBy  int64      `json:"assigned_by"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueAt       *time.Time `json:"due_at"`
	Repeat      string     `json:"repeat"`
	Status      string     `json:"status"`
}

// POST /users/{id}/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Person not found.")
		return
	}

	var req taskCreateRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	if req.Title == "" {
		writeDetail(w, http.StatusUnprocessableEntity, "title required")
		return
	}

	ctx := r.Context()
	if _, err := h.persons.GetPerson(ctx, userID); err != nil {
		h.respondPersonErr(w, err)
		return
	}
	if _, err := h.persons.GetPerson(ctx, req.AssignedBy); err != nil {
		h.respondPersonErr(w, err)
		return
	}

	status := req.Status
	if status == "" {
		status = domain.TaskStatusOpen
	}
	task := &domain.Task{
		UserID:      userID,
		AssignedBy:  req.AssignedBy,
		Title:       req.Title,
		Description: req.Description,
		DueAt:       req.DueAt,
		Repeat:      req.Repeat,
		Status:      status,
	}
	if _, err := h.tasks.CreateTask(ctx, task); err != nil {
		h.logger.Error("create task failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusCreated, task)
}

// GET /users/{id}/tasks?status=&limit=
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
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

	status := r.URL.Query().Get("status")
	limit := parseInt(r.URL.Query().Get("limit"), 100)

	tasks, err := h.tasks.ListTasksForUser(ctx, userID, status, limit)
	if err != nil {
		h.logger.Error("list tasks failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusOK, tasks)
}

// PATCH /tasks/{id}
func (h *TaskHandler) Patch(w http.ResponseWriter, r *http.Request) {
	taskID, ok := pathID(r, "id")
	if !ok {
		writeDetail(w, http.StatusNotFound, "Task not found.")
		return
	}

	var patch domain.TaskPatch
	if err := readBodyJSON(r, 1<<20, &patch); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}

	ctx := r.Context()
	task, err := h.tasks.GetTask(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Task not found.")
			return
		}
		h.logger.Error("get task failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}

	patch.Apply(task)
	if err := h.tasks.UpdateTask(ctx, task); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, "Task not found.")
			return
		}
		h.logger.Error("update task failed", zap.Error(err))
		writeDetail(w, http.StatusInternalServerError, "Internal error.")
		return
	}
	writeJSON(w, http.StatusOK, task)
}

func (h *TaskHandler) respondPersonErr(w http.ResponseWriter, err error) {
	if errors.Is(err, repository.ErrNotFound) {
		writeDetail(w, http.StatusNotFound, "Person not found.")
		return
	}
	h.logger.Error("person lookup failed", zap.Error(err))
	writeDetail(w, http.StatusInternalServerError, "Internal error.")
}
