package httpapi

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"carecircle/internal/domain"
)

func newTaskRouter(tasks *stubTasks, persons *stubPersons) *Router {
	r := NewRouter(zap.NewNop())
	r.RegisterTaskRoutes(NewTaskHandler(tasks, persons, zap.NewNop()))
	return r
}

func TestCreateTaskEndpoint(t *testing.T) {
	tasks := &stubTasks{}
	persons := newStubPersons(
		&domain.Person{ID: 1, Role: domain.RoleCaregiver, Name: "Dana"},
		&domain.Person{ID: 2, Role: domain.RoleUser, Name: "Alex"},
	)
	router := newTaskRouter(tasks, persons)

	rec := doJSON(t, router, http.MethodPost, "/users/2/tasks", map[string]any{
		"assigned_by": 1,
		"title":       "Meds",
		"description": "Morning vitamins.",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, int64(2), created.UserID)
	// Status defaults to open when omitted.
	assert.Equal(t, domain.TaskStatusOpen, created.Status)
	assert.Nil(t, created.DueAt)
}

func TestCreateTaskEndpoint_Validation(t *testing.T) {
	persons := newStubPersons(
		&domain.Person{ID: 1, Role: domain.RoleCaregiver, Name: "Dana"},
		&domain.Person{ID: 2, Role: domain.RoleUser, Name: "Alex"},
	)
	router := newTaskRouter(&stubTasks{}, persons)

	rec := doJSON(t, router, http.MethodPost, "/users/2/tasks", map[string]any{
		"assigned_by": 1,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "title required", detailOf(t, rec))

	// Unknown client and unknown assigner are both 404s.
	rec = doJSON(t, router, http.MethodPost, "/users/99/tasks", map[string]any{
		"assigned_by": 1, "title": "Meds",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Person not found.", detailOf(t, rec))

	rec = doJSON(t, router, http.MethodPost, "/users/2/tasks", map[string]any{
		"assigned_by": 99, "title": "Meds",
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListTasksEndpoint(t *testing.T) {
	tasks := &stubTasks{tasks: []*domain.Task{
		{ID: 1, UserID: 2, Title: "Meds", Status: domain.TaskStatusOpen},
		{ID: 2, UserID: 2, Title: "Walk", Status: domain.TaskStatusDone},
	}}
	persons := newStubPersons(&domain.Person{ID: 2, Role: domain.RoleUser, Name: "Alex"})
	router := newTaskRouter(tasks, persons)

	rec := doJSON(t, router, http.MethodGet, "/users/2/tasks?status=open", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, "Meds", got[0].Title)
}

func TestPatchTaskEndpoint(t *testing.T) {
	due := time.Now().UTC().Add(time.Hour)
	tasks := &stubTasks{tasks: []*domain.Task{
		{ID: 1, UserID: 2, Title: "Meds", DueAt: &due, Status: domain.TaskStatusOpen},
	}}
	persons := newStubPersons(&domain.Person{ID: 2, Role: domain.RoleUser, Name: "Alex"})
	router := newTaskRouter(tasks, persons)

	rec := doJSON(t, router, http.MethodPatch, "/tasks/1", map[string]any{
		"status": domain.TaskStatusDone,
	})
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.Task
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, domain.TaskStatusDone, got.Status)
	// Fields absent from the patch keep their values.
	assert.Equal(t, "Meds", got.Title)
	require.NotNil(t, got.DueAt)

	rec = doJSON(t, router, http.MethodPatch, "/tasks/99", map[string]any{
		"status": domain.TaskStatusDone,
	})
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Task not found.", detailOf(t, rec))
}
