package httpapi

import (
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Router wraps http.ServeMux; handlers register themselves per resource.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	r := &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
	r.mux.HandleFunc("GET /health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	return r
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// RegisterCaregiverRoutes wires the caregiver dashboard endpoints.
func (r *Router) RegisterCaregiverRoutes(h *CaregiverHandler) {
	r.Handle("GET /caregivers/{id}/profile", h.Profile)
	r.Handle("GET /caregivers/{id}/clients", h.ListClients)
	r.Handle("GET /caregivers/{id}/updates", h.Updates)
	r.Handle("POST /caregivers/{id}/links", h.UpsertLink)
}

// RegisterTaskRoutes wires task CRUD.
func (r *Router) RegisterTaskRoutes(h *TaskHandler) {
	r.Handle("POST /users/{id}/tasks", h.Create)
	r.Handle("GET /users/{id}/tasks", h.List)
	r.Handle("PATCH /tasks/{id}", h.Patch)
}

// RegisterCheckinRoutes wires check-in endpoints.
func (r *Router) RegisterCheckinRoutes(h *CheckinHandler) {
	r.Handle("POST /users/{id}/checkins", h.Create)
	r.Handle("GET /users/{id}/checkins", h.List)
}

// RegisterAlertRoutes wires alert endpoints.
func (r *Router) RegisterAlertRoutes(h *AlertHandler) {
	r.Handle("POST /users/{id}/alerts", h.Create)
	r.Handle("GET /caregivers/{id}/alerts", h.List)
	r.Handle("PATCH /alerts/{id}", h.Patch)
}

// RegisterMemoryRoutes wires memory CRUD.
func (r *Router) RegisterMemoryRoutes(h *MemoryHandler) {
	r.Handle("GET /memories", h.List)
	r.Handle("POST /memories", h.Create)
	r.Handle("GET /memories/{id}", h.Get)
	r.Handle("PUT /memories/{id}", h.Update)
	r.Handle("DELETE /memories/{id}", h.Delete)
}

// RegisterUploadRoutes wires the image upload endpoint plus static serving
// of the upload dir.
func (r *Router) RegisterUploadRoutes(h *UploadHandler) {
	r.Handle("POST /upload", h.Upload)

	prefix := strings.TrimSuffix(h.store.PublicPath(), "/") + "/"
	r.mux.Handle("GET "+prefix, http.StripPrefix(prefix, http.FileServer(http.Dir(h.store.Dir()))))
}
