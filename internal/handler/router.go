package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/goal-cascade-api/internal/middleware"
)

// Router настраивает маршруты API
type Router struct {
	mux         *http.ServeMux
	logger      *slog.Logger
	goalHandler *GoalHandler
}

// NewRouter создаёт новый роутер
func NewRouter(goalHandler *GoalHandler, logger *slog.Logger) *Router {
	return &Router{
		mux:         http.NewServeMux(),
		logger:      logger,
		goalHandler: goalHandler,
	}
}

// Setup настраивает все маршруты
func (r *Router) Setup() http.Handler {
	// Регистрируем обработчики
	r.mux.HandleFunc("/goals/", r.goalsRouter)
	r.mux.HandleFunc("/employees/", r.employeesRouter)
	r.mux.HandleFunc("/analytics/", r.analyticsRouter)

	// Health check
	r.mux.HandleFunc("/health", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Применяем middleware
	handler := middleware.ContentType(r.mux)
	handler = middleware.Logger(r.logger)(handler)
	handler = middleware.Recoverer(r.logger)(handler)

	return handler
}

// goalsRouter обрабатывает все запросы к /goals/
func (r *Router) goalsRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/goals")
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")

	// POST /goals/corporate и POST /goals/manager - создание без родителя
	if len(parts) == 1 && req.Method == http.MethodPost {
		switch parts[0] {
		case "corporate":
			r.goalHandler.CreateCorporate(w, req)
			return
		case "manager":
			r.goalHandler.CreateManager(w, req)
			return
		}
	}

	// GET /goals/{id}
	if len(parts) == 1 && parts[0] != "" {
		if req.Method == http.MethodGet {
			r.goalHandler.GetByID(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	// /goals/{id}/{action}
	if len(parts) == 2 {
		switch parts[1] {
		case "cascade":
			if req.Method == http.MethodPost {
				r.goalHandler.Cascade(w, req)
				return
			}
		case "progress":
			switch req.Method {
			case http.MethodPost:
				r.goalHandler.UpdateProgress(w, req)
				return
			case http.MethodGet:
				r.goalHandler.History(w, req)
				return
			}
		case "cancel":
			if req.Method == http.MethodPost {
				r.goalHandler.Cancel(w, req)
				return
			}
		default:
			http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// employeesRouter обрабатывает запросы к /employees/
func (r *Router) employeesRouter(w http.ResponseWriter, req *http.Request) {
	path := strings.TrimPrefix(req.URL.Path, "/employees")
	path = strings.Trim(path, "/")

	parts := strings.Split(path, "/")

	// GET /employees/{id}/score
	if len(parts) == 2 && parts[1] == "score" {
		if req.Method == http.MethodGet {
			r.goalHandler.Score(w, req)
			return
		}
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
}

// analyticsRouter обрабатывает запросы к /analytics/
func (r *Router) analyticsRouter(w http.ResponseWriter, req *http.Request) {
	if req.Method != http.MethodGet {
		http.Error(w, `{"error":"method not allowed"}`, http.StatusMethodNotAllowed)
		return
	}

	switch strings.Trim(strings.TrimPrefix(req.URL.Path, "/analytics"), "/") {
	case "orphans":
		r.goalHandler.Orphans(w, req)
	case "report":
		r.goalHandler.Report(w, req)
	case "tree":
		r.goalHandler.Tree(w, req)
	default:
		http.Error(w, `{"error":"not found"}`, http.StatusNotFound)
	}
}
