package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	assistantHandler "github.com/hanoivivu/assistant/internal/handler/assistant"
	placeHandler "github.com/hanoivivu/assistant/internal/handler/place"
	widgetHandler "github.com/hanoivivu/assistant/internal/handler/widget"
	middlewarePkg "github.com/hanoivivu/assistant/internal/middleware"
	placeModel "github.com/hanoivivu/assistant/internal/model/place"
	assistantService "github.com/hanoivivu/assistant/internal/service/assistant"
	"github.com/hanoivivu/assistant/internal/store"
)

// NewRouter wires HTTP routes to core services. responder may be nil when
// no chat model is configured; widgetClient is what the hosted widget
// cores call for replies.
func NewRouter(places placeModel.Store, responder assistantHandler.Responder, widgetClient assistantService.Client, storage store.Storage, sessions store.Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middlewarePkg.CORS)

	r.Route("/api", func(api chi.Router) {
		placeHandler.New(places).RegisterRoutes(api)
		assistantHandler.New(responder).RegisterRoutes(api)
		widgetHandler.New(storage, sessions, widgetClient).RegisterRoutes(api)
	})

	return r
}
