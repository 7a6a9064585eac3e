// Package router wraps chi so that handlers return errors instead of writing
// error responses themselves. Returned errors are translated to JsonError
// responses: a JsonError passes through as is, anything else goes through the
// registered mappers, and unmapped errors become the default 500 without
// leaking their message to the client.
package router

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
)

// HandlerFunc handles a request and reports failure by returning an error.
// A failing handler must not have written to the response writer.
type HandlerFunc func(http.ResponseWriter, *http.Request) error

type mapping struct {
	target error
	to     JsonError
}

type Router struct {
	chi.Router
	mappings     []mapping
	defaultError JsonError
	logger       *slog.Logger
}

type Option func(*Router)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

func New(opts ...Option) *Router {
	return wrap(chi.NewRouter(), opts...)
}

func wrap(chiRouter chi.Router, opts ...Option) *Router {
	router := &Router{
		Router:       chiRouter,
		defaultError: DefaultError,
		logger:       slog.New(slog.NewTextHandler(os.Stderr, nil)),
	}
	for _, opt := range opts {
		opt(router)
	}
	return router
}

// Map registers a translation from target (matched with errors.Is, so wrapped
// errors match too) to a JSON error response.
func (a *Router) Map(target error, to JsonError) {
	a.mappings = append(a.mappings, mapping{target: target, to: to})
}

func (a *Router) mapError(err error) JsonError {
	var jsonErr JsonError
	if errors.As(err, &jsonErr) {
		return jsonErr
	}
	for _, m := range a.mappings {
		if errors.Is(err, m.target) {
			return m.to
		}
	}
	return a.defaultError
}

func (a *Router) handle(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		resErr := a.mapError(err)
		if resErr.Code >= http.StatusInternalServerError {
			a.logger.Error(err.Error(),
				slog.String("method", r.Method), slog.String("path", r.URL.Path))
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resErr.Code)
		if err := json.NewEncoder(w).Encode(resErr); err != nil {
			a.logger.Error("encoding error response", slog.Any("err", err))
		}
	}
}

func (a *Router) Get(path string, h HandlerFunc) {
	a.Router.Get(path, a.handle(h))
}

func (a *Router) Post(path string, h HandlerFunc) {
	a.Router.Post(path, a.handle(h))
}

func (a *Router) Put(path string, h HandlerFunc) {
	a.Router.Put(path, a.handle(h))
}

func (a *Router) Delete(path string, h HandlerFunc) {
	a.Router.Delete(path, a.handle(h))
}
