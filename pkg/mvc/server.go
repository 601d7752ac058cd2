package mvc

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/conneroisu/mvcgen/internal/logging"
)

// ResolveFunc matches a request to an action, runs it and returns the action
// name with its result.
type ResolveFunc func(request *Request) (string, ViewResult, error)

// ViewFunc renders a view without a model. It reports false when no such view
// exists.
type ViewFunc func(viewName string) (string, bool)

// ViewModelFunc renders a view with a model. It reports false when no such
// view exists or the model has the wrong type.
type ViewModelFunc func(viewName string, model any) (string, bool)

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Server) {
		s.logger = logger.WithComponent("server")
	}
}

// Server serves a generated application over HTTP/1.1 and cleartext HTTP/2.
type Server struct {
	addr          string
	resolve       ResolveFunc
	view          ViewFunc
	viewWithModel ViewModelFunc
	logger        logging.Logger

	mu         sync.Mutex
	httpServer *http.Server
}

// NewServer creates a server listening on host:port once started.
func NewServer(host string, port int, resolve ResolveFunc, view ViewFunc, viewWithModel ViewModelFunc, opts ...Option) *Server {
	s := &Server{
		addr:          net.JoinHostPort(host, strconv.Itoa(port)),
		resolve:       resolve,
		view:          view,
		viewWithModel: viewWithModel,
		logger:        logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Addr returns the listen address.
func (s *Server) Addr() string {
	return s.addr
}

// ServeHTTP resolves the request, renders the selected view and writes it.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	request := NewRequest(r)

	action, result, err := s.resolve(request)
	if err != nil {
		status := http.StatusInternalServerError
		var paramErr *ParamError
		switch {
		case errors.Is(err, ErrURLNotFound):
			status = http.StatusNotFound
		case errors.As(err, &paramErr):
			status = http.StatusBadRequest
		}
		s.logger.Debug(r.Context(), "Request not resolved", "path", r.URL.Path, "status", status, "error", err.Error())
		s.write(w, request, status, err.Error())
		return
	}

	name := result.ViewName(action)
	var body string
	var ok bool
	if result.HasModel() {
		body, ok = s.viewWithModel(name, result.Model)
	} else {
		body, ok = s.view(name)
	}
	if !ok {
		s.logger.Debug(r.Context(), "View not found", "path", r.URL.Path, "action", action, "view", name)
		s.write(w, request, http.StatusNotFound, NotFoundBody)
		return
	}

	s.write(w, request, http.StatusOK, body)
}

func (s *Server) write(w http.ResponseWriter, request *Request, status int, body string) {
	if ctx := request.ctx; ctx != nil {
		for k, vs := range ctx.Header {
			for _, v := range vs {
				w.Header().Add(k, v)
			}
		}
		if ctx.Status != 0 && status == http.StatusOK {
			status = ctx.Status
		}
	}
	if w.Header().Get("Content-Type") == "" {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
	}
	w.WriteHeader(status)
	if _, err := w.Write([]byte(body)); err != nil {
		s.logger.Warn(request.Context(), err, "Failed to write response")
	}
}

// ListenAndServe serves until Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.mu.Lock()
	s.httpServer = &http.Server{
		Addr:              s.addr,
		Handler:           h2c.NewHandler(s, &http2.Server{}),
		ReadHeaderTimeout: 10 * time.Second,
	}
	server := s.httpServer
	s.mu.Unlock()

	s.logger.Info(context.Background(), "Listening", "addr", s.addr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops a running server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	server := s.httpServer
	s.mu.Unlock()

	if server == nil {
		return nil
	}
	return server.Shutdown(ctx)
}
