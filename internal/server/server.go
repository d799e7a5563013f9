package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

type Action string

type Method string

const (
	Data Action = "data"
	Api  Action = "api"

	GET  Method = "GET"
	POST Method = "POST"
)

const RequestIDHeader = "X-Request-Id"

// DefaultMaxBody is the request body limit of a new server.
const DefaultMaxBody int64 = 10 << 20

var (
	// BadRequestErr signals a request that cannot be served as sent.
	BadRequestErr = errors.New("bad request")
	// PayloadTooLargeErr signals a request body above the limit of the server.
	PayloadTooLargeErr = errors.New("payload too large")
)

// Handler serves a request. A non-nil error is answered with the returned code,
// or with 500 if the code is not an error code.
type Handler func(r *http.Request) ([]byte, int, error)

type Route struct {
	Action Action
	Path   string
	Method Method
	Exec   Handler
}

func (r Route) pattern() string {
	if r.Path != "" {
		return fmt.Sprintf("/%s/%s", r.Action, r.Path)
	}
	return fmt.Sprintf("/%s", r.Action)
}

type Server struct {
	name     string
	port     int
	debug    bool
	maxBody  int64
	routes   []Route
	handlers map[string]http.Handler
}

func NewServer(name string, port int) *Server {
	return &Server{
		name:     name,
		port:     port,
		maxBody:  DefaultMaxBody,
		routes:   make([]Route, 0),
		handlers: make(map[string]http.Handler),
	}
}

// Debug sets the server to debug mode
func (s *Server) Debug() *Server {
	s.debug = true
	return s
}

// WithMaxBody limits the size of request bodies, a non-positive limit removes it.
func (s *Server) WithMaxBody(n int64) *Server {
	s.maxBody = n
	return s
}

// AddRoute adds a route to the server
func (s *Server) AddRoute(method Method, action Action, path string, exec Handler) *Server {
	s.routes = append(s.routes, Route{
		Action: action,
		Path:   path,
		Method: method,
		Exec:   exec,
	})
	return s
}

// Add adds the given routes to the server
func (s *Server) Add(route ...Route) *Server {
	s.routes = append(s.routes, route...)
	return s
}

// Handle serves the given path with a plain http handler.
func (s *Server) Handle(path string, handler http.Handler) *Server {
	s.handlers[path] = handler
	return s
}

// Handler builds the http handler serving all routes.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	for _, route := range s.routes {
		mux.HandleFunc(route.pattern(), s.handle(route))
	}
	for path, handler := range s.handlers {
		mux.Handle(path, handler)
	}
	return mux
}

func (s *Server) handle(route Route) func(w http.ResponseWriter, r *http.Request) {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		start := time.Now()
		if s.debug {
			log.Debug().
				Str("id", id).
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Msg("started execution")
		}
		if Method(r.Method) != route.Method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		if s.maxBody > 0 {
			r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)
		}
		b, code, err := route.Exec(r)
		if err != nil {
			s.error(w, id, code, err)
		} else {
			s.code(w, b, code)
		}
		if s.debug {
			log.Debug().
				Str("id", id).
				Str("path", r.URL.Path).
				Float64("duration", time.Since(start).Seconds()).
				Msg("completed execution")
		}
	}
}

// Run starts the server and blocks until the context is done.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", s.port),
		Handler: s.Handler(),
	}
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdown); err != nil {
			log.Error().Err(err).Str("server", s.name).Msg("could not shut down server")
		}
	}()

	log.Info().Str("server", s.name).Int("port", s.port).Msg("starting server")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not start server: %w", err)
	}
	return nil
}

func (s *Server) code(w http.ResponseWriter, b []byte, code int) {
	if code == 0 {
		code = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	s.respond(w, b)
}

func (s *Server) respond(w http.ResponseWriter, b []byte) {
	_, err := w.Write(b)
	if err != nil {
		log.Error().Err(err).Msg("could not write response")
	}
}

// ErrorResponse is the payload of a failed request.
type ErrorResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

func (s *Server) error(w http.ResponseWriter, id string, code int, err error) {
	if code < http.StatusBadRequest {
		code = http.StatusInternalServerError
	}
	log.Error().Err(err).Str("id", id).Int("code", code).Msg("error for http request")
	b, _ := json.Marshal(ErrorResponse{ID: id, Error: err.Error()})
	s.code(w, b, code)
}

func Live() Route {
	return Route{
		Action: Data,
		Method: GET,
		Exec: func(r *http.Request) (payload []byte, code int, err error) {
			return []byte{}, http.StatusOK, nil
		},
	}
}

// JsonRead decodes the request body into v. An empty body leaves v untouched.
func JsonRead(r *http.Request, debug bool, v interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return fmt.Errorf("%w: body exceeds %d bytes", PayloadTooLargeErr, tooLarge.Limit)
		}
		return fmt.Errorf("could not read body: %s: %w", err.Error(), BadRequestErr)
	}
	if debug {
		log.Debug().
			Str("url", fmt.Sprintf("%+v", r.URL)).
			Str("remote-address", r.RemoteAddr).
			Str("method", r.Method).
			Int("size", len(body)).
			Msg("received payload")
	}
	if len(body) > 0 {
		err = json.Unmarshal(body, v)
		if err != nil {
			return fmt.Errorf("could not decode body: %s: %w", err.Error(), BadRequestErr)
		}
	}
	return nil
}
