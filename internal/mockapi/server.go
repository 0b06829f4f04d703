package mockapi

import (
	"encoding/json"
	"io"
	"net/http"
	"slices"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// DefaultMaxBody mirrors the service's 7 MiB request limit.
const DefaultMaxBody = 7 * 1024 * 1024

// CreateShape selects how a create reply is encoded.
type CreateShape int

const (
	// CreateDirect replies with the list object itself.
	CreateDirect CreateShape = iota
	// CreateWrapped replies with {"data": list}.
	CreateWrapped
	// CreateListTail replies with every list, newest last.
	CreateListTail
	// CreateNoID replies with an object that carries no id.
	CreateNoID
)

// ListShape selects how the list-all reply is encoded.
type ListShape int

const (
	ListArray ListShape = iota
	ListData
	ListURLLists
)

// List is one stored URL list.
type List struct {
	ID   int
	Name string
	URLs []string
	Type string
}

// Call is one request the server saw after auth.
type Call struct {
	Method string
	Path   string
	URLs   int
}

type fault struct {
	method string
	status int
}

// Server holds the lists and the scripted behaviour.
type Server struct {
	Token       string
	MaxBody     int64
	CreateShape CreateShape
	ListShape   ListShape

	mu      sync.Mutex
	nextID  int
	lists   []*List
	calls   []Call
	faults  []fault
	deploys int
}

// New returns an empty server that accepts token.
func New(token string) *Server {
	return &Server{Token: token, MaxBody: DefaultMaxBody, nextID: 1}
}

// Handler returns the API router, rooted at /api/v2.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Route("/api/v2/policy/urllist", func(r chi.Router) {
		r.Use(s.auth, s.faultInjector)
		r.Get("/", s.handleListAll)
		r.Post("/", s.handleCreate)
		r.Post("/deploy", s.handleDeploy)
		r.Get("/{id}", s.handleGet)
		r.Put("/{id}", s.handleReplace)
		r.Patch("/{id}/append", s.handleAppend)
	})
	return r
}

// Seed stores a list directly and returns its id.
func (s *Server) Seed(name string, urls ...string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insert(name, urls).ID
}

// Get returns a copy of the named list.
func (s *Server) Get(name string) (List, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, l := range s.lists {
		if l.Name == name {
			cp := *l
			cp.URLs = slices.Clone(l.URLs)
			return cp, true
		}
	}
	return List{}, false
}

// Calls returns the recorded calls in order.
func (s *Server) Calls() []Call {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.calls)
}

// Deploys returns how many deploy calls succeeded.
func (s *Server) Deploys() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.deploys
}

// FailNext makes the next n requests with method reply with status.
// An empty method matches any request.
func (s *Server) FailNext(method string, status, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := 0; i < n; i++ {
		s.faults = append(s.faults, fault{method: method, status: status})
	}
}

func (s *Server) insert(name string, urls []string) *List {
	l := &List{ID: s.nextID, Name: name, Type: "exact", URLs: dedupe(nil, urls)}
	s.nextID++
	s.lists = append(s.lists, l)
	return l
}

func (s *Server) byID(raw string) *List {
	id, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	for _, l := range s.lists {
		if l.ID == id {
			return l
		}
	}
	return nil
}

func (s *Server) record(r *http.Request, urls int) {
	s.calls = append(s.calls, Call{Method: r.Method, Path: r.URL.Path, URLs: urls})
}

func (s *Server) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.Token {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"message": "invalid token"})
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) faultInjector(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		var hit *fault
		for i, f := range s.faults {
			if f.method == "" || f.method == r.Method {
				hit = &f
				s.faults = slices.Delete(s.faults, i, i+1)
				break
			}
		}
		s.mu.Unlock()
		if hit != nil {
			writeJSON(w, hit.status, map[string]string{"message": http.StatusText(hit.status)})
			return
		}
		next.ServeHTTP(w, r)
	})
}

type listData struct {
	URLs []string `json:"urls"`
	Type string   `json:"type"`
}

type writeReq struct {
	Name string   `json:"name"`
	Data listData `json:"data"`
}

type listView struct {
	ID   int      `json:"id"`
	Name string   `json:"name"`
	Data listData `json:"data"`
}

func view(l *List) listView {
	return listView{ID: l.ID, Name: l.Name, Data: listData{URLs: l.URLs, Type: l.Type}}
}

func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	limit := s.MaxBody
	if limit <= 0 {
		limit = DefaultMaxBody
	}
	b, err := io.ReadAll(io.LimitReader(r.Body, limit+1))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return false
	}
	if int64(len(b)) > limit {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"message": "payload too large"})
		return false
	}
	if err := json.Unmarshal(b, v); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"message": err.Error()})
		return false
	}
	return true
}

func (s *Server) handleListAll(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r, 0)
	views := make([]listView, 0, len(s.lists))
	for _, l := range s.lists {
		views = append(views, view(l))
	}
	switch s.ListShape {
	case ListData:
		writeJSON(w, http.StatusOK, map[string]any{"data": views})
	case ListURLLists:
		writeJSON(w, http.StatusOK, map[string]any{"urllists": views})
	default:
		writeJSON(w, http.StatusOK, views)
	}
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req writeReq
	if !s.decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r, len(req.Data.URLs))
	for _, l := range s.lists {
		if l.Name == req.Name {
			writeJSON(w, http.StatusConflict, map[string]string{"message": "list exists"})
			return
		}
	}
	l := s.insert(req.Name, req.Data.URLs)
	switch s.CreateShape {
	case CreateWrapped:
		writeJSON(w, http.StatusOK, map[string]any{"status": "success", "data": view(l)})
	case CreateListTail:
		views := make([]listView, 0, len(s.lists))
		for _, l := range s.lists {
			views = append(views, view(l))
		}
		writeJSON(w, http.StatusOK, views)
	case CreateNoID:
		writeJSON(w, http.StatusOK, map[string]any{"status": "success"})
	default:
		writeJSON(w, http.StatusOK, view(l))
	}
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r, 0)
	l := s.byID(chi.URLParam(r, "id"))
	if l == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}
	writeJSON(w, http.StatusOK, view(l))
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	var req writeReq
	if !s.decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r, len(req.Data.URLs))
	l := s.byID(chi.URLParam(r, "id"))
	if l == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}
	if req.Name != "" {
		l.Name = req.Name
	}
	l.URLs = dedupe(nil, req.Data.URLs)
	writeJSON(w, http.StatusOK, view(l))
}

func (s *Server) handleAppend(w http.ResponseWriter, r *http.Request) {
	var req writeReq
	if !s.decode(w, r, &req) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r, len(req.Data.URLs))
	l := s.byID(chi.URLParam(r, "id"))
	if l == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"message": "not found"})
		return
	}
	l.URLs = dedupe(l.URLs, req.Data.URLs)
	writeJSON(w, http.StatusOK, view(l))
}

func (s *Server) handleDeploy(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.record(r, 0)
	s.deploys++
	writeJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// dedupe appends the entries of add missing from base, keeping order.
func dedupe(base, add []string) []string {
	seen := make(map[string]struct{}, len(base)+len(add))
	out := make([]string, 0, len(base)+len(add))
	for _, list := range [][]string{base, add} {
		for _, u := range list {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			out = append(out, u)
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
