// Package gameapi provides an in-memory asset API for tests. It mirrors the
// backend REST contract the console consumes: bearer-token auth, multipart
// or URL-encoded submissions, server-assigned ids and stored image paths.
package gameapi

import (
	"encoding/json"
	"net/http"
	"path"
	"strconv"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/louisbranch/assetdeck/internal/assets"
)

// Server is a fake asset backend backed by in-memory slices. Lists keep
// insertion order so tests can assert on server-determined ordering.
type Server struct {
	email    string
	password string
	token    string

	mu         sync.Mutex
	characters []assets.Character
	pets       []assets.Pet
	vehicles   []assets.Vehicle
	requests   int
}

// New creates a fake backend accepting exactly one credential pair and
// issuing the given bearer token.
func New(email, password, token string) *Server {
	return &Server{email: email, password: password, token: token}
}

// Requests returns how many HTTP requests the server has handled. Tests use
// it to prove that client-side validation failures never reach the network.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// SeedCharacter inserts a record directly, assigning a server id.
func (s *Server) SeedCharacter(c assets.Character) assets.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	c.ID = uuid.NewString()
	s.characters = append(s.characters, c)
	return c
}

// SeedPet inserts a record directly, assigning a server id.
func (s *Server) SeedPet(p assets.Pet) assets.Pet {
	s.mu.Lock()
	defer s.mu.Unlock()
	p.ID = uuid.NewString()
	s.pets = append(s.pets, p)
	return p
}

// SeedVehicle inserts a record directly, assigning a server id.
func (s *Server) SeedVehicle(v assets.Vehicle) assets.Vehicle {
	s.mu.Lock()
	defer s.mu.Unlock()
	v.ID = uuid.NewString()
	s.vehicles = append(s.vehicles, v)
	return v
}

// Handler returns the HTTP surface of the fake backend.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", s.handleLogin)
	mux.HandleFunc("/api/dashboard/summary", s.authed(s.handleSummary))
	mux.HandleFunc("/api/characters", s.authed(s.charactersCollection))
	mux.HandleFunc("/api/characters/", s.authed(s.charactersItem))
	mux.HandleFunc("/api/pets", s.authed(s.petsCollection))
	mux.HandleFunc("/api/pets/", s.authed(s.petsItem))
	mux.HandleFunc("/api/vehicles", s.authed(s.vehiclesCollection))
	mux.HandleFunc("/api/vehicles/", s.authed(s.vehiclesItem))
	return s.counted(mux)
}

func (s *Server) counted(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (s *Server) authed(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer "+s.token {
			writeMessage(w, http.StatusUnauthorized, "missing or invalid token")
			return
		}
		next(w, r)
	}
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMessage(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "malformed login payload")
		return
	}
	if req.Email != s.email || req.Password != s.password {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{
		"token":   s.token,
		"message": "Login successful",
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	summary := assets.Summary{
		CharacterCount: len(s.characters),
		PetCount:       len(s.pets),
		VehicleCount:   len(s.vehicles),
	}
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, summary)
}

// parseSubmission accepts both encodings the client emits and reports the
// stored image path for an attached file, if any.
func parseSubmission(r *http.Request) (imagePath string, err error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(16 << 20); err != nil {
			return "", err
		}
		file, header, err := r.FormFile("image")
		if err == nil {
			defer file.Close()
			ext := path.Ext(header.Filename)
			if ext == "" {
				ext = ".png"
			}
			return "/uploads/" + uuid.NewString() + ext, nil
		}
		return "", nil
	}
	return "", r.ParseForm()
}

func formInt(r *http.Request, key string) int {
	value, _ := strconv.Atoi(r.FormValue(key))
	return value
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

func writeMutation(w http.ResponseWriter, status int, message string, data any) {
	writeJSON(w, status, map[string]any{"message": message, "data": data})
}

func itemID(r *http.Request, prefix string) string {
	id := strings.TrimPrefix(r.URL.Path, prefix)
	if id == "" || strings.Contains(id, "/") {
		return ""
	}
	return id
}
