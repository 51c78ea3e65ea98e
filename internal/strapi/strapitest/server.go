// Package strapitest provides an in-process fake of the league's CMS backend
// for tests: local-provider auth with bcrypt-checked passwords, the profile
// endpoint with populate handling, match and ranking reads, request counting,
// and programmable failure modes.
package strapitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"golang.org/x/crypto/bcrypt"

	"github.com/Fras28/NextLvlPadel-sub000/internal/model"
)

type account struct {
	id           model.UserID
	username     string
	email        string
	passwordHash []byte
}

// Server is a fake CMS backend served over httptest
type Server struct {
	httpServer *httptest.Server

	mu        sync.Mutex
	accounts  map[model.UserID]*account
	profiles  map[model.UserID]*model.UserProfile
	tokens    map[string]model.UserID
	matches   map[model.MatchID]*model.Match
	rankings  []model.RankingEntry
	nextID    int
	nextToken int

	requests int
	meCalls  int

	meFailStatus  int
	meFailMessage string
	meMalformed   bool
	meGate        chan struct{}
}

// New starts a fake backend server
func New() *Server {
	s := &Server{
		accounts: make(map[model.UserID]*account),
		profiles: make(map[model.UserID]*model.UserProfile),
		tokens:   make(map[string]model.UserID),
		matches:  make(map[model.MatchID]*model.Match),
		nextID:   1,
	}

	r := mux.NewRouter()
	r.Use(s.countRequests)
	r.HandleFunc("/api/auth/local", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/local/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/users/me", s.handleMe).Methods(http.MethodGet)
	r.HandleFunc("/api/matches", s.handleMatches).Methods(http.MethodGet)
	r.HandleFunc("/api/matches/{id}", s.handleMatch).Methods(http.MethodGet)
	r.HandleFunc("/api/matches/{id}", s.handleSubmitResult).Methods(http.MethodPut)
	r.HandleFunc("/api/rankings", s.handleRankings).Methods(http.MethodGet)

	s.httpServer = httptest.NewServer(r)
	return s
}

// URL returns the server's base URL
func (s *Server) URL() string {
	return s.httpServer.URL
}

// Close shuts the server down
func (s *Server) Close() {
	s.httpServer.Close()
}

// AddUser registers an account whose full profile is the given one. The
// returned id is assigned by the server.
func (s *Server) AddUser(full *model.UserProfile, password string) model.UserID {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		panic(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id := model.UserID(s.nextID)
	s.nextID++

	copied := *full
	copied.ID = id

	s.accounts[id] = &account{
		id:           id,
		username:     copied.Username,
		email:        copied.Email,
		passwordHash: hash,
	}
	s.profiles[id] = &copied
	return id
}

// IssueToken mints a credential for an existing user without going through
// the login endpoint
func (s *Server) IssueToken(id model.UserID) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.issueTokenLocked(id)
}

// RevokeToken invalidates a previously issued credential; subsequent
// authenticated calls with it receive a 401
func (s *Server) RevokeToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, token)
}

// AddMatch seeds a match
func (s *Server) AddMatch(match *model.Match) {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *match
	s.matches[copied.ID] = &copied
}

// SetRankings seeds the league standings
func (s *Server) SetRankings(entries []model.RankingEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rankings = append([]model.RankingEntry(nil), entries...)
}

// Requests returns the total number of HTTP requests received
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

// MeCalls returns the number of profile-endpoint requests received
func (s *Server) MeCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.meCalls
}

// FailMeOnce makes the next profile request fail with the given status and
// error envelope
func (s *Server) FailMeOnce(status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meFailStatus = status
	s.meFailMessage = message
}

// MalformMeOnce makes the next profile request return unparseable JSON with
// a 200 status
func (s *Server) MalformMeOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meMalformed = true
}

// GateMe blocks profile requests until the given channel is closed, letting
// tests interleave a sign-out with an in-flight refresh
func (s *Server) GateMe(gate chan struct{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.meGate = gate
}

func (s *Server) issueTokenLocked(id model.UserID) string {
	s.nextToken++
	token := fmt.Sprintf("tok-%d", s.nextToken)
	s.tokens[token] = id
	return token
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

type credentials struct {
	Identifier string `json:"identifier"`
	Password   string `json:"password"`
	Username   string `json:"username"`
	Email      string `json:"email"`
}

type authResponse struct {
	JWT  string             `json:"jwt"`
	User *model.UserProfile `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acct := range s.accounts {
		if acct.username != creds.Identifier && acct.email != creds.Identifier {
			continue
		}
		if bcrypt.CompareHashAndPassword(acct.passwordHash, []byte(creds.Password)) != nil {
			break
		}
		writeJSON(w, http.StatusOK, authResponse{
			JWT:  s.issueTokenLocked(acct.id),
			User: s.profiles[acct.id].Basic(),
		})
		return
	}

	writeError(w, http.StatusBadRequest, "Invalid identifier or password")
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if creds.Username == "" || creds.Email == "" || creds.Password == "" {
		writeError(w, http.StatusBadRequest, "username, email and password are required")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.MinCost)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "hashing failed")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, acct := range s.accounts {
		if acct.username == creds.Username || acct.email == creds.Email {
			writeError(w, http.StatusBadRequest, "Email or Username are already taken")
			return
		}
	}

	id := model.UserID(s.nextID)
	s.nextID++

	s.accounts[id] = &account{
		id:           id,
		username:     creds.Username,
		email:        creds.Email,
		passwordHash: hash,
	}
	s.profiles[id] = &model.UserProfile{
		ID:       id,
		Username: creds.Username,
		Email:    creds.Email,
	}

	writeJSON(w, http.StatusOK, authResponse{
		JWT:  s.issueTokenLocked(id),
		User: s.profiles[id].Basic(),
	})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.meCalls++
	gate := s.meGate
	failStatus, failMessage := s.meFailStatus, s.meFailMessage
	malformed := s.meMalformed
	s.meFailStatus, s.meFailMessage = 0, ""
	s.meMalformed = false
	s.mu.Unlock()

	if gate != nil {
		<-gate
	}

	if failStatus != 0 {
		writeError(w, failStatus, failMessage)
		return
	}
	if malformed {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("{not json"))
		return
	}

	id, ok := s.authenticate(r)
	if !ok {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.mu.Lock()
	profile := s.profiles[id]
	s.mu.Unlock()

	// Without populate only the identity fields come back
	if r.URL.Query().Get("populate") == "" {
		writeJSON(w, http.StatusOK, profile.Basic())
		return
	}
	writeJSON(w, http.StatusOK, profile)
}

func (s *Server) handleMatches(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.mu.Lock()
	matches := make([]*model.Match, 0, len(s.matches))
	for _, m := range s.matches {
		matches = append(matches, m)
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleMatch(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	match, ok := s.lookupMatch(r)
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleSubmitResult(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	var body struct {
		Result model.MatchResult `json:"result"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	idStr := mux.Vars(r)["id"]
	id, err := strconv.Atoi(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid match id")
		return
	}
	match, ok := s.matches[model.MatchID(id)]
	if !ok {
		writeError(w, http.StatusNotFound, "Not Found")
		return
	}

	match.Result = &body.Result
	match.Status = model.MatchStatusPlayed
	writeJSON(w, http.StatusOK, match)
}

func (s *Server) handleRankings(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.authenticate(r); !ok {
		writeError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	s.mu.Lock()
	entries := append([]model.RankingEntry(nil), s.rankings...)
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) lookupMatch(r *http.Request) (*model.Match, bool) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	match, ok := s.matches[model.MatchID(id)]
	return match, ok
}

func (s *Server) authenticate(r *http.Request) (model.UserID, bool) {
	const prefix = "Bearer "
	header := r.Header.Get("Authorization")
	if len(header) <= len(prefix) || header[:len(prefix)] != prefix {
		return 0, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.tokens[header[len(prefix):]]
	return id, ok
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{
		"error": map[string]string{"message": message},
	})
}
