// Package server exposes a gamemaster.Manager over HTTP and streams every
// ply to websocket spectators.
package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"ringrush/communication"
	"ringrush/game"
	"ringrush/gamemaster"
)

type Server struct {
	manager *gamemaster.Manager
	hub     *Hub
	router  *mux.Router
}

// NewServer routes the API to manager and subscribes hub to its updates.
// The caller runs the hub.
func NewServer(manager *gamemaster.Manager, hub *Hub) *Server {
	s := &Server{
		manager: manager,
		hub:     hub,
		router:  mux.NewRouter(),
	}
	manager.Subscribe(hub.Publish)
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	api.HandleFunc("/games", s.handleCreateGame).Methods("POST")
	api.HandleFunc("/games", s.handleListGames).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleGetGame).Methods("GET")
	api.HandleFunc("/games/{id}", s.handleDeleteGame).Methods("DELETE")
	api.HandleFunc("/games/{id}/actions", s.handlePlay).Methods("POST")
	api.HandleFunc("/games/{id}/legal", s.handleLegal).Methods("GET")
	api.HandleFunc("/games/{id}/observation", s.handleObservation).Methods("GET")
	api.HandleFunc("/games/{id}/render", s.handleRender).Methods("GET")

	s.router.HandleFunc("/ws/{id}", s.handleWebSocket)
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("failed to write response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, communication.ErrorResponse{Error: message})
}

func (s *Server) session(w http.ResponseWriter, r *http.Request) (gamemaster.Session, bool) {
	session, err := s.manager.Get(mux.Vars(r)["id"])
	if err != nil {
		respondError(w, communication.StatusOf(err), err.Error())
		return gamemaster.Session{}, false
	}
	return session, true
}

func (s *Server) handleCreateGame(w http.ResponseWriter, r *http.Request) {
	var req communication.CreateGameRequest
	// An empty body means seed 0
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	respondJSON(w, http.StatusCreated, s.manager.Create(req.Seed))
}

func (s *Server) handleListGames(w http.ResponseWriter, r *http.Request) {
	games := s.manager.List()
	respondJSON(w, http.StatusOK, communication.ListGamesResponse{Count: len(games), Games: games})
}

func (s *Server) handleGetGame(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.session(w, r); ok {
		respondJSON(w, http.StatusOK, session)
	}
}

func (s *Server) handleDeleteGame(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := s.manager.Delete(id); err != nil {
		respondError(w, communication.StatusOf(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"deleted": id})
}

func (s *Server) handlePlay(w http.ResponseWriter, r *http.Request) {
	var req communication.PlayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	update, err := s.manager.Play(mux.Vars(r)["id"], req.Action)
	if err != nil {
		respondError(w, communication.StatusOf(err), err.Error())
		return
	}
	respondJSON(w, http.StatusOK, update)
}

func (s *Server) handleLegal(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.session(w, r); ok {
		respondJSON(w, http.StatusOK, communication.NewLegalResponse(session.State))
	}
}

func (s *Server) handleObservation(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.session(w, r); ok {
		respondJSON(w, http.StatusOK, game.Observe(session.State))
	}
}

func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	if session, ok := s.session(w, r); ok {
		respondJSON(w, http.StatusOK, communication.RenderResponse{Board: game.Render(session.State, false)})
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.session(w, r); ok {
		s.hub.ServeWS(w, r, mux.Vars(r)["id"])
	}
}
