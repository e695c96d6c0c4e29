// Package mockapi is a development stand-in for the hosted mock-API service:
// three REST collections (accounts, users, achievements) over in-memory
// storage. It exists so the app and its integration tests can run without
// the hosted backend.
package mockapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/mcavalcanti/billquest/internal/domain"
)

type Server struct {
	store *Store
}

func NewServer() *Server {
	return &Server{store: NewStore()}
}

func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)

	r.Route("/accounts", func(r chi.Router) {
		r.Get("/", s.listAccounts)
		r.Post("/", s.createAccount)
		r.Get("/{id}", s.getAccount)
		r.Put("/{id}", s.replaceAccount)
		r.Patch("/{id}", s.patchAccount)
		r.Delete("/{id}", s.deleteAccount)
	})
	r.Route("/users", func(r chi.Router) {
		r.Get("/", s.listUsers)
		r.Post("/", s.createUser)
	})
	r.Route("/achievements", func(r chi.Router) {
		r.Get("/", s.listProfiles)
		r.Post("/", s.createProfile)
		r.Put("/{id}", s.replaceProfile)
	})

	return r
}

type errorResponse struct {
	Error string `json:"error"`
}

func respondWithJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			zap.L().Error("failed to encode response", zap.Error(err))
		}
	}
}

func respondWithError(w http.ResponseWriter, status int, message string) {
	respondWithJSON(w, status, errorResponse{Error: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, out any) bool {
	if err := json.NewDecoder(r.Body).Decode(out); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}

func (s *Server) listAccounts(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.store.ListAccounts())
}

func (s *Server) createAccount(w http.ResponseWriter, r *http.Request) {
	var acc domain.Account
	if !decodeBody(w, r, &acc) {
		return
	}
	respondWithJSON(w, http.StatusCreated, s.store.CreateAccount(acc))
}

func (s *Server) getAccount(w http.ResponseWriter, r *http.Request) {
	acc, err := s.store.GetAccount(chi.URLParam(r, "id"))
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, acc)
}

func (s *Server) replaceAccount(w http.ResponseWriter, r *http.Request) {
	var acc domain.Account
	if !decodeBody(w, r, &acc) {
		return
	}
	updated, err := s.store.ReplaceAccount(chi.URLParam(r, "id"), acc)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (s *Server) patchAccount(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "failed to read request body")
		return
	}
	updated, err := s.store.PatchAccount(chi.URLParam(r, "id"), body)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		respondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAccount(chi.URLParam(r, "id")); err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, nil)
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.store.ListUsers())
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var user domain.User
	if !decodeBody(w, r, &user) {
		return
	}
	respondWithJSON(w, http.StatusCreated, s.store.CreateUser(user))
}

func (s *Server) listProfiles(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.store.ListProfiles())
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.GameProfile
	if !decodeBody(w, r, &profile) {
		return
	}
	respondWithJSON(w, http.StatusCreated, s.store.CreateProfile(profile))
}

func (s *Server) replaceProfile(w http.ResponseWriter, r *http.Request) {
	var profile domain.GameProfile
	if !decodeBody(w, r, &profile) {
		return
	}
	updated, err := s.store.ReplaceProfile(chi.URLParam(r, "id"), profile)
	if err != nil {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	respondWithJSON(w, http.StatusOK, updated)
}
