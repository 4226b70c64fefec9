package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gomoku-live/server/internal/auth"
	"github.com/gomoku-live/server/internal/database"
	"github.com/gomoku-live/server/internal/models"
)

type registerRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Nickname string `json:"nickname"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type statusResponse struct {
	Status string `json:"status"`
	Msg    string `json:"msg,omitempty"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// CreateUserHandler registers a new account and logs it in by setting the
// session cookie.
func CreateUserHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Msg: "invalid payload"})
		return
	}
	if req.Username == "" || req.Password == "" || req.Nickname == "" {
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Msg: "username, password and nickname are required"})
		return
	}

	user := models.User{Username: req.Username, Password: req.Password, Nickname: req.Nickname}
	if err := database.CreateUser(r.Context(), &user); err != nil {
		if errors.Is(err, database.ErrUsernameTaken) {
			writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Msg: "ID already exists"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Msg: "failed to create user"})
		return
	}

	token, err := auth.CreateJWT(user.ID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, statusResponse{Status: "error", Msg: "failed to create session"})
		return
	}
	auth.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

// LoginHandler verifies credentials and sets the session cookie.
func LoginHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, statusResponse{Status: "error", Msg: "invalid payload"})
		return
	}

	token, _, err := database.AuthenticateUser(r.Context(), req.Username, req.Password)
	if err != nil {
		writeJSON(w, http.StatusUnauthorized, statusResponse{Status: "error", Msg: "Invalid credentials"})
		return
	}
	auth.SetSessionCookie(w, token)
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

// LogoutHandler clears the session cookie.
func LogoutHandler(w http.ResponseWriter, r *http.Request) {
	auth.ClearSessionCookie(w)
	writeJSON(w, http.StatusOK, statusResponse{Status: "success"})
}

// HistoryHandler returns the 30 most recent completed games for the
// authenticated user.
func HistoryHandler(w http.ResponseWriter, r *http.Request) {
	if _, err := auth.UserIDFromRequest(r); err != nil {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	entries, err := database.ListRecentResults(r.Context(), 30)
	if err != nil {
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}
	writeJSON(w, http.StatusOK, map[string][]models.HistoryEntry{"history": entries})
}
