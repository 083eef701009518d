// File: internal/infra/http/admin.go
package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
)

// The admin API mirrors what the bot commands can do, for operators who
// prefer curl over chat: inspect tracked sessions and manage whitelists.

type loginRequest struct {
	Token string `json:"token"`
}

type loginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid body")
		return
	}
	jwt, err := s.auth.Login(req.Token)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid token")
		return
	}
	writeJSON(w, http.StatusOK, loginResponse{
		Token:     jwt,
		ExpiresIn: int64(s.cfg.Admin.SessionTTL.Seconds()),
	})
}

func (s *Server) resolveBotKey(w http.ResponseWriter, r *http.Request) (string, bool) {
	botKey := chi.URLParam(r, "botKey")
	if _, err := s.tenants.Resolve(botKey); err != nil {
		writeError(w, http.StatusNotFound, "unknown bot key")
		return "", false
	}
	return botKey, true
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	botKey, ok := s.resolveBotKey(w, r)
	if !ok {
		return
	}
	list, err := s.sessions.ListByTenant(r.Context(), botKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"sessions": list})
}

func (s *Server) handleListWhitelist(w http.ResponseWriter, r *http.Request) {
	botKey, ok := s.resolveBotKey(w, r)
	if !ok {
		return
	}
	ids, err := s.access.List(r.Context(), botKey)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "listing failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"chat_ids": ids})
}

func (s *Server) handleAddWhitelist(w http.ResponseWriter, r *http.Request) {
	botKey, ok := s.resolveBotKey(w, r)
	if !ok {
		return
	}
	var req struct {
		ChatID int64 `json:"chat_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ChatID == 0 {
		writeError(w, http.StatusBadRequest, "chat_id is required")
		return
	}
	if err := s.access.Grant(r.Context(), botKey, req.ChatID); err != nil {
		writeError(w, http.StatusInternalServerError, "saving failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) handleRemoveWhitelist(w http.ResponseWriter, r *http.Request) {
	botKey, ok := s.resolveBotKey(w, r)
	if !ok {
		return
	}
	chatID, err := strconv.ParseInt(chi.URLParam(r, "chatID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "chat_id must be an integer")
		return
	}
	removed, err := s.access.Revoke(r.Context(), botKey, chatID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "saving failed")
		return
	}
	if !removed {
		writeError(w, http.StatusNotFound, "chat_id not in whitelist")
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
