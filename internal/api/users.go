package api

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"batchboard/b/domain"
)

type userRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (req *userRequest) validate(passwordRequired bool) string {
	if strings.TrimSpace(req.Username) == "" {
		return "username is required"
	}
	if passwordRequired && req.Password == "" {
		return "password is required"
	}
	if req.Role != domain.RoleAdmin && req.Role != domain.RoleUser {
		return "role must be admin or user"
	}
	return ""
}

func (h *Handler) listUsers(w http.ResponseWriter, r *http.Request) {
	var users []domain.User
	if err := h.db.Select(&users, `SELECT id, username, role, created_at FROM users ORDER BY id`); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to list users")
		return
	}
	respondJSON(w, http.StatusOK, users)
}

func (h *Handler) createUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(true); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "unable to secure password")
		return
	}

	var id int64
	query := h.db.Rebind(`INSERT INTO users (username, password, role) VALUES (?, ?, ?) RETURNING id`)
	if err := h.db.QueryRowx(query, req.Username, string(hashed), req.Role).Scan(&id); err != nil {
		if strings.Contains(err.Error(), "UNIQUE") || strings.Contains(err.Error(), "duplicate key") {
			respondError(w, http.StatusConflict, "username already exists")
			return
		}
		respondError(w, http.StatusInternalServerError, "unable to create user")
		return
	}
	respondJSON(w, http.StatusCreated, domain.User{ID: id, Username: req.Username, Role: req.Role})
}

func (h *Handler) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	var req userRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if msg := req.validate(false); msg != "" {
		respondError(w, http.StatusBadRequest, msg)
		return
	}

	if req.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "unable to secure password")
			return
		}
		query := h.db.Rebind(`UPDATE users SET username = ?, password = ?, role = ? WHERE id = ?`)
		if _, err := h.db.Exec(query, req.Username, string(hashed), req.Role, id); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to update user")
			return
		}
	} else {
		query := h.db.Rebind(`UPDATE users SET username = ?, role = ? WHERE id = ?`)
		if _, err := h.db.Exec(query, req.Username, req.Role, id); err != nil {
			respondError(w, http.StatusInternalServerError, "unable to update user")
			return
		}
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

func (h *Handler) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := idParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid user id")
		return
	}
	if uid, ok := r.Context().Value(ctxUserID).(int64); ok && uid == id {
		respondError(w, http.StatusBadRequest, "cannot delete your own account")
		return
	}
	query := h.db.Rebind(`DELETE FROM users WHERE id = ?`)
	if _, err := h.db.Exec(query, id); err != nil {
		respondError(w, http.StatusInternalServerError, "unable to delete user")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
