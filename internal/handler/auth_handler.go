package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"

	"salon-booking-api/internal/auth"
	"salon-booking-api/internal/middleware"
	"salon-booking-api/internal/model"
)

const refreshTokenTTL = 7 * 24 * time.Hour

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *Handler) setSessionCookies(w http.ResponseWriter, accessTok, rawRefresh string) {
	http.SetCookie(w, &http.Cookie{
		Name: "access_token", Value: accessTok,
		HttpOnly: true, Path: "/", SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name: "refresh_token", Value: rawRefresh,
		HttpOnly: true, Path: "/auth/", SameSite: http.SameSiteLaxMode,
	})
}

// Register handles POST /auth/register. New accounts always get the USER
// role; promotion happens out of band (cmd/make-admin).
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" || req.Name == "" {
		writeMessage(w, http.StatusBadRequest, "email, password and name are required")
		return
	}
	if len(req.Password) < 8 {
		writeMessage(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        req.Email,
		PasswordHash: hash,
		Name:         req.Name,
		Role:         model.RoleUser,
	}
	if err := h.store.CreateUser(r.Context(), u); err != nil {
		// unique violation = dup email, but don't reveal that
		writeMessage(w, http.StatusBadRequest, "registration failed")
		return
	}

	h.issueSession(w, r, u, http.StatusCreated)
}

// Login handles POST /auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeMessage(w, http.StatusBadRequest, "email and password are required")
		return
	}

	u, err := h.store.UserByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(u.PasswordHash, req.Password) {
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	h.issueSession(w, r, u, http.StatusOK)
}

func (h *Handler) issueSession(w http.ResponseWriter, r *http.Request, u *model.User, status int) {
	accessTok, err := auth.MakeToken(u, h.secret)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	rawRefresh, tokenHash, err := auth.GenerateRefreshToken()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	if _, err := h.store.CreateRefreshToken(r.Context(), u.ID, tokenHash, time.Now().Add(refreshTokenTTL)); err != nil {
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.setSessionCookies(w, accessTok, rawRefresh)
	writeJSON(w, status, map[string]any{
		"userId": u.ID,
		"name":   u.Name,
		"role":   u.Role,
		"token":  accessTok,
	})
}

// Refresh handles POST /auth/refresh: rotate the refresh token and mint a new
// access token.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie("refresh_token")
	if err != nil || c.Value == "" {
		writeMessage(w, http.StatusUnauthorized, "missing refresh token")
		return
	}

	rt, err := h.store.GetRefreshTokenByHash(r.Context(), auth.HashRefreshToken(c.Value))
	if err != nil || rt.Revoked || time.Now().After(rt.ExpiresAt) {
		writeMessage(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	u, err := h.store.UserByID(r.Context(), rt.UserID)
	if err != nil {
		writeMessage(w, http.StatusUnauthorized, "invalid refresh token")
		return
	}

	rawRefresh, newHash, err := auth.GenerateRefreshToken()
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}
	newID := uuid.New().String()
	if err := h.store.RotateRefreshToken(r.Context(), rt.ID, newID, u.ID, newHash, time.Now().Add(refreshTokenTTL)); err != nil {
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	accessTok, err := auth.MakeToken(u, h.secret)
	if err != nil {
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	h.setSessionCookies(w, accessTok, rawRefresh)
	writeJSON(w, http.StatusOK, map[string]any{"token": accessTok})
}

// Logout handles POST /auth/logout: revoke every live refresh token for the
// principal and drop the cookies.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	p, ok := middleware.PrincipalFromContext(r.Context())
	if !ok {
		writeMessage(w, http.StatusUnauthorized, "authentication required")
		return
	}

	if err := h.store.RevokeAllRefreshTokens(r.Context(), p.ID); err != nil {
		writeMessage(w, http.StatusInternalServerError, "something went wrong")
		return
	}

	http.SetCookie(w, &http.Cookie{Name: "access_token", Value: "", Path: "/", MaxAge: -1})
	http.SetCookie(w, &http.Cookie{Name: "refresh_token", Value: "", Path: "/auth/", MaxAge: -1})
	writeMessage(w, http.StatusOK, "logged out")
}
