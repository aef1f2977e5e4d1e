package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/google/uuid"

	"mesai/config"
	"mesai/identity"
	"mesai/middleware"
	"mesai/models"
	"mesai/state"
)

type AuthHandler struct {
	config    *config.Config
	calendar  *config.Calendar
	provider  identity.Provider
	container *state.Container
}

func NewAuthHandler(cfg *config.Config, cal *config.Calendar, provider identity.Provider, container *state.Container) *AuthHandler {
	return &AuthHandler{
		config:    cfg,
		calendar:  cal,
		provider:  provider,
		container: container,
	}
}

// Login authenticates against the identity provider and opens a session.
// An identity the user collection has never seen is auto-provisioned as an
// employee in the fallback department; the admin assigns role, department
// and team lead afterwards.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ident, err := h.provider.Authenticate(req.Username, req.Password)
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondError(w, http.StatusInternalServerError, "identity provider failure")
		return
	}

	doc := h.container.Snapshot()
	var user *models.User
	for i := range doc.Users {
		if doc.Users[i].Username == ident.Username {
			user = &doc.Users[i]
			break
		}
	}

	if user == nil {
		provisioned := models.User{
			ID:         uuid.NewString(),
			Username:   ident.Username,
			Name:       ident.Name,
			Role:       models.RoleEmployee,
			Department: h.calendar.FallbackDepartment,
		}
		doc.Users = append(doc.Users, provisioned)
		if err := h.container.Replace(r.Context(), doc); err != nil {
			log.Printf("auto-provision persist failed for %s: %v", ident.Username, err)
		}
		user = &doc.Users[len(doc.Users)-1]
	}

	token, err := middleware.GenerateToken(user, h.config.JWTExpiration)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    token,
		Path:     "/",
		MaxAge:   int(h.config.JWTExpiration.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if user := middleware.GetUserFromContext(r.Context()); user != nil {
		h.provider.SignOut(user.Username)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	respondJSON(w, http.StatusOK, map[string]string{"status": "signed_out"})
}

// Session returns the signed-in user together with the configuration the
// entry form needs: valid pay periods and the default time window.
func (h *AuthHandler) Session(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"user":          user,
		"periods":       h.calendar.Periods,
		"default_start": h.calendar.DefaultStart,
		"default_end":   h.calendar.DefaultEnd,
	})
}
