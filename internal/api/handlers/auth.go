package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/smartewaste/ewaste-backend/internal/api/httpx"
	"github.com/smartewaste/ewaste-backend/internal/middleware"
	"github.com/smartewaste/ewaste-backend/internal/models"
	"github.com/smartewaste/ewaste-backend/internal/services"
)

type AuthHandler struct {
	Users *services.UserService
}

func NewAuthHandler(users *services.UserService) *AuthHandler {
	return &AuthHandler{Users: users}
}

type userView struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type accountView struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	Phone     string `json:"phone"`
	Address   string `json:"address"`
}

func viewOf(u models.User, p models.Profile) userView {
	return userView{ID: u.ID, Username: u.Username, Email: u.Email, Role: p.Role}
}

func accountOf(u models.User, p models.Profile) accountView {
	return accountView{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Role:      p.Role,
		Phone:     p.Phone,
		Address:   p.Address,
	}
}

func decode(r *http.Request, v any) error {
	return json.NewDecoder(r.Body).Decode(v)
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in services.RegisterInput
	if err := decode(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	u, p, err := h.Users.Register(r.Context(), in)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, map[string]any{
		"message": "Account created",
		"user":    viewOf(u, p),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := decode(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	u, p, token, err := h.Users.Login(r.Context(), in.Email, in.Username, in.Password)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Logged in",
		"token":   token,
		"user":    viewOf(u, p),
	})
}

func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email       string `json:"email"`
		NewPassword string `json:"new_password"`
	}
	if err := decode(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.Users.ForgotPassword(r.Context(), in.Email, in.NewPassword); err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password reset successful"})
}

// Logout is a client-side token discard; the server keeps no session state.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	httpx.WriteJSON(w, http.StatusOK, map[string]string{"message": "Logged out"})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	u, p, err := h.Users.Me(r.Context(), actor.ID)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, accountOf(u, p))
}

func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	h.Me(w, r)
}

func (h *AuthHandler) PatchProfile(w http.ResponseWriter, r *http.Request) {
	actor, _ := middleware.ActorFrom(r.Context())
	var in services.ProfileUpdateInput
	if err := decode(r, &in); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	u, p, err := h.Users.UpdateProfile(r.Context(), actor.ID, in)
	if err != nil {
		httpx.WriteErr(w, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, map[string]any{
		"message": "Profile updated",
		"user":    accountOf(u, p),
	})
}
