package api

import (
	"log/slog"
	"net/http"

	"github.com/njordlabs/njord/internal/auth"
	"github.com/njordlabs/njord/internal/domain"
	"github.com/njordlabs/njord/internal/middleware"
)

// AuthHandler serves signup, verification, and login.
type AuthHandler struct {
	users  domain.UserService
	tokens *auth.TokenManager
	logger *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(users domain.UserService, tokens *auth.TokenManager, logger *slog.Logger) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{users: users, tokens: tokens, logger: logger}
}

type userResponse struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	FirstName     string `json:"first_name,omitempty"`
	LastName      string `json:"last_name,omitempty"`
	Mobile        string `json:"mobile,omitempty"`
	AccountType   string `json:"account_type"`
	EmailVerified bool   `json:"email_verified"`
}

func newUserResponse(u *domain.User) userResponse {
	return userResponse{
		ID:            uuidString(u.ID),
		Email:         u.Email,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		Mobile:        u.Mobile,
		AccountType:   u.AccountType,
		EmailVerified: u.EmailVerified,
	}
}

type signupRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Mobile    string `json:"mobile"`
}

// Signup handles POST /api/auth/signup.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.Register(r.Context(), domain.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Mobile:    req.Mobile,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	middleware.GetLogger(r.Context()).Info("user registered", "email", user.Email)
	respondJSON(w, http.StatusCreated, map[string]any{
		"user":    newUserResponse(user),
		"message": "Verification code sent",
	})
}

type verifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// VerifyOTP handles POST /api/auth/verify-otp.
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	if err := h.users.VerifyOTP(r.Context(), req.Email, req.Code); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Email verified"})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. On success it issues a bearer token;
// the client should then call /api/cart/merge with its guest session id.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, r, err)
		return
	}

	user, err := h.users.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, err)
		return
	}

	token, err := h.tokens.Generate(uuidString(user.ID), user.Email)
	if err != nil {
		respondError(w, r, domain.Internal(err, "auth.login", "Failed to issue token"))
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  newUserResponse(user),
	})
}

// Users handles GET /api/auth/users. The route layer gates it to admins.
func (h *AuthHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.users.ListUsers(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}

	out := make([]userResponse, len(users))
	for i := range users {
		out[i] = newUserResponse(&users[i])
	}
	respondJSON(w, http.StatusOK, map[string]any{"users": out})
}

// Me handles GET /api/auth/me. It requires a valid bearer token and returns
// the account it belongs to, which also serves as token validation.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	id, err := callerIdentity(r)
	if err != nil || !id.IsUser() {
		respondError(w, r, domain.Unauthorized("auth.me", "Authentication required"))
		return
	}

	user, err := h.users.GetUserByID(r.Context(), id.UserID())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, newUserResponse(user))
}
