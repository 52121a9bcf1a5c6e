package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/mkravets/storefront-service/internal/application/ports"
	"github.com/mkravets/storefront-service/internal/application/use_cases"
	"github.com/mkravets/storefront-service/internal/domain/session"
	"github.com/mkravets/storefront-service/internal/infrastructure/http/response"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

type AuthHandler struct {
	auth     ports.AuthGateway
	resolver *use_cases.SessionResolver
	log      *logger.Logger
}

func NewAuthHandler(auth ports.AuthGateway, resolver *use_cases.SessionResolver, log *logger.Logger) *AuthHandler {
	return &AuthHandler{
		auth:     auth,
		resolver: resolver,
		log:      log,
	}
}

type signUpRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

func (h *AuthHandler) HandleSignUp() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req signUpRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteValidationError(w, "Invalid request body", nil)
			return
		}

		errors := make(map[string]string)
		if req.Email == "" {
			errors["email"] = "email is required"
		}
		if req.Password == "" {
			errors["password"] = "password is required"
		}
		if len(errors) > 0 {
			response.WriteValidationError(w, "Validation failed", errors)
			return
		}

		err := h.auth.SignUp(r.Context(), ports.SignUpData{
			Email:    req.Email,
			Password: req.Password,
			Name:     req.Name,
		})
		if err != nil {
			h.log.Error("Sign up failed", "error", err.Error())
			response.WriteDomainError(w, err)
			return
		}

		w.WriteHeader(http.StatusCreated)
	}
}

type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) HandleSignIn() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		var req signInRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			response.WriteValidationError(w, "Invalid request body", nil)
			return
		}

		cred, err := h.auth.SignIn(r.Context(), req.Email, req.Password)
		if err != nil {
			h.log.Warn("Sign in failed", "error", err.Error())
			response.WriteDomainError(w, err)
			return
		}

		setCredentialCookies(w, cred)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *AuthHandler) HandleLogout() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}

		cred := credentialFromRequest(r)
		if cred.Present() {
			if err := h.auth.Logout(r.Context(), cred); err != nil {
				// Cookies are cleared regardless; the remote session just
				// outlives them until it expires.
				h.log.Warn("Remote logout failed", "error", err.Error())
			}
		}

		clearCredentialCookies(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

func (h *AuthHandler) HandleGetForm() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		marker := r.URL.Query().Get("marker")
		if marker == "" {
			response.WriteValidationError(w, "Validation failed", map[string]string{"marker": "marker is required"})
			return
		}

		attributes, err := h.auth.GetFormAttributes(r.Context(), marker)
		if err != nil {
			response.WriteDomainError(w, err)
			return
		}

		response.WriteSuccess(w, attributes)
	}
}

type sessionResponse struct {
	State string        `json:"state"`
	User  *session.User `json:"user,omitempty"`
}

// HandleSession exposes the three-way session outcome. The expired state is
// distinguished from anonymous so the storefront can prompt re-login.
func (h *AuthHandler) HandleSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resolution := h.resolver.Resolve(r.Context(), credentialFromRequest(r))

		response.WriteSuccess(w, sessionResponse{
			State: resolution.State.String(),
			User:  resolution.User,
		})
	}
}
