package handlers

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/abhisekadhikari/burningsawals/internal/auth"
	"github.com/abhisekadhikari/burningsawals/internal/models"
	"github.com/abhisekadhikari/burningsawals/internal/services"
	pkghttp "github.com/abhisekadhikari/burningsawals/pkg/http"
)

// AuthServiceInterface defines the interface for auth business logic
type AuthServiceInterface interface {
	SendOTP(ctx context.Context, phoneNumber, clientIP string) (*services.IssueResult, error)
	VerifyOTP(ctx context.Context, phoneNumber, code, userName, clientIP string) (*services.AuthResponse, error)
	LoginWithGoogle(ctx context.Context, profile *auth.GoogleUser) (*services.AuthResponse, error)
	Me(ctx context.Context, userID string) (*models.User, error)
}

// GoogleExchanger drives the OAuth code flow against Google
type GoogleExchanger interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (*auth.GoogleUser, error)
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	service  AuthServiceInterface
	google   GoogleExchanger
	ipConfig *pkghttp.IPConfig
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service AuthServiceInterface, google GoogleExchanger, ipConfig *pkghttp.IPConfig) *AuthHandler {
	return &AuthHandler{
		service:  service,
		google:   google,
		ipConfig: ipConfig,
	}
}

// Request DTOs

// SendOTPRequest represents the request body for OTP issuance
type SendOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=14"`
}

// VerifyOTPRequest represents the request body for OTP verification
type VerifyOTPRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=14"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
	UserName    string `json:"user_name,omitempty" validate:"omitempty,min=1,max=64"`
}

// LoginRequest represents the request body for OTP login
type LoginRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required,min=10,max=14"`
	OTP         string `json:"otp" validate:"required,len=6,numeric"`
}

// SendOTPResponse carries the opaque record identifier back to the client
type SendOTPResponse struct {
	OTPID string `json:"otp_id"`
}

// SendOTP handles POST /auth/phone/send-otp
func (h *AuthHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req SendOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	clientIP := pkghttp.ExtractClientIP(r, h.ipConfig)

	result, err := h.service.SendOTP(r.Context(), req.PhoneNumber, clientIP)
	if err != nil {
		h.writeOTPError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, SendOTPResponse{OTPID: result.OTPID})
}

// VerifyOTP handles POST /auth/phone/verify-otp
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	clientIP := pkghttp.ExtractClientIP(r, h.ipConfig)

	resp, err := h.service.VerifyOTP(r.Context(), req.PhoneNumber, req.OTP, req.UserName, clientIP)
	if err != nil {
		h.writeOTPError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// Login handles POST /auth/phone/login; identical to verification except no
// user name can be supplied.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkghttp.WriteBadRequest(w, "Invalid request body")
		return
	}

	if err := ValidateRequest(req); err != nil {
		pkghttp.WriteBadRequest(w, err.Error())
		return
	}

	clientIP := pkghttp.ExtractClientIP(r, h.ipConfig)

	resp, err := h.service.VerifyOTP(r.Context(), req.PhoneNumber, req.OTP, "", clientIP)
	if err != nil {
		h.writeOTPError(w, err)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

const googleStateCookie = "oauth_state"

// GoogleBegin handles GET /auth/google
func (h *AuthHandler) GoogleBegin(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		pkghttp.WriteNotFound(w, "Google sign-in is not configured")
		return
	}

	stateBytes := make([]byte, 16)
	if _, err := rand.Read(stateBytes); err != nil {
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}
	state := base64.RawURLEncoding.EncodeToString(stateBytes)

	http.SetCookie(w, &http.Cookie{
		Name:     googleStateCookie,
		Value:    state,
		Path:     "/auth/google",
		MaxAge:   300,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.google.AuthCodeURL(state), http.StatusFound)
}

// GoogleCallback handles GET /auth/google/callback
func (h *AuthHandler) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	if h.google == nil {
		pkghttp.WriteNotFound(w, "Google sign-in is not configured")
		return
	}

	cookie, err := r.Cookie(googleStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		http.Redirect(w, r, "/?auth_error=state_mismatch", http.StatusFound)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		http.Redirect(w, r, "/?auth_error=consent_denied", http.StatusFound)
		return
	}

	profile, err := h.google.Exchange(r.Context(), code)
	if err != nil {
		http.Redirect(w, r, "/?auth_error=exchange_failed", http.StatusFound)
		return
	}

	resp, err := h.service.LoginWithGoogle(r.Context(), profile)
	if err != nil {
		http.Redirect(w, r, "/?auth_error=login_failed", http.StatusFound)
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, resp)
}

// Me handles GET /auth/me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := auth.GetUserFromContext(r)
	if claims == nil {
		pkghttp.WriteUnauthorized(w, "unauthorized")
		return
	}

	user, err := h.service.Me(r.Context(), claims.Subject)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			pkghttp.WriteUnauthorized(w, "unauthorized")
			return
		}
		pkghttp.WriteInternalError(w, "Internal server error")
		return
	}

	pkghttp.WriteJSON(w, http.StatusOK, user)
}

// writeOTPError maps OTP core errors to fixed status codes and messages.
// Verification failures deliberately stay coarse so callers cannot probe
// which check rejected them.
func (h *AuthHandler) writeOTPError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidPhoneFormat):
		pkghttp.WriteBadRequest(w, "Invalid phone number format")
	case errors.Is(err, models.ErrInvalidOTPFormat):
		pkghttp.WriteBadRequest(w, "OTP must be a 6-digit code")
	case errors.Is(err, models.ErrInvalidOrExpiredOTP), errors.Is(err, models.ErrInvalidOTP):
		pkghttp.WriteBadRequest(w, "Invalid or expired OTP")
	case errors.Is(err, models.ErrAttemptsExceeded):
		pkghttp.WriteBadRequest(w, "Maximum verification attempts exceeded, request a new OTP")
	case errors.Is(err, models.ErrDispatchFailed):
		pkghttp.WriteBadRequest(w, "Could not deliver OTP, please try again")
	case errors.Is(err, models.ErrRateLimitExceeded):
		pkghttp.WriteTooManyRequests(w, "Too many OTP requests. Please try again later.")
	default:
		pkghttp.WriteInternalError(w, "Internal server error")
	}
}
