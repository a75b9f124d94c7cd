package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/application/service"
	"github.com/sangkips/till-api/internal/navigation"
	"github.com/sangkips/till-api/internal/presentation/http/dto/request"
	"github.com/sangkips/till-api/internal/presentation/http/dto/response"
	"github.com/sangkips/till-api/internal/presentation/http/middleware"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
	terminals   *service.TerminalService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, terminals *service.TerminalService) *AuthHandler {
	return &AuthHandler{authService: authService, terminals: terminals}
}

// Login handles user login. When the request names a terminal the user is
// also signed in there and the terminal state is returned.
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.LoginRequest true "Login credentials"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", h.signedIn(c, output))
}

// GoogleAuth returns the Google consent URL
// @Summary Google sign-in URL
// @Tags auth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /auth/google [get]
func (h *AuthHandler) GoogleAuth(c *gin.Context) {
	state := uuid.New().String()
	url, err := h.authService.GoogleAuthURL(state)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Google sign-in URL generated", gin.H{"url": url, "state": state})
}

// GoogleCallback exchanges the code Google redirected with for tokens
// @Summary Google sign-in callback
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	code := c.Query("code")
	if code == "" {
		response.BadRequest(c, "Missing authorization code")
		return
	}

	output, err := h.authService.LoginWithGoogle(c.Request.Context(), code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", h.signedIn(c, output))
}

// RefreshToken handles token refresh
// @Summary Refresh Token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body request.RefreshTokenRequest true "Refresh token"
// @Success 200 {object} response.APIResponse
// @Failure 401 {object} response.APIResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req request.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Token refreshed successfully", gin.H{
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	})
}

// Logout signs the user out of the terminal named in the request. Tokens
// are stateless; the client discards them.
// @Summary Logout
// @Tags auth
// @Security BearerAuth
// @Success 200 {object} response.APIResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	terminalID := c.GetHeader(middleware.TerminalIDHeader)
	if terminalID == "" {
		response.OK(c, "Logged out successfully", nil)
		return
	}

	out, err := h.terminals.Fire(c.Request.Context(), &service.FireInput{
		TerminalID: terminalID,
		UserID:     *userID,
		Intent:     navigation.IntentLogout,
	})
	if errors.Is(err, service.ErrTerminalNotSignedIn) {
		response.OK(c, "Logged out successfully", gin.H{"state": h.terminals.State(terminalID)})
		return
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Logged out successfully", gin.H{"state": out.State})
}

// GetProfile handles fetching current user profile
// @Summary Get Profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.APIResponse
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	user, err := h.authService.GetCurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Profile retrieved successfully", gin.H{"user": user})
}

func (h *AuthHandler) signedIn(c *gin.Context, output *service.LoginOutput) gin.H {
	body := gin.H{
		"user": gin.H{
			"id":         output.User.ID,
			"first_name": output.User.FirstName,
			"last_name":  output.User.LastName,
			"username":   output.User.Username,
			"email":      output.User.Email,
			"staff_code": output.User.StaffCode,
			"roles":      output.User.RoleNames(),
		},
		"access_token":  output.AccessToken,
		"refresh_token": output.RefreshToken,
		"token_type":    "Bearer",
	}
	if terminalID := c.GetHeader(middleware.TerminalIDHeader); terminalID != "" && middleware.ValidTerminalID(terminalID) {
		body["state"] = h.terminals.SignIn(c.Request.Context(), terminalID, output.Identity())
	}
	return body
}
