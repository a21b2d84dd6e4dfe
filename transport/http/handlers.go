package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/janus-auth/janus/core"
	"github.com/janus-auth/janus/service"
)

// refreshCookie is the name of the cookie carrying the refresh token. The
// access token travels only in response bodies and request headers; the
// long-lived credential stays out of reach of page scripts.
const refreshCookie = "refreshToken"

// AuthHandlers contains HTTP handlers for the auth endpoints.
type AuthHandlers struct {
	authService *service.AuthService
}

// NewAuthHandlers creates new auth handlers.
func NewAuthHandlers(authService *service.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type signupRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Nickname string `json:"nickname" binding:"required"`
}

type loginResponse struct {
	AccessToken string    `json:"accessToken"`
	Nickname    string    `json:"nickname,omitempty"`
	Role        core.Role `json:"role,omitempty"`
}

func (h *AuthHandlers) setRefreshCookie(c *gin.Context, token string) {
	maxAge := int(h.authService.RefreshTTL().Seconds())
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(refreshCookie, token, maxAge, "/", "", true, true)
}

// Login verifies credentials and returns an access token, with the refresh
// token set as an HTTP-only cookie.
func (h *AuthHandlers) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	result, refreshToken, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, refreshToken)

	c.JSON(http.StatusOK, Success(loginResponse{
		AccessToken: result.AccessToken,
		Nickname:    result.Nickname,
		Role:        result.Role,
	}))
}

// Reissue exchanges the refresh cookie for a new access token and rotates
// the cookie. No profile fields are re-fetched here.
func (h *AuthHandlers) Reissue(c *gin.Context) {
	presented, err := c.Cookie(refreshCookie)
	if err != nil {
		respondError(c, core.ErrInvalidToken)
		return
	}

	accessToken, refreshToken, err := h.authService.Reissue(c.Request.Context(), presented)
	if err != nil {
		respondError(c, err)
		return
	}

	h.setRefreshCookie(c, refreshToken)

	c.JSON(http.StatusOK, Success(loginResponse{AccessToken: accessToken}))
}

// Signup registers a new member.
func (h *AuthHandlers) Signup(c *gin.Context) {
	var req signupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindingError(c, err)
		return
	}

	if err := h.authService.Signup(c.Request.Context(), req.Email, req.Password, req.Nickname); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessMessage("signup complete", nil))
}

// CheckEmail reports whether the email is already in use.
func (h *AuthHandlers) CheckEmail(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		c.JSON(http.StatusBadRequest, Fail("email is required"))
		return
	}

	taken, err := h.authService.IsEmailTaken(c.Request.Context(), email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Success(taken))
}

// CheckNickname reports whether the nickname is already in use.
func (h *AuthHandlers) CheckNickname(c *gin.Context) {
	nickname := c.Query("nickname")
	if nickname == "" {
		c.JSON(http.StatusBadRequest, Fail("nickname is required"))
		return
	}

	taken, err := h.authService.IsNicknameTaken(c.Request.Context(), nickname)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, Success(taken))
}

// Me returns the identity the middleware resolved for this request.
func (h *AuthHandlers) Me(c *gin.Context) {
	subject, ok := Subject(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, Fail("identity missing from context"))
		return
	}

	c.JSON(http.StatusOK, Success(gin.H{"email": subject}))
}
