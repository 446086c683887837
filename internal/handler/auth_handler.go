package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/config"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	svc *service.AuthService
	cfg *config.Config
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(svc *service.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{svc: svc, cfg: cfg}
}

// Register creates an account.
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var req service.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.Register(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUsernameTaken),
			errors.Is(err, service.ErrPasswordTooShort):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "Failed to register", err)
		}
		return
	}

	Created(c, userResponse(user))
}

// LoginRequest carries the login form.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login verifies credentials and returns a token pair.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, pair, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			Unauthorized(c, "Invalid username or password")
			return
		}
		InternalError(c, "Failed to login", err)
		return
	}

	Success(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
		"user":          userResponse(user),
	})
}

// RefreshTokenRequest carries the refresh form.
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// RefreshToken exchanges a refresh token for a new pair.
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body")
		return
	}

	pair, err := h.svc.RefreshToken(c.Request.Context(), req.RefreshToken)
	if err != nil {
		Unauthorized(c, "Invalid or expired refresh token")
		return
	}

	Success(c, gin.H{
		"access_token":  pair.AccessToken,
		"refresh_token": pair.RefreshToken,
		"expires_in":    pair.ExpiresIn,
	})
}

// Logout revokes the user's refresh tokens.
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	userID := GetUserID(c)
	if userID == "" {
		Unauthorized(c, "User not authenticated")
		return
	}

	if err := h.svc.Logout(c.Request.Context(), userID); err != nil {
		InternalError(c, "Failed to logout", err)
		return
	}

	Success(c, nil)
}

// GetProfile fetches a profile by username; one of the few explicit 404s.
// GET /api/v1/profile/:username
func (h *AuthHandler) GetProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		BadRequest(c, "Username is required")
		return
	}

	user, err := h.svc.GetProfile(c.Request.Context(), username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			NotFound(c, "User not found")
			return
		}
		InternalError(c, "Failed to fetch profile", err)
		return
	}

	Success(c, userResponse(user))
}

// UpdateProfile overwrites profile fields.
// PUT /api/v1/profile/:username
func (h *AuthHandler) UpdateProfile(c *gin.Context) {
	username := c.Param("username")
	if username == "" {
		BadRequest(c, "Username is required")
		return
	}

	var req service.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	user, err := h.svc.UpdateProfile(c.Request.Context(), username, &req)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			NotFound(c, "User not found")
		case errors.Is(err, service.ErrPasswordTooShort):
			BadRequest(c, err.Error())
		default:
			InternalError(c, "Failed to update profile", err)
		}
		return
	}

	Success(c, userResponse(user))
}

func userResponse(user *entity.User) gin.H {
	return gin.H{
		"id":           user.ID,
		"username":     user.Username,
		"nama_lengkap": user.FullName,
		"email":        user.Email,
		"no_telepon":   user.Phone,
		"perusahaan":   user.Company,
		"role":         user.Role,
		"created_at":   user.CreatedAt,
	}
}
