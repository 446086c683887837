package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/redis/go-redis/v9"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/config"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

// MinPasswordLength is the shortest accepted password.
const MinPasswordLength = 6

// Validation errors surfaced as 400 responses.
var (
	ErrUsernameTaken      = errors.New("username is already registered")
	ErrPasswordTooShort   = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService is the credential store: bcrypt hash-and-compare plus a
// stateless bearer-token contract. Refresh tokens are tracked in redis when a
// client is configured; without redis a refresh token is accepted on
// signature and expiry alone.
type AuthService struct {
	userRepo *repository.UserRepository
	rdb      *redis.Client
	cfg      *config.Config
}

// NewAuthService creates the auth service.
func NewAuthService(userRepo *repository.UserRepository, rdb *redis.Client, cfg *config.Config) *AuthService {
	return &AuthService{userRepo: userRepo, rdb: rdb, cfg: cfg}
}

// TokenPair is the issued access/refresh token pair.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

// RegisterRequest carries the registration form.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	FullName string `json:"nama_lengkap"`
	Email    string `json:"email"`
	Phone    string `json:"no_telepon"`
	Company  string `json:"perusahaan"`
	Role     string `json:"role"`
}

// Register creates an account. The username must be unused and the password
// at least six characters; only the bcrypt hash is stored.
func (s *AuthService) Register(ctx context.Context, req *RegisterRequest) (*entity.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, errors.New("username is required")
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	taken, err := s.userRepo.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("check username: %w", err)
	}
	if taken {
		return nil, ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	role := req.Role
	if !isValidRole(role) {
		role = entity.UserRoleKontraktor
	}

	now := time.Now()
	user := &entity.User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     req.FullName,
		Email:        req.Email,
		Phone:        req.Phone,
		Company:      req.Company,
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Login verifies credentials and issues a token pair. A missing user and a
// wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (*entity.User, *TokenPair, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, fmt.Errorf("find user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.generateTokenPair(ctx, user)
	if err != nil {
		return nil, nil, fmt.Errorf("generate token: %w", err)
	}

	return user, pair, nil
}

// RefreshToken exchanges a valid refresh token for a new pair.
func (s *AuthService) RefreshToken(ctx context.Context, refreshToken string) (*TokenPair, error) {
	claims := jwt.MapClaims{}
	token, err := jwt.ParseWithClaims(refreshToken, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.cfg.JWT.Secret), nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired refresh token")
	}

	userID, _ := claims["sub"].(string)
	jti, _ := claims["jti"].(string)
	if userID == "" {
		return nil, errors.New("invalid refresh token claims")
	}

	if s.rdb != nil {
		stored, err := s.rdb.Get(ctx, refreshKey(jti)).Result()
		if err != nil || stored != userID {
			return nil, errors.New("refresh token revoked")
		}
		s.rdb.Del(ctx, refreshKey(jti))
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, errors.New("user no longer exists")
	}

	return s.generateTokenPair(ctx, user)
}

// Logout revokes every refresh token of the user. With no redis there is
// nothing to revoke; access tokens simply run out.
func (s *AuthService) Logout(ctx context.Context, userID string) error {
	if s.rdb == nil {
		return nil
	}
	iter := s.rdb.Scan(ctx, 0, "auth:refresh:*", 100).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if owner, err := s.rdb.Get(ctx, key).Result(); err == nil && owner == userID {
			s.rdb.Del(ctx, key)
		}
	}
	return iter.Err()
}

// GetProfile fetches a profile by username.
func (s *AuthService) GetProfile(ctx context.Context, username string) (*entity.User, error) {
	return s.userRepo.FindByUsername(ctx, username)
}

// UpdateProfileRequest carries mutable profile fields. A new password, when
// present, is re-hashed; empty fields are left untouched.
type UpdateProfileRequest struct {
	FullName string `json:"nama_lengkap"`
	Email    string `json:"email"`
	Phone    string `json:"no_telepon"`
	Company  string `json:"perusahaan"`
	Password string `json:"password"`
}

// UpdateProfile overwrites profile fields of an existing user.
func (s *AuthService) UpdateProfile(ctx context.Context, username string, req *UpdateProfileRequest) (*entity.User, error) {
	user, err := s.userRepo.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if req.FullName != "" {
		user.FullName = req.FullName
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.Company != "" {
		user.Company = req.Company
	}
	if req.Password != "" {
		if len(req.Password) < MinPasswordLength {
			return nil, ErrPasswordTooShort
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		user.PasswordHash = string(hash)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}

	return user, nil
}

func (s *AuthService) generateTokenPair(ctx context.Context, user *entity.User) (*TokenPair, error) {
	now := time.Now()
	accessExpire := s.cfg.JWT.AccessTokenExpire
	if accessExpire == 0 {
		accessExpire = 2 * time.Hour
	}
	refreshExpire := s.cfg.JWT.RefreshTokenExpire
	if refreshExpire == 0 {
		refreshExpire = 7 * 24 * time.Hour
	}

	accessClaims := jwt.MapClaims{
		"sub":      user.ID,
		"uid":      user.ID,
		"username": user.Username,
		"name":     user.FullName,
		"role":     user.Role,
		"iss":      s.cfg.JWT.Issuer,
		"iat":      now.Unix(),
		"exp":      now.Add(accessExpire).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, accessClaims).
		SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, err
	}

	jti := fmt.Sprintf("%s-%d", user.ID, now.UnixNano())
	refreshClaims := jwt.MapClaims{
		"sub": user.ID,
		"jti": jti,
		"iss": s.cfg.JWT.Issuer,
		"iat": now.Unix(),
		"exp": now.Add(refreshExpire).Unix(),
	}
	refreshToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, refreshClaims).
		SignedString([]byte(s.cfg.JWT.Secret))
	if err != nil {
		return nil, err
	}

	if s.rdb != nil {
		s.rdb.Set(ctx, refreshKey(jti), user.ID, refreshExpire)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int64(accessExpire.Seconds()),
	}, nil
}

func refreshKey(jti string) string {
	return "auth:refresh:" + jti
}

func isValidRole(role string) bool {
	switch role {
	case entity.UserRoleKontraktor, entity.UserRoleKonsultan, entity.UserRoleOwner:
		return true
	}
	return false
}
