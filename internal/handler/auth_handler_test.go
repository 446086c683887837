package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/config"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/testutil"
)

func setupAuthTest(t *testing.T) *gin.Engine {
	t.Helper()
	db := testutil.SetupTestDB(t)

	cfg := &config.Config{}
	cfg.JWT.Secret = testutil.JWTSecret
	cfg.JWT.AccessTokenExpire = 2 * time.Hour
	cfg.JWT.RefreshTokenExpire = 7 * 24 * time.Hour
	cfg.JWT.Issuer = "management-kontraktor"

	repos := repository.NewRepositories(db)
	authSvc := service.NewAuthService(repos.User, nil, cfg)
	authHandler := NewAuthHandler(authSvc, cfg)

	router := testutil.SetupRouter()
	router.POST("/api/v1/auth/register", authHandler.Register)
	router.POST("/api/v1/auth/login", authHandler.Login)
	router.POST("/api/v1/auth/refresh", authHandler.RefreshToken)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/profile/:username", authHandler.GetProfile)
	api.PUT("/profile/:username", authHandler.UpdateProfile)

	return router
}

func registerUser(t *testing.T, router *gin.Engine, username, password string) map[string]interface{} {
	t.Helper()
	w := testutil.DoRequest(router, "POST", "/api/v1/auth/register", map[string]string{
		"username":     username,
		"password":     password,
		"nama_lengkap": "Budi Santoso",
		"role":         "kontraktor",
	}, "")
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestRegister(t *testing.T) {
	router := setupAuthTest(t)

	user := registerUser(t, router, "budi", "rahasia123")

	if user["username"] != "budi" {
		t.Errorf("Expected username 'budi', got %v", user["username"])
	}
	if user["nama_lengkap"] != "Budi Santoso" {
		t.Errorf("Expected nama_lengkap 'Budi Santoso', got %v", user["nama_lengkap"])
	}
	if _, ok := user["password"]; ok {
		t.Error("Password must not appear in the response")
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	router := setupAuthTest(t)
	registerUser(t, router, "budi", "rahasia123")

	w := testutil.DoRequest(router, "POST", "/api/v1/auth/register", map[string]string{
		"username": "budi",
		"password": "lainlain456",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for duplicate username, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRegisterShortPassword(t *testing.T) {
	router := setupAuthTest(t)

	w := testutil.DoRequest(router, "POST", "/api/v1/auth/register", map[string]string{
		"username": "budi",
		"password": "abc",
	}, "")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 for short password, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLogin(t *testing.T) {
	router := setupAuthTest(t)
	registerUser(t, router, "budi", "rahasia123")

	w := testutil.DoRequest(router, "POST", "/api/v1/auth/login", map[string]string{
		"username": "budi",
		"password": "rahasia123",
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	token, _ := data["access_token"].(string)
	if token == "" {
		t.Fatal("Expected non-empty access_token")
	}
	if data["refresh_token"] == "" {
		t.Error("Expected non-empty refresh_token")
	}

	// The issued token must pass the JWT middleware.
	w = testutil.DoRequest(router, "GET", "/api/v1/profile/budi", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 on profile with issued token, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginWrongPassword(t *testing.T) {
	router := setupAuthTest(t)
	registerUser(t, router, "budi", "rahasia123")

	w := testutil.DoRequest(router, "POST", "/api/v1/auth/login", map[string]string{
		"username": "budi",
		"password": "salah-total",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for wrong password, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginUnknownUser(t *testing.T) {
	router := setupAuthTest(t)

	w := testutil.DoRequest(router, "POST", "/api/v1/auth/login", map[string]string{
		"username": "siapa",
		"password": "rahasia123",
	}, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 for unknown user, got %d: %s", w.Code, w.Body.String())
	}
}

func TestRefreshToken(t *testing.T) {
	router := setupAuthTest(t)
	registerUser(t, router, "budi", "rahasia123")

	w := testutil.DoRequest(router, "POST", "/api/v1/auth/login", map[string]string{
		"username": "budi",
		"password": "rahasia123",
	}, "")
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	refresh := data["refresh_token"].(string)

	w = testutil.DoRequest(router, "POST", "/api/v1/auth/refresh", map[string]string{
		"refresh_token": refresh,
	}, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["access_token"] == "" {
		t.Error("Expected a fresh access_token")
	}
}

func TestProfileRequiresAuth(t *testing.T) {
	router := setupAuthTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/profile/budi", nil, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401 without token, got %d", w.Code)
	}
}

func TestProfileUnknownUser(t *testing.T) {
	router := setupAuthTest(t)

	w := testutil.DoRequest(router, "GET", "/api/v1/profile/siapa", nil, testutil.DefaultTestToken())
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown username, got %d: %s", w.Code, w.Body.String())
	}
}
