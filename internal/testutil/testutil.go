package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/middleware"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const JWTSecret = "kontraktor-test-jwt-secret"

// SetupTestDB opens an isolated in-memory database and migrates all tables.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Project{},
		&entity.WorkItem{},
		&entity.ProgressRecord{},
		&entity.DimensionReport{},
		&entity.MethodReport{},
		&entity.CompactionReport{},
		&entity.LabReport{},
		&entity.TrialMixReport{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
	})

	return db
}

// SetupRouter creates a gin test router.
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group guarded by the JWT middleware.
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid access token for testing.
func GenerateTestToken(userID, username, name, role string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":      userID,
		"uid":      userID,
		"username": username,
		"name":     name,
		"role":     role,
		"iss":      "management-kontraktor",
		"iat":      now.Unix(),
		"exp":      now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for a default kontraktor test user.
func DefaultTestToken() string {
	return GenerateTestToken("test-user-001", "budi", "Budi Santoso", entity.UserRoleKontraktor)
}

// DoRequest executes a JSON request against the test router.
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// MultipartForm builds a multipart body from string fields and fake photo
// files keyed by field name.
func MultipartForm(t *testing.T, fields map[string]string, files map[string]string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for k, v := range fields {
		writer.WriteField(k, v)
	}
	for field, filename := range files {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("create form file %s: %v", field, err)
		}
		io.Copy(part, strings.NewReader("fake image bytes"))
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

// DoMultipartRequest executes a multipart request against the test router.
func DoMultipartRequest(r *gin.Engine, method, path string, body *bytes.Buffer, contentType, token string) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(method, path, body)
	req.Header.Set("Content-Type", contentType)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON envelope into a map.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedTestUser creates a user row directly.
func SeedTestUser(t *testing.T, db *gorm.DB, id, username, name, role string) *entity.User {
	t.Helper()
	user := &entity.User{
		ID:           id,
		Username:     username,
		PasswordHash: "not-a-real-hash",
		FullName:     name,
		Role:         role,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed test user: %v", err)
	}
	return user
}

// SeedTestProject creates a project row with n generic work items.
func SeedTestProject(t *testing.T, db *gorm.DB, id, name string, workItems int) *entity.Project {
	t.Helper()
	project := &entity.Project{
		ID:             id,
		Name:           name,
		ContractNumber: "KTR/" + id,
		Location:       "Denpasar",
		Status:         entity.ProjectStatusAktif,
		DurationWeeks:  12,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}
	for i := 1; i <= workItems; i++ {
		project.WorkItems = append(project.WorkItems, entity.WorkItem{
			ID:        fmt.Sprintf("%s-wi-%d", id, i),
			ProjectID: id,
			Code:      fmt.Sprintf("1.%d", i),
			Name:      fmt.Sprintf("Pekerjaan %d", i),
		})
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("Failed to seed test project: %v", err)
	}
	return project
}
