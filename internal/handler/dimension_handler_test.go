package handler

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/model/entity"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/testutil"
	"gorm.io/gorm"
)

func setupDimensionTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	storage := service.NewStorageService(nil, "", t.TempDir())
	dimensionSvc := service.NewDimensionService(repos.Dimension, repos.Progress, repos.Project, storage)
	dimensionHandler := NewDimensionHandler(dimensionSvc)
	progressHandler := NewProgressHandler(service.NewProgressService(repos.Progress, repos.Project))

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	dimensions := api.Group("/dimension-reports")
	dimensions.GET("", dimensionHandler.List)
	dimensions.POST("", dimensionHandler.Submit)
	dimensions.PUT("/:id", dimensionHandler.Update)
	dimensions.DELETE("/:id", dimensionHandler.Delete)

	api.DELETE("/project-progress/:id", progressHandler.Delete)

	router.GET("/uploads/:filename", NewFileHandler(storage).Download)

	return router, db
}

func seedProgressRow(t *testing.T, db *gorm.DB, id, projectID, code, name, week string, unitPrice float64) {
	t.Helper()
	now := time.Now()
	record := &entity.ProgressRecord{
		ID:           id,
		ProjectID:    projectID,
		WorkItemCode: code,
		WorkItemName: name,
		Volume:       10,
		Unit:         "m³",
		UnitPrice:    unitPrice,
		Week:         week,
		ProgressPct:  25,
		UpdateDate:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(record).Error; err != nil {
		t.Fatalf("Failed to seed progress record: %v", err)
	}
}

func dimensionFields(projectID string) map[string]string {
	return map[string]string{
		"id_kegiatan":         projectID,
		"id_laporan_dimensi":  "LD-001",
		"kode_item_pekerjaan": "1.1",
		"minggu":              "1",
		"panjang":             "2",
		"gps_panjang":         "-8.65,115.21",
		"waktu_panjang":       "2026-08-20 09:00",
		"lebar":               "2",
		"gps_lebar":           "-8.65,115.21",
		"waktu_lebar":         "2026-08-20 09:05",
		"tinggi":              "1",
		"gps_tinggi":          "-8.65,115.21",
		"waktu_tinggi":        "2026-08-20 09:10",
	}
}

var dimensionPhotos = map[string]string{
	"foto_panjang": "panjang.jpg",
	"foto_lebar":   "lebar.jpg",
	"foto_tinggi":  "tinggi.jpg",
}

func submitDimension(t *testing.T, router *gin.Engine, token, projectID string) map[string]interface{} {
	t.Helper()
	body, contentType := testutil.MultipartForm(t, dimensionFields(projectID), dimensionPhotos)
	w := testutil.DoMultipartRequest(router, "POST", "/api/v1/dimension-reports", body, contentType, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestDimensionSubmit(t *testing.T) {
	router, db := setupDimensionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestProject(t, db, "proj-001", "Jalan Desa", 1)
	seedProgressRow(t, db, "prog-001", "proj-001", "1.1", "Galian Tanah", "1", 50000)

	report := submitDimension(t, router, token, "proj-001")

	if report["panjang"] != float64(2) {
		t.Errorf("Expected panjang 2, got %v", report["panjang"])
	}
	if report["nomor_kontrak"] != "KTR/proj-001" {
		t.Errorf("Expected contract number copied from project, got %v", report["nomor_kontrak"])
	}
	if report["foto_panjang"] == "" {
		t.Error("Expected stored photo filename")
	}
}

func TestDimensionSubmitRequiresAllPhotos(t *testing.T) {
	router, db := setupDimensionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestProject(t, db, "proj-001", "Jalan Desa", 1)
	seedProgressRow(t, db, "prog-001", "proj-001", "1.1", "Galian Tanah", "1", 50000)

	body, contentType := testutil.MultipartForm(t, dimensionFields("proj-001"), map[string]string{
		"foto_panjang": "panjang.jpg",
		"foto_lebar":   "lebar.jpg",
	})
	w := testutil.DoMultipartRequest(router, "POST", "/api/v1/dimension-reports", body, contentType, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 with a missing photo, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDimensionSubmitRequiresMatchingProgress(t *testing.T) {
	router, db := setupDimensionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestProject(t, db, "proj-001", "Jalan Desa", 1)
	// Ledger has week 2 only; the submission names week 1.
	seedProgressRow(t, db, "prog-001", "proj-001", "1.1", "Galian Tanah", "2", 50000)

	body, contentType := testutil.MultipartForm(t, dimensionFields("proj-001"), dimensionPhotos)
	w := testutil.DoMultipartRequest(router, "POST", "/api/v1/dimension-reports", body, contentType, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 without a matching progress record, got %d: %s", w.Code, w.Body.String())
	}
}

func TestDimensionSubmitStorageFailure(t *testing.T) {
	db := testutil.SetupTestDB(t)
	repos := repository.NewRepositories(db)

	// The upload dir path is occupied by a regular file, so every photo
	// write fails.
	blocked := filepath.Join(t.TempDir(), "uploads")
	if err := os.WriteFile(blocked, []byte("x"), 0644); err != nil {
		t.Fatalf("Failed to create blocking file: %v", err)
	}
	storage := service.NewStorageService(nil, "", blocked)
	dimensionSvc := service.NewDimensionService(repos.Dimension, repos.Progress, repos.Project, storage)
	dimensionHandler := NewDimensionHandler(dimensionSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/dimension-reports", dimensionHandler.Submit)

	token := testutil.DefaultTestToken()
	testutil.SeedTestProject(t, db, "proj-001", "Jalan Desa", 1)
	seedProgressRow(t, db, "prog-001", "proj-001", "1.1", "Galian Tanah", "1", 50000)

	body, contentType := testutil.MultipartForm(t, dimensionFields("proj-001"), dimensionPhotos)
	w := testutil.DoMultipartRequest(router, "POST", "/api/v1/dimension-reports", body, contentType, token)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("Expected 500 when the photo write fails, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	if resp["message"] != "Failed to create dimension report" {
		t.Errorf("Expected generic message, got %v", resp["message"])
	}
	if strings.Contains(w.Body.String(), blocked) {
		t.Errorf("Expected no storage detail in the response, got %s", w.Body.String())
	}
}

func TestUploadedPhotoDownload(t *testing.T) {
	router, db := setupDimensionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestProject(t, db, "proj-001", "Jalan Desa", 1)
	seedProgressRow(t, db, "prog-001", "proj-001", "1.1", "Galian Tanah", "1", 50000)

	report := submitDimension(t, router, token, "proj-001")
	photo := report["foto_panjang"].(string)

	w := testutil.DoRequest(router, "GET", "/uploads/"+photo, nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 downloading stored photo, got %d: %s", w.Code, w.Body.String())
	}
	if w.Body.String() != "fake image bytes" {
		t.Errorf("Expected stored photo bytes, got %q", w.Body.String())
	}

	w = testutil.DoRequest(router, "GET", "/uploads/tidak-ada.jpg", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for unknown file, got %d", w.Code)
	}
}

func TestDimensionListEnrichment(t *testing.T) {
	router, db := setupDimensionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestProject(t, db, "proj-001", "Jalan Desa", 1)
	seedProgressRow(t, db, "prog-001", "proj-001", "1.1", "Galian Tanah", "1", 50000)
	submitDimension(t, router, token, "proj-001")

	w := testutil.DoRequest(router, "GET", "/api/v1/dimension-reports", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 report, got %d", len(items))
	}

	report := items[0].(map[string]interface{})
	if report["nama_kegiatan"] != "Jalan Desa" {
		t.Errorf("Expected nama_kegiatan from project, got %v", report["nama_kegiatan"])
	}
	if report["nama_item_pekerjaan"] != "Galian Tanah" {
		t.Errorf("Expected work item name from ledger, got %v", report["nama_item_pekerjaan"])
	}
	if report["minggu"] != "1" {
		t.Errorf("Expected minggu borrowed from ledger, got %v", report["minggu"])
	}
	// 2 × 2 × 1 = 4 m³ at the borrowed unit price of 50000.
	if report["volume"] != float64(4) {
		t.Errorf("Expected derived volume 4, got %v", report["volume"])
	}
	if report["nilai_pekerjaan"] != float64(200000) {
		t.Errorf("Expected nilai_pekerjaan 200000, got %v", report["nilai_pekerjaan"])
	}
}

func TestDimensionListFilterByProjectName(t *testing.T) {
	router, db := setupDimensionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestProject(t, db, "proj-001", "Jalan Desa", 1)
	seedProgressRow(t, db, "prog-001", "proj-001", "1.1", "Galian Tanah", "1", 50000)
	submitDimension(t, router, token, "proj-001")

	w := testutil.DoRequest(router, "GET", "/api/v1/dimension-reports?nama_kegiatan=Jalan+Desa", nil, token)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["total"] != float64(1) {
		t.Errorf("Expected 1 report for exact name, got %v", data["total"])
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/dimension-reports?nama_kegiatan=Proyek+Lain", nil, token)
	resp = testutil.ParseResponse(w)
	data = resp["data"].(map[string]interface{})
	if data["total"] != float64(0) {
		t.Errorf("Expected 0 reports for unknown name, got %v", data["total"])
	}
}

func TestDimensionEnrichmentDegradesAfterProgressDelete(t *testing.T) {
	router, db := setupDimensionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestProject(t, db, "proj-001", "Jalan Desa", 1)
	seedProgressRow(t, db, "prog-001", "proj-001", "1.1", "Galian Tanah", "1", 50000)
	submitDimension(t, router, token, "proj-001")

	w := testutil.DoRequest(router, "DELETE", "/api/v1/project-progress/prog-001", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 deleting progress, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/dimension-reports", nil, token)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	report := items[0].(map[string]interface{})

	if report["nama_item_pekerjaan"] != "Tidak ada data" {
		t.Errorf("Expected placeholder work item name, got %v", report["nama_item_pekerjaan"])
	}
	if report["minggu"] != "Tidak ada data" {
		t.Errorf("Expected placeholder minggu, got %v", report["minggu"])
	}
	if report["nilai_pekerjaan"] != float64(0) {
		t.Errorf("Expected zero value without a ledger row, got %v", report["nilai_pekerjaan"])
	}
	// The geometry itself still renders.
	if report["volume"] != float64(4) {
		t.Errorf("Expected derived volume 4, got %v", report["volume"])
	}
}

func TestDimensionUpdateKeepsPhotosWhenOmitted(t *testing.T) {
	router, db := setupDimensionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestProject(t, db, "proj-001", "Jalan Desa", 1)
	seedProgressRow(t, db, "prog-001", "proj-001", "1.1", "Galian Tanah", "1", 50000)

	report := submitDimension(t, router, token, "proj-001")
	reportID := report["id"].(string)
	originalPhoto := report["foto_panjang"].(string)

	fields := dimensionFields("proj-001")
	fields["panjang"] = "3"
	body, contentType := testutil.MultipartForm(t, fields, nil)
	w := testutil.DoMultipartRequest(router, "PUT", "/api/v1/dimension-reports/"+reportID, body, contentType, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["panjang"] != float64(3) {
		t.Errorf("Expected panjang 3 after update, got %v", data["panjang"])
	}
	if data["foto_panjang"] != originalPhoto {
		t.Errorf("Expected photo kept when omitted, got %v", data["foto_panjang"])
	}
}

func TestDimensionDelete(t *testing.T) {
	router, db := setupDimensionTest(t)
	token := testutil.DefaultTestToken()
	testutil.SeedTestProject(t, db, "proj-001", "Jalan Desa", 1)
	seedProgressRow(t, db, "prog-001", "proj-001", "1.1", "Galian Tanah", "1", 50000)

	report := submitDimension(t, router, token, "proj-001")
	reportID := report["id"].(string)

	w := testutil.DoRequest(router, "DELETE", "/api/v1/dimension-reports/"+reportID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "DELETE", "/api/v1/dimension-reports/"+reportID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 after delete, got %d", w.Code)
	}
}
