package handler

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/repository"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/service"
	"github.com/yogaswidhana/management-kontraktorv2-sub000/internal/testutil"
	"gorm.io/gorm"
)

func setupProjectTest(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	db := testutil.SetupTestDB(t)

	repos := repository.NewRepositories(db)
	projectSvc := service.NewProjectService(repos.Project)
	progressSvc := service.NewProgressService(repos.Progress, repos.Project)
	exportSvc := service.NewExportService(repos.Project, repos.Progress)
	projectHandler := NewProjectHandler(projectSvc, exportSvc)
	progressHandler := NewProgressHandler(progressSvc)

	router := testutil.SetupRouter()
	api := testutil.AuthGroup(router, "/api/v1")

	projects := api.Group("/projects")
	projects.GET("", projectHandler.List)
	projects.POST("", projectHandler.Create)
	projects.GET("/:id", projectHandler.Get)
	projects.PUT("/:id", projectHandler.Update)
	projects.DELETE("/:id", projectHandler.Delete)
	projects.GET("/:id/work-items", projectHandler.ListWorkItems)
	projects.DELETE("/:id/work-items/:itemId", projectHandler.DeleteWorkItem)
	projects.GET("/:id/progress-export", projectHandler.ExportProgress)

	progress := api.Group("/project-progress")
	progress.POST("", progressHandler.Create)

	return router, db
}

func createProject(t *testing.T, router *gin.Engine, token, name string, workItems []map[string]string) map[string]interface{} {
	t.Helper()
	body := map[string]interface{}{
		"nama_kegiatan":  name,
		"lokasi":         "Denpasar",
		"nomor_kontrak":  "KTR/2026/001",
		"nilai_kontrak":  1500000000,
		"lama_pekerjaan": 24,
		"item_pekerjaan": workItems,
	}
	w := testutil.DoRequest(router, "POST", "/api/v1/projects", body, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	return resp["data"].(map[string]interface{})
}

func TestProjectCreate(t *testing.T) {
	router, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	project := createProject(t, router, token, "Pembangunan Jembatan Tukad Ayung", []map[string]string{
		{"kode_item": "1.1", "nama_item": "Galian Tanah"},
		{"kode_item": "1.2", "nama_item": "Beton K-250"},
	})

	if project["id"] == nil || project["id"] == "" {
		t.Error("Expected non-empty id")
	}
	if project["nama_kegiatan"] != "Pembangunan Jembatan Tukad Ayung" {
		t.Errorf("Unexpected nama_kegiatan: %v", project["nama_kegiatan"])
	}
	if project["status"] != "Aktif" {
		t.Errorf("Expected default status 'Aktif', got %v", project["status"])
	}
	if project["jumlah_item_mayor"] != float64(2) {
		t.Errorf("Expected jumlah_item_mayor 2, got %v", project["jumlah_item_mayor"])
	}
}

func TestProjectListFilters(t *testing.T) {
	router, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	createProject(t, router, token, "Jalan Desa Utara", nil)
	createProject(t, router, token, "Jembatan Selatan", nil)

	w := testutil.DoRequest(router, "GET", "/api/v1/projects?keyword=Jalan", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["total"] != float64(1) {
		t.Errorf("Expected 1 project matching keyword, got %v", data["total"])
	}
}

func TestProjectWorkItems(t *testing.T) {
	router, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	project := createProject(t, router, token, "Saluran Irigasi", []map[string]string{
		{"kode_item": "2.1", "nama_item": "Pasangan Batu"},
	})
	projectID := project["id"].(string)

	w := testutil.DoRequest(router, "GET", "/api/v1/projects/"+projectID+"/work-items", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	if len(items) != 1 {
		t.Fatalf("Expected 1 work item, got %d", len(items))
	}
	item := items[0].(map[string]interface{})
	if item["kode_item"] != "2.1" {
		t.Errorf("Expected kode_item '2.1', got %v", item["kode_item"])
	}
}

func TestProjectDeleteBlockedByDependents(t *testing.T) {
	router, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	project := createProject(t, router, token, "Gedung Serbaguna", []map[string]string{
		{"kode_item": "1.1", "nama_item": "Galian Tanah"},
	})
	projectID := project["id"].(string)

	w := testutil.DoRequest(router, "DELETE", "/api/v1/projects/"+projectID, nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 while dependents exist, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	message, _ := resp["message"].(string)
	if !strings.Contains(message, "item pekerjaan") {
		t.Errorf("Expected blocking message to itemize 'item pekerjaan', got %q", message)
	}

	// The project must survive a blocked delete.
	w = testutil.DoRequest(router, "GET", "/api/v1/projects/"+projectID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected project to still exist, got %d", w.Code)
	}
}

func TestProjectDeleteBlockedByProgress(t *testing.T) {
	router, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	project := createProject(t, router, token, "Drainase Kota", nil)
	projectID := project["id"].(string)

	w := testutil.DoRequest(router, "POST", "/api/v1/project-progress", map[string]string{
		"id_kegiatan":         projectID,
		"kode_item_pekerjaan": "1.1",
		"nama_item_pekerjaan": "Galian Tanah",
		"volume":              "10",
		"harga_satuan":        "50000",
		"minggu":              "1",
		"progress":            "25",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201 recording progress, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "DELETE", "/api/v1/projects/"+projectID, nil, token)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400 while progress exists, got %d: %s", w.Code, w.Body.String())
	}
	resp := testutil.ParseResponse(w)
	message, _ := resp["message"].(string)
	if !strings.Contains(message, "laporan kemajuan (1)") {
		t.Errorf("Expected blocking message with count, got %q", message)
	}
}

func TestProjectDeleteWithoutDependents(t *testing.T) {
	router, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	project := createProject(t, router, token, "Posyandu Baru", nil)
	projectID := project["id"].(string)

	w := testutil.DoRequest(router, "DELETE", "/api/v1/projects/"+projectID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/projects/"+projectID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 after delete, got %d", w.Code)
	}
}

func TestProjectDeleteAfterRemovingWorkItems(t *testing.T) {
	router, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	project := createProject(t, router, token, "Jembatan Kecil", []map[string]string{
		{"kode_item": "1.1", "nama_item": "Galian Tanah"},
	})
	projectID := project["id"].(string)

	w := testutil.DoRequest(router, "GET", "/api/v1/projects/"+projectID+"/work-items", nil, token)
	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	items := data["items"].([]interface{})
	itemID := items[0].(map[string]interface{})["id"].(string)

	w = testutil.DoRequest(router, "DELETE", "/api/v1/projects/"+projectID+"/work-items/"+itemID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 deleting work item, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "GET", "/api/v1/projects/"+projectID, nil, token)
	resp = testutil.ParseResponse(w)
	fetched := resp["data"].(map[string]interface{})
	if fetched["jumlah_item_mayor"] != float64(0) {
		t.Errorf("Expected jumlah_item_mayor 0 after removal, got %v", fetched["jumlah_item_mayor"])
	}

	// With the reference list emptied nothing blocks the delete anymore.
	w = testutil.DoRequest(router, "DELETE", "/api/v1/projects/"+projectID, nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200 deleting emptied project, got %d: %s", w.Code, w.Body.String())
	}

	w = testutil.DoRequest(router, "DELETE", "/api/v1/projects/"+projectID+"/work-items/"+itemID, nil, token)
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404 for removed work item, got %d", w.Code)
	}
}

func TestProjectUpdateKeepsUnsetFields(t *testing.T) {
	router, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	project := createProject(t, router, token, "Pasar Tradisional", nil)
	projectID := project["id"].(string)

	w := testutil.DoRequest(router, "PUT", "/api/v1/projects/"+projectID, map[string]string{
		"status": "Selesai",
	}, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["status"] != "Selesai" {
		t.Errorf("Expected status 'Selesai', got %v", data["status"])
	}
	if data["nama_kegiatan"] != "Pasar Tradisional" {
		t.Errorf("Expected name unchanged, got %v", data["nama_kegiatan"])
	}
}

func TestProgressExport(t *testing.T) {
	router, _ := setupProjectTest(t)
	token := testutil.DefaultTestToken()

	project := createProject(t, router, token, "Jalan Lingkar", nil)
	projectID := project["id"].(string)

	testutil.DoRequest(router, "POST", "/api/v1/project-progress", map[string]string{
		"id_kegiatan":         projectID,
		"kode_item_pekerjaan": "1.1",
		"nama_item_pekerjaan": "Galian Tanah",
		"volume":              "10",
		"harga_satuan":        "50000",
		"minggu":              "1",
		"progress":            "25",
	}, token)

	w := testutil.DoRequest(router, "GET", "/api/v1/projects/"+projectID+"/progress-export", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "spreadsheetml") {
		t.Errorf("Expected xlsx content type, got %q", ct)
	}
	if w.Body.Len() == 0 {
		t.Error("Expected non-empty workbook body")
	}
}
