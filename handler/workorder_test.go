package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/model"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/service"
)

func workOrderRouter(tenant string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewWorkOrderHandler(nil, NewDocumentHandler(testPipeline()))

	router := gin.New()
	router.Use(asTenant(tenant))
	router.POST("/api/work-orders", h.Submit)
	router.GET("/api/work-orders", h.List)
	router.GET("/api/work-orders/export/csv", h.ExportCSV)
	router.GET("/api/work-orders/export/dates", h.ExportDates)
	router.GET("/api/work-orders/:id", h.Get)
	router.PUT("/api/work-orders/:id/status", h.UpdateStatus)
	router.DELETE("/api/work-orders/:id", h.Delete)
	router.POST("/api/work-orders/:id/photos", h.UploadPhoto)
	return router
}

func submitWorkOrder(t *testing.T, router *gin.Engine, body string) string {
	t.Helper()

	req := httptest.NewRequest("POST", "/api/work-orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Submit failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse submit response: %v", err)
	}
	if resp["id"] == "" {
		t.Fatal("Expected non-empty id")
	}
	return resp["id"]
}

func TestSubmitWorkOrder(t *testing.T) {
	router := workOrderRouter(model.TenantPrintersUAE)

	// Portal alias keys are accepted and stored canonically.
	id := submitWorkOrder(t, router, `{
		"customerName": "Ali Hassan",
		"jobNumber": "WO-100",
		"requestDescription": "Toner streaks"
	}`)
	defer service.GetWorkOrderStore().Delete(id)

	record := service.GetWorkOrderStore().Get(id)
	if record == nil {
		t.Fatal("Record should be in the store")
	}
	if record.Status != model.StatusOpen {
		t.Errorf("Expected status %q, got %q", model.StatusOpen, record.Status)
	}
	if record.Order.RequesterName != "Ali Hassan" {
		t.Errorf("Alias customerName should map to requesterName, got %q", record.Order.RequesterName)
	}
	if record.Order.ReferenceNumber != "WO-100" {
		t.Errorf("Alias jobNumber should map to referenceNumber, got %q", record.Order.ReferenceNumber)
	}
}

func TestSubmitCompletedWorkOrder(t *testing.T) {
	router := workOrderRouter(model.TenantITService)

	id := submitWorkOrder(t, router, `{
		"requesterName": "Sara M",
		"workCompletedBy": "Tech 7",
		"completionDate": "2025-03-01"
	}`)
	defer service.GetWorkOrderStore().Delete(id)

	record := service.GetWorkOrderStore().Get(id)
	if record.Status != model.StatusCompleted {
		t.Errorf("Submission with completion fields should be stored completed, got %q", record.Status)
	}
}

func TestGetWorkOrderTenantScoping(t *testing.T) {
	printersRouter := workOrderRouter(model.TenantPrintersUAE)
	g3Router := workOrderRouter(model.TenantG3Facility)

	id := submitWorkOrder(t, printersRouter, `{"requesterName": "Ali Hassan"}`)
	defer service.GetWorkOrderStore().Delete(id)

	// Owner tenant sees it.
	req := httptest.NewRequest("GET", "/api/work-orders/"+id, nil)
	w := httptest.NewRecorder()
	printersRouter.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200 for owner tenant, got %d", w.Code)
	}

	// Another tenant gets 404, not 403, so existence is not revealed.
	req = httptest.NewRequest("GET", "/api/work-orders/"+id, nil)
	w = httptest.NewRecorder()
	g3Router.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for another tenant, got %d", w.Code)
	}
}

func TestListWorkOrders(t *testing.T) {
	router := workOrderRouter(model.TenantG3Facility)

	id := submitWorkOrder(t, router, `{
		"clientName": "JLT Facilities",
		"workPhotos": [{"beforePhoto": "data:image/png;base64,AAAA", "afterPhoto": "data:image/png;base64,BBBB"}]
	}`)
	defer service.GetWorkOrderStore().Delete(id)

	req := httptest.NewRequest("GET", "/api/work-orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		WorkOrders []map[string]any `json:"work_orders"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	found := false
	for _, item := range resp.WorkOrders {
		if item["id"] == id {
			found = true
			if item["requester_name"] != "JLT Facilities" {
				t.Errorf("Expected requester_name 'JLT Facilities', got %v", item["requester_name"])
			}
			if item["photo_pairs"] != float64(1) {
				t.Errorf("Expected photo_pairs 1, got %v", item["photo_pairs"])
			}
		}
	}
	if !found {
		t.Error("Submitted record should appear in the list")
	}

	// The listing never carries embedded image payloads.
	if strings.Contains(w.Body.String(), "data:image") {
		t.Error("List response must not include image data")
	}
}

func TestUpdateWorkOrderStatus(t *testing.T) {
	router := workOrderRouter(model.TenantPrintersUAE)

	id := submitWorkOrder(t, router, `{"requesterName": "Ali Hassan"}`)
	defer service.GetWorkOrderStore().Delete(id)

	req := httptest.NewRequest("PUT", "/api/work-orders/"+id+"/status",
		bytes.NewBufferString(`{"status":"in-progress"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", w.Code, w.Body.String())
	}
	if got := service.GetWorkOrderStore().Get(id).Status; got != model.StatusInProgress {
		t.Errorf("Expected status %q, got %q", model.StatusInProgress, got)
	}

	// Unknown status is rejected.
	req = httptest.NewRequest("PUT", "/api/work-orders/"+id+"/status",
		bytes.NewBufferString(`{"status":"archived"}`))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for unknown status, got %d", w.Code)
	}
}

func TestDeleteWorkOrder(t *testing.T) {
	router := workOrderRouter(model.TenantPrintersUAE)

	id := submitWorkOrder(t, router, `{"requesterName": "Ali Hassan"}`)

	req := httptest.NewRequest("DELETE", "/api/work-orders/"+id, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if service.GetWorkOrderStore().Get(id) != nil {
		t.Error("Record should be gone after delete")
	}

	// Second delete is a 404.
	req = httptest.NewRequest("DELETE", "/api/work-orders/"+id, nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for missing record, got %d", w.Code)
	}
}

func TestUploadPhotoWithoutStore(t *testing.T) {
	router := workOrderRouter(model.TenantPrintersUAE)

	id := submitWorkOrder(t, router, `{"requesterName": "Ali Hassan"}`)
	defer service.GetWorkOrderStore().Delete(id)

	req := httptest.NewRequest("POST", "/api/work-orders/"+id+"/photos", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("Expected status 503 when photo storage is not configured, got %d", w.Code)
	}
}

func TestExportCSV(t *testing.T) {
	router := workOrderRouter(model.TenantITService)

	id := submitWorkOrder(t, router, `{
		"requesterName": "Sara M",
		"ticketNumber": "IT-555",
		"completionDate": "2025-03-01",
		"workCompletedBy": "Tech 7"
	}`)
	defer service.GetWorkOrderStore().Delete(id)

	req := httptest.NewRequest("GET", "/api/work-orders/export/csv", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Expected text/csv content type, got %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "attachment") {
		t.Errorf("Expected attachment disposition, got %q", cd)
	}
	if !strings.Contains(w.Body.String(), "IT-555") {
		t.Error("CSV should contain the reference number")
	}
}

func TestExportDates(t *testing.T) {
	router := workOrderRouter(model.TenantG3Facility)

	id := submitWorkOrder(t, router, `{
		"clientName": "JLT Facilities",
		"completionDate": "2025-04-15",
		"workCompletedBy": "Crew 1"
	}`)
	defer service.GetWorkOrderStore().Delete(id)

	req := httptest.NewRequest("GET", "/api/work-orders/export/dates", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", w.Code)
	}

	var resp struct {
		Dates []string `json:"dates"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}

	found := false
	for _, d := range resp.Dates {
		if d == "2025-04-15" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 2025-04-15 in dates, got %v", resp.Dates)
	}
}
