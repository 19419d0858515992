package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/config"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/model"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/service"
)

func ratingRouter(tenant string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	ratings := service.NewRatingService(&config.RatingConfig{
		Secret:           "rating-test-secret",
		TokenExpireHours: 1,
	})
	h := NewRatingHandler(ratings)

	router := gin.New()
	// Submission is public; the link lands with the customer.
	router.POST("/api/ratings/submit", h.Submit)

	protected := router.Group("/api", asTenant(tenant))
	protected.POST("/ratings", h.Issue)
	protected.GET("/ratings", h.List)
	return router
}

func storedRecord(t *testing.T, tenant string) *model.Record {
	t.Helper()

	record := &model.Record{
		ID:        uuid.New().String(),
		Tenant:    tenant,
		Status:    model.StatusCompleted,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	service.GetWorkOrderStore().Save(record)
	t.Cleanup(func() { service.GetWorkOrderStore().Delete(record.ID) })
	return record
}

func TestIssueAndSubmitRating(t *testing.T) {
	router := ratingRouter(model.TenantPrintersUAE)
	record := storedRecord(t, model.TenantPrintersUAE)

	req := httptest.NewRequest("POST", "/api/ratings",
		bytes.NewBufferString(`{"work_order_id":"`+record.ID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Issue failed with status %d: %s", w.Code, w.Body.String())
	}

	var issued map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &issued); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if issued["token"] == "" {
		t.Fatal("Expected non-empty token")
	}

	// Customer submits against the token on the public route.
	body, _ := json.Marshal(map[string]any{
		"token":   issued["token"],
		"score":   5,
		"comment": "Quick fix, friendly technician",
	})
	req = httptest.NewRequest("POST", "/api/ratings/submit", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("Submit failed with status %d: %s", w.Code, w.Body.String())
	}

	var submitted map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &submitted); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if submitted["work_order_id"] != record.ID {
		t.Errorf("Expected work_order_id %q, got %v", record.ID, submitted["work_order_id"])
	}
	if submitted["score"] != float64(5) {
		t.Errorf("Expected score 5, got %v", submitted["score"])
	}

	// The rating shows up for the tenant.
	req = httptest.NewRequest("GET", "/api/ratings", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("List failed with status %d", w.Code)
	}

	var listed struct {
		Ratings []model.Rating `json:"ratings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &listed); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(listed.Ratings) != 1 {
		t.Fatalf("Expected 1 rating, got %d", len(listed.Ratings))
	}
	if listed.Ratings[0].WorkOrderID != record.ID {
		t.Errorf("Expected work order %q, got %q", record.ID, listed.Ratings[0].WorkOrderID)
	}
}

func TestIssueRatingUnknownWorkOrder(t *testing.T) {
	router := ratingRouter(model.TenantPrintersUAE)

	req := httptest.NewRequest("POST", "/api/ratings",
		bytes.NewBufferString(`{"work_order_id":"no-such-id"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", w.Code)
	}
}

func TestIssueRatingWrongTenant(t *testing.T) {
	router := ratingRouter(model.TenantG3Facility)
	record := storedRecord(t, model.TenantPrintersUAE)

	req := httptest.NewRequest("POST", "/api/ratings",
		bytes.NewBufferString(`{"work_order_id":"`+record.ID+`"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("Expected status 404 for another tenant's record, got %d", w.Code)
	}
}

func TestSubmitRatingBadToken(t *testing.T) {
	router := ratingRouter(model.TenantPrintersUAE)

	req := httptest.NewRequest("POST", "/api/ratings/submit",
		bytes.NewBufferString(`{"token":"bogus","score":4}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for a bad token, got %d", w.Code)
	}
}
