package handler

import (
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/middleware"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/model"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/service"
)

// WorkOrderHandler serves the record-store routes: CRUD over submitted work
// orders, photo attachment upload and the CSV/date-list exports. These are
// read/write paths over the store and never invoke the pipeline themselves.
type WorkOrderHandler struct {
	store      *service.WorkOrderStore
	photoStore *service.PhotoStore
	document   *DocumentHandler
}

func NewWorkOrderHandler(photoStore *service.PhotoStore, document *DocumentHandler) *WorkOrderHandler {
	return &WorkOrderHandler{
		store:      service.GetWorkOrderStore(),
		photoStore: photoStore,
		document:   document,
	}
}

// Submit stores a new work-order submission. The payload goes through the
// normalizer so the stored record is already canonical; anything a portal
// sends is accepted.
func (h *WorkOrderHandler) Submit(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	order := service.NormalizeSubmission(payload, tenant)

	record := &model.Record{
		ID:        uuid.New().String(),
		Tenant:    tenant,
		Status:    model.StatusOpen,
		Order:     *order,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if order.WorkCompletedBy != "" && order.CompletionDate != "" {
		record.Status = model.StatusCompleted
	}
	h.store.Save(record)

	c.JSON(http.StatusOK, gin.H{
		"id":     record.ID,
		"status": record.Status,
	})
}

// List returns all work orders for the current tenant, without embedded
// image payloads.
func (h *WorkOrderHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	records := h.store.GetByTenant(tenant)

	result := make([]gin.H, len(records))
	for i, r := range records {
		result[i] = gin.H{
			"id":              r.ID,
			"status":          r.Status,
			"requester_name":  r.Order.RequesterName,
			"customer_type":   r.Order.CustomerType,
			"assigned_to":     r.Order.WorkAssignedTo,
			"completion_date": r.Order.CompletionDate,
			"photo_pairs":     len(r.Order.WorkPhotos),
			"created_at":      r.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
			"updated_at":      r.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		}
	}

	c.JSON(http.StatusOK, gin.H{"work_orders": result})
}

// Get returns a single work order with the full canonical record
func (h *WorkOrderHandler) Get(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	record := h.store.Get(id)
	if record == nil || record.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		return
	}

	c.JSON(http.StatusOK, record)
}

// UpdateStatus moves a work order through open / in-progress / completed
func (h *WorkOrderHandler) UpdateStatus(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	record := h.store.Get(id)
	if record == nil || record.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}
	switch req.Status {
	case model.StatusOpen, model.StatusInProgress, model.StatusCompleted:
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status"})
		return
	}

	h.store.UpdateStatus(id, req.Status, "")
	c.JSON(http.StatusOK, gin.H{"id": id, "status": req.Status})
}

// Delete deletes a work order
func (h *WorkOrderHandler) Delete(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	record := h.store.Get(id)
	if record == nil || record.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		return
	}

	h.store.Delete(id)

	c.JSON(http.StatusOK, gin.H{"message": "Work order deleted"})
}

// UploadPhoto attaches a before/after photo to a work order via object
// storage and records its presigned URL.
func (h *WorkOrderHandler) UploadPhoto(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	record := h.store.Get(id)
	if record == nil || record.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		return
	}
	if h.photoStore == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Photo storage not configured"})
		return
	}

	kind := c.DefaultPostForm("kind", "before")
	if kind != "before" && kind != "after" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "kind must be 'before' or 'after'"})
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No file provided"})
		return
	}
	defer file.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if ext != ".png" && ext != ".jpg" && ext != ".jpeg" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Only PNG and JPEG photos are allowed"})
		return
	}
	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		if ext == ".png" {
			contentType = "image/png"
		} else {
			contentType = "image/jpeg"
		}
	}

	objectName, err := h.photoStore.UploadPhoto(c.Request.Context(), tenant, id, kind, header.Filename, file, header.Size, contentType)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store photo"})
		return
	}

	url, err := h.photoStore.GetPresignedURL(c.Request.Context(), objectName)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate URL"})
		return
	}

	h.store.AppendPhotoURL(id, url)

	c.JSON(http.StatusOK, gin.H{"id": id, "photo_url": url})
}

// GenerateDocument runs the pipeline pre-filled from a stored record.
func (h *WorkOrderHandler) GenerateDocument(c *gin.Context) {
	h.document.GenerateFromRecord(c, h.store)
}

// ExportCSV streams the tenant's work orders as a CSV attachment.
func (h *WorkOrderHandler) ExportCSV(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	records := h.store.GetByTenant(tenant)

	data, err := service.WorkOrdersCSV(records)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to build CSV export"})
		return
	}

	filename := "work-orders-" + time.Now().UTC().Format("2006-01-02") + ".csv"
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", data)
}

// ExportDates returns the distinct completion dates for the tenant.
func (h *WorkOrderHandler) ExportDates(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	records := h.store.GetByTenant(tenant)

	c.JSON(http.StatusOK, gin.H{"dates": service.CompletionDates(records)})
}
