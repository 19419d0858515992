package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/middleware"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/model"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/pkg/logger"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/service"
)

// DocumentHandler exposes the generation pipeline over HTTP. Each request
// is a single unit of work: it completes with an envelope or fails with a
// coded error; nothing is persisted either way.
type DocumentHandler struct {
	pipeline *service.Pipeline
}

func NewDocumentHandler(pipeline *service.Pipeline) *DocumentHandler {
	return &DocumentHandler{pipeline: pipeline}
}

// Generate accepts a raw portal payload and returns the artifact envelope.
// Arbitrary extra keys in the body are tolerated and ignored. The caller's
// token tenant wins over anything embedded in the payload.
func (h *DocumentHandler) Generate(c *gin.Context) {
	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	tenant := middleware.GetTenant(c)

	envelope, err := h.pipeline.Generate(c.Request.Context(), payload, tenant, time.Now())
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// GenerateFromRecord pre-fills the pipeline from a stored work order and
// runs it. The stored canonical record round-trips through the normalizer,
// which is idempotent for canonical input.
func (h *DocumentHandler) GenerateFromRecord(c *gin.Context, store *service.WorkOrderStore) {
	tenant := middleware.GetTenant(c)
	id := c.Param("id")

	record := store.Get(id)
	if record == nil || record.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		return
	}

	payload := recordPayload(&record.Order)

	envelope, err := h.pipeline.Generate(c.Request.Context(), payload, tenant, time.Now())
	if err != nil {
		h.respondPipelineError(c, err)
		return
	}

	c.JSON(http.StatusOK, envelope)
}

// respondPipelineError maps the pipeline taxonomy onto HTTP responses with
// a stable error code. Only the code, message and request ID go out; field
// values never do.
func (h *DocumentHandler) respondPipelineError(c *gin.Context, err error) {
	requestID := middleware.GetRequestID(c)

	var status int
	var code string
	switch {
	case errors.Is(err, service.ErrIntegrityFailure):
		status, code = http.StatusUnprocessableEntity, "INTEGRITY_CHECK_FAILED"
	case errors.Is(err, service.ErrEncodingFailure):
		status, code = http.StatusUnprocessableEntity, "ENCODING_FAILED"
	default:
		status, code = http.StatusInternalServerError, "RENDER_FAILED"
	}

	logger.Error(c.Request.Context(), "document generation failed",
		"error", err,
		"code", code,
	)

	c.JSON(status, gin.H{
		"error":      "Document generation failed",
		"code":       code,
		"request_id": requestID,
	})
}

// recordPayload flattens a canonical record back into the pipeline's input
// shape.
func recordPayload(order *model.WorkOrder) map[string]any {
	photos := make([]any, 0, len(order.WorkPhotos))
	for _, p := range order.WorkPhotos {
		photos = append(photos, map[string]any{
			"id":          p.ID,
			"beforePhoto": p.BeforePhoto,
			"afterPhoto":  p.AfterPhoto,
		})
	}

	return map[string]any{
		"requesterName":        order.RequesterName,
		"contactNumber":        order.ContactNumber,
		"email":                order.Email,
		"locationAddress":      order.LocationAddress,
		"customerType":         order.CustomerType,
		"serviceType":          order.ServiceType,
		"scheduledDateTime":    order.ScheduledDateTime,
		"referenceNumber":      order.ReferenceNumber,
		"priorityLevel":        order.PriorityLevel,
		"paymentMethod":        order.PaymentMethod,
		"workAssignedTo":       order.WorkAssignedTo,
		"requestDescription":   order.RequestDescription,
		"actionsTaken":         order.ActionsTaken,
		"workPhotos":           photos,
		"workCompletedBy":      order.WorkCompletedBy,
		"completionDate":       order.CompletionDate,
		"technicianSignature":  order.TechnicianSignature,
		"customerApprovalName": order.CustomerApprovalName,
		"customerSignature":    order.CustomerSignature,
		"customerApprovalDate": order.CustomerApprovalDate,
	}
}
