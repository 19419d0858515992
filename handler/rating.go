package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/middleware"
	"github.com/roshanahmedpuae-max/Serviceportals-sub001/service"
)

// RatingHandler serves the feedback-link routes. Issuing is protected;
// submission is public because the link lands with the customer.
type RatingHandler struct {
	ratings *service.RatingService
	store   *service.WorkOrderStore
}

func NewRatingHandler(ratings *service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratings: ratings,
		store:   service.GetWorkOrderStore(),
	}
}

// Issue creates a rating token for a completed work order of the caller's
// tenant.
func (h *RatingHandler) Issue(c *gin.Context) {
	tenant := middleware.GetTenant(c)

	var req struct {
		WorkOrderID string `json:"work_order_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	record := h.store.Get(req.WorkOrderID)
	if record == nil || record.Tenant != tenant {
		c.JSON(http.StatusNotFound, gin.H{"error": "Work order not found"})
		return
	}

	token := h.ratings.IssueToken(tenant, req.WorkOrderID)
	c.JSON(http.StatusOK, gin.H{"token": token})
}

// Submit records a customer's score against a token. Public route.
func (h *RatingHandler) Submit(c *gin.Context) {
	var req struct {
		Token   string `json:"token" binding:"required"`
		Score   int    `json:"score" binding:"required"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	rating, err := h.ratings.Submit(req.Token, req.Score, req.Comment)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"work_order_id": rating.WorkOrderID,
		"score":         rating.Score,
	})
}

// List returns the ratings submitted for the caller's tenant.
func (h *RatingHandler) List(c *gin.Context) {
	tenant := middleware.GetTenant(c)
	c.JSON(http.StatusOK, gin.H{"ratings": h.ratings.ListByTenant(tenant)})
}
