package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	coorddomain "github.com/smallbiznis/tavolo/internal/coordinator/domain"
)

type shiftHandoverRequest struct {
	FromStaffID string `json:"from_staff_id"`
	ToStaffID   string `json:"to_staff_id"`
}

func (s *Server) ShiftHandover(c *gin.Context) {
	var req shiftHandoverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.coordinatorSvc.ShiftHandover(c.Request.Context(), coorddomain.ShiftHandoverRequest{
		FromStaffID: strings.TrimSpace(req.FromStaffID),
		ToStaffID:   strings.TrimSpace(req.ToStaffID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type combineOrdersRequest struct {
	TransactionIDs []string `json:"transaction_ids"`
	TargetTableID  string   `json:"target_table_id"`
	TargetStaffID  string   `json:"target_staff_id"`
	Notes          string   `json:"notes,omitempty"`
}

func (s *Server) CombineOrders(c *gin.Context) {
	var req combineOrdersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.coordinatorSvc.Combine(c.Request.Context(), coorddomain.CombineRequest{
		TransactionIDs: req.TransactionIDs,
		TargetTableID:  strings.TrimSpace(req.TargetTableID),
		TargetStaffID:  strings.TrimSpace(req.TargetStaffID),
		Notes:          strings.TrimSpace(req.Notes),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
