package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	billreqdomain "github.com/smallbiznis/tavolo/internal/billrequest/domain"
)

type createBillRequest struct {
	TransactionID string `json:"transaction_id"`
	StaffID       string `json:"staff_id"`
	Notes         string `json:"notes,omitempty"`
}

func (s *Server) CreatePrintBillRequest(c *gin.Context) {
	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.billReqSvc.CreatePrintBill(c.Request.Context(), billreqdomain.CreateRequest{
		TransactionID: strings.TrimSpace(req.TransactionID),
		StaffID:       strings.TrimSpace(req.StaffID),
		Notes:         req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type createBillRequestsForTable struct {
	TableID string `json:"table_id"`
	StaffID string `json:"staff_id"`
	Notes   string `json:"notes,omitempty"`
}

func (s *Server) CreatePrintBillRequestsForTable(c *gin.Context) {
	var req createBillRequestsForTable
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.billReqSvc.CreatePrintBillForTable(c.Request.Context(), billreqdomain.CreateForTableRequest{
		TableID: strings.TrimSpace(req.TableID),
		StaffID: strings.TrimSpace(req.StaffID),
		Notes:   req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) CreatePayEntireBillRequest(c *gin.Context) {
	var req createBillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.billReqSvc.CreatePayEntireBill(c.Request.Context(), billreqdomain.CreateRequest{
		TransactionID: strings.TrimSpace(req.TransactionID),
		StaffID:       strings.TrimSpace(req.StaffID),
		Notes:         req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListPendingRequests(c *gin.Context) {
	kind := billreqdomain.Kind(strings.TrimSpace(c.Query("kind")))

	resp, err := s.billReqSvc.ListPending(c.Request.Context(), kind)
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type completeRequest struct {
	RequestID   string `json:"request_id"`
	CompletedBy string `json:"completed_by,omitempty"`
}

func (s *Server) CompleteRequest(c *gin.Context) {
	var req completeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	done, err := s.billReqSvc.Complete(c.Request.Context(), billreqdomain.CompleteRequest{
		RequestID:   strings.TrimSpace(req.RequestID),
		CompletedBy: strings.TrimSpace(req.CompletedBy),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"completed": done}})
}

type cancelRequest struct {
	RequestID string `json:"request_id"`
}

func (s *Server) CancelRequest(c *gin.Context) {
	var req cancelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	done, err := s.billReqSvc.Cancel(c.Request.Context(), strings.TrimSpace(req.RequestID))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": gin.H{"cancelled": done}})
}
