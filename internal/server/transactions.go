package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	coorddomain "github.com/smallbiznis/tavolo/internal/coordinator/domain"
	trxdomain "github.com/smallbiznis/tavolo/internal/transaction/domain"
)

func (s *Server) ListTransactions(c *gin.Context) {
	var query struct {
		StaffID string `form:"staff_id"`
		TableID string `form:"table_id"`
		Status  string `form:"status"`
	}
	if err := c.ShouldBindQuery(&query); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.coordinatorSvc.ListTransactions(c.Request.Context(), coorddomain.ListTransactionsRequest{
		StaffID: strings.TrimSpace(query.StaffID),
		TableID: strings.TrimSpace(query.TableID),
		Status:  trxdomain.TransactionStatus(strings.TrimSpace(query.Status)),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) GetTransaction(c *gin.Context) {
	resp, err := s.coordinatorSvc.GetTransaction(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

func (s *Server) ListTaxAdjustments(c *gin.Context) {
	resp, err := s.coordinatorSvc.ListTaxAdjustments(c.Request.Context(), strings.TrimSpace(c.Param("id")))
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type addNotesRequest struct {
	StaffID string `json:"staff_id"`
	Notes   string `json:"notes"`
}

func (s *Server) AddNotes(c *gin.Context) {
	var req addNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.coordinatorSvc.AddNotes(c.Request.Context(), coorddomain.AddNotesRequest{
		TransactionID: strings.TrimSpace(c.Param("id")),
		StaffID:       strings.TrimSpace(req.StaffID),
		Notes:         req.Notes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type transferServerRequest struct {
	ToStaffID string `json:"to_staff_id"`
}

func (s *Server) TransferServer(c *gin.Context) {
	var req transferServerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.coordinatorSvc.TransferServer(c.Request.Context(), coorddomain.TransferServerRequest{
		TransactionID: strings.TrimSpace(c.Param("id")),
		ToStaffID:     strings.TrimSpace(req.ToStaffID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type moveOrderRequest struct {
	ToTableID string `json:"to_table_id"`
}

func (s *Server) MoveOrder(c *gin.Context) {
	var req moveOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.coordinatorSvc.MoveOrder(c.Request.Context(), coorddomain.MoveOrderRequest{
		TransactionID: strings.TrimSpace(c.Param("id")),
		ToTableID:     strings.TrimSpace(req.ToTableID),
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type refireRequest struct {
	StaffID     string `json:"staff_id"`
	Reason      string `json:"reason"`
	ItemIndexes []int  `json:"item_indexes,omitempty"`
}

func (s *Server) Refire(c *gin.Context) {
	var req refireRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.coordinatorSvc.Refire(c.Request.Context(), coorddomain.RefireRequest{
		TransactionID: strings.TrimSpace(c.Param("id")),
		StaffID:       strings.TrimSpace(req.StaffID),
		Reason:        req.Reason,
		ItemIndexes:   req.ItemIndexes,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}

type removeTaxesRequest struct {
	StaffID string `json:"staff_id"`
	Reason  string `json:"reason"`
}

func (s *Server) RemoveTaxes(c *gin.Context) {
	var req removeTaxesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		AbortWithError(c, ErrInvalidRequest)
		return
	}

	resp, err := s.coordinatorSvc.RemoveTaxesAndFees(c.Request.Context(), coorddomain.RemoveTaxesRequest{
		TransactionID: strings.TrimSpace(c.Param("id")),
		StaffID:       strings.TrimSpace(req.StaffID),
		Reason:        req.Reason,
	})
	if err != nil {
		AbortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": resp})
}
