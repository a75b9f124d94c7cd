package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/till-api/internal/application/service"
	"github.com/sangkips/till-api/internal/navigation"
	"github.com/sangkips/till-api/internal/presentation/http/dto/request"
	"github.com/sangkips/till-api/internal/presentation/http/dto/response"
	"github.com/sangkips/till-api/internal/sale"
	"github.com/sangkips/till-api/pkg/apperror"
)

// TerminalHandler drives the navigation state of a till terminal
type TerminalHandler struct {
	terminals *service.TerminalService
}

// NewTerminalHandler creates a new terminal handler
func NewTerminalHandler(terminals *service.TerminalService) *TerminalHandler {
	return &TerminalHandler{terminals: terminals}
}

// GetState returns the current screen, draft and dashboard of the terminal
func (h *TerminalHandler) GetState(c *gin.Context) {
	response.OK(c, "Terminal state retrieved", h.terminals.State(GetTerminalID(c)))
}

// Fire sends one intent to the terminal. An intent that does not apply on
// the current screen is not an error: the response says applied=false.
func (h *TerminalHandler) Fire(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.FireIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}
	intent, err := navigation.ParseIntent(req.Intent)
	if err != nil {
		response.Error(c, apperror.NewValidationError([]apperror.FieldError{{Field: "intent", Message: err.Error()}}))
		return
	}

	out, err := h.terminals.Fire(c.Request.Context(), &service.FireInput{
		TerminalID: GetTerminalID(c),
		UserID:     *userID,
		Intent:     intent,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	respondFire(c, out)
}

// Complete stores the open draft and returns the terminal to the menu
func (h *TerminalHandler) Complete(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	out, err := h.terminals.CompleteSale(c.Request.Context(), GetTerminalID(c), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	respondFire(c, out)
}

// UpdateHeader replaces the header of the open draft
func (h *TerminalHandler) UpdateHeader(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.UpdateHeaderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.FromValidation(err))
		return
	}

	state, err := h.terminals.UpdateHeader(c.Request.Context(), GetTerminalID(c), *userID, sale.Header{
		DocumentDate:       req.DocumentDate,
		DeliveryDate:       req.DeliveryDate,
		DueDate:            req.DueDate,
		Reference:          req.Reference,
		WarehouseCode:      req.WarehouseCode,
		SalesRepCode:       req.SalesRepCode,
		VATInclusive:       req.VATInclusive,
		DeliveryMethod:     req.DeliveryMethod,
		AddressSelection:   req.AddressSelection,
		OriginalInvoiceRef: req.OriginalInvoiceRef,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Header updated", state)
}

// AddLine appends a line to the open draft
func (h *TerminalHandler) AddLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	var req request.AddLineRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.FromValidation(err))
		return
	}

	state, err := h.terminals.AddLine(c.Request.Context(), GetTerminalID(c), *userID, sale.Line{
		ProductID:      req.ProductID,
		Description:    req.Description,
		Quantity:       req.Quantity,
		UnitPrice:      req.UnitPrice,
		DiscountAmount: req.DiscountAmount,
		DiscountType:   req.DiscountType,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Line added", state)
}

// RemoveLine drops a line of the open draft by its zero-based position
func (h *TerminalHandler) RemoveLine(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, "Invalid line index")
		return
	}

	state, err := h.terminals.RemoveLine(c.Request.Context(), GetTerminalID(c), *userID, index)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Line removed", state)
}

func respondFire(c *gin.Context, out *service.FireOutput) {
	body := gin.H{
		"state":   out.State,
		"applied": out.Applied,
	}
	if out.Transaction != nil {
		body["transaction"] = out.Transaction
	}
	message := "Intent applied"
	if !out.Applied {
		message = "Intent not applicable on the current screen"
	}
	response.OK(c, message, body)
}
