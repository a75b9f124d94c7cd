package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/application/service"
	"github.com/sangkips/till-api/internal/presentation/http/dto/request"
	"github.com/sangkips/till-api/internal/presentation/http/dto/response"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
	statsService   *service.StatsService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, statsService *service.StatsService) *PrinterHandler {
	return &PrinterHandler{printerService: printerService, statsService: statsService}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// PrintReceipt prints the slip of a committed transaction.
func (h *PrinterHandler) PrintReceipt(c *gin.Context) {
	var req request.PrintReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request: "+err.Error())
		return
	}

	id, err := uuid.Parse(req.TransactionID)
	if err != nil {
		response.BadRequest(c, "Invalid ID format")
		return
	}

	receipt, err := h.printerService.PrintTransactionReceipt(c.Request.Context(), id, GetUsername(c))
	if err != nil {
		// If receipt was built but printing failed, return receipt with warning
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipt printed successfully", gin.H{"receipt": receipt})
}

// PrintXReport prints the sales summary of a period, today by default.
func (h *PrinterHandler) PrintXReport(c *gin.Context) {
	var req request.PrintXReportRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "Invalid request: "+err.Error())
			return
		}
	}

	input, err := statsInputFrom(req.From, req.To, "sales-persons", "", 0, req.TillNumber)
	if err != nil {
		response.Error(c, err)
		return
	}
	rep, err := h.statsService.Build(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	if _, err := h.printerService.PrintXReport(c.Request.Context(), rep, GetUsername(c)); err != nil {
		response.OK(c, "X-report generated but printing failed", gin.H{
			"report":  rep,
			"warning": err.Error(),
		})
		return
	}

	response.OK(c, "X-report printed successfully", gin.H{"report": rep})
}
