package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/till-api/internal/application/service"
	"github.com/sangkips/till-api/internal/domain/enum"
	"github.com/sangkips/till-api/internal/domain/repository"
	"github.com/sangkips/till-api/internal/presentation/http/dto/request"
	"github.com/sangkips/till-api/internal/presentation/http/dto/response"
	"github.com/sangkips/till-api/internal/reporting"
	"github.com/sangkips/till-api/pkg/apperror"
	"github.com/sangkips/till-api/pkg/pagination"
)

// TransactionHandler serves committed till documents
type TransactionHandler struct {
	txnService *service.TransactionService
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(txnService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{txnService: txnService}
}

// List returns one page of transactions matching the query filters
func (h *TransactionHandler) List(c *gin.Context) {
	var req request.TransactionFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.FromValidation(err))
		return
	}

	filter, err := transactionFilter(&req)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.txnService.FetchTransactions(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Get returns a transaction with its lines
func (h *TransactionHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.txnService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

// Import stores transactions exported by another till system. The body is
// a JSON array of records, or an object holding them under "data".
func (h *TransactionHandler) Import(c *gin.Context) {
	userID := GetUserID(c)
	if userID == nil {
		response.Unauthorized(c, "User not authenticated")
		return
	}

	records, err := reporting.DecodeRecords(c.Request.Body)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	if len(records) == 0 {
		response.BadRequest(c, "No records to import")
		return
	}

	result, err := h.txnService.Import(c.Request.Context(), records, *userID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transactions imported", result)
}

func transactionFilter(req *request.TransactionFilterRequest) (*repository.TransactionFilter, error) {
	from, err := parseTimeParam("from", req.From, false)
	if err != nil {
		return nil, err
	}
	to, err := parseTimeParam("to", req.To, true)
	if err != nil {
		return nil, err
	}

	filter := &repository.TransactionFilter{
		TillNumber: req.TillNumber,
		WithLines:  req.WithLines,
		Pagination: pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage},
	}
	if !from.IsZero() {
		filter.StartDate = &from
	}
	if !to.IsZero() {
		filter.EndDate = &to
	}
	if req.Kind != "" {
		kind, err := enum.ParseSaleKind(req.Kind)
		if err != nil {
			return nil, apperror.NewValidationError([]apperror.FieldError{{Field: "kind", Message: err.Error()}})
		}
		filter.Kinds = []enum.SaleKind{kind}
	}
	if req.CustomerID != "" {
		id, err := uuid.Parse(req.CustomerID)
		if err != nil {
			return nil, apperror.NewBadRequestError("Invalid customer ID")
		}
		filter.CustomerID = &id
	}
	return filter, nil
}
