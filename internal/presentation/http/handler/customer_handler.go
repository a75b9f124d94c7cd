package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/till-api/internal/application/service"
	"github.com/sangkips/till-api/internal/presentation/http/dto/request"
	"github.com/sangkips/till-api/internal/presentation/http/dto/response"
	"github.com/sangkips/till-api/pkg/apperror"
	"github.com/sangkips/till-api/pkg/pagination"
)

// CustomerHandler handles customer-related HTTP requests
type CustomerHandler struct {
	customerService *service.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(customerService *service.CustomerService) *CustomerHandler {
	return &CustomerHandler{customerService: customerService}
}

// Search finds customers by name, account number, phone or any of them
func (h *CustomerHandler) Search(c *gin.Context) {
	var req request.SearchCustomersRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, apperror.FromValidation(err))
		return
	}

	mode, err := service.ParseSearchMode(req.Mode)
	if err != nil {
		response.Error(c, err)
		return
	}

	params := &pagination.PaginationParams{Page: req.Page, PerPage: req.PerPage}
	result, err := h.customerService.SearchCustomers(c.Request.Context(), req.Query, mode, params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Customers retrieved successfully", result)
}

// Get handles retrieving a customer
func (h *CustomerHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		response.BadRequest(c, "Invalid customer ID")
		return
	}

	customer, err := h.customerService.GetCustomer(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Customer retrieved successfully", customer)
}

// Create handles creating a customer
func (h *CustomerHandler) Create(c *gin.Context) {
	var req request.CreateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.FromValidation(err))
		return
	}

	customer, err := h.customerService.CreateCustomer(c.Request.Context(), &service.CreateCustomerInput{
		AccountNumber:   req.AccountNumber,
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Address:         req.Address,
		DeliveryAddress: req.DeliveryAddress,
		OnAccount:       req.OnAccount,
		CreditLimit:     req.CreditLimit,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Customer created successfully", customer)
}
