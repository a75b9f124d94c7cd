package request

// UpdateSettingsRequest changes the till defaults of the current user.
// Omitted fields keep their value.
type UpdateSettingsRequest struct {
	DefaultWarehouse  *string `json:"default_warehouse" binding:"omitempty,max=50"`
	DefaultTillNumber *string `json:"default_till_number" binding:"omitempty,max=20"`
	SalesRepCode      *string `json:"sales_rep_code" binding:"omitempty,max=50"`
	DeliveryMethod    *string `json:"delivery_method" binding:"omitempty,oneof=collect deliver courier"`
	VATInclusive      *bool   `json:"vat_inclusive"`
	Currency          *string `json:"currency" binding:"omitempty,len=3"`
	Language          *string `json:"language" binding:"omitempty,max=10"`
}
