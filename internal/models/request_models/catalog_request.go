package request_models

type PlanRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description"`
	DurationType string  `json:"duration_type" binding:"required,oneof=DAILY WEEKLY MONTHLY LIFETIME"`
	DurationDays int     `json:"duration_days"`
	Price        float64 `json:"price" binding:"required,gt=0"`
	IsActive     *bool   `json:"is_active"`

	OrderBumpEnabled     bool    `json:"order_bump_enabled"`
	OrderBumpName        *string `json:"order_bump_name"`
	OrderBumpDescription *string `json:"order_bump_description"`
	OrderBumpPrice       float64 `json:"order_bump_price"`
	OrderBumpAcceptText  *string `json:"order_bump_accept_text"`
	OrderBumpRejectText  *string `json:"order_bump_reject_text"`
	OrderBumpMediaURL    *string `json:"order_bump_media_url"`
}

type PackageRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description"`
	Price       float64 `json:"value" binding:"required,gt=0"`
	IsActive    *bool   `json:"is_active"`

	OrderBumpEnabled     bool    `json:"order_bump_enabled"`
	OrderBumpName        *string `json:"order_bump_name"`
	OrderBumpDescription *string `json:"order_bump_description"`
	OrderBumpPrice       float64 `json:"order_bump_price"`
	OrderBumpMediaURL    *string `json:"order_bump_media_url"`

	Deliverables map[string]interface{} `json:"deliverables"`
}
