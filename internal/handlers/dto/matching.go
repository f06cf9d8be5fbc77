package dto

type CreatePreferenceRequest struct {
	PreferredGender string `json:"preferredGender" binding:"required"`
	MinAge          *int   `json:"minAge"`
	MaxAge          *int   `json:"maxAge"`
	Algorithm       string `json:"algorithm"`
}

// UpdatePreferenceRequest carries a partial update; absent fields stay
// unchanged.
type UpdatePreferenceRequest struct {
	PreferredGender *string `json:"preferredGender"`
	MinAge          *int    `json:"minAge"`
	MaxAge          *int    `json:"maxAge"`
	Algorithm       *string `json:"algorithm"`
}

type UpdateMatchingStatusRequest struct {
	Status string `json:"status" binding:"required"`
}
