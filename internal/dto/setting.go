package dto

// UpdateSettingRequest changes one plan parameter.
type UpdateSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// SettingResponse is one named plan parameter.
type SettingResponse struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}
