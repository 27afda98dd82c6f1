package request_models

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SignUpRequest struct {
	DisplayName string `json:"display_name"`
	Email       string `json:"email" binding:"required"`
	Password    string `json:"password" binding:"required"`
}
