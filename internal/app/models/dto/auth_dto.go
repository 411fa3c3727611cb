package dto

// LoginRequest is the payload for reviewer login
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email" example:"officer@uni.edu"`
	Password string `json:"password" binding:"required" example:"s3cret"`
}

// LoginResponse carries the issued access token
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn" example:"3600"`
}
