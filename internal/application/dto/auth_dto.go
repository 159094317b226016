package dto

// LoginRequest credenciales de acceso: loyalty ID + PIN de 8 dígitos.
type LoginRequest struct {
	LoyaltyID string `json:"loyalty_id"`
	PIN       string `json:"pin"`
}

// LoginResponse token JWT más la proyección del cliente autenticado.
type LoginResponse struct {
	Token    string           `json:"token"`
	Customer CustomerResponse `json:"customer"`
}
