package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrCustomerNotFound   = errors.New("cliente no encontrado")
	ErrCouponNotFound     = errors.New("cupón no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrInsufficientPoints = errors.New("puntos insuficientes")
	ErrCouponRedeemed     = errors.New("el cupón ya fue canjeado")
)
