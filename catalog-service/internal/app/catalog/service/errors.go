package service

import "errors"

var (
	// Ошибки бизнес-логики для обработки в handlers
	ErrProductNotFound    = errors.New("product not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)
