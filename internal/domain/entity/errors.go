package entity

import "errors"

var (
	// ErrInvalidInput некорректный заказ, детекция или правило
	ErrInvalidInput = errors.New("invalid input")

	// ErrOrderNotSet заказ ещё не передан
	ErrOrderNotSet = errors.New("order is not set")

	// ErrDetectorNotConfigured детектор не подключён
	ErrDetectorNotConfigured = errors.New("detector is not configured")
)
