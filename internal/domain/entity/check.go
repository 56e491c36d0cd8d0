package entity

import "time"

// TrayCheck одна проверка подноса: что заказали, что нашли и итог сверки.
type TrayCheck struct {
	ID            string                `json:"id"`
	Timestamp     time.Time             `json:"timestamp"`
	OrderFile     string                `json:"order_file,omitempty"`
	ImageFile     string                `json:"image_file,omitempty"`
	Scenario      string                `json:"scenario,omitempty"`
	OrderItems    ItemCount             `json:"order_items"`
	DetectedItems []Detection           `json:"detected_items"`
	Result        *ReconciliationResult `json:"result"`
}
