package entity

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Order заказ: какие предметы и в каком количестве должны быть на подносе
type Order struct {
	Items ItemCount `json:"items"`
}

// UnmarshalJSON разбирает заказ вида {"items": {"burger": 1, ...}}
func (o *Order) UnmarshalJSON(data []byte) error {
	var raw struct {
		Items json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: order must be a JSON object: %v", ErrInvalidInput, err)
	}
	if len(raw.Items) == 0 || string(raw.Items) == "null" {
		return fmt.Errorf("%w: order json must contain { \"items\": { ... } }", ErrInvalidInput)
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(raw.Items, &values); err != nil {
		return fmt.Errorf("%w: order items must be an object", ErrInvalidInput)
	}

	items := make(ItemCount, len(values))
	for class, v := range values {
		n, err := parseCount(v)
		if err != nil {
			return fmt.Errorf("item %q: %w", class, err)
		}
		items[class] = n
	}
	if err := items.Validate(); err != nil {
		return err
	}

	o.Items = items
	return nil
}

// ParseOrder разбирает JSON заказа
func ParseOrder(data []byte) (*Order, error) {
	var order Order
	if err := json.Unmarshal(data, &order); err != nil {
		if errors.Is(err, ErrInvalidInput) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if order.Items == nil {
		return nil, fmt.Errorf("%w: order json must contain { \"items\": { ... } }", ErrInvalidInput)
	}
	return &order, nil
}
