package reconcile

import (
	"fmt"

	"tray-check/internal/domain/entity"
)

// Reconcile сравнивает заказ с найденными предметами и проверяет правила.
//
// Прямое сравнение идёт только по классам заказа: лишние классы, которых
// нет в заказе, не попадают в Extra. RuleMissing плоский: если два правила
// требуют один и тот же класс, побеждает последнее по порядку родителей.
// Родители и зависимые классы обходятся в алфавитном порядке.
func Reconcile(expected, detected entity.ItemCount, rules entity.RuleSet) (*entity.ReconciliationResult, error) {
	if err := expected.Validate(); err != nil {
		return nil, fmt.Errorf("expected items: %w", err)
	}
	if err := detected.Validate(); err != nil {
		return nil, fmt.Errorf("detected items: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("rules: %w", err)
	}

	result := entity.NewReconciliationResult()

	for class, need := range expected {
		got := detected.Get(class)
		switch {
		case got < need:
			result.Missing[class] = need - got
		case got > need:
			result.Extra[class] = got - need
		}
	}

	for _, parent := range rules.Parents() {
		parentNeed := expected.Get(parent)
		if parentNeed <= 0 {
			continue
		}

		rule := rules[parent]
		for _, dep := range rule.Dependents() {
			depNeed := parentNeed * rule.Requires[dep]
			depGot := detected.Get(dep)
			if depGot >= depNeed {
				continue
			}

			result.RuleMissing[dep] = depNeed - depGot
			if rule.Description != "" {
				result.AddNote(rule.Description)
			}
		}
	}

	return result, nil
}

// Check сворачивает записи детектора и сверяет их с заказом.
func Check(expected entity.ItemCount, detections []entity.Detection, rules entity.RuleSet) (*entity.ReconciliationResult, error) {
	detected, err := Aggregate(detections)
	if err != nil {
		return nil, err
	}
	return Reconcile(expected, detected, rules)
}
