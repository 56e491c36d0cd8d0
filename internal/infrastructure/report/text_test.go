package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tray-check/internal/domain/entity"
)

func TestTextDescriber_Mismatch(t *testing.T) {
	result := entity.NewReconciliationResult()
	result.Missing["fries"] = 1
	result.RuleMissing["sauce"] = 1
	result.AddNote("nuggets need sauce")

	text := NewTextDescriber().Describe(&entity.TrayCheck{
		OrderItems: entity.ItemCount{"fries": 1, "burger": 1, "nuggets": 1},
		DetectedItems: []entity.Detection{
			{Class: "burger", Count: 1},
			{Class: "nuggets", Count: 1},
		},
		Result: result,
	})

	require.Contains(t, text, "Заказ: burger ×1, fries ×1, nuggets ×1")
	require.Contains(t, text, "Найдено: burger ×1, nuggets ×1")
	require.Contains(t, text, "- Не хватает: fries ×1")
	require.Contains(t, text, "- Лишнее: нет")
	require.Contains(t, text, "- Не хватает по правилам: sauce ×1")
	require.Contains(t, text, "⚠️ nuggets need sauce")
	require.Contains(t, text, verdictMismatch)
}

func TestTextDescriber_Match(t *testing.T) {
	text := NewTextDescriber().Describe(&entity.TrayCheck{
		OrderItems:    entity.ItemCount{"burger": 1},
		DetectedItems: []entity.Detection{{Class: "burger", Count: 1}},
		Result:        entity.NewReconciliationResult(),
	})

	require.Contains(t, text, "- Не хватает: нет")
	require.NotContains(t, text, "по правилам")
	require.Contains(t, text, verdictMatch)
}

func TestTextDescriber_NilResult(t *testing.T) {
	text := NewTextDescriber().Describe(&entity.TrayCheck{})
	require.Contains(t, text, "Заказ: нет")
	require.Contains(t, text, "Найдено: нет")
	require.Contains(t, text, verdictMatch)
}

func TestDescribeRules(t *testing.T) {
	require.Equal(t, "Правил нет", DescribeRules(nil))

	text := DescribeRules(entity.RuleSet{
		"nuggets": {Requires: map[string]int{"sauce": 1}, Description: "nuggets need sauce"},
		"burger":  {Requires: map[string]int{"napkin": 2}},
	})
	require.Equal(t, "• burger → napkin ×2\n• nuggets → sauce ×1 (nuggets need sauce)", text)
}
