package report

import (
	"fmt"
	"strings"

	"tray-check/internal/domain/entity"
	"tray-check/internal/domain/port"
)

const (
	verdictMatch    = "✅ Поднос совпадает с заказом"
	verdictMismatch = "❌ Поднос не совпадает с заказом"
	none            = "нет"
)

// TextDescriber собирает текстовый отчёт для чата и консоли
type TextDescriber struct{}

// NewTextDescriber создаёт описатель
func NewTextDescriber() *TextDescriber {
	return &TextDescriber{}
}

// Describe формирует отчёт: заказ, найденное, нехватка, лишнее, правила, вердикт
func (d *TextDescriber) Describe(check *entity.TrayCheck) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🧾 Заказ: %s\n", formatCounts(check.OrderItems))
	fmt.Fprintf(&b, "🔍 Найдено: %s\n", formatDetections(check.DetectedItems))

	result := check.Result
	if result == nil {
		result = entity.NewReconciliationResult()
	}

	b.WriteString("\n📋 Результат проверки\n")
	writeSection(&b, "Не хватает", result.Missing)
	writeSection(&b, "Лишнее", result.Extra)
	if len(result.RuleMissing) > 0 {
		writeSection(&b, "Не хватает по правилам", result.RuleMissing)
	}
	for _, note := range result.Notes {
		fmt.Fprintf(&b, "⚠️ %s\n", note)
	}

	if result.Satisfied() {
		b.WriteString(verdictMatch)
	} else {
		b.WriteString(verdictMismatch)
	}

	return b.String()
}

func writeSection(b *strings.Builder, title string, counts entity.ItemCount) {
	if len(counts) == 0 {
		fmt.Fprintf(b, "- %s: %s\n", title, none)
		return
	}
	for _, class := range counts.Classes() {
		fmt.Fprintf(b, "- %s: %s ×%d\n", title, class, counts[class])
	}
}

func formatCounts(counts entity.ItemCount) string {
	if len(counts) == 0 {
		return none
	}
	parts := make([]string, 0, len(counts))
	for _, class := range counts.Classes() {
		parts = append(parts, fmt.Sprintf("%s ×%d", class, counts[class]))
	}
	return strings.Join(parts, ", ")
}

func formatDetections(detections []entity.Detection) string {
	if len(detections) == 0 {
		return none
	}
	parts := make([]string, 0, len(detections))
	for _, d := range detections {
		parts = append(parts, fmt.Sprintf("%s ×%d", d.Class, d.Count))
	}
	return strings.Join(parts, ", ")
}

// DescribeRules выводит правила зависимостей по одному на строку
func DescribeRules(rules entity.RuleSet) string {
	if len(rules) == 0 {
		return "Правил нет"
	}

	var b strings.Builder
	for i, parent := range rules.Parents() {
		if i > 0 {
			b.WriteString("\n")
		}
		rule := rules[parent]
		deps := make([]string, 0, len(rule.Requires))
		for _, dep := range rule.Dependents() {
			deps = append(deps, fmt.Sprintf("%s ×%d", dep, rule.Requires[dep]))
		}
		fmt.Fprintf(&b, "• %s → %s", parent, strings.Join(deps, ", "))
		if rule.Description != "" {
			fmt.Fprintf(&b, " (%s)", rule.Description)
		}
	}
	return b.String()
}

var _ port.CheckDescriber = (*TextDescriber)(nil)
