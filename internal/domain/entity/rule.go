package entity

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DependencyRule описывает, что одна единица родительского класса требует
// указанное количество зависимых предметов.
type DependencyRule struct {
	Requires    map[string]int `yaml:"requires" json:"requires"`
	Description string         `yaml:"description" json:"description"`
}

// Dependents возвращает зависимые классы в алфавитном порядке
func (r DependencyRule) Dependents() []string {
	deps := make([]string, 0, len(r.Requires))
	for dep := range r.Requires {
		deps = append(deps, dep)
	}
	sort.Strings(deps)
	return deps
}

// RuleSet правила зависимостей по родительскому классу
type RuleSet map[string]DependencyRule

// DefaultRules правило по умолчанию: к наггетсам нужен соус
func DefaultRules() RuleSet {
	return RuleSet{
		"nuggets": {
			Requires:    map[string]int{"sauce": 1},
			Description: "К наггетсам обязательно нужен соус",
		},
	}
}

// Parents возвращает родительские классы в алфавитном порядке
func (rs RuleSet) Parents() []string {
	parents := make([]string, 0, len(rs))
	for parent := range rs {
		parents = append(parents, parent)
	}
	sort.Strings(parents)
	return parents
}

// Validate проверяет, что количества зависимых предметов положительные
func (rs RuleSet) Validate() error {
	for parent, rule := range rs {
		if strings.TrimSpace(parent) == "" {
			return fmt.Errorf("%w: rule with empty parent class", ErrInvalidInput)
		}
		for dep, qty := range rule.Requires {
			if strings.TrimSpace(dep) == "" {
				return fmt.Errorf("%w: rule %q has empty dependent class", ErrInvalidInput, parent)
			}
			if qty <= 0 {
				return fmt.Errorf("%w: rule %q requires non-positive quantity %d of %q", ErrInvalidInput, parent, qty, dep)
			}
			if qty > math.MaxInt32 {
				return fmt.Errorf("%w: rule %q requires too many %q: %d", ErrInvalidInput, parent, dep, qty)
			}
		}
	}
	return nil
}
