package storage

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"tray-check/internal/domain/entity"
)

// rulesFile формат YAML файла правил:
//
//	rules:
//	  nuggets:
//	    requires:
//	      sauce: 1
//	    description: К наггетсам обязательно нужен соус
type rulesFile struct {
	Rules entity.RuleSet `yaml:"rules"`
}

// LoadRules читает правила зависимостей. Пустой путь означает правила по умолчанию.
func LoadRules(path string) (entity.RuleSet, error) {
	if path == "" {
		return entity.DefaultRules(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}

	rules, err := ParseRules(data)
	if err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}
	return rules, nil
}

// ParseRules разбирает YAML с правилами и проверяет их
func ParseRules(data []byte) (entity.RuleSet, error) {
	var file rulesFile

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %v", entity.ErrInvalidInput, err)
	}

	if file.Rules == nil {
		file.Rules = entity.RuleSet{}
	}
	if err := file.Rules.Validate(); err != nil {
		return nil, err
	}
	return file.Rules, nil
}
