package entity

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// ItemCount отображение "класс -> количество"
type ItemCount map[string]int

// Get возвращает количество класса, 0 если класса нет
func (c ItemCount) Get(class string) int {
	return c[class]
}

// Classes возвращает классы в алфавитном порядке
func (c ItemCount) Classes() []string {
	classes := make([]string, 0, len(c))
	for class := range c {
		classes = append(classes, class)
	}
	sort.Strings(classes)
	return classes
}

// Validate проверяет, что имена классов непустые, а количества неотрицательные
func (c ItemCount) Validate() error {
	for class, n := range c {
		if strings.TrimSpace(class) == "" {
			return fmt.Errorf("%w: empty class name", ErrInvalidInput)
		}
		if n < 0 {
			return fmt.Errorf("%w: negative count %d for %q", ErrInvalidInput, n, class)
		}
	}
	return nil
}

// parseCount приводит JSON значение к неотрицательному целому.
// Допускаются целые числа (в том числе 2.0) и строки с целым числом.
func parseCount(raw json.RawMessage) (int, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, fmt.Errorf("%w: count %s", ErrInvalidInput, raw)
	}

	var n int64
	switch x := v.(type) {
	case json.Number:
		if i, err := x.Int64(); err == nil {
			n = i
			break
		}
		f, err := x.Float64()
		if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
			return 0, fmt.Errorf("%w: count %s is not an integer", ErrInvalidInput, raw)
		}
		n = int64(f)
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: count %q is not an integer", ErrInvalidInput, x)
		}
		n = i
	default:
		return 0, fmt.Errorf("%w: count %s is not an integer", ErrInvalidInput, raw)
	}

	if n < 0 {
		return 0, fmt.Errorf("%w: negative count %d", ErrInvalidInput, n)
	}
	if n > math.MaxInt32 {
		return 0, fmt.Errorf("%w: count %d is too large", ErrInvalidInput, n)
	}
	return int(n), nil
}
