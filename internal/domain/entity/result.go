package entity

// ReconciliationResult итог сверки заказа с подносом.
type ReconciliationResult struct {
	Missing     ItemCount `json:"missing"`      // заказано больше, чем найдено
	Extra       ItemCount `json:"extra"`        // найдено больше, чем заказано
	RuleMissing ItemCount `json:"rule_missing"` // нехватка по правилам зависимостей
	Notes       []string  `json:"notes"`        // описания нарушенных правил
}

// NewReconciliationResult создаёт пустой результат.
// Пустые поля сериализуются как {} и [], а не null.
func NewReconciliationResult() *ReconciliationResult {
	return &ReconciliationResult{
		Missing:     make(ItemCount),
		Extra:       make(ItemCount),
		RuleMissing: make(ItemCount),
		Notes:       []string{},
	}
}

// AddNote добавляет заметку, если такой ещё нет
func (r *ReconciliationResult) AddNote(note string) {
	for _, n := range r.Notes {
		if n == note {
			return
		}
	}
	r.Notes = append(r.Notes, note)
}

// Satisfied сообщает, что поднос полностью совпадает с заказом
func (r *ReconciliationResult) Satisfied() bool {
	return len(r.Missing) == 0 && len(r.Extra) == 0 && len(r.RuleMissing) == 0
}
