package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingOrder UserState = "awaiting_order" // Ожидание JSON заказа
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото подноса
	StateProcessing    UserState = "processing"     // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID     int64     // Telegram User ID
	ChatID int64     // Telegram Chat ID
	State  UserState // Текущее состояние пользователя
	Order  *Order    // Заказ, с которым сверяется следующее фото
}

// NewUser создаёт нового пользователя с начальным состоянием
func NewUser(userID, chatID int64) *User {
	return &User{
		ID:     userID,
		ChatID: chatID,
		State:  StateMainMenu,
	}
}

// SetState обновляет состояние пользователя
func (u *User) SetState(state UserState) {
	u.State = state
}

// SetOrder запоминает заказ пользователя
func (u *User) SetOrder(order *Order) {
	u.Order = order
}

// ClearOrder сбрасывает заказ
func (u *User) ClearOrder() {
	u.Order = nil
}
