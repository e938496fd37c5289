package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu          UserState = "main_menu"          // В главном меню
	StateAwaitingReference UserState = "awaiting_reference" // Ожидание эталонного фото платы
	StateAwaitingCandidate UserState = "awaiting_candidate" // Ожидание фото проверяемой платы
	StateAwaitingManifest  UserState = "awaiting_manifest"  // Ожидание манифеста компонентов
	StateProcessing        UserState = "processing"         // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID     int64     // Telegram User ID
	ChatID int64     // Telegram Chat ID
	State  UserState // Текущее состояние пользователя
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

// InCheck сообщает, что пользователь находится внутри сценария проверки.
func (u *User) InCheck() bool {
	switch u.State {
	case StateAwaitingReference, StateAwaitingCandidate, StateAwaitingManifest, StateProcessing:
		return true
	}
	return false
}
