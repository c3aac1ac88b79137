package entity

// UserState состояние пользователя в диалоге
type UserState string

const (
	StateMainMenu      UserState = "main_menu"      // В главном меню
	StateAwaitingPhoto UserState = "awaiting_photo" // Ожидание фото для проверки
	StateProcessing    UserState = "processing"     // Обработка изображения
)

// User представляет пользователя бота
type User struct {
	ID        int64      // Telegram User ID
	ChatID    int64      // Telegram Chat ID
	State     UserState  // Текущее состояние пользователя
	Threshold *Threshold // Личный порог, nil если используется порог фильтра
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

// SetThreshold задаёт личный порог пользователя
func (u *User) SetThreshold(th Threshold) {
	u.Threshold = &th
}

// ToggleInvert переключает инверсию личного порога.
// Если личного порога не было, берётся base.
func (u *User) ToggleInvert(base Threshold) Threshold {
	th := base
	if u.Threshold != nil {
		th = *u.Threshold
	}
	th.Invert = !th.Invert
	u.Threshold = &th
	return th
}
