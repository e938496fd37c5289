package entity

// Session фото, собранные пользователем в ходе одной проверки
type Session struct {
	UserID    int64
	Reference []byte // эталонное фото платы
	Candidate []byte // фото проверяемой платы
}

// Ready сообщает, что оба фото получены.
func (s *Session) Ready() bool {
	return len(s.Reference) > 0 && len(s.Candidate) > 0
}
