package domain

// SessionStore tracks active group chats in a fixed-capacity slot array.
// Slots freed by Remove are reused by the next Add. A live session number
// maps to exactly one slot.
type SessionStore struct {
	slots [MaxSessions]*Session
	count int
}

func NewSessionStore() *SessionStore {
	return &SessionStore{}
}

func (st *SessionStore) Add(number int, kind SessionKind, password string) (*Session, error) {
	if password != "" && len(password) >= MaxPasswordLength {
		return nil, ErrPasswordTooLong
	}

	for i := range st.slots {
		if st.slots[i] != nil {
			continue
		}

		session := &Session{
			Number: number,
			Slot:   i,
			Kind:   kind,
		}
		if password != "" {
			session.Password = password
			session.HasPassword = true
		}

		st.slots[i] = session
		st.count++
		return session, nil
	}

	return nil, ErrStoreFull
}

func (st *SessionStore) ByNumber(number int) (*Session, error) {
	for _, session := range st.slots {
		if session != nil && session.Number == number {
			return session, nil
		}
	}

	return nil, ErrSessionNotFound
}

func (st *SessionStore) Remove(number int) error {
	for i, session := range st.slots {
		if session != nil && session.Number == number {
			st.slots[i] = nil
			st.count--
			return nil
		}
	}

	return ErrSessionNotFound
}

func (st *SessionStore) Len() int {
	return st.count
}

// Sessions returns the live sessions in slot order.
func (st *SessionStore) Sessions() []*Session {
	sessions := make([]*Session, 0, st.count)
	for _, session := range st.slots {
		if session != nil {
			sessions = append(sessions, session)
		}
	}

	return sessions
}
