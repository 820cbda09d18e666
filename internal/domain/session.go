package domain

import "strings"

type SessionKind int

const (
	KindText SessionKind = iota
	KindAudio
)

func (k SessionKind) String() string {
	if k == KindAudio {
		return "Audio"
	}
	return "Text"
}

// KindFromArg maps the `group` command's type argument to a session kind:
// "audio" (any case) selects an audio session, anything else is text.
func KindFromArg(arg string) SessionKind {
	if strings.EqualFold(arg, "audio") {
		return KindAudio
	}
	return KindText
}

// Session is one active group chat. Number is the transport-assigned handle,
// Slot the position inside the store's fixed array. Kind never changes after
// creation.
type Session struct {
	Number      int
	Slot        int
	Kind        SessionKind
	Password    string
	HasPassword bool
	Title       string
}

func (s *Session) SetPassword(password string) error {
	if len(password) >= MaxPasswordLength {
		return ErrPasswordTooLong
	}

	s.Password = password
	s.HasPassword = true
	return nil
}

// ClearPassword drops the password requirement and the old password bytes.
func (s *Session) ClearPassword() {
	s.HasPassword = false
	s.Password = ""
}

// CheckPassword reports whether the supplied password grants entry. Sessions
// without a password admit everyone; otherwise the match is byte-for-byte.
func (s *Session) CheckPassword(password string) bool {
	if !s.HasPassword {
		return true
	}
	return s.Password == password
}

func (s *Session) DisplayTitle() string {
	if s.Title == "" {
		return "untitled"
	}
	return s.Title
}
