package telegram

import (
	"fmt"
	"strconv"
	"strings"
)

// Chat addresses the target chat either by numeric id or by @channel username.
type Chat struct {
	ID       int64
	Username string
}

func ParseChat(s string) (Chat, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Chat{}, fmt.Errorf("telegram: empty chat id")
	}
	if strings.HasPrefix(s, "@") {
		return Chat{Username: s}, nil
	}
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return Chat{}, fmt.Errorf("telegram: chat id %q is neither numeric nor @username", s)
	}
	return Chat{ID: id}, nil
}

func (c Chat) String() string {
	if c.Username != "" {
		return c.Username
	}
	return strconv.FormatInt(c.ID, 10)
}
