package domain

import "strings"

type Message struct {
	ID        string
	ChannelID ChannelID
	AuthorID  PrincipalID
	Content   string
	Reference *Message
}

type Reply struct {
	ChannelID   ChannelID
	ReferenceID string
	Content     string
	Attachments []Attachment
}

func (m Message) Mention() string {
	return "<@" + string(m.AuthorID) + ">"
}

// StartsWithFence reports whether the message opens with a backtick.
func (m Message) StartsWithFence() bool {
	return strings.HasPrefix(m.Content, "`")
}
