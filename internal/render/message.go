package render

import "github.com/dtroode/quizzzy/internal/model"

type MessageType string

const (
	MessageTypeFrame  MessageType = "frame"
	MessageTypeNotice MessageType = "notice"
)

// Message is the envelope written to websocket clients.
type Message struct {
	Type    MessageType `json:"type"`
	Payload any         `json:"payload"`
}

func frameMessage(frame model.Frame) Message {
	return Message{Type: MessageTypeFrame, Payload: frame}
}

func noticeMessage(notice model.Notice) Message {
	return Message{Type: MessageTypeNotice, Payload: notice}
}
