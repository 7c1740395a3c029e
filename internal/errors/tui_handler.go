package errors

import (
	"sync"
	"time"

	"github.com/cristianoliveira/tmux-overlay/internal/overlay"
)

// maxMessages bounds the history a TUIHandler keeps.
const maxMessages = 50

// Message is one message captured by a TUIHandler.
type Message struct {
	Text      string
	Type      MessageType
	Timestamp time.Time
}

type MessageType int

const (
	MessageTypeError MessageType = iota
	MessageTypeWarning
	MessageTypeInfo
	MessageTypeSuccess
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeError:
		return "error"
	case MessageTypeWarning:
		return "warning"
	case MessageTypeInfo:
		return "info"
	case MessageTypeSuccess:
		return "success"
	default:
		return "unknown"
	}
}

// TUIHandler keeps recent messages and forwards each one to onMessage,
// which the TUI uses to raise a toast.
type TUIHandler struct {
	mu        sync.RWMutex
	messages  []Message
	onMessage func(msg Message)
	now       func() time.Time
}

var _ ErrorHandler = (*TUIHandler)(nil)

func NewTUIHandler(onMessage func(msg Message)) *TUIHandler {
	return &TUIHandler{onMessage: onMessage, now: time.Now}
}

func (h *TUIHandler) Error(msg string)   { h.add(msg, MessageTypeError) }
func (h *TUIHandler) Warning(msg string) { h.add(msg, MessageTypeWarning) }
func (h *TUIHandler) Info(msg string)    { h.add(msg, MessageTypeInfo) }
func (h *TUIHandler) Success(msg string) { h.add(msg, MessageTypeSuccess) }

// add records the message and calls onMessage outside the lock, so the
// callback may show overlays that report back into this handler.
func (h *TUIHandler) add(text string, msgType MessageType) {
	message := Message{Text: text, Type: msgType, Timestamp: h.now()}

	h.mu.Lock()
	h.messages = append(h.messages, message)
	if len(h.messages) > maxMessages {
		h.messages = append([]Message(nil), h.messages[len(h.messages)-maxMessages:]...)
	}
	cb := h.onMessage
	h.mu.Unlock()

	if cb != nil {
		cb(message)
	}
}

func (h *TUIHandler) GetLatest() (Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

func (h *TUIHandler) GetAll() []Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return append([]Message(nil), h.messages...)
}

func (h *TUIHandler) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = nil
}

// MessageTag tags every toast raised by ToastNotifier.
const MessageTag = "messages"

// ToastShower is the part of overlay.Manager ToastNotifier needs.
type ToastShower interface {
	ShowToast(content any, opts ...overlay.ShowOption) (overlay.Handle, error)
}

// ToastNotifier returns an onMessage callback that shows each message as a
// toast. Errors stay until dismissed; everything else uses the toast default.
func ToastNotifier(toasts ToastShower) func(Message) {
	return func(msg Message) {
		opts := []overlay.ShowOption{overlay.WithTag(MessageTag), overlay.WithStyle(msg.Type.String())}
		if msg.Type == MessageTypeError {
			opts = append(opts, overlay.WithDuration(0))
		}
		// a failing toast has nowhere left to be reported
		_, _ = toasts.ShowToast(msg.Text, opts...)
	}
}
