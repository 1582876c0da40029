package client

import "sync"

// Variant is the visual weight of a toast
type Variant int

const (
	VariantDefault Variant = iota
	VariantDestructive
)

// Toast is a transient user notification
type Toast struct {
	Title       string
	Description string
	Variant     Variant
}

// Notifier shows toasts to the user
type Notifier interface {
	Notify(t Toast)
}

// NotifierFunc adapts a function to Notifier
type NotifierFunc func(Toast)

func (f NotifierFunc) Notify(t Toast) { f(t) }

// ToastLog is a Notifier that keeps every toast, for tests and headless callers.
type ToastLog struct {
	mu     sync.Mutex
	toasts []Toast
}

func (l *ToastLog) Notify(t Toast) {
	l.mu.Lock()
	l.toasts = append(l.toasts, t)
	l.mu.Unlock()
}

// Toasts returns a copy of the received toasts
func (l *ToastLog) Toasts() []Toast {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]Toast(nil), l.toasts...)
}

func notifyError(n Notifier, message string) {
	if n == nil {
		return
	}
	n.Notify(Toast{Title: "Error", Description: message, Variant: VariantDestructive})
}
