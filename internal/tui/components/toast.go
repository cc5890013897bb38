package components

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ToastKind selects the styling of a toast.
type ToastKind int

const (
	ToastInfo ToastKind = iota
	ToastSuccess
	ToastError
)

// ToastPosition is the screen corner toasts stack in.
type ToastPosition int

const (
	ToastBottomRight ToastPosition = iota
	ToastTopRight
)

const (
	DefaultToastLimit = 3
	DefaultToastTTL   = 3 * time.Second
)

var (
	toastBaseStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)

	toastStyles = map[ToastKind]lipgloss.Style{
		ToastInfo:    toastBaseStyle.BorderForeground(accentColor).Foreground(textColor),
		ToastSuccess: toastBaseStyle.BorderForeground(successColor).Foreground(successColor),
		ToastError:   toastBaseStyle.BorderForeground(errorColor).Foreground(errorColor),
	}
)

// Toast is one queued notification.
type Toast struct {
	ID      int
	Kind    ToastKind
	Message string
}

// ToastExpiredMsg removes a toast when its lifetime ends.
type ToastExpiredMsg struct {
	ID int
}

// ToastManager stacks short-lived notifications. The application creates
// one and hands it to whatever needs to notify the user.
type ToastManager struct {
	toasts   []Toast
	nextID   int
	limit    int
	ttl      time.Duration
	position ToastPosition
}

// NewToastManager creates a manager showing at most limit toasts, each for
// ttl. Non-positive values fall back to the defaults.
func NewToastManager(limit int, ttl time.Duration, position ToastPosition) *ToastManager {
	if limit <= 0 {
		limit = DefaultToastLimit
	}
	if ttl <= 0 {
		ttl = DefaultToastTTL
	}
	return &ToastManager{limit: limit, ttl: ttl, position: position}
}

// Push queues a toast, dropping the oldest when the stack is full. The
// returned command expires it.
func (m *ToastManager) Push(kind ToastKind, message string) tea.Cmd {
	m.nextID++
	id := m.nextID
	m.toasts = append(m.toasts, Toast{ID: id, Kind: kind, Message: message})
	if over := len(m.toasts) - m.limit; over > 0 {
		m.toasts = append([]Toast(nil), m.toasts[over:]...)
	}
	return tea.Tick(m.ttl, func(time.Time) tea.Msg {
		return ToastExpiredMsg{ID: id}
	})
}

// Info queues an informational toast.
func (m *ToastManager) Info(message string) tea.Cmd {
	return m.Push(ToastInfo, message)
}

// Success queues a success toast.
func (m *ToastManager) Success(message string) tea.Cmd {
	return m.Push(ToastSuccess, message)
}

// Error queues an error toast.
func (m *ToastManager) Error(message string) tea.Cmd {
	return m.Push(ToastError, message)
}

// Dismiss removes a toast by id. Unknown ids are ignored.
func (m *ToastManager) Dismiss(id int) {
	for i, t := range m.toasts {
		if t.ID == id {
			m.toasts = append(m.toasts[:i:i], m.toasts[i+1:]...)
			return
		}
	}
}

// Update handles expiry messages. It reports whether msg was one.
func (m *ToastManager) Update(msg tea.Msg) bool {
	expired, ok := msg.(ToastExpiredMsg)
	if !ok {
		return false
	}
	m.Dismiss(expired.ID)
	return true
}

// Toasts returns the visible toasts, oldest first.
func (m *ToastManager) Toasts() []Toast {
	out := make([]Toast, len(m.toasts))
	copy(out, m.toasts)
	return out
}

// Position returns the corner toasts stack in.
func (m *ToastManager) Position() ToastPosition {
	return m.position
}

// View renders the stack right-aligned to width. The newest toast sits
// nearest the screen edge.
func (m *ToastManager) View(width int) string {
	if len(m.toasts) == 0 {
		return ""
	}

	boxes := make([]string, 0, len(m.toasts))
	for _, t := range m.toasts {
		boxes = append(boxes, toastStyles[t.Kind].Render(t.Message))
	}
	if m.position == ToastTopRight {
		for i, j := 0, len(boxes)-1; i < j; i, j = i+1, j-1 {
			boxes[i], boxes[j] = boxes[j], boxes[i]
		}
	}

	stack := lipgloss.JoinVertical(lipgloss.Right, boxes...)
	if width <= 0 {
		return stack
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Right, stack)
}

// Overlay places the stack in its corner below or above body, padding body
// to height rows.
func (m *ToastManager) Overlay(body string, width, height int) string {
	stack := m.View(width)
	if stack == "" {
		return body
	}

	gap := height - lipgloss.Height(body) - lipgloss.Height(stack)
	if gap < 0 {
		gap = 0
	}
	filler := strings.Repeat("\n", gap)

	if m.position == ToastTopRight {
		return stack + "\n" + body + filler
	}
	return body + filler + "\n" + stack
}
