package ui

import (
	"sort"
	"sync"
)

// Slot names the page region an error is written to. The empty slot is the global toast.
const (
	SlotToast      = ""
	SlotModalError = "modal-error"
)

// Feedback is the page's loading and messaging surface
type Feedback interface {
	SetLoading(target string, on bool)
	ShowError(message, slot string)
	ShowSuccess(message string)
	HideError(slot string)
}

// Notice is a toast queued for the browser
type Notice struct {
	Kind    string `json:"kind"` // "success" or "error"
	Message string `json:"message"`
}

// State is what the page needs to reflect feedback after an event
type State struct {
	Notices []Notice          `json:"notices"`
	Loading []string          `json:"loading"`
	Errors  map[string]string `json:"errors"`
}

// Notifier collects feedback for one session. Toasts are handed to the browser
// with the response of the event that raised them.
type Notifier struct {
	mu      sync.Mutex
	loading map[string]int
	notices []Notice
	inline  map[string]string
}

func NewNotifier() *Notifier {
	return &Notifier{
		loading: make(map[string]int),
		inline:  make(map[string]string),
	}
}

func (n *Notifier) SetLoading(target string, on bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if on {
		n.loading[target]++
		return
	}
	if n.loading[target] <= 1 {
		delete(n.loading, target)
		return
	}
	n.loading[target]--
}

func (n *Notifier) ShowError(message, slot string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if slot == SlotToast {
		n.notices = append(n.notices, Notice{Kind: "error", Message: message})
		return
	}
	n.inline[slot] = message
}

func (n *Notifier) ShowSuccess(message string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.notices = append(n.notices, Notice{Kind: "success", Message: message})
}

func (n *Notifier) HideError(slot string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	delete(n.inline, slot)
}

// IsLoading reports whether target has an operation in flight
func (n *Notifier) IsLoading(target string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.loading[target] > 0
}

// InlineError returns the message shown in slot, if any
func (n *Notifier) InlineError(slot string) string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.inline[slot]
}

// Drain returns the current feedback and clears queued toasts
func (n *Notifier) Drain() State {
	n.mu.Lock()
	defer n.mu.Unlock()

	st := State{
		Notices: n.notices,
		Loading: make([]string, 0, len(n.loading)),
		Errors:  make(map[string]string, len(n.inline)),
	}
	if st.Notices == nil {
		st.Notices = []Notice{}
	}
	for target := range n.loading {
		st.Loading = append(st.Loading, target)
	}
	sort.Strings(st.Loading)
	for slot, msg := range n.inline {
		st.Errors[slot] = msg
	}
	n.notices = nil
	return st
}
