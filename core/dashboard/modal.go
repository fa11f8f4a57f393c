package dashboard

import (
	"sort"
	"sync"
)

// Modal content types
const (
	ModalRecordDetail   = "recordDetail"
	ModalSubmissionForm = "submissionForm"
	ModalPasswordReset  = "passwordReset"
)

// Modals holds the open/closed state of the modals, keyed by content type.
type Modals struct {
	mu   sync.RWMutex
	open map[string]bool
}

func NewModals() *Modals {
	return &Modals{open: make(map[string]bool)}
}

func (m *Modals) Open(contentType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open[contentType] = true
}

func (m *Modals) Close(contentType string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.open, contentType)
}

func (m *Modals) CloseAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.open = make(map[string]bool)
}

func (m *Modals) IsOpen(contentType string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.open[contentType]
}

// Opened returns the content types of the open modals, sorted.
func (m *Modals) Opened() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	opened := make([]string, 0, len(m.open))
	for ct := range m.open {
		opened = append(opened, ct)
	}
	sort.Strings(opened)
	return opened
}
