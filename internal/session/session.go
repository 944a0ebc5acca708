package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linggafajar/sarpras/internal/form"
	"github.com/linggafajar/sarpras/internal/notification"
)

// Flags is the small capability the greeter and form state need from
// session-scoped storage. Backed by memory here; the browser's session
// storage plays this role on the client.
type Flags interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

type flagStore struct {
	mu sync.Mutex
	m  map[string]string
}

func newFlagStore() *flagStore {
	return &flagStore{m: make(map[string]string)}
}

func (f *flagStore) Get(key string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	v, ok := f.m[key]
	return v, ok
}

func (f *flagStore) Set(key, value string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.m[key] = value
}

// Entry is everything owned by one visitor session.
type Entry struct {
	ID       string
	Form     *form.Session
	Greeter  *Greeter
	Flags    Flags
	lastSeen time.Time
}

// Manager keeps form sessions in memory and evicts idle ones,
// stopping their timers so nothing dangles after eviction.
type Manager struct {
	mu        sync.Mutex
	log       *zap.Logger
	ttl       time.Duration
	popupOpts []notification.Option
	entries   map[string]*Entry
	done      chan struct{}
	closeOnce sync.Once
}

func NewManager(log *zap.Logger, ttl time.Duration, popupOpts ...notification.Option) *Manager {
	m := &Manager{
		log:       log.Named("sessions"),
		ttl:       ttl,
		popupOpts: popupOpts,
		entries:   make(map[string]*Entry),
		done:      make(chan struct{}),
	}
	go m.janitor()
	return m
}

// Create builds a fresh session with its own presenter and greeter.
func (m *Manager) Create() *Entry {
	flags := newFlagStore()
	e := &Entry{
		ID:       uuid.NewString(),
		Form:     form.NewSession(notification.NewPresenter(m.log, m.popupOpts...)),
		Greeter:  NewGreeter(flags),
		Flags:    flags,
		lastSeen: time.Now(),
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[e.ID] = e
	return e
}

func (m *Manager) Get(id string) (*Entry, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[id]
	if ok {
		e.lastSeen = time.Now()
	}
	return e, ok
}

func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
	})
	m.mu.Lock()
	defer m.mu.Unlock()
	for id, e := range m.entries {
		e.Form.Presenter().Stop()
		e.Greeter.Stop()
		delete(m.entries, id)
	}
}

func (m *Manager) janitor() {
	interval := m.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			m.evictIdle()
		}
	}
}

func (m *Manager) evictIdle() {
	m.mu.Lock()
	defer m.mu.Unlock()
	cutoff := time.Now().Add(-m.ttl)
	for id, e := range m.entries {
		if e.lastSeen.Before(cutoff) {
			e.Form.Presenter().Stop()
			e.Greeter.Stop()
			delete(m.entries, id)
			m.log.Debug("session evicted", zap.String("id", id))
		}
	}
}
