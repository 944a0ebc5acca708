package form

import (
	"sync"

	"github.com/linggafajar/sarpras/internal/errs"
	"github.com/linggafajar/sarpras/internal/model"
	"github.com/linggafajar/sarpras/internal/notification"
)

// Session holds one visitor's form state: the draft being edited, the
// resolved requester identity, the filtered item catalog and the
// notification presenter. All access is serialized; the submission
// pipeline additionally enforces at-most-one-in-flight per session.
type Session struct {
	mu        sync.Mutex
	inFlight  bool
	userID    int
	draft     Draft
	items     []model.Barang
	presenter *notification.Presenter
}

func NewSession(presenter *notification.Presenter) *Session {
	return &Session{presenter: presenter}
}

func (s *Session) Presenter() *notification.Presenter { return s.presenter }

// SetUserID stores the requester id resolved from the session token.
// Zero means unresolved; only submission rule 1 cares.
func (s *Session) SetUserID(id int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = id
}

func (s *Session) UserID() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.userID
}

func (s *Session) SetDraft(d Draft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = d
}

func (s *Session) Draft() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// SetItems replaces the filtered catalog. When the current selection is
// not among the new items the first item becomes the default, matching
// the form's behavior after a refresh.
func (s *Session) SetItems(items []model.Barang) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	if !containsBarang(items, s.draft.BarangID) {
		if len(items) > 0 {
			s.draft.BarangID = items[0].ID
		} else {
			s.draft.BarangID = 0
		}
	}
}

func (s *Session) Items() []model.Barang {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Barang, len(s.items))
	copy(out, s.items)
	return out
}

// ResetDraft blanks the draft after a confirmed submission.
func (s *Session) ResetDraft() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = Draft{}
}

func (s *Session) beginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.inFlight {
		return errs.ErrSubmitInFlight
	}
	s.inFlight = true
	return nil
}

func (s *Session) endSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inFlight = false
}

func containsBarang(items []model.Barang, id int) bool {
	for i := range items {
		if items[i].ID == id {
			return true
		}
	}
	return false
}
