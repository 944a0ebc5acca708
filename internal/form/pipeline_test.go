package form_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linggafajar/sarpras/internal/form"
	"github.com/linggafajar/sarpras/internal/history"
	"github.com/linggafajar/sarpras/internal/model"
	"github.com/linggafajar/sarpras/internal/notification"
)

type stubCatalog struct {
	mu    sync.Mutex
	items []model.Barang
	err   error
	calls int
}

func (s *stubCatalog) ListPeminjaman(_ context.Context) ([]model.Barang, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	if s.err != nil {
		return nil, 0, s.err
	}
	return s.items, http.StatusOK, nil
}

type stubSubmit struct {
	mu      sync.Mutex
	code    int
	message string
	err     error
	calls   int
	lastReq model.CreatePeminjamanRequest
	started chan struct{}
	release chan struct{}
}

func (s *stubSubmit) Create(_ context.Context, req model.CreatePeminjamanRequest) (int, string, error) {
	s.mu.Lock()
	s.calls++
	s.lastReq = req
	started, release := s.started, s.release
	s.mu.Unlock()
	if started != nil {
		close(started)
		s.mu.Lock()
		s.started = nil
		s.mu.Unlock()
	}
	if release != nil {
		<-release
	}
	if s.err != nil {
		return 0, "", s.err
	}
	return s.code, s.message, nil
}

func (s *stubSubmit) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

type stubJournal struct {
	mu   sync.Mutex
	recs []history.Record
}

func (s *stubJournal) Record(_ context.Context, rec history.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.recs = append(s.recs, rec)
	return nil
}

type stubEnqueuer struct {
	mu     sync.Mutex
	topics []string
	msgs   []any
}

func (s *stubEnqueuer) Enqueue(topic string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = append(s.topics, topic)
	s.msgs = append(s.msgs, v)
	return nil
}

func newTestSession(userID int, d form.Draft) *form.Session {
	p := notification.NewPresenter(zap.NewExample().Named("test"), notification.WithAutoClose(false))
	s := form.NewSession(p)
	s.SetUserID(userID)
	s.SetItems([]model.Barang{{ID: 3, Nama: "Proyektor", Stok: 5, Jenis: "peminjaman"}})
	s.SetDraft(d)
	return s
}

func TestPipeline_Submit_Success(t *testing.T) {
	t.Parallel()
	catalog := &stubCatalog{items: []model.Barang{
		{ID: 3, Nama: "Proyektor", Stok: 3, Jenis: "peminjaman"},
		{ID: 5, Nama: "Speaker", Stok: 2, Jenis: "peminjaman"},
	}}
	submit := &stubSubmit{code: http.StatusOK}
	journal := &stubJournal{}
	queue := &stubEnqueuer{}
	p := form.NewPipeline(zap.NewExample(), catalog, submit, journal, queue)

	sess := newTestSession(7, validDraft())
	defer sess.Presenter().Stop()

	res := p.Submit(context.Background(), sess)

	require.Equal(t, form.OutcomeAccepted, res.Outcome)
	require.Equal(t, http.StatusOK, res.Code)

	// the three success effects happen together
	st := sess.Presenter().State()
	require.True(t, st.IsOpen)
	require.Equal(t, notification.SeveritySuccess, st.Severity)
	require.Equal(t, "Berhasil! 🎉", st.Title)

	d := sess.Draft()
	require.Empty(t, d.Nama)
	require.Empty(t, d.Keperluan)
	require.Zero(t, d.Jumlah)
	require.True(t, d.TanggalPinjam.IsZero())

	require.Equal(t, 1, catalog.calls, "catalog refreshed exactly once")
	require.Len(t, sess.Items(), 2)
	require.Equal(t, 3, sess.Draft().BarangID, "first filtered item becomes the default")

	// payload serialized from the draft, requester id attached
	require.Equal(t, "Budi", submit.lastReq.Nama)
	require.Equal(t, 7, submit.lastReq.UserID)
	require.Equal(t, "2024-01-10", submit.lastReq.TanggalPengajuan.Format(time.DateOnly))
	require.Equal(t, "2024-01-15", submit.lastReq.TanggalPengembalian.Format(time.DateOnly))

	require.Len(t, journal.recs, 1)
	require.Equal(t, history.StatusAccepted, journal.recs[0].Status)
	require.Equal(t, "2024-01-10", journal.recs[0].TanggalPengajuan)

	require.Len(t, queue.msgs, 1)
	require.Equal(t, "peminjaman.events", queue.topics[0])
}

func TestPipeline_Submit_InvalidNeverReachesNetwork(t *testing.T) {
	t.Parallel()
	catalog := &stubCatalog{}
	submit := &stubSubmit{code: http.StatusOK}
	p := form.NewPipeline(zap.NewExample(), catalog, submit, nil, nil)

	d := validDraft()
	d.TanggalKembali = date("2024-01-09")
	sess := newTestSession(7, d)
	defer sess.Presenter().Stop()

	res := p.Submit(context.Background(), sess)

	require.Equal(t, form.OutcomeInvalid, res.Outcome)
	require.Equal(t, 0, submit.callCount(), "invalid draft must not hit the backend")
	require.Equal(t, 0, catalog.calls)

	st := sess.Presenter().State()
	require.True(t, st.IsOpen)
	require.Equal(t, "Tanggal Tidak Valid", st.Title)
	require.Equal(t, notification.SeverityError, st.Severity)

	require.Equal(t, "Budi", sess.Draft().Nama, "draft kept for correction")
}

func TestPipeline_Submit_RejectedKeepsDraft(t *testing.T) {
	t.Parallel()
	var tests = []struct {
		name        string
		code        int
		message     string
		wantMessage string
	}{
		{
			name:        "server message surfaced",
			code:        http.StatusBadRequest,
			message:     "Stok tidak mencukupi",
			wantMessage: "Stok tidak mencukupi",
		},
		{
			name:        "generic fallback",
			code:        http.StatusInternalServerError,
			wantMessage: "Terjadi kesalahan saat menyimpan data",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			catalog := &stubCatalog{}
			submit := &stubSubmit{code: tt.code, message: tt.message}
			journal := &stubJournal{}
			p := form.NewPipeline(zap.NewExample(), catalog, submit, journal, nil)

			sess := newTestSession(7, validDraft())
			defer sess.Presenter().Stop()

			res := p.Submit(context.Background(), sess)

			require.Equal(t, form.OutcomeRejected, res.Outcome)
			require.Equal(t, tt.code, res.Code)

			st := sess.Presenter().State()
			require.Equal(t, "Gagal Menyimpan", st.Title)
			require.Equal(t, tt.wantMessage, st.Message)

			require.Equal(t, "Budi", sess.Draft().Nama, "non-2xx never clears the draft")
			require.Equal(t, 0, catalog.calls, "no catalog refresh on rejection")
			require.Len(t, journal.recs, 1)
			require.Equal(t, history.StatusRejected, journal.recs[0].Status)
		})
	}
}

func TestPipeline_Submit_TransportFailure(t *testing.T) {
	t.Parallel()
	catalog := &stubCatalog{}
	submit := &stubSubmit{err: errors.New("connection refused")}
	p := form.NewPipeline(zap.NewExample(), catalog, submit, nil, nil)

	sess := newTestSession(7, validDraft())
	defer sess.Presenter().Stop()

	res := p.Submit(context.Background(), sess)

	require.Equal(t, form.OutcomeUnavailable, res.Outcome)
	require.Equal(t, http.StatusBadGateway, res.Code)

	st := sess.Presenter().State()
	require.Equal(t, "Kesalahan Server", st.Title)
	require.Equal(t, notification.SeverityError, st.Severity)
	require.Equal(t, "Budi", sess.Draft().Nama)
}

func TestPipeline_Submit_AtMostOneInFlight(t *testing.T) {
	t.Parallel()
	catalog := &stubCatalog{items: []model.Barang{{ID: 3, Nama: "Proyektor", Stok: 5, Jenis: "peminjaman"}}}
	submit := &stubSubmit{
		code:    http.StatusOK,
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	p := form.NewPipeline(zap.NewExample(), catalog, submit, nil, nil)

	sess := newTestSession(7, validDraft())
	defer sess.Presenter().Stop()

	firstDone := make(chan form.Result, 1)
	go func() {
		firstDone <- p.Submit(context.Background(), sess)
	}()

	<-submit.started

	second := p.Submit(context.Background(), sess)
	require.Equal(t, form.OutcomeBusy, second.Outcome)
	require.Equal(t, http.StatusConflict, second.Code)

	close(submit.release)
	first := <-firstDone
	require.Equal(t, form.OutcomeAccepted, first.Outcome)
	require.Equal(t, 1, submit.callCount())
}
