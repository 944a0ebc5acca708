package form

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linggafajar/sarpras/internal/events"
	"github.com/linggafajar/sarpras/internal/history"
	"github.com/linggafajar/sarpras/internal/model"
	"github.com/linggafajar/sarpras/internal/notification"
)

type CatalogService interface {
	ListPeminjaman(ctx context.Context) ([]model.Barang, int, error)
}

type SubmitService interface {
	Create(ctx context.Context, request model.CreatePeminjamanRequest) (int, string, error)
}

type Journal interface {
	Record(ctx context.Context, rec history.Record) error
}

type Outcome string

const (
	OutcomeAccepted    Outcome = "accepted"
	OutcomeInvalid     Outcome = "invalid"
	OutcomeRejected    Outcome = "rejected"
	OutcomeUnavailable Outcome = "unavailable"
	OutcomeBusy        Outcome = "busy"
)

// Result reports one submission attempt. Notice mirrors what the
// presenter was asked to show.
type Result struct {
	Outcome Outcome             `json:"outcome"`
	Code    int                 `json:"code"`
	Notice  notification.Notice `json:"notice"`
}

// Pipeline is the submission workflow: validate the draft, forward it
// to the backend and map the outcome onto the session's presenter.
// journal and enqueuer are optional.
type Pipeline struct {
	log      *zap.Logger
	catalog  CatalogService
	submit   SubmitService
	journal  Journal
	enqueuer events.Enqueuer
}

func NewPipeline(log *zap.Logger, catalog CatalogService, submit SubmitService, journal Journal, enqueuer events.Enqueuer) *Pipeline {
	return &Pipeline{
		log:      log.Named("pipeline"),
		catalog:  catalog,
		submit:   submit,
		journal:  journal,
		enqueuer: enqueuer,
	}
}

// Submit runs the full workflow for the session's current draft.
// A validation failure or a rejected/failed request leaves the draft
// intact so the user can correct and resubmit; only a confirmed
// submission resets it and refreshes the catalog.
func (p *Pipeline) Submit(ctx context.Context, s *Session) Result {
	if err := s.beginSubmit(); err != nil {
		p.log.Warn("submit", zap.Error(err))
		return Result{
			Outcome: OutcomeBusy,
			Code:    http.StatusConflict,
			Notice: notification.Notice{
				Severity: notification.SeverityWarning,
				Title:    "Mohon Tunggu",
				Message:  "Pengajuan sebelumnya masih diproses",
			},
		}
	}
	defer s.endSubmit()

	userID := s.UserID()
	draft := s.Draft()

	if n := Validate(userID, draft); n != nil {
		s.Presenter().ShowNotice(*n)
		return Result{Outcome: OutcomeInvalid, Code: http.StatusBadRequest, Notice: *n}
	}

	request := draft.Payload(userID)
	code, message, err := p.submit.Create(ctx, request)
	if err != nil {
		p.log.Error("create peminjaman", zap.Error(err))
		n := notification.Notice{
			Severity: notification.SeverityError,
			Title:    "Kesalahan Server",
			Message:  "Terjadi kesalahan saat menghubungi server. Coba lagi nanti.",
		}
		s.Presenter().ShowNotice(n)
		p.record(ctx, request, history.StatusFailed, n.Message)
		return Result{Outcome: OutcomeUnavailable, Code: http.StatusBadGateway, Notice: n}
	}

	if code < http.StatusOK || code >= http.StatusMultipleChoices {
		if message == "" {
			message = "Terjadi kesalahan saat menyimpan data"
		}
		n := notification.Notice{
			Severity: notification.SeverityError,
			Title:    "Gagal Menyimpan",
			Message:  message,
		}
		s.Presenter().ShowNotice(n)
		p.record(ctx, request, history.StatusRejected, message)
		return Result{Outcome: OutcomeRejected, Code: code, Notice: n}
	}

	n := notification.Notice{
		Severity: notification.SeveritySuccess,
		Title:    "Berhasil! 🎉",
		Message:  "Peminjaman berhasil diajukan dan menunggu persetujuan admin",
	}
	s.Presenter().ShowNotice(n)
	s.ResetDraft()

	// refresh stock and the default selection; last fetch wins
	items, _, err := p.catalog.ListPeminjaman(ctx)
	if err != nil {
		p.log.Error("refresh katalog", zap.Error(err))
		s.Presenter().Show(notification.SeverityError, "Kesalahan Server",
			"Terjadi kesalahan saat menghubungi server. Coba lagi nanti.")
	} else {
		s.SetItems(items)
	}

	p.record(ctx, request, history.StatusAccepted, "")
	return Result{Outcome: OutcomeAccepted, Code: code, Notice: n}
}

func (p *Pipeline) record(ctx context.Context, req model.CreatePeminjamanRequest, status history.Status, message string) {
	uid := uuid.NewString()
	if p.journal != nil {
		rec := history.Record{
			RecordUID:           uid,
			UserID:              req.UserID,
			Nama:                req.Nama,
			Jabatan:             string(req.Jabatan),
			Kelas:               req.Kelas,
			Keperluan:           req.Keperluan,
			BarangID:            req.BarangID,
			Jumlah:              req.JumlahBarang,
			TanggalPengajuan:    req.TanggalPengajuan.Format(time.DateOnly),
			TanggalPengembalian: req.TanggalPengembalian.Format(time.DateOnly),
			Status:              status,
			Message:             message,
		}
		if err := p.journal.Record(ctx, rec); err != nil {
			p.log.Error("journal record", zap.Error(err))
		}
	}
	if p.enqueuer != nil {
		ev := model.PeminjamanEvent{
			EventUID:  uid,
			UserID:    req.UserID,
			BarangID:  req.BarangID,
			Jumlah:    req.JumlahBarang,
			Status:    string(status),
			Message:   message,
			CreatedAt: time.Now().UTC(),
		}
		if err := p.enqueuer.Enqueue(events.TopicPeminjaman, ev); err != nil {
			p.log.Error("enqueue event", zap.Error(err))
		}
	}
}
