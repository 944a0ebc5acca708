package history

import (
	"context"
	"database/sql"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"github.com/linggafajar/sarpras/internal/errs"
)

type Status string

const (
	StatusAccepted Status = "ACCEPTED"
	StatusRejected Status = "REJECTED"
	StatusFailed   Status = "FAILED"
)

// Record is a journal entry for one submission attempt that reached
// the backend.
type Record struct {
	ID                  int       `json:"-" db:"id"`
	RecordUID           string    `json:"recordUid" db:"record_uid"`
	UserID              int       `json:"userId" db:"user_id"`
	Nama                string    `json:"nama" db:"nama"`
	Jabatan             string    `json:"jabatan" db:"jabatan"`
	Kelas               string    `json:"kelas" db:"kelas"`
	Keperluan           string    `json:"keperluan" db:"keperluan"`
	BarangID            int       `json:"barangId" db:"barang_id"`
	Jumlah              int       `json:"jumlah" db:"jumlah"`
	TanggalPengajuan    string    `json:"tanggalPengajuan" db:"tanggal_pengajuan"`
	TanggalPengembalian string    `json:"tanggalPengembalian" db:"tanggal_pengembalian"`
	Status              Status    `json:"status" db:"status"`
	Message             string    `json:"message" db:"message"`
	CreatedAt           time.Time `json:"createdAt" db:"created_at"`
}

type Repository interface {
	Record(ctx context.Context, rec Record) error
	List(ctx context.Context, userID int) ([]Record, error)
}

type repository struct {
	db  *sqlx.DB
	log *zap.Logger
}

func NewRepository(db *sqlx.DB, log *zap.Logger) (*repository, error) {
	return &repository{
		db:  db,
		log: log.Named("repo"),
	}, nil
}

const (
	historyTableName = `peminjaman_history`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *repository) Record(ctx context.Context, rec Record) error {
	query, args, err := qb.Insert(historyTableName).
		Columns("record_uid", "user_id", "nama", "jabatan", "kelas", "keperluan",
			"barang_id", "jumlah", "tanggal_pengajuan", "tanggal_pengembalian",
			"status", "message").
		Values(rec.RecordUID, rec.UserID, rec.Nama, rec.Jabatan, rec.Kelas, rec.Keperluan,
			rec.BarangID, rec.Jumlah, rec.TanggalPengajuan, rec.TanggalPengembalian,
			rec.Status, rec.Message).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return errs.ErrDuplicate
		}
		r.log.Error("Record", zap.String("q", query), zap.Error(err))
		return err
	}
	return nil
}

func (r *repository) List(ctx context.Context, userID int) ([]Record, error) {
	query, args, err := qb.Select("id", "record_uid", "user_id", "nama", "jabatan", "kelas",
		"keperluan", "barang_id", "jumlah", "tanggal_pengajuan", "tanggal_pengembalian",
		"status", "message", "created_at").
		From(historyTableName).
		Where(sq.Eq{"user_id": userID}).
		OrderBy("created_at desc").
		ToSql()
	if err != nil {
		return nil, err
	}

	var items []Record
	if err := r.db.SelectContext(ctx, &items, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, errs.ErrNotFound
		}
		return nil, err
	}
	return items, nil
}
