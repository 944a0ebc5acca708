package form

import (
	"strings"
	"time"

	"github.com/linggafajar/sarpras/internal/model"
)

// Draft is the in-progress borrowing request held by a form session.
// Zero values mean "not filled in yet".
type Draft struct {
	Nama           string        `json:"nama"`
	Jabatan        model.Jabatan `json:"jabatan"`
	Kelas          string        `json:"kelas"`
	Keperluan      string        `json:"keperluan"`
	BarangID       int           `json:"barangId"`
	Jumlah         int           `json:"jumlah"`
	TanggalPinjam  model.Date    `json:"tanggalPinjam"`
	TanggalKembali model.Date    `json:"tanggalKembali"`
}

// Payload serializes the draft for the backend borrowing endpoint.
// Dates travel as yyyy-MM-dd strings.
func (d Draft) Payload(userID int) model.CreatePeminjamanRequest {
	return model.CreatePeminjamanRequest{
		Nama:                strings.TrimSpace(d.Nama),
		Jabatan:             d.Jabatan,
		Kelas:               strings.TrimSpace(d.Kelas),
		Keperluan:           strings.TrimSpace(d.Keperluan),
		BarangID:            d.BarangID,
		JumlahBarang:        d.Jumlah,
		TanggalPengajuan:    d.TanggalPinjam,
		TanggalPengembalian: d.TanggalKembali,
		UserID:              userID,
	}
}

func (d Draft) startDate() time.Time { return d.TanggalPinjam.Time }
func (d Draft) endDate() time.Time   { return d.TanggalKembali.Time }
