package model

import (
	"strings"
	"time"
)

type Jabatan string

const (
	JabatanGuru  Jabatan = "Guru"
	JabatanStaf  Jabatan = "Staf"
	JabatanSiswa Jabatan = "Siswa"
)

// Barang is a catalog entry served by the backend inventory API.
type Barang struct {
	ID    int    `json:"id"`
	Nama  string `json:"nama"`
	Stok  int    `json:"stok"`
	Jenis string `json:"jenis"`
}

// Date marshals as yyyy-MM-dd, the wire format the backend expects.
// The zero value means "not selected".
type Date struct {
	time.Time `json:",inline"`
}

func (d *Date) UnmarshalJSON(b []byte) (err error) {
	s := strings.Trim(string(b), "\"")
	if s == "" || s == "null" {
		d.Time = time.Time{}
		return nil
	}
	date, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return err
	}
	d.Time = date
	return
}

func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte(`""`), nil
	}
	return []byte(`"` + d.Format(time.DateOnly) + `"`), nil
}

// CreatePeminjamanRequest is the payload posted to the backend
// borrowing endpoint.
type CreatePeminjamanRequest struct {
	Nama                string  `json:"nama"`
	Jabatan             Jabatan `json:"jabatan"`
	Kelas               string  `json:"kelas"`
	Keperluan           string  `json:"keperluan"`
	BarangID            int     `json:"barangId"`
	JumlahBarang        int     `json:"jumlahBarang"`
	TanggalPengajuan    Date    `json:"tanggalPengajuan"`
	TanggalPengembalian Date    `json:"tanggalPengembalian"`
	UserID              int     `json:"userId"`
}

// ErrorResponse is the error body shape the backend returns on a
// rejected request.
type ErrorResponse struct {
	Message string `json:"message"`
}

type PeminjamanEvent struct {
	EventUID  string    `json:"eventUid"`
	UserID    int       `json:"userId"`
	BarangID  int       `json:"barangId"`
	Jumlah    int       `json:"jumlah"`
	Status    string    `json:"status"`
	Message   string    `json:"message,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}
