package form

import (
	"strings"

	"github.com/linggafajar/sarpras/internal/notification"
)

// Validation rules run in a fixed order and stop at the first
// violation, so the user always sees exactly one message. The order
// mirrors the form layout: identity, identity fields, item, amount,
// dates, date logic.
var rules = []struct {
	failed func(userID int, d Draft) bool
	notice notification.Notice
}{
	{
		failed: func(userID int, _ Draft) bool { return userID == 0 },
		notice: notification.Notice{
			Severity: notification.SeverityError,
			Title:    "Login Diperlukan",
			Message:  "User tidak ditemukan. Silakan login ulang.",
		},
	},
	{
		failed: func(_ int, d Draft) bool { return strings.TrimSpace(d.Nama) == "" },
		notice: notification.Notice{
			Severity: notification.SeverityWarning,
			Title:    "Data Tidak Lengkap",
			Message:  "Nama wajib diisi",
		},
	},
	{
		failed: func(_ int, d Draft) bool { return d.Jabatan == "" },
		notice: notification.Notice{
			Severity: notification.SeverityWarning,
			Title:    "Data Tidak Lengkap",
			Message:  "Jabatan wajib dipilih",
		},
	},
	{
		failed: func(_ int, d Draft) bool { return strings.TrimSpace(d.Keperluan) == "" },
		notice: notification.Notice{
			Severity: notification.SeverityWarning,
			Title:    "Data Tidak Lengkap",
			Message:  "Keperluan wajib diisi",
		},
	},
	{
		failed: func(_ int, d Draft) bool { return d.BarangID == 0 },
		notice: notification.Notice{
			Severity: notification.SeverityWarning,
			Title:    "Data Tidak Lengkap",
			Message:  "Pilih barang terlebih dahulu",
		},
	},
	{
		failed: func(_ int, d Draft) bool { return d.Jumlah <= 0 },
		notice: notification.Notice{
			Severity: notification.SeverityWarning,
			Title:    "Data Tidak Valid",
			Message:  "Jumlah harus lebih dari 0",
		},
	},
	{
		failed: func(_ int, d Draft) bool { return d.TanggalPinjam.IsZero() },
		notice: notification.Notice{
			Severity: notification.SeverityWarning,
			Title:    "Data Tidak Lengkap",
			Message:  "Tanggal peminjaman wajib dipilih",
		},
	},
	{
		failed: func(_ int, d Draft) bool { return d.TanggalKembali.IsZero() },
		notice: notification.Notice{
			Severity: notification.SeverityWarning,
			Title:    "Data Tidak Lengkap",
			Message:  "Tanggal pengembalian wajib dipilih",
		},
	},
	{
		failed: func(_ int, d Draft) bool { return d.endDate().Before(d.startDate()) },
		notice: notification.Notice{
			Severity: notification.SeverityError,
			Title:    "Tanggal Tidak Valid",
			Message:  "Tanggal pengembalian tidak boleh sebelum tanggal peminjaman",
		},
	},
}

// Kelas is deliberately absent: the class field is optional for every
// jabatan, including Siswa.

// Validate returns the first violated rule's notice, or nil when the
// draft may be submitted.
func Validate(userID int, d Draft) *notification.Notice {
	for i := range rules {
		if rules[i].failed(userID, d) {
			n := rules[i].notice
			return &n
		}
	}
	return nil
}
