package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/linggafajar/sarpras/internal/form"
	"github.com/linggafajar/sarpras/internal/model"
	"github.com/linggafajar/sarpras/internal/notification"
	"github.com/linggafajar/sarpras/internal/session"
	"github.com/linggafajar/sarpras/pkg/validate"
)

type Handler struct {
	catalogSvc CatalogService
	pipeline   SubmissionPipeline
	historyDB  HistoryRepository
	sessions   *session.Manager
	log        *zap.Logger
}

func New(log *zap.Logger, sessions *session.Manager, catalogSvc CatalogService, pipeline SubmissionPipeline, historyDB HistoryRepository) *Handler {
	return &Handler{
		catalogSvc: catalogSvc,
		pipeline:   pipeline,
		historyDB:  historyDB,
		sessions:   sessions,
		log:        log,
	}
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", newRateLimiterMW(baseRPS))
	base.GET("/manage/health", h.Health)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(requestLoggerConfig()),
		middleware.RequestID(),
		newRateLimiterMW(apiRPS),
		h.sessionMW,
	)

	api.GET("/barang", h.GetBarang)
	api.POST("/peminjaman", h.CreatePeminjaman)
	api.GET("/riwayat", h.GetRiwayat)

	api.GET("/notification", h.GetNotification)
	api.POST("/notification/close", h.CloseNotification)

	api.GET("/welcome", h.GetWelcome)
	api.POST("/welcome/close", h.CloseWelcome)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

func (h *Handler) GetBarang(c echo.Context) error {
	entry, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry.Form.Items())
}

// createPeminjamanRequest is the form draft as posted by the page.
// Presence is checked by the ordered form rules, not here; these tags
// only reject structurally bogus payloads.
type createPeminjamanRequest struct {
	Nama           string        `json:"nama"`
	Jabatan        model.Jabatan `json:"jabatan" validate:"omitempty,oneof=Guru Staf Siswa"`
	Kelas          string        `json:"kelas"`
	Keperluan      string        `json:"keperluan"`
	BarangID       int           `json:"barangId" validate:"omitempty,gte=0"`
	Jumlah         int           `json:"jumlah" validate:"omitempty,gte=0"`
	TanggalPinjam  model.Date    `json:"tanggalPinjam"`
	TanggalKembali model.Date    `json:"tanggalKembali"`
}

type submitResponse struct {
	Result       form.Result        `json:"result"`
	Notification notification.State `json:"notification"`
	Draft        form.Draft         `json:"draft"`
	Barang       []model.Barang     `json:"barang"`
}

func (h *Handler) CreatePeminjaman(c echo.Context) error {
	entry, err := currentSession(c)
	if err != nil {
		return err
	}

	var req createPeminjamanRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	entry.Form.SetDraft(form.Draft{
		Nama:           req.Nama,
		Jabatan:        req.Jabatan,
		Kelas:          req.Kelas,
		Keperluan:      req.Keperluan,
		BarangID:       req.BarangID,
		Jumlah:         req.Jumlah,
		TanggalPinjam:  req.TanggalPinjam,
		TanggalKembali: req.TanggalKembali,
	})

	res := h.pipeline.Submit(c.Request().Context(), entry.Form)

	return c.JSON(res.Code, submitResponse{
		Result:       res,
		Notification: entry.Form.Presenter().State(),
		Draft:        entry.Form.Draft(),
		Barang:       entry.Form.Items(),
	})
}

func (h *Handler) GetRiwayat(c echo.Context) error {
	entry, err := currentSession(c)
	if err != nil {
		return err
	}
	userID := entry.Form.UserID()
	if userID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "Login Diperlukan")
	}
	if h.historyDB == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "riwayat tidak tersedia")
	}
	items, err := h.historyDB.List(c.Request().Context(), userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, items)
}

func (h *Handler) GetNotification(c echo.Context) error {
	entry, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry.Form.Presenter().State())
}

func (h *Handler) CloseNotification(c echo.Context) error {
	entry, err := currentSession(c)
	if err != nil {
		return err
	}
	entry.Form.Presenter().Close()
	return c.JSON(http.StatusOK, entry.Form.Presenter().State())
}

func (h *Handler) GetWelcome(c echo.Context) error {
	entry, err := currentSession(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entry.Greeter.State())
}

func (h *Handler) CloseWelcome(c echo.Context) error {
	entry, err := currentSession(c)
	if err != nil {
		return err
	}
	entry.Greeter.Close()
	return c.JSON(http.StatusOK, entry.Greeter.State())
}
