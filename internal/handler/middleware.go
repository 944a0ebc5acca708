package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/linggafajar/sarpras/internal/errs"
	"github.com/linggafajar/sarpras/internal/notification"
	"github.com/linggafajar/sarpras/internal/session"
	"github.com/linggafajar/sarpras/pkg/logger"
	"github.com/linggafajar/sarpras/pkg/token"
)

const (
	sessionCookieName = "sid"
	sessionKey        = "sessionKey"
)

// sessionMW resolves or creates the visitor's form session. A fresh
// session runs its two init tasks before the first handler sees it.
func (h *Handler) sessionMW(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		var entry *session.Entry
		if cookie, err := c.Cookie(sessionCookieName); err == nil {
			if e, ok := h.sessions.Get(cookie.Value); ok {
				entry = e
			}
		}
		if entry == nil {
			entry = h.sessions.Create()
			c.SetCookie(&http.Cookie{
				Name:     sessionCookieName,
				Value:    entry.ID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
			h.initSession(c.Request(), entry)
		}
		c.Set(sessionKey, entry)
		return next(c)
	}
}

// initSession runs the mount-time work: loading the item catalog and
// resolving the requester identity from the token cookie. The two are
// independent, each with its own failure path; neither failure aborts
// the session.
func (h *Handler) initSession(r *http.Request, entry *session.Entry) {
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		items, _, err := h.catalogSvc.ListPeminjaman(ctx)
		if err != nil {
			h.log.Error("load katalog", zap.Error(err))
			return nil
		}
		entry.Form.SetItems(items)
		return nil
	})
	g.Go(func() error {
		raw, err := token.FromRequest(r)
		if err != nil {
			entry.Form.Presenter().Show(notification.SeverityError,
				"Login Diperlukan", "Token tidak ditemukan, silakan login ulang.")
			return nil
		}
		id, err := token.UserID(raw)
		if err != nil {
			h.log.Warn("decode token", zap.Error(err))
			entry.Form.Presenter().Show(notification.SeverityError,
				"Token Tidak Valid", "Silakan login ulang untuk melanjutkan.")
			return nil
		}
		entry.Form.SetUserID(id)
		return nil
	})
	_ = g.Wait() //nolint:errcheck
}

func currentSession(c echo.Context) (*session.Entry, error) {
	entry, ok := c.Get(sessionKey).(*session.Entry)
	if !ok {
		return nil, echo.NewHTTPError(http.StatusInternalServerError, errs.ErrNoSession.Error())
	}
	return entry, nil
}

func requestLoggerConfig() middleware.RequestLoggerConfig {
	cfg := logger.Log{LogLevel: zapcore.DebugLevel, Sink: ""}
	log := logger.NewLogger(cfg, "echo")
	c := middleware.RequestLoggerConfig{
		LogURI:       true,
		LogMethod:    true,
		LogStatus:    true,
		HandleError:  true,
		LogError:     true,
		LogLatency:   true,
		LogRequestID: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := zapcore.InfoLevel
			if v.Error != nil {
				level = zapcore.ErrorLevel
			}
			log.Log(level, "request",
				zap.String("URI", v.URI),
				zap.String("Method", v.Method),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.Error(v.Error),
				zap.String("request_id", v.RequestID),
			)
			return nil
		},
	}
	return c
}

func newRateLimiterMW(rps rate.Limit) echo.MiddlewareFunc {
	return middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rps))
}
