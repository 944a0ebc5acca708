package peminjaman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/linggafajar/sarpras/config"
	"github.com/linggafajar/sarpras/internal/model"
)

type Service struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.BackendHTTPServer
}

func NewService(log *zap.Logger, cfg config.Config) *Service {
	return &Service{
		log:    log,
		client: &http.Client{Timeout: time.Minute},
		cfg:    cfg.Backend,
	}
}

// Create posts a borrowing request to the backend. A transport error is
// returned as err; otherwise the backend's status code is returned
// together with the message from a rejection body, when present.
func (s *Service) Create(ctx context.Context, request model.CreatePeminjamanRequest) (int, string, error) {
	b := bytes.NewBuffer(nil)
	if err := json.NewEncoder(b).Encode(request); err != nil {
		return 0, "", err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		fmt.Sprintf("http://%s/api/peminjaman", net.JoinHostPort(s.cfg.Host, s.cfg.Port)), b)
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Content-Type", echo.MIMEApplicationJSONCharsetUTF8)

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return resp.StatusCode, "", nil
	}

	var errResp model.ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil {
		// rejection without a parseable body still carries the status
		return resp.StatusCode, "", nil
	}
	return resp.StatusCode, errResp.Message, nil
}
