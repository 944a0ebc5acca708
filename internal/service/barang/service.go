package barang

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linggafajar/sarpras/config"
	"github.com/linggafajar/sarpras/internal/model"
	"github.com/linggafajar/sarpras/pkg/circuit_breaker"
)

// JenisPeminjaman is the catalog category served by the borrowing form.
const JenisPeminjaman = "peminjaman"

type Service struct {
	log    *zap.Logger
	client *http.Client
	cfg    config.BackendHTTPServer
	cb     circuit_breaker.CircuitBreaker
}

func NewService(log *zap.Logger, cfg config.Config) *Service {
	return &Service{
		log:    log,
		client: &http.Client{Timeout: time.Minute},
		cfg:    cfg.Backend,
		cb:     circuit_breaker.NewCircuitBreaker(10, 5*time.Second, 0.5, 3),
	}
}

// ListPeminjaman fetches the item catalog and keeps only entries whose
// jenis equals "peminjaman", case-insensitively. Filtering happens on
// this side; the backend serves the full catalog.
func (s *Service) ListPeminjaman(ctx context.Context) ([]model.Barang, int, error) {
	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodGet,
		fmt.Sprintf("http://%s/api/barang", net.JoinHostPort(s.cfg.Host, s.cfg.Port)),
		http.NoBody)
	if err != nil {
		return nil, http.StatusBadRequest, err
	}

	var (
		items      []model.Barang
		statusCode int
	)
	if err := s.cb.Call(func() error {
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		statusCode = resp.StatusCode
		return json.NewDecoder(resp.Body).Decode(&items)
	}); err != nil {
		return nil, http.StatusBadRequest, err
	}

	filtered := make([]model.Barang, 0, len(items))
	for _, item := range items {
		if strings.EqualFold(item.Jenis, JenisPeminjaman) {
			filtered = append(filtered, item)
		}
	}
	return filtered, statusCode, nil
}
