package handler

import (
	"context"

	"github.com/linggafajar/sarpras/internal/form"
	"github.com/linggafajar/sarpras/internal/history"
	"github.com/linggafajar/sarpras/internal/model"
	"github.com/linggafajar/sarpras/internal/service/barang"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

var (
	_ CatalogService     = (*barang.Service)(nil)
	_ SubmissionPipeline = (*form.Pipeline)(nil)
	_ HistoryRepository  = (history.Repository)(nil)
)

type CatalogService interface {
	ListPeminjaman(ctx context.Context) ([]model.Barang, int, error)
}

type SubmissionPipeline interface {
	Submit(ctx context.Context, s *form.Session) form.Result
}

type HistoryRepository interface {
	List(ctx context.Context, userID int) ([]history.Record, error)
}
