package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

// SectorUseCase alta y listado de sectores.
type SectorUseCase struct {
	repo repository.SectorRepository
}

func NewSectorUseCase(repo repository.SectorRepository) *SectorUseCase {
	return &SectorUseCase{repo: repo}
}

// List ordenados por nombre.
func (uc *SectorUseCase) List(ctx context.Context) ([]dto.SectorResponse, error) {
	sectors, err := uc.repo.List(ctx)
	if err != nil {
		return nil, domain.Storage("list sectors", err)
	}
	out := make([]dto.SectorResponse, 0, len(sectors))
	for _, s := range sectors {
		out = append(out, dto.SectorResponse{ID: s.ID, Name: s.Name})
	}
	return out, nil
}

// Create el nombre es único sin distinguir mayúsculas; el repo devuelve ConflictError.
func (uc *SectorUseCase) Create(ctx context.Context, in dto.SectorRequest) (*dto.SectorResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("O nome do setor é obrigatório.")
	}
	s, err := uc.repo.Create(ctx, name)
	if err != nil {
		return nil, domain.Storage("create sector", err)
	}
	return &dto.SectorResponse{ID: s.ID, Name: s.Name}, nil
}
