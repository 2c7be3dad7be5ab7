package usecase

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/application/ports"
	"github.com/jhoicas/Patrimonio-api/internal/domain"
	"github.com/jhoicas/Patrimonio-api/internal/domain/repository"
)

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// CustodyUseCase término de responsabilidad: equipos a cargo de una persona.
type CustodyUseCase struct {
	assets    repository.AssetRepository
	generator ports.CustodyPDFGenerator
	now       func() time.Time
}

// NewCustodyUseCase construye el caso de uso.
func NewCustodyUseCase(assets repository.AssetRepository, generator ports.CustodyPDFGenerator) *CustodyUseCase {
	return &CustodyUseCase{assets: assets, generator: generator, now: time.Now}
}

// Term lista los patrimonios del responsable (por nombre o e-mail) y su valor total.
func (uc *CustodyUseCase) Term(ctx context.Context, responsible string) (*dto.CustodyTermResponse, error) {
	responsible = strings.TrimSpace(responsible)
	if responsible == "" {
		return nil, domain.Invalid("Informe o nome ou e-mail do responsável.")
	}
	items, err := uc.assets.ListByResponsible(ctx, responsible)
	if err != nil {
		return nil, domain.Storage("list by responsible", err)
	}
	out := &dto.CustodyTermResponse{
		Responsible: responsible,
		Items:       make([]dto.AssetResponse, 0, len(items)),
		TotalValue:  decimal.Zero,
	}
	for _, a := range items {
		out.Items = append(out.Items, dto.AssetResponse{
			ID:               a.ID,
			Name:             a.Name,
			Tag:              a.Tag,
			SectorID:         a.SectorID,
			SectorName:       a.SectorName,
			ResponsibleName:  a.ResponsibleName,
			ResponsibleEmail: a.ResponsibleEmail,
			UnitValue:        a.UnitValue,
			Brand:            a.Brand,
			Model:            a.Model,
			SerialNumber:     a.SerialNumber,
			Status:           a.Status,
		})
		out.TotalValue = out.TotalValue.Add(a.UnitValue)
	}
	return out, nil
}

// TermPDF genera el PDF del término.
//
// Retorna:
//   - (pdfBytes, filename, nil) si todo sale bien.
//   - domain.ErrNotFound        si el responsable no tiene equipos.
func (uc *CustodyUseCase) TermPDF(ctx context.Context, responsible string) (pdfBytes []byte, filename string, err error) {
	// ── 1. Cargar equipos ─────────────────────────────────────────────────────
	term, err := uc.Term(ctx, responsible)
	if err != nil {
		return nil, "", err
	}
	if len(term.Items) == 0 {
		return nil, "", domain.NotFound("equipamentos do responsável", term.Responsible)
	}

	// ── 2. Generar PDF ────────────────────────────────────────────────────────
	pdfBytes, err = uc.generator.CustodyTerm(*term, uc.now())
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generar término: %w", err)
	}
	slug := strings.Trim(unsafeFileChars.ReplaceAllString(term.Responsible, "_"), "_")
	if slug == "" {
		slug = "responsavel"
	}
	return pdfBytes, "termo_responsabilidade_" + slug + ".pdf", nil
}
