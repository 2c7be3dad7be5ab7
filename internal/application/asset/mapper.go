package asset

import (
	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/domain/entity"
)

func toAssetResponse(a *entity.Asset) dto.AssetResponse {
	return dto.AssetResponse{
		ID:               a.ID,
		Name:             a.Name,
		Tag:              a.Tag,
		SectorID:         a.SectorID,
		SectorName:       a.SectorName,
		ResponsibleName:  a.ResponsibleName,
		ResponsibleEmail: a.ResponsibleEmail,
		UnitValue:        a.UnitValue,
		InvoiceNumber:    a.InvoiceNumber,
		InvoiceURL:       a.InvoiceRef,
		Brand:            a.Brand,
		Model:            a.Model,
		SerialNumber:     a.SerialNumber,
		AcquisitionDate:  a.AcquisitionDate,
		Supplier:         a.Supplier,
		Warranty:         a.Warranty,
		Status:           a.Status,
		Notes:            a.Notes,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func toAssetResponses(items []*entity.Asset) []dto.AssetResponse {
	out := make([]dto.AssetResponse, 0, len(items))
	for _, a := range items {
		out = append(out, toAssetResponse(a))
	}
	return out
}
