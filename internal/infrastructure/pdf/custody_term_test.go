package pdf_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
	"github.com/jhoicas/Patrimonio-api/internal/infrastructure/pdf"
)

func TestCustodyTerm_GeneraPDF(t *testing.T) {
	term := dto.CustodyTermResponse{
		Responsible: "Ana Souza",
		Items: []dto.AssetResponse{
			{Tag: "1001", Name: "Notebook", Brand: "Dell", Model: "5480", SerialNumber: "SN1", UnitValue: decimal.RequireFromString("3500")},
			{Tag: "1002", Name: "Monitor", UnitValue: decimal.RequireFromString("899.90")},
		},
		TotalValue: decimal.RequireFromString("4399.90"),
	}

	out, err := pdf.NewMarotoPDFGenerator("Syonet").CustodyTerm(term, time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestCustodyTerm_SinOrganizacion(t *testing.T) {
	out, err := pdf.NewMarotoPDFGenerator("  ").CustodyTerm(dto.CustodyTermResponse{Responsible: "x"}, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
