package ports

import (
	"time"

	"github.com/jhoicas/Patrimonio-api/internal/application/dto"
)

// CustodyPDFGenerator genera el término de responsabilidad en PDF.
type CustodyPDFGenerator interface {
	CustodyTerm(term dto.CustodyTermResponse, issuedAt time.Time) ([]byte, error)
}
