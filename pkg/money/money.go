// Package money normaliza valores monetarios escritos por humanos y los formatea en reales (pt-BR).
package money

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Scale cantidad de decimales con que se persisten los valores (NUMERIC(12,2)).
const Scale = 2

// Precisión total de las columnas monetarias.
const (
	UnitValuePrecision = 12 // patrimonio.valor_unitario
	CostPrecision      = 10 // manutencoes.custo
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)`)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// Normalize convierte "R$ 1.234,56", "1234.56", "1,234.56" o "" en un decimal.
// Nunca falla: lo que no se puede interpretar vale cero.
//
// Si hay una coma después del último punto, la coma es el separador decimal y los
// puntos son de miles; en otro caso las comas son de miles.
func Normalize(input string) decimal.Decimal {
	s := strings.ReplaceAll(input, "R$", "")
	s = strings.Join(strings.Fields(s), "")
	if s == "" {
		return decimal.Zero
	}

	if strings.Contains(s, ",") && strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	} else {
		s = strings.ReplaceAll(s, ",", "")
	}

	num := leadingNumber.FindString(s)
	if num == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(num)
	if err != nil {
		return decimal.Zero
	}
	return d.Round(Scale)
}

// NormalizePtr igual que Normalize; nil vale cero.
func NormalizePtr(input *string) decimal.Decimal {
	if input == nil {
		return decimal.Zero
	}
	return Normalize(*input)
}

// Fits indica si d es no negativo y cabe en una columna NUMERIC(precision, Scale).
func Fits(d decimal.Decimal, precision int32) bool {
	if d.IsNegative() {
		return false
	}
	return d.Round(Scale).LessThan(decimal.New(1, precision-Scale))
}

// Max mayor valor representable en NUMERIC(precision, Scale).
func Max(precision int32) decimal.Decimal {
	return decimal.New(1, precision-Scale).Sub(decimal.New(1, -Scale))
}

// FormatBRL formatea como moneda brasileña: "R$ 1.234,56".
func FormatBRL(d decimal.Decimal) string {
	f := d.Round(Scale).Abs().InexactFloat64()
	out := "R$ " + brPrinter.Sprintf("%.2f", f)
	if d.Round(Scale).IsNegative() {
		return "-" + out
	}
	return out
}
