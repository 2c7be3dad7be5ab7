package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Date fecha recibida de un <input type="date">. Acepta "2006-01-02", RFC3339,
// "" y null; las dos últimas dejan el valor cero, que significa ausente.
type Date struct {
	time.Time
}

// UnmarshalJSON implementa json.Unmarshaler.
func (d *Date) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if raw == "null" {
		d.Time = time.Time{}
		return nil
	}
	s, err := strconv.Unquote(raw)
	if err != nil {
		return fmt.Errorf("data inválida: %s", raw)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		d.Time = time.Time{}
		return nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		d.Time = t
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("data inválida %q: use AAAA-MM-DD", s)
	}
	d.Time = t
	return nil
}

// MarshalJSON la fecha vacía se escribe como null.
func (d Date) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(d.Time.Format(time.RFC3339))
}

// Ptr nil si la fecha está vacía.
func (d Date) Ptr() *time.Time {
	if d.IsZero() {
		return nil
	}
	t := d.Time
	return &t
}
