package ports

// MetricsRecorder puerto de salida para métricas de negocio.
// El adaptador de Prometheus lo implementa; NopMetrics sirve en tests y herramientas CLI.
type MetricsRecorder interface {
	// HistoryWritten cuenta entradas de histórico confirmadas, por tipo de acción.
	HistoryWritten(action string, n int64)
	// MutationFailed cuenta operaciones revertidas, por operación.
	MutationFailed(op string)
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) HistoryWritten(string, int64) {}
func (NopMetrics) MutationFailed(string)        {}
