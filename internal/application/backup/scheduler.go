package backup

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// dumpTimeout límite para un backup programado.
const dumpTimeout = 30 * time.Minute

// Scheduler corre Create según una expresión cron.
type Scheduler struct {
	cron *cron.Cron
}

// NewScheduler registra el job; devuelve error si schedule no es una expresión válida.
func NewScheduler(uc *UseCase, schedule string, log zerolog.Logger) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), dumpTimeout)
		defer cancel()
		f, err := uc.Create(ctx)
		if err != nil {
			log.Error().Err(err).Msg("backup programado falló")
			return
		}
		log.Info().Str("file", f.Name).Int64("size", f.Size).Msg("backup programado completado")
	})
	if err != nil {
		return nil, err
	}
	return &Scheduler{cron: c}, nil
}

func (s *Scheduler) Start() { s.cron.Start() }

// Stop espera a que termine un backup en curso.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}
