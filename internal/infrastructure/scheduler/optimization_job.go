package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/jhoicas/gridaura-api/internal/application/dto"
	"github.com/rs/zerolog/log"
)

// OptimizationRunner corrida completa de optimización (inventory.OptimizationUseCase).
type OptimizationRunner interface {
	Run(ctx context.Context, scenario string) (*dto.OptimizeInventoryResponse, error)
}

// jobTimeout tope de una corrida programada.
const jobTimeout = 5 * time.Minute

// Scheduler tareas periódicas del servicio sobre gocron.
type Scheduler struct {
	scheduler gocron.Scheduler
}

// New crea el scheduler sin tareas.
func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("scheduler: crear: %w", err)
	}
	return &Scheduler{scheduler: s}, nil
}

// ScheduleOptimization registra la corrida periódica del optimizador. Una corrida que
// todavía no terminó no se solapa con la siguiente (se reprograma).
func (s *Scheduler) ScheduleOptimization(runner OptimizationRunner, every time.Duration, scenario string, startNow bool) error {
	if every <= 0 {
		return fmt.Errorf("scheduler: intervalo inválido %s", every)
	}
	opts := []gocron.JobOption{
		gocron.WithName("inventory-optimization"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if startNow {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}
	_, err := s.scheduler.NewJob(
		gocron.DurationJob(every),
		gocron.NewTask(runOptimization, runner, scenario),
		opts...,
	)
	if err != nil {
		return fmt.Errorf("scheduler: registrar optimización: %w", err)
	}
	log.Info().Dur("every", every).Str("scenario", scenario).Msg("optimización programada")
	return nil
}

func runOptimization(runner OptimizationRunner, scenario string) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	start := time.Now()
	out, err := runner.Run(ctx, scenario)
	if err != nil {
		log.Error().Err(err).Str("scenario", scenario).Msg("optimización programada fallida")
		return
	}
	log.Info().
		Str("scenario", out.Scenario).
		Int("exported", out.Exported).
		Int("applied", out.Applied).
		Dur("elapsed", time.Since(start)).
		Msg("optimización programada completada")
}

// Start arranca el scheduler (no bloquea).
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Shutdown detiene el scheduler esperando las tareas en curso.
func (s *Scheduler) Shutdown() error {
	return s.scheduler.Shutdown()
}
