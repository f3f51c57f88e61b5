package cron

import (
	"Pulse/internal/job"
	log "log/slog"

	"github.com/robfig/cron/v3"
)

type Manager struct {
	engine     *cron.Cron
	rollupSpec string
	rollupJob  *job.RollupJob
}

func NewCronManager(rollupSpec string, rollupJob *job.RollupJob) *Manager {
	return &Manager{
		engine:     cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
		rollupSpec: rollupSpec,
		rollupJob:  rollupJob,
	}
}

// RegisterJobs 注册定时任务
func (s *Manager) RegisterJobs() error {
	if _, err := s.engine.AddJob(s.rollupSpec, s.rollupJob); err != nil {
		return err
	}
	return nil
}

func (s *Manager) Start() {
	log.Info("Cron engine started", "rollup_spec", s.rollupSpec)
	s.engine.Start()
}

// Stop 等待正在执行的任务结束
func (s *Manager) Stop() {
	log.Info("Cron engine stopping")
	<-s.engine.Stop().Done()
}
