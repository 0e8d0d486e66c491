package services

import (
  "context"
  "time"

  "github.com/skillforged/skillforged-backend/internal/clients/redis"
  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/types"
)

const jobTTL = time.Hour

// JobStore holds generation job status in Redis so any API instance can
// answer polls. Jobs expire an hour after their last update.
type JobStore interface {
  Set(ctx context.Context, job *types.Job) error
  Get(ctx context.Context, jobID string) (*types.Job, bool)
}

type jobStore struct {
  log   *logger.Logger
  store redis.Store
}

func NewJobStore(log *logger.Logger, store redis.Store) JobStore {
  return &jobStore{
    log:   log.With("service", "JobStore"),
    store: store,
  }
}

func jobKey(jobID string) string { return "job:" + jobID }

func (s *jobStore) Set(ctx context.Context, job *types.Job) error {
  return s.store.SetJSON(ctx, jobKey(job.ID), job, jobTTL)
}

func (s *jobStore) Get(ctx context.Context, jobID string) (*types.Job, bool) {
  var job types.Job
  if !s.store.GetJSON(ctx, jobKey(jobID), &job) {
    return nil, false
  }
  return &job, true
}
