package repos

import (
  "context"
  "errors"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/skillforged/skillforged-backend/internal/logger"
  "github.com/skillforged/skillforged-backend/internal/types"
)

type RoadmapRepo interface {
  Create(ctx context.Context, tx *gorm.DB, roadmaps []*types.Roadmap) ([]*types.Roadmap, error)
  GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Roadmap, error)
  GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.Roadmap, error)
  UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error
  Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
}

type roadmapRepo struct {
  db  *gorm.DB
  log *logger.Logger
}

func NewRoadmapRepo(db *gorm.DB, baseLog *logger.Logger) RoadmapRepo {
  repoLog := baseLog.With("repo", "RoadmapRepo")
  return &roadmapRepo{db: db, log: repoLog}
}

func (r *roadmapRepo) Create(ctx context.Context, tx *gorm.DB, roadmaps []*types.Roadmap) ([]*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  if len(roadmaps) == 0 {
    return []*types.Roadmap{}, nil
  }
  if err := transaction.WithContext(ctx).Create(&roadmaps).Error; err != nil {
    return nil, err
  }
  return roadmaps, nil
}

func (r *roadmapRepo) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var roadmap types.Roadmap
  err := transaction.WithContext(ctx).Where("id = ?", id).First(&roadmap).Error
  if err != nil {
    if errors.Is(err, gorm.ErrRecordNotFound) {
      return nil, nil
    }
    return nil, err
  }
  return &roadmap, nil
}

func (r *roadmapRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID string) ([]*types.Roadmap, error) {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  var roadmaps []*types.Roadmap
  err := transaction.WithContext(ctx).
    Where("user_id = ?", userID).
    Order("created_at DESC").
    Find(&roadmaps).Error
  if err != nil {
    return nil, err
  }
  return roadmaps, nil
}

func (r *roadmapRepo) UpdateFields(ctx context.Context, tx *gorm.DB, id uuid.UUID, updates map[string]interface{}) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).
    Model(&types.Roadmap{}).
    Where("id = ?", id).
    Updates(updates).Error
}

func (r *roadmapRepo) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
  transaction := tx
  if transaction == nil {
    transaction = r.db
  }
  return transaction.WithContext(ctx).Where("id = ?", id).Delete(&types.Roadmap{}).Error
}
