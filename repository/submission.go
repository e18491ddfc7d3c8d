package repository

import (
	"context"

	"github.com/to404hanga/online_judge_arena/model"
	"gorm.io/gorm"
)

// SubmissionRepository 提交记录只追加, 不提供更新与删除
type SubmissionRepository interface {
	Create(ctx context.Context, s *model.Submission) error
	FindByID(ctx context.Context, id string) (*model.Submission, error)
	// ListByParticipant 按 (created_at, seq) 升序返回, problemID 为空时返回全部题目
	ListByParticipant(ctx context.Context, participantID, problemID string) ([]model.Submission, error)
	// ListAll 全部提交, 按 (created_at, seq) 升序
	ListAll(ctx context.Context) ([]model.Submission, error)
}

type GormSubmissionRepository struct {
	db *gorm.DB
}

var _ SubmissionRepository = (*GormSubmissionRepository)(nil)

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &GormSubmissionRepository{db: db}
}

func (r *GormSubmissionRepository) Create(ctx context.Context, s *model.Submission) error {
	return translate("create submission", r.db.WithContext(ctx).Create(s).Error)
}

func (r *GormSubmissionRepository) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	var s model.Submission
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
		return nil, translate("find submission by id", err)
	}
	return &s, nil
}

func (r *GormSubmissionRepository) ListByParticipant(ctx context.Context, participantID, problemID string) ([]model.Submission, error) {
	var list []model.Submission
	query := r.db.WithContext(ctx).Where("participant_id = ?", participantID)
	if problemID != "" {
		query = query.Where("problem_id = ?", problemID)
	}
	if err := query.Order("created_at ASC, seq ASC").Find(&list).Error; err != nil {
		return nil, translate("list submissions by participant", err)
	}
	return list, nil
}

func (r *GormSubmissionRepository) ListAll(ctx context.Context) ([]model.Submission, error) {
	var list []model.Submission
	if err := r.db.WithContext(ctx).Order("created_at ASC, seq ASC").Find(&list).Error; err != nil {
		return nil, translate("list all submissions", err)
	}
	return list, nil
}
