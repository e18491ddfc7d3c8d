package repository

import (
	"context"

	"github.com/to404hanga/online_judge_arena/engine/ledger"
	"github.com/to404hanga/online_judge_arena/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ParticipantRepository interface {
	// Create 创建选手, email 或学号冲突时返回 ErrDuplicate
	Create(ctx context.Context, p *model.Participant) error
	// FindByID 按 id 查找, 附带已获得的徽章
	FindByID(ctx context.Context, id string) (*model.Participant, error)
	FindByEmail(ctx context.Context, email string) (*model.Participant, error)
	FindByStudentNumber(ctx context.Context, studentNumber string) (*model.Participant, error)
	// FindAll 全部选手, 附带徽章
	FindAll(ctx context.Context) ([]model.Participant, error)
	// UpdateFields 更新指定字段
	UpdateFields(ctx context.Context, id string, fields map[string]any) error
	// ApplyDelta 写入首次通过记录并累加聚合字段, 记录已存在时不做任何修改并返回 false
	ApplyDelta(ctx context.Context, d ledger.Delta) (bool, error)
	// ListSolved 选手的首次通过记录
	ListSolved(ctx context.Context, participantID string) ([]model.SolvedProblem, error)
	// AddBadges 插入徽章, 已存在的 (participant, badge) 被忽略, 返回实际插入的徽章
	AddBadges(ctx context.Context, badges []model.Badge) ([]model.Badge, error)
	ListBadges(ctx context.Context, participantID string) ([]model.Badge, error)
}

type GormParticipantRepository struct {
	db *gorm.DB
}

var _ ParticipantRepository = (*GormParticipantRepository)(nil)

func NewParticipantRepository(db *gorm.DB) ParticipantRepository {
	return &GormParticipantRepository{db: db}
}

func (r *GormParticipantRepository) Create(ctx context.Context, p *model.Participant) error {
	return translate("create participant", r.db.WithContext(ctx).Omit("Badges").Create(p).Error)
}

func (r *GormParticipantRepository) FindByID(ctx context.Context, id string) (*model.Participant, error) {
	var p model.Participant
	err := r.db.WithContext(ctx).
		Preload("Badges", func(db *gorm.DB) *gorm.DB { return db.Order("earned_at ASC, badge_id ASC") }).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, translate("find participant by id", err)
	}
	return &p, nil
}

func (r *GormParticipantRepository) FindByEmail(ctx context.Context, email string) (*model.Participant, error) {
	var p model.Participant
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&p).Error; err != nil {
		return nil, translate("find participant by email", err)
	}
	return &p, nil
}

func (r *GormParticipantRepository) FindByStudentNumber(ctx context.Context, studentNumber string) (*model.Participant, error) {
	var p model.Participant
	if err := r.db.WithContext(ctx).Where("student_number = ?", studentNumber).First(&p).Error; err != nil {
		return nil, translate("find participant by student number", err)
	}
	return &p, nil
}

func (r *GormParticipantRepository) FindAll(ctx context.Context) ([]model.Participant, error) {
	var list []model.Participant
	err := r.db.WithContext(ctx).Preload("Badges").Order("created_at ASC, id ASC").Find(&list).Error
	if err != nil {
		return nil, translate("find all participants", err)
	}
	return list, nil
}

func (r *GormParticipantRepository) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	res := r.db.WithContext(ctx).Model(&model.Participant{}).Where("id = ?", id).Updates(fields)
	if res.Error != nil {
		return translate("update participant", res.Error)
	}
	if res.RowsAffected == 0 {
		return translate("update participant", gorm.ErrRecordNotFound)
	}
	return nil
}

func (r *GormParticipantRepository) ApplyDelta(ctx context.Context, d ledger.Delta) (bool, error) {
	if d.IsZero() {
		return false, nil
	}
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		marker := d.SolvedMarker()
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&marker)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		err := tx.Model(&model.Participant{}).Where("id = ?", d.ParticipantID).Updates(map[string]any{
			"score":           gorm.Expr("score + ?", d.Score),
			"solved_problems": gorm.Expr("solved_problems + ?", d.SolvedProblems),
			"penalty_time":    gorm.Expr("penalty_time + ?", d.PenaltyMinutes),
		}).Error
		if err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, translate("apply score delta", err)
	}
	return applied, nil
}

func (r *GormParticipantRepository) ListSolved(ctx context.Context, participantID string) ([]model.SolvedProblem, error) {
	var list []model.SolvedProblem
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("solved_at ASC, problem_id ASC").
		Find(&list).Error
	if err != nil {
		return nil, translate("list solved problems", err)
	}
	return list, nil
}

func (r *GormParticipantRepository) AddBadges(ctx context.Context, badges []model.Badge) ([]model.Badge, error) {
	if len(badges) == 0 {
		return nil, nil
	}
	var inserted []model.Badge
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range badges {
			b := badges[i]
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&b)
			if res.Error != nil {
				return res.Error
			}
			if res.RowsAffected > 0 {
				inserted = append(inserted, b)
			}
		}
		return nil
	})
	if err != nil {
		return nil, translate("add badges", err)
	}
	return inserted, nil
}

func (r *GormParticipantRepository) ListBadges(ctx context.Context, participantID string) ([]model.Badge, error) {
	var list []model.Badge
	err := r.db.WithContext(ctx).
		Where("participant_id = ?", participantID).
		Order("earned_at ASC, badge_id ASC").
		Find(&list).Error
	if err != nil {
		return nil, translate("list badges", err)
	}
	return list, nil
}
