package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/repository"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
	"golang.org/x/crypto/bcrypt"
)

type ParticipantService interface {
	// Register 注册选手, email 或学号已存在时返回 DuplicateRegistration
	Register(ctx context.Context, param *model.RegisterParam) (*model.Participant, error)
	// Login 校验 email 与密码
	Login(ctx context.Context, param *model.LoginParam) (*model.Participant, error)
	// GetParticipant 获取选手及其徽章
	GetParticipant(ctx context.Context, participantID string) (*model.Participant, error)
	// UpdateProfile 修改姓名与学校, 聚合字段与登录凭据不可修改
	UpdateProfile(ctx context.Context, participantID string, param *model.UpdateProfileParam) (*model.Participant, error)
	FindByEmail(ctx context.Context, email string) (*model.Participant, error)
	FindByStudentNumber(ctx context.Context, studentNumber string) (*model.Participant, error)
}

type ParticipantServiceImpl struct {
	repo repository.ParticipantRepository
	log  loggerv2.Logger
	now  func() time.Time
}

var _ ParticipantService = (*ParticipantServiceImpl)(nil)

func NewParticipantService(repo repository.ParticipantRepository, log loggerv2.Logger) ParticipantService {
	return &ParticipantServiceImpl{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register 注册选手
func (s *ParticipantServiceImpl) Register(ctx context.Context, param *model.RegisterParam) (*model.Participant, error) {
	param.Name = strings.TrimSpace(param.Name)
	param.Email = normalizeEmail(param.Email)
	param.StudentNumber = strings.TrimSpace(param.StudentNumber)
	param.Institution = strings.TrimSpace(param.Institution)
	if err := validateStruct(param); err != nil {
		return nil, err
	}

	if err := s.checkDuplicate(ctx, param.Email, param.StudentNumber); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(param.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("Register failed at hash password: %w", err)
	}

	now := s.now()
	p := &model.Participant{
		ID:            uuid.NewString(),
		Name:          param.Name,
		Email:         param.Email,
		Institution:   param.Institution,
		StudentNumber: param.StudentNumber,
		PasswordHash:  string(hash),
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err = s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// 并发注册时唯一索引兜底, 重新判断是哪一个字段冲突
			if dupErr := s.checkDuplicate(ctx, param.Email, param.StudentNumber); dupErr != nil {
				return nil, dupErr
			}
			return nil, errs.ErrEmailRegistered
		}
		return nil, fmt.Errorf("Register failed at create participant: %w", err)
	}

	s.log.InfoContext(ctx, "participant registered",
		logger.String("participant_id", p.ID),
		logger.String("student_number", p.StudentNumber))
	return p, nil
}

func (s *ParticipantServiceImpl) checkDuplicate(ctx context.Context, email, studentNumber string) error {
	_, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return errs.ErrEmailRegistered
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("Register failed at find by email: %w", err)
	}

	_, err = s.repo.FindByStudentNumber(ctx, studentNumber)
	switch {
	case err == nil:
		return errs.ErrStudentNumberRegistered
	case !errors.Is(err, repository.ErrNotFound):
		return fmt.Errorf("Register failed at find by student number: %w", err)
	}
	return nil
}

// Login 校验 email 与密码
func (s *ParticipantServiceImpl) Login(ctx context.Context, param *model.LoginParam) (*model.Participant, error) {
	p, err := s.repo.FindByEmail(ctx, normalizeEmail(param.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("Login failed at find by email: %w", err)
	}
	if err = bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(param.Password)); err != nil {
		return nil, errs.ErrInvalidCredentials
	}
	return p, nil
}

// GetParticipant 获取选手及其徽章
func (s *ParticipantServiceImpl) GetParticipant(ctx context.Context, participantID string) (*model.Participant, error) {
	p, err := s.repo.FindByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError(errs.CodeParticipantNotFound, "participant not found", err)
		}
		return nil, fmt.Errorf("GetParticipant failed: %w", err)
	}
	return p, nil
}

func (s *ParticipantServiceImpl) UpdateProfile(ctx context.Context, participantID string, param *model.UpdateProfileParam) (*model.Participant, error) {
	fields := make(map[string]any, 3)
	if param.Name != nil {
		name := strings.TrimSpace(*param.Name)
		param.Name = &name
		fields["name"] = name
	}
	if param.Institution != nil {
		institution := strings.TrimSpace(*param.Institution)
		param.Institution = &institution
		fields["institution"] = institution
	}
	if err := validateStruct(param); err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return s.GetParticipant(ctx, participantID)
	}

	fields["updated_at"] = s.now()
	if err := s.repo.UpdateFields(ctx, participantID, fields); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError(errs.CodeParticipantNotFound, "participant not found", err)
		}
		return nil, fmt.Errorf("UpdateProfile failed at update fields: %w", err)
	}
	return s.GetParticipant(ctx, participantID)
}

func (s *ParticipantServiceImpl) FindByEmail(ctx context.Context, email string) (*model.Participant, error) {
	return s.repo.FindByEmail(ctx, normalizeEmail(email))
}

func (s *ParticipantServiceImpl) FindByStudentNumber(ctx context.Context, studentNumber string) (*model.Participant, error) {
	return s.repo.FindByStudentNumber(ctx, strings.TrimSpace(studentNumber))
}
