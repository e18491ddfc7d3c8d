package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"github.com/google/uuid"
	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/online_judge_arena/event"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/repository"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type SubmissionService interface {
	// SubmitSolution 评测并保存提交, 随后异步(kafka)或同步计分
	SubmitSolution(ctx context.Context, param *model.SubmitSolutionParam) (*model.SubmitSolutionResponse, error)
	// GetMySubmissionList 获取选手提交记录, problemID 为空时返回全部
	GetMySubmissionList(ctx context.Context, participantID, problemID string) ([]model.Submission, error)
	// GetSubmissionByID 获取提交记录
	GetSubmissionByID(ctx context.Context, submissionID string) (*model.Submission, error)
}

type SubmissionServiceImpl struct {
	repo       repository.SubmissionRepository
	challenges ChallengeService
	judge      JudgeService
	scoring    ScoringService
	kafka      event.Producer
	log        loggerv2.Logger
	now        func() time.Time
}

var _ SubmissionService = (*SubmissionServiceImpl)(nil)

// NewSubmissionService kafka 为 nil 时在请求内直接计分
func NewSubmissionService(repo repository.SubmissionRepository, challenges ChallengeService, judge JudgeService, scoring ScoringService, kafka event.Producer, log loggerv2.Logger) SubmissionService {
	return &SubmissionServiceImpl{
		repo:       repo,
		challenges: challenges,
		judge:      judge,
		scoring:    scoring,
		kafka:      kafka,
		log:        log,
		now:        time.Now,
	}
}

// SubmitSolution 提交解答
func (s *SubmissionServiceImpl) SubmitSolution(ctx context.Context, param *model.SubmitSolutionParam) (*model.SubmitSolutionResponse, error) {
	problem, ok := s.challenges.Problem(param.ProblemID)
	if !ok {
		return nil, errs.NewNotFoundError(errs.CodeProblemNotFound, fmt.Sprintf("problem %s not found", param.ProblemID), nil)
	}

	verdict := s.judge.Judge(ctx, problem, param.Code, param.Language)
	submission := model.Submission{
		ID:            uuid.NewString(),
		ParticipantID: param.Operator,
		ProblemID:     problem.ID,
		Code:          param.Code,
		Language:      param.Language,
		Status:        verdict.Status,
		TestsPassed:   verdict.TestsPassed,
		TestsTotal:    verdict.TestsTotal,
		CreatedAt:     s.now(),
	}
	if err := s.repo.Create(ctx, &submission); err != nil {
		return nil, fmt.Errorf("SubmitSolution failed at create submission: %w", err)
	}

	resp := &model.SubmitSolutionResponse{
		SubmissionID: submission.ID,
		Status:       submission.Status,
		TestsPassed:  submission.TestsPassed,
		TestsTotal:   submission.TestsTotal,
	}

	if s.kafka == nil {
		if _, err := s.scoring.ProcessSubmission(ctx, submission.ID); err != nil {
			return nil, fmt.Errorf("SubmitSolution failed at process submission: %w", err)
		}
		return resp, nil
	}

	// 通过 kafka 发布计分任务
	msg := event.SubmissionMessage{SubmissionID: submission.ID, ParticipantID: submission.ParticipantID}
	val, err := msg.Marshal()
	if err != nil {
		return nil, fmt.Errorf("SubmitSolution failed at marshal message: %w", err)
	}
	_, _, err = s.kafka.Produce(ctx, &sarama.ProducerMessage{
		Topic: event.SubmissionTopic,
		Key:   sarama.StringEncoder(submission.ParticipantID),
		Value: sarama.ByteEncoder(val),
	})
	if err != nil {
		return nil, fmt.Errorf("SubmitSolution failed at produce message: %w", err)
	}
	return resp, nil
}

func (s *SubmissionServiceImpl) GetMySubmissionList(ctx context.Context, participantID, problemID string) ([]model.Submission, error) {
	list, err := s.repo.ListByParticipant(ctx, participantID, problemID)
	if err != nil {
		return nil, fmt.Errorf("GetMySubmissionList failed at list submissions: %w", err)
	}
	return list, nil
}

func (s *SubmissionServiceImpl) GetSubmissionByID(ctx context.Context, submissionID string) (*model.Submission, error) {
	submission, err := s.repo.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError(errs.CodeSubmissionNotFound, "submission not found", err)
		}
		return nil, fmt.Errorf("GetSubmissionByID failed at find submission: %w", err)
	}
	return submission, nil
}
