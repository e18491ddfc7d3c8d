package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/IBM/sarama"
	"github.com/to404hanga/online_judge_arena/engine/ledger"
	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/online_judge_arena/event"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/repository"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

// ScoringResult 一次计分的结果
//
// Credited 表示本次有分数入账, Delta 为提交所在题目的增量,
// Credits 还包含之前处理失败而遗漏、本次补记的其他题目.
type ScoringResult struct {
	SubmissionID string         `json:"submission_id"`
	Credited     bool           `json:"credited"`
	Delta        ledger.Delta   `json:"-"`
	Credits      []ledger.Delta `json:"-"`
	NewBadges    []model.Badge  `json:"new_badges"`
}

type ScoringService interface {
	// ProcessSubmission 对已持久化的提交计分并评估徽章, 重复处理同一提交不会重复计分
	ProcessSubmission(ctx context.Context, submissionID string) (*ScoringResult, error)
	// ReevaluateParticipant 仅重新评估徽章, 用于徽章目录变更后补发
	ReevaluateParticipant(ctx context.Context, participantID string) ([]model.Badge, error)
	// ReevaluateAll 对所有选手重新评估徽章, 返回新增徽章总数
	ReevaluateAll(ctx context.Context) (int, error)
	// RepairScores 补记已通过但没有首次通过记录的题目, 返回补记的题目数
	RepairScores(ctx context.Context) (int, error)
}

// LeaderboardInvalidator 排行榜失效通知
type LeaderboardInvalidator interface {
	Invalidate(ctx context.Context) error
}

type ScoringServiceImpl struct {
	participants repository.ParticipantRepository
	submissions  repository.SubmissionRepository
	ledger       *ledger.Ledger
	badges       BadgeService
	locker       Locker
	notifier     NotificationService
	leaderboard  LeaderboardInvalidator
	producer     event.Producer
	log          loggerv2.Logger
}

var _ ScoringService = (*ScoringServiceImpl)(nil)

// NewScoringService producer 为 nil 时不发布徽章事件
func NewScoringService(
	participants repository.ParticipantRepository,
	submissions repository.SubmissionRepository,
	l *ledger.Ledger,
	badges BadgeService,
	locker Locker,
	notifier NotificationService,
	leaderboard LeaderboardInvalidator,
	producer event.Producer,
	log loggerv2.Logger,
) ScoringService {
	return &ScoringServiceImpl{
		participants: participants,
		submissions:  submissions,
		ledger:       l,
		badges:       badges,
		locker:       locker,
		notifier:     notifier,
		leaderboard:  leaderboard,
		producer:     producer,
		log:          log,
	}
}

func (s *ScoringServiceImpl) ProcessSubmission(ctx context.Context, submissionID string) (*ScoringResult, error) {
	sub, err := s.submissions.FindByID(ctx, submissionID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, errs.NewNotFoundError(errs.CodeSubmissionNotFound, "submission not found", err)
		}
		return nil, fmt.Errorf("ProcessSubmission failed at find submission: %w", err)
	}
	ctx = loggerv2.ContextWithFields(ctx,
		logger.String("submission_id", sub.ID),
		logger.String("participant_id", sub.ParticipantID))

	unlock, err := s.locker.Lock(ctx, fmt.Sprintf(participantLockKey, sub.ParticipantID))
	if err != nil {
		return nil, fmt.Errorf("ProcessSubmission failed at lock participant: %w", err)
	}
	defer unlock()

	p, history, err := s.load(ctx, sub.ParticipantID)
	if err != nil {
		return nil, fmt.Errorf("ProcessSubmission failed at %w", err)
	}

	// 只用于校验题目与归属, 入账以首次通过记录为准
	if _, err = s.ledger.ApplyAcceptedSubmission(p, sub, history); err != nil {
		if errors.Is(err, ledger.ErrProblemNotFound) {
			return nil, errs.NewNotFoundError(errs.CodeProblemNotFound, "problem not found", err)
		}
		return nil, fmt.Errorf("ProcessSubmission failed at apply submission: %w", err)
	}

	credits, err := s.settle(ctx, p, history)
	if err != nil {
		return nil, fmt.Errorf("ProcessSubmission failed at %w", err)
	}
	result := &ScoringResult{
		SubmissionID: sub.ID,
		Credited:     len(credits) > 0,
		Credits:      credits,
	}
	for _, d := range credits {
		if d.ProblemID == sub.ProblemID {
			result.Delta = d
		}
	}

	added, err := s.badges.EvaluateAndAward(ctx, p, history)
	if err != nil {
		return nil, fmt.Errorf("ProcessSubmission failed at %w", err)
	}
	result.NewBadges = added

	for _, d := range credits {
		s.notify(ctx, p.ID, fmt.Sprintf("Accepted %s: +%d points", d.ProblemID, d.Score))
	}
	s.announce(ctx, added)
	if result.Credited || len(added) > 0 {
		s.invalidate(ctx)
	}
	return result, nil
}

func (s *ScoringServiceImpl) ReevaluateParticipant(ctx context.Context, participantID string) ([]model.Badge, error) {
	ctx = loggerv2.ContextWithFields(ctx, logger.String("participant_id", participantID))

	unlock, err := s.locker.Lock(ctx, fmt.Sprintf(participantLockKey, participantID))
	if err != nil {
		return nil, fmt.Errorf("ReevaluateParticipant failed at lock participant: %w", err)
	}
	defer unlock()

	p, history, err := s.load(ctx, participantID)
	if err != nil {
		return nil, fmt.Errorf("ReevaluateParticipant failed at %w", err)
	}
	added, err := s.badges.EvaluateAndAward(ctx, p, history)
	if err != nil {
		return nil, fmt.Errorf("ReevaluateParticipant failed at %w", err)
	}
	s.announce(ctx, added)
	if len(added) > 0 {
		s.invalidate(ctx)
	}
	return added, nil
}

// ReevaluateAll 单个选手失败只记录日志, 不中断其余选手
func (s *ScoringServiceImpl) ReevaluateAll(ctx context.Context) (int, error) {
	participants, err := s.participants.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("ReevaluateAll failed at find all participants: %w", err)
	}

	total := 0
	for i := range participants {
		if err = ctx.Err(); err != nil {
			return total, err
		}
		added, err := s.ReevaluateParticipant(ctx, participants[i].ID)
		if err != nil {
			s.log.ErrorContext(ctx, "reevaluate participant failed",
				logger.String("participant_id", participants[i].ID),
				logger.Error(err))
			continue
		}
		total += len(added)
	}
	return total, nil
}

// RepairScores 先用全量提交筛出入账不完整的选手, 再逐个加锁重新读取并补记
func (s *ScoringServiceImpl) RepairScores(ctx context.Context) (int, error) {
	subs, err := s.submissions.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("RepairScores failed at list all submissions: %w", err)
	}
	participants, err := s.participants.FindAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("RepairScores failed at find all participants: %w", err)
	}

	accepted := make(map[string]map[string]struct{})
	for i := range subs {
		sub := &subs[i]
		if !sub.Status.IsAccepted() || !s.ledger.Resolves(sub.ProblemID) {
			continue
		}
		if accepted[sub.ParticipantID] == nil {
			accepted[sub.ParticipantID] = make(map[string]struct{})
		}
		accepted[sub.ParticipantID][sub.ProblemID] = struct{}{}
	}

	total := 0
	for i := range participants {
		if err = ctx.Err(); err != nil {
			return total, err
		}
		id := participants[i].ID
		if len(accepted[id]) <= participants[i].SolvedProblems {
			continue
		}
		n, err := s.repairParticipant(ctx, id)
		if err != nil {
			s.log.ErrorContext(ctx, "repair participant score failed",
				logger.String("participant_id", id),
				logger.Error(err))
			continue
		}
		total += n
	}
	return total, nil
}

func (s *ScoringServiceImpl) repairParticipant(ctx context.Context, participantID string) (int, error) {
	ctx = loggerv2.ContextWithFields(ctx, logger.String("participant_id", participantID))

	unlock, err := s.locker.Lock(ctx, fmt.Sprintf(participantLockKey, participantID))
	if err != nil {
		return 0, fmt.Errorf("lock participant: %w", err)
	}
	defer unlock()

	p, history, err := s.load(ctx, participantID)
	if err != nil {
		return 0, err
	}
	credits, err := s.settle(ctx, p, history)
	if err != nil {
		return 0, err
	}
	for _, d := range credits {
		s.notify(ctx, p.ID, fmt.Sprintf("Accepted %s: +%d points", d.ProblemID, d.Score))
	}
	if len(credits) > 0 {
		s.invalidate(ctx)
	}
	return len(credits), nil
}

// settle 为没有首次通过记录的已通过题目入账, 调用方需持有选手锁
func (s *ScoringServiceImpl) settle(ctx context.Context, p *model.Participant, history []model.Submission) ([]ledger.Delta, error) {
	solved, err := s.participants.ListSolved(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("list solved problems: %w", err)
	}
	done := make(map[string]struct{}, len(solved))
	for _, m := range solved {
		done[m.ProblemID] = struct{}{}
	}

	deltas, err := s.ledger.Outstanding(p, history, done)
	if err != nil {
		s.log.WarnContext(ctx, "accepted submissions reference unknown problems", logger.Error(err))
	}

	var credits []ledger.Delta
	for _, d := range deltas {
		ok, err := s.participants.ApplyDelta(ctx, d)
		if err != nil {
			return nil, fmt.Errorf("apply delta: %w", err)
		}
		if !ok {
			continue
		}
		d.ApplyTo(p)
		credits = append(credits, d)
		s.log.InfoContext(ctx, "submission credited",
			logger.String("problem_id", d.ProblemID),
			logger.String("credited_submission_id", d.SubmissionID),
			logger.Int("score", d.Score),
			logger.Int("penalty_minutes", d.PenaltyMinutes))
	}
	return credits, nil
}

func (s *ScoringServiceImpl) load(ctx context.Context, participantID string) (*model.Participant, []model.Submission, error) {
	p, err := s.participants.FindByID(ctx, participantID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, errs.NewNotFoundError(errs.CodeParticipantNotFound, "participant not found", err)
		}
		return nil, nil, fmt.Errorf("find participant: %w", err)
	}
	history, err := s.submissions.ListByParticipant(ctx, participantID, "")
	if err != nil {
		return nil, nil, fmt.Errorf("list submissions: %w", err)
	}
	return p, history, nil
}

// notify 通知失败不影响计分结果
func (s *ScoringServiceImpl) notify(ctx context.Context, participantID, message string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, participantID, message); err != nil {
		s.log.WarnContext(ctx, "notify participant failed", logger.Error(err))
	}
}

func (s *ScoringServiceImpl) announce(ctx context.Context, added []model.Badge) {
	for _, b := range added {
		s.notify(ctx, b.ParticipantID, fmt.Sprintf("You earned the %s badge!", b.Name))
		if s.producer == nil {
			continue
		}
		msg := event.BadgeAwardedMessage{
			ParticipantID: b.ParticipantID,
			BadgeID:       b.BadgeID,
			Name:          b.Name,
			Rarity:        b.Rarity,
			EarnedAt:      b.EarnedAt,
		}
		val, err := msg.Marshal()
		if err != nil {
			s.log.WarnContext(ctx, "marshal badge message failed", logger.Error(err))
			continue
		}
		_, _, err = s.producer.Produce(ctx, &sarama.ProducerMessage{
			Topic: event.BadgeAwardedTopic,
			Key:   sarama.StringEncoder(b.ParticipantID),
			Value: sarama.ByteEncoder(val),
		})
		if err != nil {
			s.log.WarnContext(ctx, "produce badge message failed", logger.Error(err))
		}
	}
}

func (s *ScoringServiceImpl) invalidate(ctx context.Context) {
	if s.leaderboard == nil {
		return
	}
	if err := s.leaderboard.Invalidate(ctx); err != nil {
		s.log.WarnContext(ctx, "invalidate leaderboard failed", logger.Error(err))
	}
}
