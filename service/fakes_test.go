package service

import (
	"context"
	"sort"
	"sync"

	"github.com/IBM/sarama"
	"github.com/to404hanga/online_judge_arena/engine/ledger"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/repository"
)

type memParticipantRepo struct {
	mu           sync.Mutex
	participants map[string]*model.Participant
	solved       map[string]model.SolvedProblem
	badges       map[string][]model.Badge
}

var _ repository.ParticipantRepository = (*memParticipantRepo)(nil)

func newMemParticipantRepo() *memParticipantRepo {
	return &memParticipantRepo{
		participants: make(map[string]*model.Participant),
		solved:       make(map[string]model.SolvedProblem),
		badges:       make(map[string][]model.Badge),
	}
}

func (r *memParticipantRepo) snapshot(p *model.Participant) *model.Participant {
	cp := *p
	cp.Badges = append([]model.Badge(nil), r.badges[p.ID]...)
	return &cp
}

func (r *memParticipantRepo) Create(ctx context.Context, p *model.Participant) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, v := range r.participants {
		if v.Email == p.Email || v.StudentNumber == p.StudentNumber {
			return repository.ErrDuplicate
		}
	}
	cp := *p
	cp.Badges = nil
	r.participants[p.ID] = &cp
	return nil
}

func (r *memParticipantRepo) FindByID(ctx context.Context, id string) (*model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.snapshot(p), nil
}

func (r *memParticipantRepo) find(match func(p *model.Participant) bool) (*model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.participants {
		if match(p) {
			return r.snapshot(p), nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memParticipantRepo) FindByEmail(ctx context.Context, email string) (*model.Participant, error) {
	return r.find(func(p *model.Participant) bool { return p.Email == email })
}

func (r *memParticipantRepo) FindByStudentNumber(ctx context.Context, studentNumber string) (*model.Participant, error) {
	return r.find(func(p *model.Participant) bool { return p.StudentNumber == studentNumber })
}

func (r *memParticipantRepo) FindAll(ctx context.Context) ([]model.Participant, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Participant, 0, len(r.participants))
	for _, p := range r.participants {
		out = append(out, *r.snapshot(p))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memParticipantRepo) UpdateFields(ctx context.Context, id string, fields map[string]any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.participants[id]
	if !ok {
		return repository.ErrNotFound
	}
	if v, ok := fields["name"].(string); ok {
		p.Name = v
	}
	if v, ok := fields["institution"].(string); ok {
		p.Institution = v
	}
	return nil
}

func (r *memParticipantRepo) ApplyDelta(ctx context.Context, d ledger.Delta) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := d.ParticipantID + "/" + d.ProblemID
	if _, ok := r.solved[key]; ok {
		return false, nil
	}
	p, ok := r.participants[d.ParticipantID]
	if !ok {
		return false, repository.ErrNotFound
	}
	r.solved[key] = d.SolvedMarker()
	p.Score += d.Score
	p.SolvedProblems += d.SolvedProblems
	p.PenaltyTime += d.PenaltyMinutes
	return true, nil
}

func (r *memParticipantRepo) ListSolved(ctx context.Context, participantID string) ([]model.SolvedProblem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.SolvedProblem
	for _, m := range r.solved {
		if m.ParticipantID == participantID {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProblemID < out[j].ProblemID })
	return out, nil
}

func (r *memParticipantRepo) AddBadges(ctx context.Context, badges []model.Badge) ([]model.Badge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var inserted []model.Badge
	for _, b := range badges {
		dup := false
		for _, held := range r.badges[b.ParticipantID] {
			if held.BadgeID == b.BadgeID {
				dup = true
				break
			}
		}
		if !dup {
			r.badges[b.ParticipantID] = append(r.badges[b.ParticipantID], b)
			inserted = append(inserted, b)
		}
	}
	return inserted, nil
}

func (r *memParticipantRepo) ListBadges(ctx context.Context, participantID string) ([]model.Badge, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Badge(nil), r.badges[participantID]...), nil
}

type memSubmissionRepo struct {
	mu    sync.Mutex
	seq   uint64
	items []model.Submission
}

var _ repository.SubmissionRepository = (*memSubmissionRepo)(nil)

func (r *memSubmissionRepo) Create(ctx context.Context, s *model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	s.Seq = r.seq
	r.items = append(r.items, *s)
	return nil
}

func (r *memSubmissionRepo) FindByID(ctx context.Context, id string) (*model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id {
			s := r.items[i]
			return &s, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *memSubmissionRepo) ListByParticipant(ctx context.Context, participantID, problemID string) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []model.Submission
	for _, s := range r.items {
		if s.ParticipantID == participantID && (problemID == "" || s.ProblemID == problemID) {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Before(&out[j]) })
	return out, nil
}

func (r *memSubmissionRepo) ListAll(ctx context.Context) ([]model.Submission, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := append([]model.Submission(nil), r.items...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Before(&out[j]) })
	return out, nil
}

type recordingNotifier struct {
	mu       sync.Mutex
	messages map[string][]string
}

var _ NotificationService = (*recordingNotifier)(nil)

func newRecordingNotifier() *recordingNotifier {
	return &recordingNotifier{messages: make(map[string][]string)}
}

func (n *recordingNotifier) Notify(ctx context.Context, participantID, message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages[participantID] = append(n.messages[participantID], message)
	return nil
}

func (n *recordingNotifier) GetNotificationList(ctx context.Context, participantID string) ([]model.Notification, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []model.Notification
	for _, m := range n.messages[participantID] {
		out = append(out, model.Notification{ParticipantID: participantID, Message: m})
	}
	return out, nil
}

type countingInvalidator struct {
	mu sync.Mutex
	n  int
}

func (c *countingInvalidator) Invalidate(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return nil
}

func (c *countingInvalidator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.n
}

type fixedJudge struct {
	verdict Verdict
}

func (j fixedJudge) Judge(ctx context.Context, problem model.Problem, code, language string) Verdict {
	return j.verdict
}

type recordingProducer struct {
	mu       sync.Mutex
	messages []*sarama.ProducerMessage
}

func (p *recordingProducer) Produce(ctx context.Context, msg *sarama.ProducerMessage) (int32, int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
	return 0, int64(len(p.messages) - 1), nil
}

func (p *recordingProducer) Close() error {
	return nil
}

func (p *recordingProducer) topics() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, 0, len(p.messages))
	for _, m := range p.messages {
		out = append(out, m.Topic)
	}
	return out
}
