package ioc

import (
	"context"
	"errors"
	"testing"

	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/online_judge_arena/event"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/online_judge_arena/service"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

type stubScoring struct {
	err  error
	seen []string
}

func (s *stubScoring) ProcessSubmission(_ context.Context, id string) (*service.ScoringResult, error) {
	s.seen = append(s.seen, id)
	if s.err != nil {
		return nil, s.err
	}
	return &service.ScoringResult{SubmissionID: id, Credited: true}, nil
}

func (s *stubScoring) ReevaluateParticipant(context.Context, string) ([]model.Badge, error) {
	return nil, nil
}

func (s *stubScoring) ReevaluateAll(context.Context) (int, error) {
	return 0, nil
}

func (s *stubScoring) RepairScores(context.Context) (int, error) {
	return 0, nil
}

func TestScoringHandler(t *testing.T) {
	transient := errors.New("redis down")
	testCases := []struct {
		name     string
		err      error
		wantSkip bool
		wantErr  error
	}{
		{name: "scored"},
		{
			name:     "missing submission",
			err:      errs.NewNotFoundError(errs.CodeSubmissionNotFound, "submission not found", nil),
			wantSkip: true,
		},
		{name: "transient", err: transient, wantErr: transient},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubScoring{err: tc.err}
			h := NewScoringHandler(svc, loggerv2.NewLoggerAdapter(logger.NewNopLogger()))
			err := h(context.Background(), event.SubmissionMessage{SubmissionID: "s1", ParticipantID: "p1"})

			if len(svc.seen) != 1 || svc.seen[0] != "s1" {
				t.Fatalf("ProcessSubmission calls = %v", svc.seen)
			}
			if got := errors.Is(err, event.ErrSkip); got != tc.wantSkip {
				t.Fatalf("skip = %v, want %v (err %v)", got, tc.wantSkip, err)
			}
			if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
				t.Fatalf("err = %v, want %v", err, tc.wantErr)
			}
			if tc.err == nil && err != nil {
				t.Fatalf("unexpected err %v", err)
			}
		})
	}
}
