package service

import (
	"context"
	"testing"
	"time"

	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/online_judge_arena/event"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func TestSubmissionService_Inline(t *testing.T) {
	ctx := context.Background()
	h := newScoringHarness(t, false)
	h.addParticipant(t, "p1")
	svc := NewSubmissionService(h.submissions, h.challenges,
		fixedJudge{verdict: Verdict{Status: model.SubmissionStatusAccepted, TestsPassed: 5, TestsTotal: 5}},
		h.scoring, nil, loggerv2.NewLoggerAdapter(logger.NewNopLogger())).(*SubmissionServiceImpl)
	svc.now = func() time.Time { return competitionStart.Add(42 * time.Minute) }

	resp, err := svc.SubmitSolution(ctx, &model.SubmitSolutionParam{
		CommonParam: model.CommonParam{Operator: "p1"},
		ProblemID:   "two-sum",
		Code:        "func main() {}",
		Language:    "go",
	})
	if err != nil {
		t.Fatalf("SubmitSolution failed: %v", err)
	}
	if resp.Status != model.SubmissionStatusAccepted || resp.SubmissionID == "" {
		t.Fatalf("unexpected response: %+v", resp)
	}

	p, _ := h.participants.FindByID(ctx, "p1")
	if p.Score != 100 || p.PenaltyTime != 42 {
		t.Fatalf("submission not scored inline: %+v", p)
	}

	list, err := svc.GetMySubmissionList(ctx, "p1", "")
	if err != nil || len(list) != 1 {
		t.Fatalf("GetMySubmissionList = %v, %v", list, err)
	}
	got, err := svc.GetSubmissionByID(ctx, resp.SubmissionID)
	if err != nil || got.ProblemID != "two-sum" {
		t.Fatalf("GetSubmissionByID = %+v, %v", got, err)
	}
	if _, err = svc.GetSubmissionByID(ctx, "missing"); !errs.IsType(err, errs.TypeNotFound) {
		t.Fatalf("GetSubmissionByID(missing) = %v", err)
	}
}

func TestSubmissionService_Kafka(t *testing.T) {
	ctx := context.Background()
	h := newScoringHarness(t, false)
	h.addParticipant(t, "p1")
	producer := &recordingProducer{}
	svc := NewSubmissionService(h.submissions, h.challenges,
		fixedJudge{verdict: Verdict{Status: model.SubmissionStatusAccepted, TestsPassed: 5, TestsTotal: 5}},
		h.scoring, producer, loggerv2.NewLoggerAdapter(logger.NewNopLogger()))

	if _, err := svc.SubmitSolution(ctx, &model.SubmitSolutionParam{
		CommonParam: model.CommonParam{Operator: "p1"},
		ProblemID:   "two-sum",
		Code:        "func main() {}",
		Language:    "go",
	}); err != nil {
		t.Fatalf("SubmitSolution failed: %v", err)
	}
	if topics := producer.topics(); len(topics) != 1 || topics[0] != event.SubmissionTopic {
		t.Fatalf("topics = %v", topics)
	}
	p, _ := h.participants.FindByID(ctx, "p1")
	if p.Score != 0 {
		t.Fatalf("submission scored synchronously: %+v", p)
	}

	if _, err := svc.SubmitSolution(ctx, &model.SubmitSolutionParam{
		CommonParam: model.CommonParam{Operator: "p1"},
		ProblemID:   "no-such-problem",
		Code:        "x",
		Language:    "go",
	}); !errs.IsType(err, errs.TypeNotFound) {
		t.Fatalf("unknown problem = %v", err)
	}
}
