package service

import (
	"context"
	"errors"
	"testing"

	"github.com/to404hanga/online_judge_arena/errs"
	"github.com/to404hanga/online_judge_arena/model"
	"github.com/to404hanga/pkg404/logger"
	loggerv2 "github.com/to404hanga/pkg404/logger/v2"
)

func registerParam(email, studentNumber string) *model.RegisterParam {
	return &model.RegisterParam{
		Name:          "Alice",
		Email:         email,
		Institution:   "MIT",
		StudentNumber: studentNumber,
		Password:      "secret123",
	}
}

func TestParticipantService_Register(t *testing.T) {
	ctx := context.Background()
	svc := NewParticipantService(newMemParticipantRepo(), loggerv2.NewLoggerAdapter(logger.NewNopLogger()))

	p, err := svc.Register(ctx, registerParam(" Alice@Example.com ", "S1001"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if p.ID == "" || p.Email != "alice@example.com" || p.PasswordHash == "secret123" {
		t.Fatalf("unexpected participant: %+v", p)
	}
	if p.Score != 0 || p.SolvedProblems != 0 || p.PenaltyTime != 0 || len(p.Badges) != 0 {
		t.Fatalf("new participant has non-zero aggregates: %+v", p)
	}

	testCases := []struct {
		name  string
		param *model.RegisterParam
		want  error
	}{
		{name: "duplicate email", param: registerParam("ALICE@example.com", "S2002"), want: errs.ErrEmailRegistered},
		{name: "duplicate student number", param: registerParam("bob@example.com", "S1001"), want: errs.ErrStudentNumberRegistered},
		{name: "both duplicate reports email", param: registerParam("alice@example.com", "S1001"), want: errs.ErrEmailRegistered},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.param)
			if !errors.Is(err, tc.want) {
				t.Fatalf("got %v, want %v", err, tc.want)
			}
			if !errs.IsType(err, errs.TypeDuplicate) {
				t.Fatalf("got %v, want duplicate error", err)
			}
		})
	}
}

func TestParticipantService_RegisterValidation(t *testing.T) {
	svc := NewParticipantService(newMemParticipantRepo(), loggerv2.NewLoggerAdapter(logger.NewNopLogger()))
	testCases := []struct {
		name  string
		param *model.RegisterParam
	}{
		{name: "bad email", param: registerParam("not-an-email", "S1001")},
		{name: "short password", param: &model.RegisterParam{Name: "A", Email: "a@b.com", StudentNumber: "S1001", Password: "123"}},
		{name: "empty name", param: &model.RegisterParam{Name: "  ", Email: "a@b.com", StudentNumber: "S1001", Password: "secret123"}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.param)
			if !errs.IsType(err, errs.TypeValidation) {
				t.Fatalf("got %v, want validation error", err)
			}
		})
	}
}

func TestParticipantService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewParticipantService(newMemParticipantRepo(), loggerv2.NewLoggerAdapter(logger.NewNopLogger()))
	registered, err := svc.Register(ctx, registerParam("alice@example.com", "S1001"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	p, err := svc.Login(ctx, &model.LoginParam{Email: "Alice@example.com", Password: "secret123"})
	if err != nil || p.ID != registered.ID {
		t.Fatalf("Login failed: %v", err)
	}

	for _, param := range []*model.LoginParam{
		{Email: "alice@example.com", Password: "wrong-password"},
		{Email: "nobody@example.com", Password: "secret123"},
	} {
		if _, err = svc.Login(ctx, param); !errors.Is(err, errs.ErrInvalidCredentials) {
			t.Fatalf("Login(%s) got %v, want invalid credentials", param.Email, err)
		}
	}

	if _, err = svc.GetParticipant(ctx, "missing"); !errs.IsType(err, errs.TypeNotFound) {
		t.Fatalf("GetParticipant got %v, want not found", err)
	}
}

func TestParticipantService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := NewParticipantService(newMemParticipantRepo(), loggerv2.NewLoggerAdapter(logger.NewNopLogger()))
	p, err := svc.Register(ctx, registerParam("carol@example.com", "S3003"))
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	name, institution := "  Carol  ", "Stanford"
	got, err := svc.UpdateProfile(ctx, p.ID, &model.UpdateProfileParam{Name: &name, Institution: &institution})
	if err != nil {
		t.Fatalf("UpdateProfile failed: %v", err)
	}
	if got.Name != "Carol" || got.Institution != "Stanford" || got.Email != "carol@example.com" {
		t.Fatalf("unexpected participant: %+v", got)
	}

	empty := ""
	if _, err = svc.UpdateProfile(ctx, p.ID, &model.UpdateProfileParam{Name: &empty}); !errs.IsType(err, errs.TypeValidation) {
		t.Fatalf("empty name: got %v, want validation error", err)
	}
	if _, err = svc.UpdateProfile(ctx, "missing", &model.UpdateProfileParam{Name: &name}); !errs.IsType(err, errs.TypeNotFound) {
		t.Fatalf("missing participant: got %v, want not found", err)
	}
	unchanged, err := svc.UpdateProfile(ctx, p.ID, &model.UpdateProfileParam{})
	if err != nil || unchanged.Name != "Carol" {
		t.Fatalf("no-op update = %+v, %v", unchanged, err)
	}
}
