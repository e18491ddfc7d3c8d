package service

import (
	"context"
	"testing"

	"github.com/to404hanga/online_judge_arena/engine/achievement"
	"github.com/to404hanga/online_judge_arena/model"
)

func TestChallengeService(t *testing.T) {
	svc, err := NewChallengeService(DefaultChallengeSets())
	if err != nil {
		t.Fatalf("NewChallengeService failed: %v", err)
	}
	p, ok := svc.Problem("two-sum")
	if !ok || p.Points != 100 || p.Set != "programming" {
		t.Fatalf("two-sum = %+v, %v", p, ok)
	}
	if _, ok := svc.Problem("missing"); ok {
		t.Fatal("missing problem resolved")
	}
	ids, ok := svc.ProblemIDsOfSet("cryptography")
	if !ok || len(ids) != 3 {
		t.Fatalf("cryptography = %v, %v", ids, ok)
	}
	ids[0] = "mutated"
	if again, _ := svc.ProblemIDsOfSet("cryptography"); again[0] != "caesar-cipher" {
		t.Fatal("ProblemIDsOfSet leaked internal slice")
	}
	if list := svc.GetChallengeList(context.Background()); len(list) != 5 || list[0].Problems[0].Set != "programming" {
		t.Fatalf("list = %+v", list)
	}

	if _, err := achievement.BuildCatalog(achievement.DefaultRules(), svc); err != nil {
		t.Fatalf("default rules do not resolve against default challenges: %v", err)
	}
}

func TestChallengeServiceValidation(t *testing.T) {
	testCases := []struct {
		name string
		sets []model.ChallengeSet
	}{
		{name: "empty set name", sets: []model.ChallengeSet{{Problems: []model.Problem{{ID: "a", Points: 1}}}}},
		{name: "duplicate set", sets: []model.ChallengeSet{{Name: "x"}, {Name: "x"}}},
		{name: "duplicate problem", sets: []model.ChallengeSet{
			{Name: "x", Problems: []model.Problem{{ID: "a", Points: 1}}},
			{Name: "y", Problems: []model.Problem{{ID: "a", Points: 1}}},
		}},
		{name: "zero points", sets: []model.ChallengeSet{{Name: "x", Problems: []model.Problem{{ID: "a"}}}}},
		{name: "empty problem id", sets: []model.ChallengeSet{{Name: "x", Problems: []model.Problem{{Points: 1}}}}},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := NewChallengeService(tc.sets); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}
