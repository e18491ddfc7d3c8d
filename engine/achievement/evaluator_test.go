package achievement

import (
	"context"
	"errors"
	"math/rand"
	"reflect"
	"testing"

	"github.com/to404hanga/online_judge_arena/model"
)

func defaultCatalog(t *testing.T) *Catalog {
	t.Helper()
	c, err := BuildCatalog(DefaultRules(), testSets)
	if err != nil {
		t.Fatalf("BuildCatalog failed: %v", err)
	}
	return c
}

func ids(defs []Definition) []string {
	out := make([]string, 0, len(defs))
	for _, d := range defs {
		out = append(out, d.ID)
	}
	return out
}

func contains(list []string, id string) bool {
	for _, v := range list {
		if v == id {
			return true
		}
	}
	return false
}

func TestEvaluateNewBadges_FirstSolve(t *testing.T) {
	e := NewEvaluator(defaultCatalog(t))
	p := &model.Participant{ID: "p1"}
	history := []model.Submission{{ParticipantID: "p1", ProblemID: "p1", Status: model.SubmissionStatusAccepted, CreatedAt: base}}

	got := ids(e.EvaluateNewBadges(context.Background(), p, history, Env{}))
	if !contains(got, FirstSolveBadgeID) {
		t.Fatalf("expected %s in %v", FirstSolveBadgeID, got)
	}
}

func TestEvaluateNewBadges_SkipsHeld(t *testing.T) {
	e := NewEvaluator(defaultCatalog(t))
	p := &model.Participant{ID: "p1", Badges: []model.Badge{{ParticipantID: "p1", BadgeID: FirstSolveBadgeID}}}
	history := []model.Submission{accepted(1, "a", 5), accepted(2, "b", 6)}

	got := ids(e.EvaluateNewBadges(context.Background(), p, history, Env{}))
	if contains(got, FirstSolveBadgeID) {
		t.Fatalf("held badge %s returned again: %v", FirstSolveBadgeID, got)
	}
}

func TestEvaluateNewBadges_NeverReturnsHeldBadges(t *testing.T) {
	c := defaultCatalog(t)
	e := NewEvaluator(c)
	rng := rand.New(rand.NewSource(7))
	problems := []string{"two-sum", "fizzbuzz", "caesar-cipher", "vigenere-cipher", "linked-list-reverse", "x", "y"}
	statuses := []model.SubmissionStatus{model.SubmissionStatusAccepted, model.SubmissionStatusWrongAnswer, model.SubmissionStatusRuntimeError}
	langs := []string{"go", "python", "cpp", "java"}

	for round := 0; round < 200; round++ {
		var history []model.Submission
		n := rng.Intn(30)
		for i := 0; i < n; i++ {
			history = append(history, sub(uint64(i+1), problems[rng.Intn(len(problems))],
				statuses[rng.Intn(len(statuses))], langs[rng.Intn(len(langs))], rng.Intn(120)))
		}
		p := &model.Participant{ID: "p1", Score: rng.Intn(2000)}
		for _, d := range c.Definitions() {
			if rng.Intn(2) == 0 {
				p.Badges = append(p.Badges, model.Badge{ParticipantID: "p1", BadgeID: d.ID})
			}
		}
		for _, d := range e.EvaluateNewBadges(context.Background(), p, history, Env{CompetitionStart: base}) {
			if p.HasBadge(d.ID) {
				t.Fatalf("round %d: returned held badge %s", round, d.ID)
			}
		}
	}
}

func TestEvaluateNewBadges_Monotonic(t *testing.T) {
	e := NewEvaluator(defaultCatalog(t))
	countBased := map[Category]bool{CategoryMilestone: true, CategoryMastery: true, CategoryDedication: true}
	p := &model.Participant{ID: "p1"}
	rng := rand.New(rand.NewSource(11))
	problems := []string{"two-sum", "fizzbuzz", "caesar-cipher", "vigenere-cipher", "linked-list-reverse", "fix-off-by-one", "water-distribution"}

	var history []model.Submission
	prev := map[string]bool{}
	for i := 0; i < 80; i++ {
		status := model.SubmissionStatusWrongAnswer
		if rng.Intn(3) == 0 {
			status = model.SubmissionStatusAccepted
		}
		history = append(history, sub(uint64(i+1), problems[rng.Intn(len(problems))], status, "go", i))
		cur := map[string]bool{}
		for _, d := range e.EvaluateNewBadges(context.Background(), p, history, Env{}) {
			cur[d.ID] = true
		}
		for id := range prev {
			d, _ := e.Catalog().Lookup(id)
			if countBased[d.Category] && !cur[id] {
				t.Fatalf("badge %s lost after history grew to %d", id, len(history))
			}
		}
		prev = cur
	}
}

func TestEvaluateNewBadges_Idempotent(t *testing.T) {
	e := NewEvaluator(defaultCatalog(t))
	p := &model.Participant{ID: "p1", Score: 1200}
	history := []model.Submission{
		sub(1, "two-sum", model.SubmissionStatusAccepted, "go", 3),
		sub(2, "caesar-cipher", model.SubmissionStatusWrongAnswer, "python", 4),
		sub(3, "caesar-cipher", model.SubmissionStatusAccepted, "cpp", 5),
	}
	env := Env{CompetitionStart: base}

	first := e.EvaluateNewBadges(context.Background(), p, history, env)
	second := e.EvaluateNewBadges(context.Background(), p, history, env)
	if !reflect.DeepEqual(ids(first), ids(second)) {
		t.Fatalf("evaluation not idempotent: %v vs %v", ids(first), ids(second))
	}

	once, _ := Merge(p.ID, nil, first, base)
	twice, added := Merge(p.ID, once, second, base)
	if !reflect.DeepEqual(once, twice) {
		t.Fatalf("merging twice changed the set: %v vs %v", once, twice)
	}
	if len(added) != 0 {
		t.Fatalf("second merge added %d badges", len(added))
	}
}

func TestEvaluateNewBadges_CatalogOrder(t *testing.T) {
	e := NewEvaluator(defaultCatalog(t))
	p := &model.Participant{ID: "p1", Score: 1000}
	history := []model.Submission{
		sub(1, "two-sum", model.SubmissionStatusAccepted, "go", 1),
		sub(2, "fizzbuzz", model.SubmissionStatusAccepted, "python", 2),
		sub(3, "x", model.SubmissionStatusWrongAnswer, "java", 3),
	}
	got := ids(e.EvaluateNewBadges(context.Background(), p, history, Env{CompetitionStart: base}))
	want := []string{FirstSolveBadgeID, "two-sum-solver", "perfectionist", "polyglot", "early-bird", "speed-demon", "high-scorer"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v, want %v", got, want)
	}
}

func TestEvaluateNewBadges_IgnoresForeignSubmissions(t *testing.T) {
	e := NewEvaluator(defaultCatalog(t))
	p := &model.Participant{ID: "p1"}
	other := accepted(1, "two-sum", 1)
	other.ParticipantID = "p2"

	if got := e.EvaluateNewBadges(context.Background(), p, []model.Submission{other}, Env{}); len(got) != 0 {
		t.Fatalf("foreign submission produced badges: %v", ids(got))
	}
}

func TestEvaluateNewBadges_RuleFailureIsolated(t *testing.T) {
	boom := errors.New("boom")
	c, err := NewCatalog(
		Definition{ID: "erroring", Predicate: func(*model.Participant, []model.Submission, Env) (bool, error) { return true, boom }},
		Definition{ID: "panicking", Predicate: func(*model.Participant, []model.Submission, Env) (bool, error) { panic("bad rule") }},
		Definition{ID: "ok", Predicate: Volume(1)},
	)
	if err != nil {
		t.Fatalf("NewCatalog failed: %v", err)
	}

	var records []Record
	e := NewEvaluator(c, WithObserver(ObserverFunc(func(_ context.Context, r Record) {
		records = append(records, r)
	})))
	got := ids(e.EvaluateNewBadges(context.Background(), &model.Participant{ID: "p1"}, []model.Submission{wrong(1, "a", 1)}, Env{}))
	if !reflect.DeepEqual(got, []string{"ok"}) {
		t.Fatalf("got %v, want [ok]", got)
	}
	if len(records) != 3 {
		t.Fatalf("expected 3 records, got %d", len(records))
	}
	var ruleErr *RuleEvaluationError
	if !errors.As(records[0].Err, &ruleErr) || !errors.Is(records[0].Err, boom) {
		t.Errorf("record[0].Err = %v, want RuleEvaluationError wrapping boom", records[0].Err)
	}
	if records[1].Err == nil || records[1].Satisfied {
		t.Errorf("panicking rule record = %+v", records[1])
	}
	if !records[2].Satisfied || records[2].ParticipantID != "p1" {
		t.Errorf("ok rule record = %+v", records[2])
	}
}

func TestEvaluateNewBadges_ObserverSeesSkips(t *testing.T) {
	c, _ := NewCatalog(Definition{ID: "vol", Predicate: Volume(1)})
	var skipped int
	e := NewEvaluator(c, WithObserver(ObserverFunc(func(_ context.Context, r Record) {
		if r.Skipped {
			skipped++
		}
	})))
	p := &model.Participant{ID: "p1", Badges: []model.Badge{{BadgeID: "vol"}}}
	e.EvaluateNewBadges(context.Background(), p, nil, Env{})
	if skipped != 1 {
		t.Fatalf("skipped = %d, want 1", skipped)
	}
}

func TestOwnHistory_Ordering(t *testing.T) {
	late := accepted(1, "a", 10)
	early := wrong(3, "a", 5)
	tieFirst := wrong(4, "b", 7)
	tieSecond := wrong(5, "b", 7)

	got := OwnHistory("p1", []model.Submission{late, tieSecond, early, tieFirst})
	want := []uint64{3, 4, 5, 1}
	for i, s := range got {
		if s.Seq != want[i] {
			t.Fatalf("position %d: seq %d, want %d", i, s.Seq, want[i])
		}
	}
}
