package achievement

import (
	"time"

	"github.com/to404hanga/online_judge_arena/model"
)

var base = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

func sub(seq uint64, problemID string, status model.SubmissionStatus, lang string, minute int) model.Submission {
	return model.Submission{
		Seq:           seq,
		ID:            "s" + string(rune('a'+seq)),
		ParticipantID: "p1",
		ProblemID:     problemID,
		Language:      lang,
		Status:        status,
		CreatedAt:     base.Add(time.Duration(minute) * time.Minute),
	}
}

func accepted(seq uint64, problemID string, minute int) model.Submission {
	return sub(seq, problemID, model.SubmissionStatusAccepted, "go", minute)
}

func wrong(seq uint64, problemID string, minute int) model.Submission {
	return sub(seq, problemID, model.SubmissionStatusWrongAnswer, "go", minute)
}

type fakeSets map[string][]string

func (f fakeSets) ProblemIDsOfSet(name string) ([]string, bool) {
	ids, ok := f[name]
	return ids, ok
}

var testSets = fakeSets{
	"programming":     {"two-sum", "fizzbuzz"},
	"cryptography":    {"caesar-cipher", "vigenere-cipher"},
	"data-structures": {"linked-list-reverse"},
	"debugging":       {"fix-off-by-one"},
	"social-impact":   {"water-distribution"},
}
