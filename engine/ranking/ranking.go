// Package ranking 排行榜排序与展示视图.
package ranking

import (
	"sort"
	"strings"

	"github.com/to404hanga/online_judge_arena/model"
)

// Standing 排行榜中的一行, Rank 为在完整排序列表中的位置(从 1 开始)
type Standing struct {
	Rank        int
	Participant model.Participant
}

// less 规范排序: 分数降序, 罚时升序, 解题数降序, 注册时间升序, id 升序
func less(a, b *model.Participant) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if a.PenaltyTime != b.PenaltyTime {
		return a.PenaltyTime < b.PenaltyTime
	}
	if a.SolvedProblems != b.SolvedProblems {
		return a.SolvedProblems > b.SolvedProblems
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// Rank 计算规范排名, 不修改入参
func Rank(participants []model.Participant) []Standing {
	sorted := make([]model.Participant, len(participants))
	copy(sorted, participants)
	sort.Slice(sorted, func(i, j int) bool {
		return less(&sorted[i], &sorted[j])
	})

	standings := make([]Standing, len(sorted))
	for i := range sorted {
		standings[i] = Standing{Rank: i + 1, Participant: sorted[i]}
	}
	return standings
}

type SortKey string

const (
	SortByRank    SortKey = ""
	SortByScore   SortKey = "score"
	SortBySolved  SortKey = "solved"
	SortByPenalty SortKey = "penalty"
)

// View 展示参数. 排序与过滤不改变规范排名号, 除非 Renumber 为 true
type View struct {
	Key      SortKey
	Desc     bool
	Query    string
	Renumber bool
}

// DefaultDesc 各排序键的默认方向, 罚时默认升序
func DefaultDesc(key SortKey) bool {
	return key == SortByScore || key == SortBySolved
}

// Present 按视图过滤并重排, 返回新切片
func Present(standings []Standing, v View) []Standing {
	query := strings.ToLower(strings.TrimSpace(v.Query))
	out := make([]Standing, 0, len(standings))
	for _, s := range standings {
		if query != "" && !matches(&s.Participant, query) {
			continue
		}
		out = append(out, s)
	}

	if v.Key != SortByRank {
		sort.SliceStable(out, func(i, j int) bool {
			a, b := field(&out[i].Participant, v.Key), field(&out[j].Participant, v.Key)
			if a == b {
				return out[i].Rank < out[j].Rank
			}
			if v.Desc {
				return a > b
			}
			return a < b
		})
	}

	if v.Renumber {
		for i := range out {
			out[i].Rank = i + 1
		}
	}
	return out
}

func matches(p *model.Participant, query string) bool {
	return strings.Contains(strings.ToLower(p.Name), query) ||
		strings.Contains(strings.ToLower(p.Institution), query)
}

func field(p *model.Participant, key SortKey) int {
	switch key {
	case SortBySolved:
		return p.SolvedProblems
	case SortByPenalty:
		return p.PenaltyTime
	default:
		return p.Score
	}
}

// RankOf 返回选手的规范排名, 不存在时返回 0
func RankOf(standings []Standing, participantID string) int {
	for _, s := range standings {
		if s.Participant.ID == participantID {
			return s.Rank
		}
	}
	return 0
}

// Entry 转换为接口返回结构
func (s Standing) Entry() model.LeaderboardEntry {
	p := &s.Participant
	return model.LeaderboardEntry{
		Rank:           s.Rank,
		ParticipantID:  p.ID,
		Name:           p.Name,
		Institution:    p.Institution,
		StudentNumber:  p.StudentNumber,
		Score:          p.Score,
		SolvedProblems: p.SolvedProblems,
		PenaltyTime:    p.PenaltyTime,
		BadgeCount:     len(p.Badges),
		CreatedAt:      p.CreatedAt,
	}
}
