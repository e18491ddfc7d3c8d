package common

import (
	"context"
	"fmt"
	"strconv"

	"github.com/to404hanga/online_judge_arena/engine/ranking"
)

// Headers 排行榜导出表头
var Headers = []string{"排名", "姓名", "学号", "学校", "分数", "通过题目数", "罚时", "徽章数"}

// FetchRanking 分批读取排名, page 从 1 开始, 超出范围返回空切片
func FetchRanking(ctx context.Context, standings []ranking.Standing, page, limit int) ([]ranking.Standing, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("fetch ranking failed: %w", err)
	}
	start := (page - 1) * limit
	if start >= len(standings) {
		return nil, nil
	}
	end := min(start+limit, len(standings))
	return standings[start:end], nil
}

// FormatPenalty 罚时分钟数格式化为 hh:mm
func FormatPenalty(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Row 一行导出数据, 与 Headers 对应
func Row(s *ranking.Standing) []string {
	p := &s.Participant
	return []string{
		strconv.Itoa(s.Rank),
		p.Name,
		p.StudentNumber,
		p.Institution,
		strconv.Itoa(p.Score),
		strconv.Itoa(p.SolvedProblems),
		FormatPenalty(p.PenaltyTime),
		strconv.Itoa(len(p.Badges)),
	}
}
