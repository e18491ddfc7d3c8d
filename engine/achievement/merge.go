package achievement

import (
	"time"

	"github.com/to404hanga/online_judge_arena/model"
)

// Merge 以徽章 id 为键合并, 已持有的徽章保持不变
// 返回合并后的集合以及本次实际新增的徽章
func Merge(participantID string, held []model.Badge, earned []Definition, earnedAt time.Time) (merged []model.Badge, added []model.Badge) {
	seen := make(map[string]struct{}, len(held)+len(earned))
	merged = make([]model.Badge, 0, len(held)+len(earned))
	for _, b := range held {
		if _, ok := seen[b.BadgeID]; ok {
			continue
		}
		seen[b.BadgeID] = struct{}{}
		merged = append(merged, b)
	}
	for _, d := range earned {
		if _, ok := seen[d.ID]; ok {
			continue
		}
		seen[d.ID] = struct{}{}
		b := d.ToBadge(participantID, earnedAt)
		merged = append(merged, b)
		added = append(added, b)
	}
	return merged, added
}
