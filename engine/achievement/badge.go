// Package achievement 徽章规则目录与评估器.
//
// 规则是纯函数: 只读取传入的选手快照, 提交历史和 Env, 不读取墙钟时间或全局状态.
// 评估器只返回新满足条件的徽章定义, 持久化与通知由调用方负责.
package achievement

import (
	"fmt"
	"strings"
	"time"

	"github.com/to404hanga/online_judge_arena/model"
)

// Rarity 稀有度, 仅用于展示排序
type Rarity int8

const (
	RarityCommon Rarity = iota
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = [...]string{"common", "rare", "epic", "legendary"}

func (r Rarity) String() string {
	if r < RarityCommon || r > RarityLegendary {
		return fmt.Sprintf("rarity(%d)", int8(r))
	}
	return rarityNames[r]
}

// ParseRarity 解析稀有度, 空字符串视为 common
func ParseRarity(s string) (Rarity, error) {
	if s == "" {
		return RarityCommon, nil
	}
	for i, name := range rarityNames {
		if strings.EqualFold(name, s) {
			return Rarity(i), nil
		}
	}
	return RarityCommon, fmt.Errorf("unknown rarity %q", s)
}

type Category string

const (
	CategoryMilestone   Category = "milestone"
	CategoryMastery     Category = "mastery"
	CategoryDedication  Category = "dedication"
	CategorySkill       Category = "skill"
	CategorySpeed       Category = "speed"
	CategoryAchievement Category = "achievement"
)

// Env 评估环境, 比赛起止时间显式传入
type Env struct {
	CompetitionStart time.Time
	CompetitionEnd   time.Time
}

// Predicate 徽章判定条件, history 已按时间升序排列且只包含该选手的提交
type Predicate func(p *model.Participant, history []model.Submission, env Env) (bool, error)

// Definition 徽章定义
type Definition struct {
	ID          string
	Name        string
	Description string
	Icon        string
	Category    Category
	Rarity      Rarity
	Predicate   Predicate
}

// ToBadge 生成选手获得的徽章记录
func (d Definition) ToBadge(participantID string, earnedAt time.Time) model.Badge {
	return model.Badge{
		ParticipantID: participantID,
		BadgeID:       d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Icon:          d.Icon,
		Category:      string(d.Category),
		Rarity:        d.Rarity.String(),
		EarnedAt:      earnedAt,
	}
}

// View 徽章定义的展示视图
func (d Definition) View(earned bool) model.BadgeDefinitionView {
	return model.BadgeDefinitionView{
		ID:          d.ID,
		Name:        d.Name,
		Description: d.Description,
		Icon:        d.Icon,
		Category:    string(d.Category),
		Rarity:      d.Rarity.String(),
		Earned:      earned,
	}
}
