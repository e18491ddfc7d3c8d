package model

import "time"

// Badge 选手已获得的徽章, 复制自徽章定义的展示字段, 创建后不可变更
type Badge struct {
	ParticipantID string    `json:"participant_id" gorm:"column:participant_id;primaryKey;size:36"`
	BadgeID       string    `json:"badge_id" gorm:"column:badge_id;primaryKey;size:64"`
	Name          string    `json:"name" gorm:"column:name;size:64"`
	Description   string    `json:"description" gorm:"column:description;size:255"`
	Icon          string    `json:"icon" gorm:"column:icon;size:64"`
	Category      string    `json:"category" gorm:"column:category;size:32"`
	Rarity        string    `json:"rarity" gorm:"column:rarity;size:16"`
	EarnedAt      time.Time `json:"earned_at" gorm:"column:earned_at;not null"`
}

func (Badge) TableName() string {
	return "participant_badge"
}

type BadgeDefinitionView struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Category    string `json:"category"`
	Rarity      string `json:"rarity"`
	Earned      bool   `json:"earned"`
}

type GetBadgeCatalogParam struct {
	CommonParam `json:"-"`
}

type GetBadgeCatalogResponse struct {
	List []BadgeDefinitionView `json:"list"`
}

type GetMyBadgesParam struct {
	CommonParam `json:"-"`
}

type GetMyBadgesResponse struct {
	List []Badge `json:"list"`
}
