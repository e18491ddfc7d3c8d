package repository

import (
	"github.com/to404hanga/online_judge_arena/model"
	"gorm.io/gorm"
)

// AutoMigrate 建表
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Participant{},
		&model.Badge{},
		&model.SolvedProblem{},
		&model.Submission{},
	)
}
