package gormrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"survivalcore/internal/adapter/repo/gorm/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScalarRepo struct {
	db *gorm.DB
}

func NewScalarRepo(db *gorm.DB) ScalarRepo {
	return ScalarRepo{db: db}
}

func (r ScalarRepo) GetScalar(ctx context.Context, scope, key string) (float64, bool, error) {
	var m model.SurvivalScalar
	err := dbFrom(ctx, r.db).Where("scope = ? AND key = ?", scope, key).First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("get scalar %s/%s: %w", scope, key, err)
	}
	return m.Value, true, nil
}

func (r ScalarRepo) SetScalar(ctx context.Context, scope, key string, value float64) error {
	m := model.SurvivalScalar{Scope: scope, Key: key, Value: value, UpdatedAt: time.Now()}
	err := dbFrom(ctx, r.db).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "scope"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&m).Error
	if err != nil {
		return fmt.Errorf("set scalar %s/%s: %w", scope, key, err)
	}
	return nil
}
