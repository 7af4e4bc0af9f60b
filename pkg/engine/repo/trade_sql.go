package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/joripage/lob-engine/pkg/engine/model"
)

type TradeSQLRepo struct {
	db *gorm.DB
}

func NewTradeSQLRepo(db *gorm.DB) *TradeSQLRepo {
	return &TradeSQLRepo{
		db: db,
	}
}

func (s *TradeSQLRepo) dbWithContext(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func (s *TradeSQLRepo) Create(ctx context.Context, record *model.TradeRecord) (*model.TradeRecord, error) {
	return record, s.dbWithContext(ctx).Create(record).Error
}

func (s *TradeSQLRepo) BulkCreate(ctx context.Context, records []*model.TradeRecord) ([]*model.TradeRecord, error) {
	return records, s.dbWithContext(ctx).Create(records).Error
}

func (s *TradeSQLRepo) ListBySymbol(ctx context.Context, symbol string, limit int) ([]*model.TradeRecord, error) {
	var records []*model.TradeRecord
	err := s.dbWithContext(ctx).
		Where("symbol = ?", symbol).
		Order("id desc").
		Limit(limit).
		Find(&records).Error
	return records, err
}
