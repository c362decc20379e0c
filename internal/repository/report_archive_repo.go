package repository

import (
	"context"

	"trading-report/internal/model"

	"gorm.io/gorm"
)

type ReportArchiveRepository interface {
	Create(ctx context.Context, report *model.TradingReport) error
	List(ctx context.Context, limit int) ([]model.TradingReport, error)
	GetByID(ctx context.Context, id uint) (*model.TradingReport, error)
}

type reportArchiveRepository struct {
	db *gorm.DB
}

func NewReportArchiveRepository(db *gorm.DB) ReportArchiveRepository {
	return &reportArchiveRepository{db: db}
}

func (r *reportArchiveRepository) Create(ctx context.Context, report *model.TradingReport) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportArchiveRepository) List(ctx context.Context, limit int) ([]model.TradingReport, error) {
	var reports []model.TradingReport
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&reports).Error; err != nil {
		return nil, err
	}
	return reports, nil
}

func (r *reportArchiveRepository) GetByID(ctx context.Context, id uint) (*model.TradingReport, error) {
	var report model.TradingReport
	if err := r.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return nil, err
	}
	return &report, nil
}
