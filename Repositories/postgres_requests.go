package Repositories

import (
	"context"
	"errors"
	"fmt"

	"IranElaj/Models"

	"gorm.io/gorm"
)

type PostgresRequestRepository struct {
	db *gorm.DB
}

func NewPostgresRequestRepository(db *gorm.DB) *PostgresRequestRepository {
	return &PostgresRequestRepository{db: db}
}

// Create inserts the request and its files. The owning user row is never written here.
func (r *PostgresRequestRepository) Create(ctx context.Context, request *Models.MedicalRequest) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(request).Error; err != nil {
		return fmt.Errorf("create medical request: %w", err)
	}
	return nil
}

func (r *PostgresRequestRepository) List(ctx context.Context, filter ListFilter) ([]Models.MedicalRequest, error) {
	query := r.db.WithContext(ctx).Model(&Models.MedicalRequest{}).
		Preload("User").
		Preload("Files").
		Order("created_at DESC, id")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}

	var output []Models.MedicalRequest
	if err := query.Find(&output).Error; err != nil {
		return nil, fmt.Errorf("list medical requests: %w", err)
	}
	for i := range output {
		output[i].User.PrepareGive()
	}
	return output, nil
}

func (r *PostgresRequestRepository) FindByID(ctx context.Context, id string) (*Models.MedicalRequest, error) {
	var request Models.MedicalRequest
	err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Files").
		Where("id = ?", id).
		Take(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find medical request: %w", err)
	}
	request.User.PrepareGive()
	return &request, nil
}

// UpdateStatus is last-write-wins; no transition rules are applied here.
func (r *PostgresRequestRepository) UpdateStatus(ctx context.Context, id string, status Models.RequestStatus) (*Models.MedicalRequest, error) {
	result := r.db.WithContext(ctx).Model(&Models.MedicalRequest{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("update medical request status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return r.FindByID(ctx, id)
}

func (r *PostgresRequestRepository) CountByStatus(ctx context.Context) (map[Models.RequestStatus]int64, error) {
	var rows []struct {
		Status Models.RequestStatus
		Count  int64
	}
	err := r.db.WithContext(ctx).Model(&Models.MedicalRequest{}).
		Select("status, count(*) AS count").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("count medical requests: %w", err)
	}

	counts := make(map[Models.RequestStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}
