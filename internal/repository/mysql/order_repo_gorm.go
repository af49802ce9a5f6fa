package mysql

import (
	"context"
	"errors"
	"fmt"
	"log"

	"order-board/internal/domain"
	"order-board/internal/repository"

	"gorm.io/gorm"
)

type orderRepo struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) repository.OrderRepository {
	return &orderRepo{db: db}
}

var terminalStatuses = []domain.OrderStatus{domain.StatusDelivered, domain.StatusCancelled}

func (r *orderRepo) ListActive(ctx context.Context, storeID *string) ([]domain.Order, error) {
	var out []domain.Order
	q := r.db.WithContext(ctx).
		Preload("Items").
		Where("status NOT IN ?", terminalStatuses).
		Order("created_at ASC")
	if storeID != nil {
		q = q.Where("store_id = ?", *storeID)
	}
	if err := q.Find(&out).Error; err != nil {
		log.Printf("ListActive error: %v", err)
		return nil, err
	}
	return out, nil
}

func (r *orderRepo) GetOrderWithItems(ctx context.Context, id string) (*domain.Order, error) {
	var o domain.Order
	err := r.db.WithContext(ctx).Preload("Items").First(&o, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("GetOrderWithItems error: %v", err)
		return nil, err
	}
	return &o, nil
}

func (r *orderRepo) PatchStatus(ctx context.Context, id string, status domain.OrderStatus) error {
	result := r.db.WithContext(ctx).
		Model(&domain.Order{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		log.Printf("PatchStatus error: %v", result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("patch status: order %s not found", id)
	}
	return nil
}
