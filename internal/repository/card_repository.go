package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/Zxcchinii/ProjetWeb/internal/model"
)

// CardRepository defines card persistence operations.
type CardRepository interface {
	Create(ctx context.Context, card *model.Card) error
	Update(ctx context.Context, card *model.Card) error
	FindByID(ctx context.Context, id uint) (*model.Card, error)
	FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Card, error)
	FindByUser(ctx context.Context, userID uint) ([]model.Card, error)
	List(ctx context.Context) ([]model.Card, error)
	Delete(ctx context.Context, id uint) error
}

type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository.
func NewCardRepository(db *gorm.DB) CardRepository {
	return &cardRepository{db: db}
}

// Create creates a new card.
func (r *cardRepository) Create(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// Update updates an existing card.
func (r *cardRepository) Update(ctx context.Context, card *model.Card) error {
	return r.db.WithContext(ctx).Save(card).Error
}

// FindByID finds a card by ID.
func (r *cardRepository) FindByID(ctx context.Context, id uint) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByIDAndUser finds a card by ID and owner.
func (r *cardRepository) FindByIDAndUser(ctx context.Context, id, userID uint) (*model.Card, error) {
	var card model.Card
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&card).Error; err != nil {
		return nil, err
	}
	return &card, nil
}

// FindByUser lists a user's cards, newest first.
func (r *cardRepository) FindByUser(ctx context.Context, userID uint) ([]model.Card, error) {
	var cards []model.Card
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).
		Order("created_at DESC").Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// List returns all cards.
func (r *cardRepository) List(ctx context.Context) ([]model.Card, error) {
	var cards []model.Card
	if err := r.db.WithContext(ctx).Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}

// Delete removes a card row.
func (r *cardRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.Card{}, id).Error
}
