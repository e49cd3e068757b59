package repo

import (
	"context"
	"errors"

	"cardsapi/app/models"
	"cardsapi/app/query"

	"gorm.io/gorm"
)

type CardRepository struct{ db *gorm.DB }

func NewCardRepository(db *gorm.DB) *CardRepository { return &CardRepository{db: db} }

func (r *CardRepository) Create(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(card).Error
	})
}

// FindByID returns (nil, nil) when no card with the id exists.
func (r *CardRepository) FindByID(ctx context.Context, id uint) (*models.Card, error) {
	var card models.Card
	err := r.db.WithContext(ctx).First(&card, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// Save writes the full record back. Runs in its own transaction so predicate
// fields and audit fields are never observable half-applied.
func (r *CardRepository) Save(ctx context.Context, card *models.Card) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(card).Error
	})
}

func (r *CardRepository) DeleteByID(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&models.Card{}, id).Error
	})
}

// FindByFilters runs the compiled predicate conjunction with the requested
// ordering and page slice, entirely inside the store.
func (r *CardRepository) FindByFilters(ctx context.Context, params query.Params, preds []query.Predicate) ([]models.Card, error) {
	tx := r.db.WithContext(ctx).Model(&models.Card{})
	tx = query.ApplyPredicates(tx, preds)
	tx = params.ApplyOrderAndPage(tx)

	cards := make([]models.Card, 0, params.PageSize)
	if err := tx.Find(&cards).Error; err != nil {
		return nil, err
	}
	return cards, nil
}
