package services

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"cardsapi/app/access"
	"cardsapi/app/apperrors"
	"cardsapi/app/dto"
	"cardsapi/app/models"
	"cardsapi/app/query"
	"cardsapi/app/repo"
)

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// CardService orchestrates the access policy, the predicate compiler and
// the card store for the five card operations. The acting user is always an
// explicit argument; nothing is read from ambient state, and every
// id-touching operation re-fetches the record before deciding anything.
type CardService struct {
	cards    *repo.CardRepository
	access   access.Policy
	compiler query.Compiler

	now func() time.Time
}

func NewCardService(cards *repo.CardRepository) *CardService {
	return &CardService{cards: cards, now: time.Now}
}

func (s *CardService) CreateCard(ctx context.Context, actor models.Actor, req dto.CardRequest) (*models.Card, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.ErrCardNameNotProvided
	}
	if violations := validateCardFields(req.Name, req.Description, req.Color); len(violations) > 0 {
		return nil, &apperrors.ValidationError{Violations: violations}
	}
	now := s.now()
	// Client-supplied status is ignored: new cards always start at TODO.
	card := &models.Card{
		Name:                 req.Name,
		Description:          req.Description,
		Color:                req.Color,
		Status:               models.StatusTodo,
		CreatedBy:            actor.Email,
		CreatedDateTime:      now,
		LastModifiedBy:       actor.Email,
		LastModifiedDateTime: now,
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// GetCard confirms existence before authorization: an unauthorized caller
// learns the card exists but nothing about its contents.
func (s *CardService) GetCard(ctx context.Context, actor models.Actor, id uint) (*models.Card, error) {
	card, err := s.fetchAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	return card, nil
}

// GetCardsByFilter is the aggregate-get operation. A member asking for
// another user's cards via the created_by filter is rejected before any
// store query runs.
func (s *CardService) GetCardsByFilter(ctx context.Context, actor models.Actor, params query.Params) ([]models.Card, error) {
	if s.access.IsMember(actor) && s.access.FilterTargetsOtherUser(actor, params.Filters) {
		return nil, &apperrors.InsufficientPrivilegesError{Email: actor.Email}
	}
	preds, err := s.compiler.Compile(actor, params.Filters)
	if err != nil {
		return nil, err
	}
	return s.cards.FindByFilters(ctx, params, preds)
}

// ReplaceCard follows PUT semantics: full replacement of the client-facing
// fields, but createdBy/createdDateTime are copied forward from the stored
// record, never from input.
func (s *CardService) ReplaceCard(ctx context.Context, actor models.Actor, id uint, req dto.CardRequest) (*models.Card, error) {
	card, err := s.fetchAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, apperrors.ErrCardNameNotProvided
	}
	if violations := validateCardFields(req.Name, req.Description, req.Color); len(violations) > 0 {
		return nil, &apperrors.ValidationError{Violations: violations}
	}
	status := models.StatusTodo
	if req.Status != "" {
		status, err = models.ParseCardStatus(req.Status)
		if err != nil {
			return nil, &apperrors.ValidationError{Violations: []string{err.Error()}}
		}
	}
	card.Name = req.Name
	card.Description = req.Description
	card.Color = req.Color
	card.Status = status
	card.LastModifiedBy = actor.Email
	card.LastModifiedDateTime = s.now()
	if err := s.cards.Save(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

// UpdateCard applies a sparse patch: nil fields stay untouched, non-nil
// fields overwrite. An explicit empty string clears description/color but a
// whitespace-only name is rejected.
func (s *CardService) UpdateCard(ctx context.Context, actor models.Actor, id uint, patch dto.CardPatch) (*models.Card, error) {
	card, err := s.fetchAccessible(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if patch.Name != nil && strings.TrimSpace(*patch.Name) == "" {
		return nil, apperrors.ErrCardNameBlank
	}
	merged, err := mergePatch(card, patch)
	if err != nil {
		return nil, err
	}
	if violations := validateCardFields(merged.Name, merged.Description, merged.Color); len(violations) > 0 {
		return nil, &apperrors.ValidationError{Violations: violations}
	}
	merged.LastModifiedBy = actor.Email
	merged.LastModifiedDateTime = s.now()
	if err := s.cards.Save(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

func (s *CardService) DeleteCard(ctx context.Context, actor models.Actor, id uint) error {
	if _, err := s.fetchAccessible(ctx, actor, id); err != nil {
		return err
	}
	return s.cards.DeleteByID(ctx, id)
}

// fetchAccessible re-reads the card and runs the access gate every
// operation shares: not-found first, then ownership/admin.
func (s *CardService) fetchAccessible(ctx context.Context, actor models.Actor, id uint) (*models.Card, error) {
	card, err := s.cards.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if card == nil {
		return nil, &apperrors.CardNotFoundError{ID: id}
	}
	if !s.access.CanAccessCard(actor, card) {
		return nil, &apperrors.InsufficientPrivilegesError{Email: actor.Email}
	}
	return card, nil
}

// mergePatch copies the stored record and overlays the patch's present
// fields. Audit fields are untouched here.
func mergePatch(card *models.Card, patch dto.CardPatch) (*models.Card, error) {
	merged := *card
	if patch.Name != nil {
		merged.Name = *patch.Name
	}
	if patch.Description != nil {
		merged.Description = *patch.Description
	}
	if patch.Color != nil {
		merged.Color = *patch.Color
	}
	if patch.Status != nil {
		status, err := models.ParseCardStatus(*patch.Status)
		if err != nil {
			return nil, &apperrors.ValidationError{Violations: []string{err.Error()}}
		}
		merged.Status = status
	}
	return &merged, nil
}

// validateCardFields collects every violation instead of stopping at the
// first one.
func validateCardFields(name, description, color string) []string {
	var violations []string
	if len(name) > 50 {
		violations = append(violations, "Card name can have at most 50 characters.")
	}
	if len(description) > 100 {
		violations = append(violations, "Card description can have at most 100 characters.")
	}
	if color != "" && !colorPattern.MatchString(color) {
		violations = append(violations, fmt.Sprintf("Color %s must start with '#' and end with exactly 6 hexadecimals.", color))
	}
	return violations
}
