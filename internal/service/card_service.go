package service

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Zxcchinii/ProjetWeb/internal/errors"
	"github.com/Zxcchinii/ProjetWeb/internal/model"
	"github.com/Zxcchinii/ProjetWeb/internal/repository"
)

const pinBcryptCost = 10

var pinPattern = regexp.MustCompile(`^\d{4}$`)

var defaultDailyLimit = decimal.NewFromFloat(500.00)

// CardService issues cards and manages their status and daily limit. Owner
// methods enforce ownership; Admin methods act on any card.
type CardService interface {
	IssueCard(ctx context.Context, userID, accountID uint, cardType model.CardType, pin string) (*model.Card, error)
	ListCards(ctx context.Context, userID uint) ([]model.Card, error)
	UpdateStatus(ctx context.Context, userID, cardID uint, status model.CardStatus) (*model.Card, error)
	UpdateDailyLimit(ctx context.Context, userID, cardID uint, limit decimal.Decimal) (*model.Card, error)
	DeleteCard(ctx context.Context, userID, cardID uint) error
	AdminListCards(ctx context.Context) ([]model.Card, error)
	AdminUpdateStatus(ctx context.Context, cardID uint, status model.CardStatus) (*model.Card, error)
	AdminUpdateDailyLimit(ctx context.Context, cardID uint, limit decimal.Decimal) (*model.Card, error)
	AdminDeleteCard(ctx context.Context, cardID uint) error
}

type cardService struct {
	cardRepo repository.CardRepository
	tx       repository.TxManager
}

// NewCardService creates a new card service.
func NewCardService(cardRepo repository.CardRepository, tx repository.TxManager) CardService {
	return &cardService{
		cardRepo: cardRepo,
		tx:       tx,
	}
}

// IssueCard creates a card bound to one of the caller's accounts: Luhn-valid
// number, three-year end-of-month expiry, random CVV, bcrypt-hashed PIN,
// inactive status and the default daily limit. The PIN hash never leaves the
// service (the model strips it from JSON).
func (s *cardService) IssueCard(ctx context.Context, userID, accountID uint, cardType model.CardType, pin string) (*model.Card, error) {
	if !pinPattern.MatchString(pin) {
		return nil, errors.ErrInvalidPin
	}
	if !cardType.Valid() {
		return nil, errors.ErrInvalidCardType
	}

	pinHash, err := bcrypt.GenerateFromPassword([]byte(pin), pinBcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash pin: %w", err)
	}

	var card *model.Card
	err = s.tx.WithTransaction(ctx, func(ctx context.Context, repos repository.Repos) error {
		account, err := repos.Accounts.FindByID(ctx, accountID)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return errors.ErrAccountNotFound
			}
			return err
		}
		if account.UserID != userID {
			return errors.ErrAccountNotFound
		}

		card = &model.Card{
			UserID:         userID,
			AccountID:      account.ID,
			CardNumber:     generateCardNumber(cardType),
			ExpirationDate: cardExpiration(time.Now()),
			CVV:            generateCVV(),
			PINHash:        string(pinHash),
			CardType:       cardType,
			Status:         model.CardStatusInactive,
			DailyLimit:     defaultDailyLimit,
		}
		return repos.Cards.Create(ctx, card)
	})
	if err != nil {
		return nil, err
	}
	return card, nil
}

// ListCards returns the caller's cards, newest first.
func (s *cardService) ListCards(ctx context.Context, userID uint) ([]model.Card, error) {
	return s.cardRepo.FindByUser(ctx, userID)
}

// UpdateStatus changes the status of one of the caller's cards.
func (s *cardService) UpdateStatus(ctx context.Context, userID, cardID uint, status model.CardStatus) (*model.Card, error) {
	card, err := s.findOwned(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, card, status)
}

// UpdateDailyLimit changes the daily limit of one of the caller's cards.
func (s *cardService) UpdateDailyLimit(ctx context.Context, userID, cardID uint, limit decimal.Decimal) (*model.Card, error) {
	card, err := s.findOwned(ctx, userID, cardID)
	if err != nil {
		return nil, err
	}
	return s.setDailyLimit(ctx, card, limit)
}

// DeleteCard removes one of the caller's cards, whatever its status.
func (s *cardService) DeleteCard(ctx context.Context, userID, cardID uint) error {
	card, err := s.findOwned(ctx, userID, cardID)
	if err != nil {
		return err
	}
	return s.cardRepo.Delete(ctx, card.ID)
}

// AdminListCards returns every card.
func (s *cardService) AdminListCards(ctx context.Context) ([]model.Card, error) {
	return s.cardRepo.List(ctx)
}

// AdminUpdateStatus changes the status of any card.
func (s *cardService) AdminUpdateStatus(ctx context.Context, cardID uint, status model.CardStatus) (*model.Card, error) {
	card, err := s.findAny(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return s.setStatus(ctx, card, status)
}

// AdminUpdateDailyLimit changes the daily limit of any card.
func (s *cardService) AdminUpdateDailyLimit(ctx context.Context, cardID uint, limit decimal.Decimal) (*model.Card, error) {
	card, err := s.findAny(ctx, cardID)
	if err != nil {
		return nil, err
	}
	return s.setDailyLimit(ctx, card, limit)
}

// AdminDeleteCard removes any card.
func (s *cardService) AdminDeleteCard(ctx context.Context, cardID uint) error {
	card, err := s.findAny(ctx, cardID)
	if err != nil {
		return err
	}
	return s.cardRepo.Delete(ctx, card.ID)
}

func (s *cardService) findOwned(ctx context.Context, userID, cardID uint) (*model.Card, error) {
	card, err := s.cardRepo.FindByIDAndUser(ctx, cardID, userID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (s *cardService) findAny(ctx context.Context, cardID uint) (*model.Card, error) {
	card, err := s.cardRepo.FindByID(ctx, cardID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrCardNotFound
		}
		return nil, err
	}
	return card, nil
}

func (s *cardService) setStatus(ctx context.Context, card *model.Card, status model.CardStatus) (*model.Card, error) {
	if !status.Valid() {
		return nil, errors.ErrInvalidCardStatus
	}
	// Blocked is terminal.
	if card.Status == model.CardStatusBlocked && status != model.CardStatusBlocked {
		return nil, errors.ErrCardBlocked
	}
	card.Status = status
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}

func (s *cardService) setDailyLimit(ctx context.Context, card *model.Card, limit decimal.Decimal) (*model.Card, error) {
	if limit.IsNegative() || !limit.Equal(limit.Round(2)) {
		return nil, errors.ErrInvalidLimit
	}
	card.DailyLimit = limit
	if err := s.cardRepo.Update(ctx, card); err != nil {
		return nil, err
	}
	return card, nil
}
