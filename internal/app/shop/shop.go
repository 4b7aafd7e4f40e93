// Package shop implements the coin-spend economy: a static catalog of
// avatars and completion effects, purchases that debit the user's coin
// balance, and selection of the active avatar/effect.
package shop

import (
	"fmt"
	"net/url"
	"time"

	"github.com/obma24/Quest-Board/internal/domain"
	"github.com/obma24/Quest-Board/internal/infra/sqlite"
)

// ItemKind distinguishes catalog entries.
type ItemKind string

const (
	KindAvatar ItemKind = "avatar"
	KindEffect ItemKind = "effect"
)

// Item is one purchasable catalog entry. Avatars carry a rendered image URL;
// effects are identified client-side by id alone.
type Item struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Kind  ItemKind `json:"kind"`
	Cost  int      `json:"cost"`
	Image string   `json:"image,omitempty"`
}

const avatarBase = "https://api.dicebear.com/9.x/rings/svg"

func avatarImage(seed string, muted bool) string {
	u := avatarBase + "?seed=" + url.QueryEscape(seed) + "&backgroundType=gradientLinear&radius=50"
	if muted {
		u += "&backgroundColor=d6d6d6&ringColor=9e9e9e&color=9e9e9e"
	}
	return u
}

var catalog = []Item{
	{ID: "default", Name: "Default", Kind: KindAvatar, Cost: 0, Image: avatarImage("Default", true)},
	{ID: "avatar1", Name: "Explorer", Kind: KindAvatar, Cost: 5, Image: avatarImage("Explorer", false)},
	{ID: "avatar2", Name: "Knight", Kind: KindAvatar, Cost: 80, Image: avatarImage("Knight", false)},
	{ID: "avatar3", Name: "Mage", Kind: KindAvatar, Cost: 120, Image: avatarImage("Mage", false)},
	{ID: "avatar4", Name: "Rogue", Kind: KindAvatar, Cost: 60, Image: avatarImage("Rogue", false)},
	{ID: "avatar6", Name: "Ranger", Kind: KindAvatar, Cost: 70, Image: avatarImage("Ranger", false)},
	{ID: "avatar7", Name: "Paladin", Kind: KindAvatar, Cost: 110, Image: avatarImage("Paladin", false)},
	{ID: "avatar8", Name: "Scholar", Kind: KindAvatar, Cost: 55, Image: avatarImage("Scholar", false)},

	{ID: "confetti", Name: "Confetti", Kind: KindEffect, Cost: 0},
	{ID: "burst", Name: "Burst", Kind: KindEffect, Cost: 15},
	{ID: "sparks", Name: "Sparks", Kind: KindEffect, Cost: 18},
	{ID: "emoji", Name: "Emoji Rain", Kind: KindEffect, Cost: 22},
	{ID: "fireworks", Name: "Explosion", Kind: KindEffect, Cost: 25},
}

// Service sells catalog items against the user's coin balance.
type Service struct {
	db *sqlite.DB
}

// NewService creates a shop service.
func NewService(db *sqlite.DB) *Service {
	return &Service{db: db}
}

// Items returns the full catalog.
func (s *Service) Items() []Item {
	out := make([]Item, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup finds a catalog item by id.
func (s *Service) Lookup(itemID string) (*Item, error) {
	for i := range catalog {
		if catalog[i].ID == itemID {
			item := catalog[i]
			return &item, nil
		}
	}
	return nil, domain.ErrItemNotFound
}

// Buy debits the item's cost from the user's balance and selects the item in
// one transaction. Free items always succeed; otherwise the purchase fails
// with domain.ErrInsufficientCoins when the balance is short.
func (s *Service) Buy(userID, itemID string) (*domain.User, error) {
	return s.BuyAt(userID, itemID, time.Now())
}

// BuyAt is Buy with an explicit clock, for testability.
func (s *Service) BuyAt(userID, itemID string, now time.Time) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	item, err := s.Lookup(itemID)
	if err != nil {
		return nil, err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	user, err := tx.EnsureUser(userID, now)
	if err != nil {
		return nil, err
	}
	if user.Coins < item.Cost {
		return nil, fmt.Errorf("buy %s: %w", item.ID, domain.ErrInsufficientCoins)
	}

	user.Coins -= item.Cost
	switch item.Kind {
	case KindAvatar:
		user.SelectedAvatar = item.ID
	case KindEffect:
		user.SelectedEffect = item.ID
	}

	if err := tx.SaveUser(*user); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return user, nil
}

// ApplyAvatar selects an avatar the user already paid for. No balance check:
// selection of an owned item is free.
func (s *Service) ApplyAvatar(userID, itemID string) (*domain.User, error) {
	return s.apply(userID, itemID, KindAvatar)
}

// ApplyEffect selects a completion effect.
func (s *Service) ApplyEffect(userID, itemID string) (*domain.User, error) {
	return s.apply(userID, itemID, KindEffect)
}

func (s *Service) apply(userID, itemID string, kind ItemKind) (*domain.User, error) {
	if userID == "" {
		return nil, domain.ErrMissingUserID
	}
	item, err := s.Lookup(itemID)
	if err != nil {
		return nil, err
	}
	if item.Kind != kind {
		return nil, domain.ErrItemNotFound
	}

	user, err := s.db.EnsureUser(userID, time.Now())
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindAvatar:
		user.SelectedAvatar = item.ID
	case KindEffect:
		user.SelectedEffect = item.ID
	}
	if err := s.db.SaveUser(*user); err != nil {
		return nil, err
	}
	return user, nil
}
