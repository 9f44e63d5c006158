// Package memory is an in-process implementation of the repository
// interfaces, used for local development and tests. All state lives behind
// one RWMutex, so every multi-entity operation is atomic.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"shareit/internal/models"
	"shareit/internal/repository"

	"github.com/google/uuid"
)

type offerKey struct {
	userID           uuid.UUID
	recommendationID uuid.UUID
}

type connectionKey struct {
	userID          uuid.UUID
	connectedUserID uuid.UUID
}

// DB holds all state. Use the accessor methods to obtain the per-entity
// stores; they share the same lock.
type DB struct {
	mu sync.RWMutex

	users           map[uuid.UUID]models.User
	usernames       map[string]uuid.UUID
	emails          map[string]uuid.UUID
	businesses      map[uuid.UUID]models.Business
	recommendations map[uuid.UUID]models.Recommendation
	offers          map[uuid.UUID]models.SavedOffer
	offersByPair    map[offerKey]uuid.UUID
	wallets         map[uuid.UUID]models.Wallet
	rewards         map[uuid.UUID]models.Reward
	rewardedOffers  map[uuid.UUID]uuid.UUID
	connections     map[uuid.UUID]models.Connection
	connectionPairs map[connectionKey]uuid.UUID
}

func New() *DB {
	return &DB{
		users:           make(map[uuid.UUID]models.User),
		usernames:       make(map[string]uuid.UUID),
		emails:          make(map[string]uuid.UUID),
		businesses:      make(map[uuid.UUID]models.Business),
		recommendations: make(map[uuid.UUID]models.Recommendation),
		offers:          make(map[uuid.UUID]models.SavedOffer),
		offersByPair:    make(map[offerKey]uuid.UUID),
		wallets:         make(map[uuid.UUID]models.Wallet),
		rewards:         make(map[uuid.UUID]models.Reward),
		rewardedOffers:  make(map[uuid.UUID]uuid.UUID),
		connections:     make(map[uuid.UUID]models.Connection),
		connectionPairs: make(map[connectionKey]uuid.UUID),
	}
}

func (db *DB) Users() *UserStore { return &UserStore{db: db} }
func (db *DB) Businesses() *BusinessStore { return &BusinessStore{db: db} }
func (db *DB) Recommendations() *RecommendationStore { return &RecommendationStore{db: db} }
func (db *DB) SavedOffers() *SavedOfferStore { return &SavedOfferStore{db: db} }
func (db *DB) Wallets() *WalletStore { return &WalletStore{db: db} }
func (db *DB) Connections() *ConnectionStore { return &ConnectionStore{db: db} }

var (
	_ repository.UserStore           = (*UserStore)(nil)
	_ repository.BusinessStore       = (*BusinessStore)(nil)
	_ repository.RecommendationStore = (*RecommendationStore)(nil)
	_ repository.SavedOfferStore     = (*SavedOfferStore)(nil)
	_ repository.WalletStore         = (*WalletStore)(nil)
	_ repository.ConnectionStore     = (*ConnectionStore)(nil)
)

type UserStore struct{ db *DB }

func (s *UserStore) Create(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[user.ID]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := s.db.usernames[strings.ToLower(user.Username)]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := s.db.emails[strings.ToLower(user.Email)]; ok {
		return repository.ErrDuplicate
	}

	s.db.users[user.ID] = *user
	s.db.usernames[strings.ToLower(user.Username)] = user.ID
	s.db.emails[strings.ToLower(user.Email)] = user.ID
	s.db.wallets[user.ID] = models.Wallet{UserID: user.ID, UpdatedAt: user.CreatedAt}
	return nil
}

func (s *UserStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	user, ok := s.db.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

type BusinessStore struct{ db *DB }

func (s *BusinessStore) Create(ctx context.Context, b *models.Business) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.businesses[b.ID]; ok {
		return repository.ErrDuplicate
	}
	s.db.businesses[b.ID] = *b
	return nil
}

func (s *BusinessStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Business, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	b, ok := s.db.businesses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &b, nil
}

func (s *BusinessStore) Search(ctx context.Context, query string, limit, offset int) ([]*models.Business, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	needle := strings.ToLower(query)
	out := []*models.Business{}
	for _, b := range s.db.businesses {
		if needle != "" &&
			!strings.Contains(strings.ToLower(b.Name), needle) &&
			!strings.Contains(strings.ToLower(b.Category), needle) {
			continue
		}
		b := b
		out = append(out, &b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return page(out, limit, offset), nil
}

type RecommendationStore struct{ db *DB }

func (s *RecommendationStore) Create(ctx context.Context, rec *models.Recommendation) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.recommendations[rec.ID]; ok {
		return repository.ErrDuplicate
	}
	if _, ok := s.db.users[rec.UserID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.db.businesses[rec.BusinessID]; !ok {
		return repository.ErrNotFound
	}
	s.db.recommendations[rec.ID] = *rec
	return nil
}

func (s *RecommendationStore) GetByID(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	rec, ok := s.db.recommendations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &rec, nil
}

func (s *RecommendationStore) List(ctx context.Context, filter repository.RecommendationFilter) ([]*models.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []*models.Recommendation{}
	for _, rec := range s.db.recommendations {
		if filter.UserID != nil && rec.UserID != *filter.UserID {
			continue
		}
		if filter.BusinessID != nil && rec.BusinessID != *filter.BusinessID {
			continue
		}
		rec := rec
		out = append(out, &rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return page(out, filter.Limit, filter.Offset), nil
}

func (s *RecommendationStore) IncrementViewCount(ctx context.Context, id uuid.UUID) (*models.Recommendation, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	rec, ok := s.db.recommendations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	rec.ViewCount++
	s.db.recommendations[id] = rec
	return &rec, nil
}

type SavedOfferStore struct{ db *DB }

func (s *SavedOfferStore) SaveIfAbsent(ctx context.Context, offer *models.SavedOffer) (*models.SavedOffer, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	key := offerKey{userID: offer.UserID, recommendationID: offer.RecommendationID}
	if id, ok := s.db.offersByPair[key]; ok {
		existing := s.db.offers[id]
		return &existing, false, nil
	}

	rec, ok := s.db.recommendations[offer.RecommendationID]
	if !ok {
		return nil, false, repository.ErrNotFound
	}
	if _, ok := s.db.users[offer.UserID]; !ok {
		return nil, false, repository.ErrNotFound
	}

	rec.SavedCount++
	s.db.recommendations[rec.ID] = rec
	s.db.offers[offer.ID] = *offer
	s.db.offersByPair[key] = offer.ID

	stored := *offer
	return &stored, true, nil
}

func (s *SavedOfferStore) GetByID(ctx context.Context, id uuid.UUID) (*models.SavedOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	offer, ok := s.db.offers[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &offer, nil
}

func (s *SavedOfferStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.SavedOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []*models.SavedOffer{}
	for _, offer := range s.db.offers {
		if offer.UserID != userID {
			continue
		}
		offer := offer
		out = append(out, &offer)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].SavedAt.Equal(out[j].SavedAt) {
			return out[i].SavedAt.After(out[j].SavedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func (s *SavedOfferStore) Claim(ctx context.Context, offerID uuid.UUID, claimedAt time.Time, reward *models.Reward) (*models.SavedOffer, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	offer, ok := s.db.offers[offerID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if offer.Claimed {
		return nil, repository.ErrAlreadyClaimed
	}
	if _, ok := s.db.rewardedOffers[offerID]; ok {
		return nil, repository.ErrAlreadyClaimed
	}

	at := claimedAt
	offer.Claimed = true
	offer.ClaimedAt = &at
	s.db.offers[offerID] = offer

	s.db.rewards[reward.ID] = *reward
	s.db.rewardedOffers[offerID] = reward.ID

	wallet := s.db.wallets[reward.UserID]
	wallet.UserID = reward.UserID
	wallet.Coins += reward.Coins
	wallet.UpdatedAt = claimedAt
	s.db.wallets[reward.UserID] = wallet

	return &offer, nil
}

type WalletStore struct{ db *DB }

func (s *WalletStore) GetByUserID(ctx context.Context, userID uuid.UUID) (*models.Wallet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	w, ok := s.db.wallets[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &w, nil
}

func (s *WalletStore) SetCoins(ctx context.Context, userID uuid.UUID, coins int64, at time.Time) (*models.Wallet, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	w, ok := s.db.wallets[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	w.Coins = coins
	w.UpdatedAt = at
	s.db.wallets[userID] = w
	return &w, nil
}

func (s *WalletStore) ListRewards(ctx context.Context, userID uuid.UUID) ([]*models.Reward, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []*models.Reward{}
	for _, rw := range s.db.rewards {
		if rw.UserID != userID {
			continue
		}
		rw := rw
		out = append(out, &rw)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

type ConnectionStore struct{ db *DB }

func (s *ConnectionStore) Create(ctx context.Context, conn *models.Connection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.db.mu.Lock()
	defer s.db.mu.Unlock()

	if _, ok := s.db.users[conn.UserID]; !ok {
		return repository.ErrNotFound
	}
	if _, ok := s.db.users[conn.ConnectedUserID]; !ok {
		return repository.ErrNotFound
	}
	key := connectionKey{userID: conn.UserID, connectedUserID: conn.ConnectedUserID}
	if _, ok := s.db.connectionPairs[key]; ok {
		return repository.ErrDuplicate
	}
	s.db.connections[conn.ID] = *conn
	s.db.connectionPairs[key] = conn.ID
	return nil
}

func (s *ConnectionStore) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Connection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.db.mu.RLock()
	defer s.db.mu.RUnlock()

	out := []*models.Connection{}
	for _, c := range s.db.connections {
		if c.UserID != userID {
			continue
		}
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out, nil
}

func page[T any](items []T, limit, offset int) []T {
	if offset > 0 {
		if offset >= len(items) {
			return items[:0]
		}
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
