package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"shareit/internal/dto"
	"shareit/internal/service"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Fixtures is the YAML seed document. Entities refer to each other by key.
type Fixtures struct {
	Users           []UserFixture           `yaml:"users"`
	Businesses      []BusinessFixture       `yaml:"businesses"`
	Recommendations []RecommendationFixture `yaml:"recommendations"`
	Connections     []ConnectionFixture     `yaml:"connections"`
}

type UserFixture struct {
	Key         string `yaml:"key"`
	Username    string `yaml:"username"`
	Email       string `yaml:"email"`
	DisplayName string `yaml:"displayName"`
}

type BusinessFixture struct {
	Key         string `yaml:"key"`
	Name        string `yaml:"name"`
	Category    string `yaml:"category"`
	Address     string `yaml:"address"`
	Description string `yaml:"description"`
	ImageURL    string `yaml:"imageUrl"`
}

type RecommendationFixture struct {
	Key      string `yaml:"key"`
	Author   string `yaml:"author"`
	Business string `yaml:"business"`
	Discount *int   `yaml:"discount"`
	Rating   *int   `yaml:"rating"`
	Comment  string `yaml:"comment"`
	// ValidFor is relative to the seeding time, e.g. "720h".
	ValidFor string `yaml:"validFor"`
}

type ConnectionFixture struct {
	User          string `yaml:"user"`
	ConnectedUser string `yaml:"connectedUser"`
}

// SeedCache maps fixture keys to the IDs created for them, so reruns skip
// entities that already exist.
type SeedCache struct {
	Users           map[string]uuid.UUID `json:"users"`
	Businesses      map[string]uuid.UUID `json:"businesses"`
	Recommendations map[string]uuid.UUID `json:"recommendations"`
	Connections     map[string]uuid.UUID `json:"connections"`
	UpdatedAt       time.Time            `json:"updated_at"`
}

func newSeedCache() *SeedCache {
	return &SeedCache{
		Users:           make(map[string]uuid.UUID),
		Businesses:      make(map[string]uuid.UUID),
		Recommendations: make(map[string]uuid.UUID),
		Connections:     make(map[string]uuid.UUID),
	}
}

func loadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures: %w", err)
	}
	return parseFixtures(data)
}

func parseFixtures(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &fx, nil
}

// loadCache loads the cache of seeded entities
func loadCache(cacheFile string) (*SeedCache, error) {
	cache := newSeedCache()

	data, err := os.ReadFile(cacheFile)
	if errors.Is(err, os.ErrNotExist) {
		return cache, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cache file: %w", err)
	}
	if len(data) == 0 {
		return cache, nil
	}

	if err := json.Unmarshal(data, cache); err != nil {
		return nil, fmt.Errorf("failed to parse cache file: %w", err)
	}
	return cache, nil
}

// saveCache saves the cache of seeded entities
func saveCache(cacheFile string, cache *SeedCache) error {
	cache.UpdatedAt = time.Now().UTC()
	data, err := json.MarshalIndent(cache, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal cache: %w", err)
	}

	if err := os.WriteFile(cacheFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write cache file: %w", err)
	}
	return nil
}

type seeder struct {
	users       *service.UserService
	businesses  *service.BusinessService
	recs        *service.RecommendationService
	connections *service.ConnectionService
	cache       *SeedCache
	logger      *zap.Logger
}

func (s *seeder) run(ctx context.Context, fx *Fixtures) error {
	for _, f := range fx.Users {
		if err := s.seedUser(ctx, f); err != nil {
			return err
		}
	}
	for _, f := range fx.Businesses {
		if err := s.seedBusiness(ctx, f); err != nil {
			return err
		}
	}
	for _, f := range fx.Recommendations {
		if err := s.seedRecommendation(ctx, f); err != nil {
			return err
		}
	}
	for _, f := range fx.Connections {
		if err := s.seedConnection(ctx, f); err != nil {
			return err
		}
	}
	return nil
}

func (s *seeder) seedUser(ctx context.Context, f UserFixture) error {
	if _, ok := s.cache.Users[f.Key]; ok {
		s.logger.Debug("Skipping seeded user", zap.String("key", f.Key))
		return nil
	}

	user, err := s.users.CreateUser(ctx, &dto.CreateUserRequest{
		Username:    f.Username,
		Email:       f.Email,
		DisplayName: f.DisplayName,
	})
	if err != nil {
		return fmt.Errorf("user %q: %w", f.Key, err)
	}

	s.cache.Users[f.Key] = user.ID
	s.logger.Info("Seeded user", zap.String("key", f.Key), zap.String("id", user.ID.String()))
	return nil
}

func (s *seeder) seedBusiness(ctx context.Context, f BusinessFixture) error {
	if _, ok := s.cache.Businesses[f.Key]; ok {
		s.logger.Debug("Skipping seeded business", zap.String("key", f.Key))
		return nil
	}

	business, err := s.businesses.CreateBusiness(ctx, &dto.CreateBusinessRequest{
		Name:        f.Name,
		Category:    f.Category,
		Address:     f.Address,
		Description: f.Description,
		ImageURL:    f.ImageURL,
	})
	if err != nil {
		return fmt.Errorf("business %q: %w", f.Key, err)
	}

	s.cache.Businesses[f.Key] = business.ID
	s.logger.Info("Seeded business", zap.String("key", f.Key), zap.String("id", business.ID.String()))
	return nil
}

func (s *seeder) seedRecommendation(ctx context.Context, f RecommendationFixture) error {
	if _, ok := s.cache.Recommendations[f.Key]; ok {
		s.logger.Debug("Skipping seeded recommendation", zap.String("key", f.Key))
		return nil
	}

	authorID, ok := s.cache.Users[f.Author]
	if !ok {
		return fmt.Errorf("recommendation %q: unknown author %q", f.Key, f.Author)
	}
	businessID, ok := s.cache.Businesses[f.Business]
	if !ok {
		return fmt.Errorf("recommendation %q: unknown business %q", f.Key, f.Business)
	}

	req := &dto.CreateRecommendationRequest{
		UserID:     authorID,
		BusinessID: businessID,
		Discount:   f.Discount,
		Rating:     f.Rating,
		Comment:    f.Comment,
	}
	if f.ValidFor != "" {
		d, err := time.ParseDuration(f.ValidFor)
		if err != nil {
			return fmt.Errorf("recommendation %q: invalid validFor: %w", f.Key, err)
		}
		until := time.Now().Add(d).UTC()
		req.ValidUntil = &until
	}

	rec, err := s.recs.CreateRecommendation(ctx, req)
	if err != nil {
		return fmt.Errorf("recommendation %q: %w", f.Key, err)
	}

	s.cache.Recommendations[f.Key] = rec.ID
	s.logger.Info("Seeded recommendation", zap.String("key", f.Key), zap.String("id", rec.ID.String()))
	return nil
}

func (s *seeder) seedConnection(ctx context.Context, f ConnectionFixture) error {
	key := f.User + "->" + f.ConnectedUser
	if _, ok := s.cache.Connections[key]; ok {
		return nil
	}

	userID, ok := s.cache.Users[f.User]
	if !ok {
		return fmt.Errorf("connection %q: unknown user %q", key, f.User)
	}
	connectedID, ok := s.cache.Users[f.ConnectedUser]
	if !ok {
		return fmt.Errorf("connection %q: unknown user %q", key, f.ConnectedUser)
	}

	conn, err := s.connections.Connect(ctx, &dto.CreateConnectionRequest{
		UserID:          userID,
		ConnectedUserID: connectedID,
	})
	if errors.Is(err, service.ErrConflict) {
		s.logger.Warn("Connection already exists", zap.String("key", key))
		return nil
	}
	if err != nil {
		return fmt.Errorf("connection %q: %w", key, err)
	}

	s.cache.Connections[key] = conn.ID
	return nil
}
