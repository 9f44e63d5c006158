package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"shareit/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func TestSaveOffer_FirstSaveThenRepeat(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	u1 := env.createUser(t, "u1")
	u2 := env.createUser(t, "u2")
	r1 := env.createRecommendation(t, u2, env.createBusiness(t, "Corner Cafe"))
	require.Equal(t, int64(0), env.savedCount(t, r1.ID))

	req := &dto.SaveOfferRequest{UserID: u1.ID, RecommendationID: r1.ID}
	first, created, err := env.offers.SaveOffer(ctx, req)
	require.NoError(t, err)
	assert.True(t, created)
	assert.True(t, first.Saved)
	assert.False(t, first.Claimed)
	assert.Nil(t, first.ClaimedAt)
	assert.True(t, first.SavedAt.Equal(env.clock.Now()))
	assert.Equal(t, int64(1), env.savedCount(t, r1.ID))

	env.clock.Advance(time.Minute)
	again, created, err := env.offers.SaveOffer(ctx, req)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first, again)
	assert.Equal(t, int64(1), env.savedCount(t, r1.ID))
}

func TestSaveOffer_DistinctSaversEachCount(t *testing.T) {
	env := newTestEnv(t)
	author := env.createUser(t, "author")
	rec := env.createRecommendation(t, author, env.createBusiness(t, "Bakery"))

	for _, name := range []string{"alice", "bob", "carol"} {
		saver := env.createUser(t, name)
		_, created, err := env.offers.SaveOffer(context.Background(), &dto.SaveOfferRequest{UserID: saver.ID, RecommendationID: rec.ID})
		require.NoError(t, err)
		assert.True(t, created)
	}
	assert.Equal(t, int64(3), env.savedCount(t, rec.ID))
}

func TestSaveOffer_ConcurrentDuplicates(t *testing.T) {
	env := newTestEnv(t)
	saver := env.createUser(t, "saver")
	rec := env.createRecommendation(t, env.createUser(t, "author"), env.createBusiness(t, "Gym"))

	var g errgroup.Group
	ids := make([]uuid.UUID, 50)
	for i := range ids {
		i := i
		g.Go(func() error {
			offer, _, err := env.offers.SaveOffer(context.Background(), &dto.SaveOfferRequest{
				UserID:           saver.ID,
				RecommendationID: rec.ID,
			})
			if err != nil {
				return err
			}
			ids[i] = offer.ID
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for _, id := range ids {
		assert.Equal(t, ids[0], id)
	}
	offers, err := env.offers.ListSavedOffers(context.Background(), saver.ID)
	require.NoError(t, err)
	assert.Len(t, offers, 1)
	assert.Equal(t, int64(1), env.savedCount(t, rec.ID))
}

func TestSaveOffer_MissingRecommendation(t *testing.T) {
	env := newTestEnv(t)
	u1 := env.createUser(t, "u1")

	_, _, err := env.offers.SaveOffer(context.Background(), &dto.SaveOfferRequest{UserID: u1.ID, RecommendationID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)

	offers, err := env.offers.ListSavedOffers(context.Background(), u1.ID)
	require.NoError(t, err)
	assert.Empty(t, offers)
}

func TestSaveOffer_MissingUser(t *testing.T) {
	env := newTestEnv(t)
	rec := env.createRecommendation(t, env.createUser(t, "author"), env.createBusiness(t, "Spa"))

	_, _, err := env.offers.SaveOffer(context.Background(), &dto.SaveOfferRequest{UserID: uuid.New(), RecommendationID: rec.ID})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(0), env.savedCount(t, rec.ID))
}

func TestSaveOffer_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, _, err := env.offers.SaveOffer(context.Background(), &dto.SaveOfferRequest{})
	assert.ErrorIs(t, err, ErrValidation)

	var verr *dto.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "userId")
	assert.Contains(t, verr.Fields, "recommendationId")
}

type claimFixture struct {
	env   *testEnv
	owner uuid.UUID
	ref   uuid.UUID
	offer uuid.UUID
}

func newClaimFixture(t *testing.T) *claimFixture {
	t.Helper()
	env := newTestEnv(t)
	u1 := env.createUser(t, "u1")
	u2 := env.createUser(t, "u2")
	rec := env.createRecommendation(t, u2, env.createBusiness(t, "Corner Cafe"))

	offer, _, err := env.offers.SaveOffer(context.Background(), &dto.SaveOfferRequest{UserID: u1.ID, RecommendationID: rec.ID})
	require.NoError(t, err)
	return &claimFixture{env: env, owner: u1.ID, ref: u2.ID, offer: offer.ID}
}

func TestClaimOffer_CreditsReferrerOnce(t *testing.T) {
	f := newClaimFixture(t)
	ctx := context.Background()
	f.env.clock.Advance(2 * time.Hour)

	claimed, err := f.env.offers.ClaimOffer(ctx, f.offer, &dto.ClaimOfferRequest{ReferrerID: f.ref})
	require.NoError(t, err)
	assert.True(t, claimed.Claimed)
	assert.True(t, claimed.Saved)
	require.NotNil(t, claimed.ClaimedAt)
	assert.False(t, claimed.ClaimedAt.Before(claimed.SavedAt))
	assert.Equal(t, int64(testReward), f.env.wallet(t, f.ref))

	_, err = f.env.offers.ClaimOffer(ctx, f.offer, &dto.ClaimOfferRequest{ReferrerID: f.ref})
	assert.ErrorIs(t, err, ErrAlreadyClaimed)
	assert.Equal(t, int64(testReward), f.env.wallet(t, f.ref))

	rewards, err := f.env.users.ListRewards(ctx, f.ref)
	require.NoError(t, err)
	require.Len(t, rewards, 1)
	assert.Equal(t, f.offer, rewards[0].SavedOfferID)
	assert.Equal(t, int64(testReward), rewards[0].Coins)
}

func TestClaimOffer_SelfReferral(t *testing.T) {
	f := newClaimFixture(t)
	ctx := context.Background()

	_, err := f.env.offers.ClaimOffer(ctx, f.offer, &dto.ClaimOfferRequest{ReferrerID: f.owner})
	assert.ErrorIs(t, err, ErrInvalidReferrer)
	assert.Zero(t, f.env.wallet(t, f.owner))

	offers, err := f.env.offers.ListSavedOffers(ctx, f.owner)
	require.NoError(t, err)
	require.Len(t, offers, 1)
	assert.False(t, offers[0].Claimed)
}

func TestClaimOffer_NotFound(t *testing.T) {
	f := newClaimFixture(t)

	_, err := f.env.offers.ClaimOffer(context.Background(), uuid.New(), &dto.ClaimOfferRequest{ReferrerID: f.ref})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, f.env.wallet(t, f.ref))
}

func TestClaimOffer_UnknownReferrer(t *testing.T) {
	f := newClaimFixture(t)

	_, err := f.env.offers.ClaimOffer(context.Background(), f.offer, &dto.ClaimOfferRequest{ReferrerID: uuid.New()})
	assert.ErrorIs(t, err, ErrNotFound)

	offers, err := f.env.offers.ListSavedOffers(context.Background(), f.owner)
	require.NoError(t, err)
	assert.False(t, offers[0].Claimed)
}

func TestClaimOffer_MissingReferrerIsValidationError(t *testing.T) {
	f := newClaimFixture(t)

	_, err := f.env.offers.ClaimOffer(context.Background(), f.offer, &dto.ClaimOfferRequest{})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestClaimOffer_ConcurrentClaims(t *testing.T) {
	f := newClaimFixture(t)

	const attempts = 20
	results := make([]error, attempts)
	var g errgroup.Group
	for i := 0; i < attempts; i++ {
		i := i
		g.Go(func() error {
			_, results[i] = f.env.offers.ClaimOffer(context.Background(), f.offer, &dto.ClaimOfferRequest{ReferrerID: f.ref})
			return nil
		})
	}
	require.NoError(t, g.Wait())

	var succeeded int
	for _, err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrAlreadyClaimed):
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Equal(t, int64(testReward), f.env.wallet(t, f.ref))
}

func TestClaimOffer_ClockBehindSavedAt(t *testing.T) {
	f := newClaimFixture(t)
	f.env.clock.Advance(-time.Hour)

	claimed, err := f.env.offers.ClaimOffer(context.Background(), f.offer, &dto.ClaimOfferRequest{ReferrerID: f.ref})
	require.NoError(t, err)
	require.NotNil(t, claimed.ClaimedAt)
	assert.True(t, claimed.ClaimedAt.Equal(claimed.SavedAt))
}

func TestListSavedOffers_NewestFirst(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	saver := env.createUser(t, "saver")
	author := env.createUser(t, "author")
	biz := env.createBusiness(t, "Books")

	var want []uuid.UUID
	for i := 0; i < 3; i++ {
		rec := env.createRecommendation(t, author, biz)
		env.clock.Advance(time.Minute)
		offer, _, err := env.offers.SaveOffer(ctx, &dto.SaveOfferRequest{UserID: saver.ID, RecommendationID: rec.ID})
		require.NoError(t, err)
		want = append([]uuid.UUID{offer.ID}, want...)
	}

	offers, err := env.offers.ListSavedOffers(ctx, saver.ID)
	require.NoError(t, err)
	require.Len(t, offers, 3)
	for i, o := range offers {
		assert.Equal(t, want[i], o.ID)
	}

	none, err := env.offers.ListSavedOffers(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, none)
}
