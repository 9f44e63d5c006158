package dto

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int       { return &v }
func int64Ptr(v int64) *int64 { return &v }

func TestValidate_CreateRecommendation(t *testing.T) {
	valid := CreateRecommendationRequest{
		UserID:     uuid.New(),
		BusinessID: uuid.New(),
		Rating:     intPtr(4),
		Discount:   intPtr(15),
	}

	t.Run("valid request passes", func(t *testing.T) {
		assert.NoError(t, Validate(&valid))
	})

	t.Run("optional fields may be omitted", func(t *testing.T) {
		req := valid
		req.Rating = nil
		req.Discount = nil
		assert.NoError(t, Validate(&req))
	})

	t.Run("rating out of range", func(t *testing.T) {
		for _, rating := range []int{0, 6, -1} {
			req := valid
			req.Rating = intPtr(rating)

			err := Validate(&req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, "rating")
		}
	})

	t.Run("discount above 100", func(t *testing.T) {
		req := valid
		req.Discount = intPtr(101)

		var verr *ValidationError
		require.ErrorAs(t, Validate(&req), &verr)
		assert.Equal(t, "must be at most 100", verr.Fields["discount"])
	})

	t.Run("missing ids are reported by json name", func(t *testing.T) {
		var verr *ValidationError
		require.ErrorAs(t, Validate(&CreateRecommendationRequest{}), &verr)
		assert.Equal(t, "is required", verr.Fields["userId"])
		assert.Equal(t, "is required", verr.Fields["businessId"])
	})
}

func TestValidate_CreateUser(t *testing.T) {
	err := Validate(&CreateUserRequest{Username: "a", Email: "not-an-email"})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "must be at least 2 characters", verr.Fields["username"])
	assert.Equal(t, "must be a valid email", verr.Fields["email"])
	assert.Equal(t, "invalid request: email must be a valid email; username must be at least 2 characters", verr.Error())

	assert.NoError(t, Validate(&CreateUserRequest{Username: "ada", Email: "ada@example.com"}))
}

func TestValidate_UpdateWallet(t *testing.T) {
	var verr *ValidationError
	require.ErrorAs(t, Validate(&UpdateWalletRequest{}), &verr)
	assert.Equal(t, "is required", verr.Fields["coins"])

	require.ErrorAs(t, Validate(&UpdateWalletRequest{Coins: int64Ptr(-5)}), &verr)
	assert.Equal(t, "must be at least 0", verr.Fields["coins"])

	assert.NoError(t, Validate(&UpdateWalletRequest{Coins: int64Ptr(0)}))
}

func TestValidate_ClaimOffer(t *testing.T) {
	var verr *ValidationError
	require.ErrorAs(t, Validate(&ClaimOfferRequest{}), &verr)
	assert.Contains(t, verr.Fields, "referrerId")

	assert.NoError(t, Validate(&ClaimOfferRequest{ReferrerID: uuid.New()}))
}
