package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealsnap-backend/utils"
)

var testSecret = []byte("test-secret")

func TestRegisterAndLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	ctx := context.Background()

	user, token, err := svc.Register(ctx, "Alice", "alice@test.local", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, "alice@test.local", user.Email)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	claims, err := utils.ParseJWT(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, float64(user.ID), claims["userId"])
	assert.Equal(t, "alice@test.local", claims["email"])

	loggedIn, token2, err := svc.Login(ctx, "alice@test.local", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token2)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Alice", "dup@test.local", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Mallory", "dup@test.local", "other-pass")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, testSecret)
	ctx := context.Background()

	_, _, err := svc.Register(ctx, "Alice", "login@test.local", "s3cret-pass")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "login@test.local", "wrong-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@test.local", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUpdateProfilePartialMerge(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "profile@test.local")
	svc := NewUserService(db)
	ctx := context.Background()

	weight := 72.5
	goal := "lose_weight"
	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileUpdateInput{Weight: &weight, Goal: &goal})
	require.NoError(t, err)

	assert.Equal(t, 72.5, updated.WeightKg)
	assert.Equal(t, "lose_weight", updated.Goal)
	// untouched fields survive
	assert.Equal(t, 175.0, updated.HeightCm)
	assert.Equal(t, "moderately_active", updated.ActivityLevel)

	_, err = svc.UpdateProfile(ctx, 9999, ProfileUpdateInput{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}
