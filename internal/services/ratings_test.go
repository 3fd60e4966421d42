package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateBookAverage(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	seedUser(t, gdb, "alice")
	seedUser(t, gdb, "bob")
	book := seedBook(t, gdb, "Fiction", "Dune", 9.99, 3)

	svc := NewRatingService(gdb)

	avg, err := svc.Average(book.ID)
	require.NoError(t, err)
	assert.Zero(t, avg)

	require.NoError(t, svc.RateBook("alice", book.ID, 4))
	require.NoError(t, svc.RateBook("bob", book.ID, 2))

	avg, err = svc.Average(book.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, avg, 1e-9)

	count, err := svc.VoteCount(book.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestRateBookReplacesPreviousValue(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	seedUser(t, gdb, "alice")
	book := seedBook(t, gdb, "Fiction", "Dune", 9.99, 3)

	svc := NewRatingService(gdb)

	// Rating 3 then 5 must leave only the 5 behind, no double count.
	require.NoError(t, svc.RateBook("alice", book.ID, 3))
	require.NoError(t, svc.RateBook("alice", book.ID, 5))

	avg, err := svc.Average(book.ID)
	require.NoError(t, err)
	assert.InDelta(t, 5.0, avg, 1e-9)

	count, err := svc.VoteCount(book.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	rating, err := svc.UserRating("alice", book.ID)
	require.NoError(t, err)
	require.NotNil(t, rating)
	assert.Equal(t, 5, *rating)
}

func TestRateBookValidation(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	seedUser(t, gdb, "alice")
	book := seedBook(t, gdb, "Fiction", "Dune", 9.99, 3)

	svc := NewRatingService(gdb)

	assert.ErrorIs(t, svc.RateBook("alice", book.ID, 0), ErrInvalidRating)
	assert.ErrorIs(t, svc.RateBook("alice", book.ID, 6), ErrInvalidRating)
	assert.ErrorIs(t, svc.RateBook("alice", 4242, 3), ErrNotFound)

	// Rejected values must leave nothing behind.
	count, err := svc.VoteCount(book.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUserRatingAbsent(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	seedUser(t, gdb, "alice")
	book := seedBook(t, gdb, "Fiction", "Dune", 9.99, 3)

	svc := NewRatingService(gdb)
	rating, err := svc.UserRating("alice", book.ID)
	require.NoError(t, err)
	assert.Nil(t, rating)
}
