package services

import (
	"testing"

	"bookstore/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListBooksDefaultOrder(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	first := seedBook(t, gdb, "Fiction", "Dune", 9.99, 3)
	second := seedBook(t, gdb, "Fiction", "Emma", 7.50, 3)
	third := seedBook(t, gdb, "Fiction", "It", 12.00, 3)

	svc := NewCatalogService(gdb)
	books, err := svc.ListBooks("Fiction", FilterDefault)
	require.NoError(t, err)
	assert.Equal(t, []uint{first.ID, second.ID, third.ID}, bookIDs(books))
}

func TestListBooksByPrice(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	mid := seedBook(t, gdb, "Fiction", "Dune", 9.99, 3)
	cheap := seedBook(t, gdb, "Fiction", "Emma", 7.50, 3)
	dear := seedBook(t, gdb, "Fiction", "It", 12.00, 3)
	cheapToo := seedBook(t, gdb, "Fiction", "Nod", 7.50, 3)

	svc := NewCatalogService(gdb)

	asc, err := svc.ListBooks("Fiction", FilterPriceAsc)
	require.NoError(t, err)
	// Equal prices keep ascending id order.
	assert.Equal(t, []uint{cheap.ID, cheapToo.ID, mid.ID, dear.ID}, bookIDs(asc))

	desc, err := svc.ListBooks("Fiction", FilterPriceDesc)
	require.NoError(t, err)
	assert.Equal(t, []uint{dear.ID, mid.ID, cheap.ID, cheapToo.ID}, bookIDs(desc))
}

func TestListBooksByPopularity(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	seedUser(t, gdb, "alice")
	five := seedBook(t, gdb, "Fiction", "Dune", 9.99, 10)
	zero := seedBook(t, gdb, "Fiction", "Emma", 7.50, 10)
	two := seedBook(t, gdb, "Fiction", "It", 12.00, 10)

	purchases := NewPurchaseService(gdb)
	for i := 0; i < 5; i++ {
		_, err := purchases.Purchase("alice", five.ID)
		require.NoError(t, err)
	}
	for i := 0; i < 2; i++ {
		_, err := purchases.Purchase("alice", two.ID)
		require.NoError(t, err)
	}

	svc := NewCatalogService(gdb)
	books, err := svc.ListBooks("Fiction", FilterPopularity)
	require.NoError(t, err)
	// Purchase counts {5,0,2} list as 5,2,0; unsold books sort last.
	assert.Equal(t, []uint{five.ID, two.ID, zero.ID}, bookIDs(books))
	assert.Equal(t, 5, books[0].PurchaseCount)
	assert.Equal(t, 2, books[1].PurchaseCount)
	assert.Equal(t, 0, books[2].PurchaseCount)
}

func TestListBooksByRating(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	seedUser(t, gdb, "alice")
	seedUser(t, gdb, "bob")
	good := seedBook(t, gdb, "Fiction", "Dune", 9.99, 3)
	unrated := seedBook(t, gdb, "Fiction", "Emma", 7.50, 3)
	fair := seedBook(t, gdb, "Fiction", "It", 12.00, 3)

	ratings := NewRatingService(gdb)
	require.NoError(t, ratings.RateBook("alice", good.ID, 5))
	require.NoError(t, ratings.RateBook("bob", good.ID, 4))
	require.NoError(t, ratings.RateBook("alice", fair.ID, 3))

	svc := NewCatalogService(gdb)
	books, err := svc.ListBooks("Fiction", FilterRating)
	require.NoError(t, err)
	// Unrated books count as average 0 and sort last by design.
	assert.Equal(t, []uint{good.ID, fair.ID, unrated.ID}, bookIDs(books))
	assert.InDelta(t, 4.5, books[0].AvgRating, 1e-9)
}

func TestListBooksByReviewCount(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	seedUser(t, gdb, "alice")
	quiet := seedBook(t, gdb, "Fiction", "Dune", 9.99, 3)
	busy := seedBook(t, gdb, "Fiction", "Emma", 7.50, 3)

	reviews := NewReviewService(gdb)
	root, err := reviews.AddReview(busy.ID, "alice", "root", nil)
	require.NoError(t, err)
	// Replies count toward the total.
	_, err = reviews.AddReview(busy.ID, "alice", "reply", &root.ID)
	require.NoError(t, err)

	svc := NewCatalogService(gdb)
	books, err := svc.ListBooks("Fiction", FilterReviews)
	require.NoError(t, err)
	assert.Equal(t, []uint{busy.ID, quiet.ID}, bookIDs(books))
	assert.Equal(t, 2, books[0].ReviewCount)
}

func TestListBooksUnknownCategory(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewCatalogService(gdb)
	_, err := svc.ListBooks("Nope", FilterDefault)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListBooksScopedToCategory(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	seedCategory(t, gdb, "Science")
	fiction := seedBook(t, gdb, "Fiction", "Dune", 9.99, 3)
	seedBook(t, gdb, "Science", "Cosmos", 14.00, 3)

	svc := NewCatalogService(gdb)
	books, err := svc.ListBooks("Fiction", FilterDefault)
	require.NoError(t, err)
	assert.Equal(t, []uint{fiction.ID}, bookIDs(books))
}

func TestCreateCategoryConflict(t *testing.T) {
	gdb := newTestDB(t)
	svc := NewCatalogService(gdb)

	_, err := svc.CreateCategory("Fiction")
	require.NoError(t, err)
	_, err = svc.CreateCategory("Fiction")
	assert.ErrorIs(t, err, ErrConflict)
}

func TestBookCRUD(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	svc := NewCatalogService(gdb)

	book := models.Book{Name: "Dune", Price: 9.99, CategoryName: "Fiction", Stock: 3}
	require.NoError(t, svc.AddBook(&book))
	require.NotZero(t, book.ID)

	assert.ErrorIs(t, svc.AddBook(&models.Book{Name: "X", Price: -1, CategoryName: "Fiction"}), ErrInvalidBook)
	assert.ErrorIs(t, svc.AddBook(&models.Book{Name: "X", Price: 1, CategoryName: "Nope"}), ErrNotFound)

	cover := "covers/dune.jpg"
	require.NoError(t, svc.UpdateBook(book.ID, "Dune (2nd ed)", 11.99, "classic", &cover, 7))
	updated, err := svc.Book(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune (2nd ed)", updated.Name)
	assert.InDelta(t, 11.99, updated.Price, 1e-9)
	assert.Equal(t, 7, updated.Stock)
	require.NotNil(t, updated.CoverPath)
	assert.Equal(t, cover, *updated.CoverPath)

	assert.ErrorIs(t, svc.UpdateBook(4242, "x", 1, "", nil, 1), ErrNotFound)

	require.NoError(t, svc.DeleteBook(book.ID))
	_, err = svc.Book(book.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, svc.DeleteBook(book.ID), ErrNotFound)
}

func TestDeleteBookLeavesReviewsInPlace(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	seedUser(t, gdb, "alice")
	book := seedBook(t, gdb, "Fiction", "Dune", 9.99, 3)
	seedReview(t, gdb, book.ID, "alice", "kept for the record", nil)

	svc := NewCatalogService(gdb)
	require.NoError(t, svc.DeleteBook(book.ID))

	// Best-effort delete: the review rows survive as unreachable history.
	var count int64
	require.NoError(t, gdb.Model(&models.Review{}).
		Where("book_id = ?", book.ID).
		Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestCategoryStats(t *testing.T) {
	gdb := newTestDB(t)
	seedCategory(t, gdb, "Fiction")
	seedCategory(t, gdb, "Science")
	seedUser(t, gdb, "alice")
	dune := seedBook(t, gdb, "Fiction", "Dune", 9.99, 5)
	emma := seedBook(t, gdb, "Fiction", "Emma", 7.50, 5)
	cosmos := seedBook(t, gdb, "Science", "Cosmos", 14.00, 5)

	purchases := NewPurchaseService(gdb)
	_, err := purchases.Purchase("alice", dune.ID)
	require.NoError(t, err)
	_, err = purchases.Purchase("alice", cosmos.ID)
	require.NoError(t, err)

	reviews := NewReviewService(gdb)
	_, err = reviews.AddReview(emma.ID, "alice", "nice", nil)
	require.NoError(t, err)

	ratings := NewRatingService(gdb)
	require.NoError(t, ratings.RateBook("alice", dune.ID, 4))
	require.NoError(t, ratings.RateBook("alice", emma.ID, 2))

	svc := NewCatalogService(gdb)
	stats, err := svc.Stats("Fiction")
	require.NoError(t, err)
	assert.EqualValues(t, 1, stats.Purchases)
	assert.EqualValues(t, 1, stats.Reviews)
	assert.InDelta(t, 3.0, stats.AverageRating, 1e-9)

	_, err = svc.Stats("Nope")
	assert.ErrorIs(t, err, ErrNotFound)
}
