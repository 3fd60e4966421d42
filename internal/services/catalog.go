package services

import (
	"sort"

	"bookstore/internal/models"

	"gorm.io/gorm"
)

// FilterMode selects the ordering of a category listing.
type FilterMode string

const (
	FilterDefault    FilterMode = "default"
	FilterPriceAsc   FilterMode = "price_asc"
	FilterPriceDesc  FilterMode = "price_desc"
	FilterPopularity FilterMode = "popularity"
	FilterRating     FilterMode = "rating"
	FilterReviews    FilterMode = "reviews"
)

// ParseFilterMode maps a query-string value to a FilterMode. Unknown
// values fall back to the default insertion order.
func ParseFilterMode(s string) FilterMode {
	switch FilterMode(s) {
	case FilterPriceAsc, FilterPriceDesc, FilterPopularity, FilterRating, FilterReviews:
		return FilterMode(s)
	default:
		return FilterDefault
	}
}

type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(gdb *gorm.DB) *CatalogService {
	return &CatalogService{db: gdb}
}

// CreateCategory adds a new shelf category. Categories are immutable, so a
// duplicate name is a conflict rather than an upsert.
func (s *CatalogService) CreateCategory(name string) (*models.Category, error) {
	var count int64
	if err := s.db.Model(&models.Category{}).Where("name = ?", name).Count(&count).Error; err != nil {
		return nil, storageErr("check category", err)
	}
	if count > 0 {
		return nil, ErrConflict
	}
	cat := models.Category{Name: name}
	if err := s.db.Create(&cat).Error; err != nil {
		return nil, storageErr("create category", err)
	}
	return &cat, nil
}

func (s *CatalogService) Categories() ([]models.Category, error) {
	var cats []models.Category
	if err := s.db.Order("name ASC").Find(&cats).Error; err != nil {
		return nil, storageErr("list categories", err)
	}
	return cats, nil
}

// AddBook creates a book under an existing category.
func (s *CatalogService) AddBook(book *models.Book) error {
	if book.Price < 0 || book.Stock < 0 {
		return ErrInvalidBook
	}
	var cat models.Category
	if err := s.db.First(&cat, "name = ?", book.CategoryName).Error; err != nil {
		return storageErr("load category", err)
	}
	if err := s.db.Create(book).Error; err != nil {
		return storageErr("create book", err)
	}
	return nil
}

func (s *CatalogService) Book(id uint) (*models.Book, error) {
	var book models.Book
	if err := s.db.First(&book, id).Error; err != nil {
		return nil, storageErr("load book", err)
	}
	return &book, nil
}

// UpdateBook rewrites the admin-editable attributes. Stock set here is an
// inventory restock; purchase decrements go through the purchase service
// only.
func (s *CatalogService) UpdateBook(id uint, name string, price float64, description string, coverPath *string, stock int) error {
	if price < 0 || stock < 0 {
		return ErrInvalidBook
	}
	res := s.db.Model(&models.Book{}).Where("id = ?", id).Updates(map[string]interface{}{
		"name":        name,
		"price":       price,
		"description": description,
		"cover_path":  coverPath,
		"stock":       stock,
	})
	if res.Error != nil {
		return storageErr("update book", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteBook is best-effort: historical reviews and purchases referencing
// the book are left in place.
func (s *CatalogService) DeleteBook(id uint) error {
	res := s.db.Delete(&models.Book{}, id)
	if res.Error != nil {
		return storageErr("delete book", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// ListBooks returns one category's books in the order the filter mode
// demands. Computed modes aggregate in one grouped query and sort in
// memory; the stable sort keeps ties in ascending id order. The result
// always reflects current persisted state and is never cached.
func (s *CatalogService) ListBooks(category string, mode FilterMode) ([]models.Book, error) {
	var cat models.Category
	if err := s.db.First(&cat, "name = ?", category).Error; err != nil {
		return nil, storageErr("load category", err)
	}

	var books []models.Book
	if err := s.db.Where("category_name = ?", category).Order("id ASC").Find(&books).Error; err != nil {
		return nil, storageErr("list books", err)
	}

	switch mode {
	case FilterPriceAsc:
		sort.SliceStable(books, func(i, j int) bool { return books[i].Price < books[j].Price })
	case FilterPriceDesc:
		sort.SliceStable(books, func(i, j int) bool { return books[i].Price > books[j].Price })
	case FilterPopularity:
		if err := s.fillPurchaseCounts(books); err != nil {
			return nil, err
		}
		sort.SliceStable(books, func(i, j int) bool { return books[i].PurchaseCount > books[j].PurchaseCount })
	case FilterRating:
		// Books with no ratings keep average 0 and sort last on purpose.
		if err := s.fillAverageRatings(books); err != nil {
			return nil, err
		}
		sort.SliceStable(books, func(i, j int) bool { return books[i].AvgRating > books[j].AvgRating })
	case FilterReviews:
		if err := s.fillReviewCounts(books); err != nil {
			return nil, err
		}
		sort.SliceStable(books, func(i, j int) bool { return books[i].ReviewCount > books[j].ReviewCount })
	default:
		// insertion/id order as loaded
	}
	return books, nil
}

func bookIDs(books []models.Book) []uint {
	ids := make([]uint, len(books))
	for i, b := range books {
		ids[i] = b.ID
	}
	return ids
}

// fillPurchaseCounts 批量填充书籍的购买数量
func (s *CatalogService) fillPurchaseCounts(books []models.Book) error {
	if len(books) == 0 {
		return nil
	}
	type countResult struct {
		BookID uint
		Count  int
	}
	var results []countResult
	if err := s.db.Model(&models.Purchase{}).
		Select("book_id, COUNT(*) as count").
		Where("book_id IN ?", bookIDs(books)).
		Group("book_id").
		Scan(&results).Error; err != nil {
		return storageErr("count purchases", err)
	}
	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.BookID] = r.Count
	}
	for i := range books {
		books[i].PurchaseCount = countMap[books[i].ID]
	}
	return nil
}

// fillReviewCounts 批量填充书籍的评论数量（含回复）
func (s *CatalogService) fillReviewCounts(books []models.Book) error {
	if len(books) == 0 {
		return nil
	}
	type countResult struct {
		BookID uint
		Count  int
	}
	var results []countResult
	if err := s.db.Model(&models.Review{}).
		Select("book_id, COUNT(*) as count").
		Where("book_id IN ?", bookIDs(books)).
		Group("book_id").
		Scan(&results).Error; err != nil {
		return storageErr("count reviews", err)
	}
	countMap := make(map[uint]int, len(results))
	for _, r := range results {
		countMap[r.BookID] = r.Count
	}
	for i := range books {
		books[i].ReviewCount = countMap[books[i].ID]
	}
	return nil
}

func (s *CatalogService) fillAverageRatings(books []models.Book) error {
	if len(books) == 0 {
		return nil
	}
	type avgResult struct {
		BookID uint
		Avg    float64
	}
	var results []avgResult
	if err := s.db.Model(&models.BookRating{}).
		Select("book_id, AVG(rating) as avg").
		Where("book_id IN ?", bookIDs(books)).
		Group("book_id").
		Scan(&results).Error; err != nil {
		return storageErr("average ratings", err)
	}
	avgMap := make(map[uint]float64, len(results))
	for _, r := range results {
		avgMap[r.BookID] = r.Avg
	}
	for i := range books {
		books[i].AvgRating = avgMap[books[i].ID]
	}
	return nil
}

// CategoryStats aggregates purchase, review and rating activity across a
// whole category.
type CategoryStats struct {
	Purchases     int64   `json:"purchases"`
	Reviews       int64   `json:"reviews"`
	AverageRating float64 `json:"average_rating"`
}

func (s *CatalogService) Stats(category string) (*CategoryStats, error) {
	var cat models.Category
	if err := s.db.First(&cat, "name = ?", category).Error; err != nil {
		return nil, storageErr("load category", err)
	}

	stats := &CategoryStats{}
	if err := s.db.Model(&models.Purchase{}).
		Joins("JOIN books ON books.id = purchases.book_id").
		Where("books.category_name = ?", category).
		Count(&stats.Purchases).Error; err != nil {
		return nil, storageErr("count category purchases", err)
	}
	if err := s.db.Model(&models.Review{}).
		Joins("JOIN books ON books.id = reviews.book_id").
		Where("books.category_name = ?", category).
		Count(&stats.Reviews).Error; err != nil {
		return nil, storageErr("count category reviews", err)
	}
	if err := s.db.Model(&models.BookRating{}).
		Select("COALESCE(AVG(rating), 0)").
		Joins("JOIN books ON books.id = book_reactions.book_id").
		Where("books.category_name = ?", category).
		Scan(&stats.AverageRating).Error; err != nil {
		return nil, storageErr("average category rating", err)
	}
	return stats, nil
}
