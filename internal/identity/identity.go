package identity

import (
	"errors"
	"log"

	"bookstore/internal/models"
	"bookstore/internal/services"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// The identity provider lives outside the catalog core: the core only ever
// consumes validated login strings and the role flag.

var (
	ErrLoginTaken     = errors.New("login already registered")
	ErrBadCredentials = errors.New("wrong login or password")
	ErrUnknownRole    = errors.New("unknown role")
)

type Service struct {
	db *gorm.DB
}

func NewService(gdb *gorm.DB) *Service {
	return &Service{db: gdb}
}

// Register creates a client account. The avatar path is stored as an
// opaque string.
func (s *Service) Register(login, firstName, lastName, email, birthDate, password, avatarPath string) (*models.User, error) {
	return s.create(login, firstName, lastName, email, birthDate, password, avatarPath, models.RoleClient)
}

func (s *Service) create(login, firstName, lastName, email, birthDate, password, avatarPath, role string) (*models.User, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("login = ?", login).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrLoginTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	user := models.User{
		Login:      login,
		FirstName:  firstName,
		LastName:   lastName,
		Email:      email,
		BirthDate:  birthDate,
		Password:   string(hash),
		AvatarPath: avatarPath,
		Role:       role,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Authenticate checks the password against the stored hash. An unknown
// login and a wrong password are indistinguishable to the caller.
func (s *Service) Authenticate(login, password string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "login = ?", login).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrBadCredentials
	}
	return &user, nil
}

func (s *Service) Find(login string) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "login = ?", login).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) List() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("login ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (s *Service) UpdateRole(login, role string) error {
	if role != models.RoleClient && role != models.RoleAdmin {
		return ErrUnknownRole
	}
	res := s.db.Model(&models.User{}).Where("login = ?", login).Update("role", role)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

func (s *Service) Remove(login string) error {
	res := s.db.Delete(&models.User{}, "login = ?", login)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return services.ErrNotFound
	}
	return nil
}

// EnsureAdmin seeds the default admin account on first start.
func (s *Service) EnsureAdmin(login, password string) error {
	if _, err := s.Find(login); err == nil {
		return nil
	} else if !errors.Is(err, services.ErrNotFound) {
		return err
	}

	log.Printf("Creating admin user %q...", login)
	_, err := s.create(login, "Admin", "User", login+"@example.com", "1980-01-01", password, "", models.RoleAdmin)
	return err
}
