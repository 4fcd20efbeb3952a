package services

import (
	"fmt"
	"log"
	"time"

	"kiyim/internal/models"
	"kiyim/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"golang.org/x/crypto/bcrypt"
)

// AuthService handles registration, login and profile management.
type AuthService struct {
	userRepo   repositories.UserRepository
	jwtSecret  []byte
	tokenDurat time.Duration // Duration for which JWT is valid
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string) *AuthService {
	return &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
	}
}

// RegisterUser registers a new user with the role already set by the
// caller (client or seller registration), hashes the password and saves
// the user. The role never changes after this point.
func (s *AuthService) RegisterUser(user *models.User) error {
	if user.Role != models.RoleClient && user.Role != models.RoleSeller {
		return fmt.Errorf("%w: unknown role %q", ErrValidation, user.Role)
	}
	if existing, err := s.userRepo.GetByUsername(user.Username); err == nil && existing != nil {
		return fmt.Errorf("username '%s' already taken", user.Username)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	user.Password = string(hashedPassword)

	if err := s.userRepo.Create(user); err != nil {
		return fmt.Errorf("failed to register user: %w", err)
	}
	return nil
}

// LoginUser authenticates a user and returns a JWT token plus the user
// record (so the caller can route by role).
func (s *AuthService) LoginUser(username, password string) (string, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		// Do not reveal whether the username exists.
		return "", nil, fmt.Errorf("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, fmt.Errorf("invalid credentials")
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      time.Now().Add(s.tokenDurat).Unix(),
		"iat":      time.Now().Unix(),
	})

	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return tokenString, user, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		log.Printf("Token validation error: %v", err)
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// GetUser loads a user by id.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

// ProfileUpdate carries the client profile fields that may be edited
// after registration. Nil/empty fields are skipped.
type ProfileUpdate struct {
	FirstName string
	LastName  string
	Phone     string
	Gender    string
	Height    *float64
	Weight    *float64
	Size      string
	Avatar    string
}

// UpdateProfile applies a profile edit to the user. The role is never
// touched here.
func (s *AuthService) UpdateProfile(userID string, update ProfileUpdate) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if update.Phone != "" {
		user.Phone = update.Phone
	}
	if update.Gender != "" {
		if update.Gender != "male" && update.Gender != "female" {
			return nil, fmt.Errorf("%w: unknown gender %q", ErrValidation, update.Gender)
		}
		user.Gender = update.Gender
	}
	if update.Height != nil {
		user.Height = update.Height
	}
	if update.Weight != nil {
		user.Weight = update.Weight
	}
	if update.Size != "" {
		if !validSize(update.Size) {
			return nil, fmt.Errorf("%w: unknown size %q", ErrValidation, update.Size)
		}
		user.Size = update.Size
	}
	if update.Avatar != "" {
		user.Avatar = update.Avatar
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return user, nil
}

func validSize(size string) bool {
	for _, s := range models.ClothingSizes {
		if s == size {
			return true
		}
	}
	return false
}
