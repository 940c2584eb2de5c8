package domain

import (
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Common validation errors
var (
	ErrEmptyUserID         = errors.New("user ID cannot be empty")
	ErrEmptyUsername       = errors.New("username cannot be empty")
	ErrUsernameTooLong     = errors.New("username must be at most 150 characters long")
	ErrInvalidUsername     = errors.New("username may contain only letters, digits and @/./+/-/_")
	ErrInvalidEmail        = errors.New("invalid email format")
	ErrPasswordTooShort    = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong     = errors.New("password must be at most 72 characters long")
	ErrPasswordNumeric     = errors.New("password cannot be entirely numeric")
	ErrEmptyPassword       = errors.New("password cannot be empty")
	ErrEmptyHashedPassword = errors.New("hashed password cannot be empty")
)

var (
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
	emailPattern    = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
)

// User represents a registered account. The email is optional; an account
// is identified by its unique username.
type User struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext password, used temporarily during registration/updates
	HashedPassword string    `json:"-"` // Never expose password hash in JSON
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// NewUser creates a new User with the given username, email and password.
// It generates a new UUID for the user ID and sets the creation/update
// timestamps. Returns an error if validation fails.
//
// NOTE: This function only sets up the user structure with the plaintext
// password. The caller is responsible for hashing the password before
// storing the user.
func NewUser(username, email, password string) (*User, error) {
	user := &User{
		ID:        uuid.New(),
		Username:  username,
		Email:     email,
		Password:  password, // Plaintext password - must be hashed before storage
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
// Returns an error if any field fails validation.
func (u *User) Validate() error {
	if u.ID == uuid.Nil {
		return ErrEmptyUserID
	}

	if err := ValidateUsername(u.Username); err != nil {
		return err
	}

	// Email is optional, but must be well formed when present.
	if u.Email != "" && !emailPattern.MatchString(u.Email) {
		return ErrInvalidEmail
	}

	// During user creation/update we need to validate the provided password.
	if u.Password != "" {
		return ValidatePassword(u.Password)
	}

	// When no plaintext password is provided, the user must already have a
	// hashed password (the case for existing users loaded from the database).
	if u.HashedPassword == "" {
		return ErrEmptyPassword
	}

	return nil
}

// ValidateUsername checks the username against the account naming rules:
// non-empty, at most 150 characters, letters/digits/@/./+/-/_ only.
func ValidateUsername(username string) error {
	if username == "" {
		return ErrEmptyUsername
	}
	if len(username) > 150 {
		return ErrUsernameTooLong
	}
	if !usernamePattern.MatchString(username) {
		return ErrInvalidUsername
	}
	return nil
}

// ValidatePassword checks a plaintext password against the password policy:
// between 8 and 72 characters (bcrypt's practical limit) and not entirely
// numeric.
func ValidatePassword(password string) error {
	if len(password) < 8 {
		return ErrPasswordTooShort
	}
	if len(password) > 72 {
		return ErrPasswordTooLong
	}
	if isEntirelyNumeric(password) {
		return ErrPasswordNumeric
	}
	return nil
}

func isEntirelyNumeric(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
