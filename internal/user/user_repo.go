package user

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

type UserRepository interface {
	GetUserByID(id uint) (*User, error)
	GetUserByExternalUID(uid string) (*User, error)
	CreateUser(u *User) error
	UpdateUser(u *User) error
	// EnsureUser maps a verified identity onto a user row:
	// create-if-absent, update when the provider's claims changed.
	EnsureUser(externalUID, email, displayName string) (*User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) GetUserByID(id uint) (*User, error) {
	var u User
	if err := r.db.First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) GetUserByExternalUID(uid string) (*User, error) {
	var u User
	if err := r.db.Where("external_uid = ?", uid).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) CreateUser(u *User) error {
	return r.db.Create(u).Error
}

func (r *userRepository) UpdateUser(u *User) error {
	return r.db.Save(u).Error
}

func (r *userRepository) EnsureUser(externalUID, email, displayName string) (*User, error) {
	return ensureUser(r, externalUID, email, displayName)
}

// userStore is the slice of UserRepository that ensureUser needs.
type userStore interface {
	GetUserByExternalUID(uid string) (*User, error)
	CreateUser(u *User) error
	UpdateUser(u *User) error
}

// ensureUser creates the row on first login and afterwards writes only
// when the provider's claims actually changed; an unchanged login is a
// pure read. Empty claims never overwrite stored values.
func ensureUser(store userStore, externalUID, email, displayName string) (*User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	existing, err := store.GetUserByExternalUID(externalUID)
	if err == nil {
		changed := false
		if email != "" && (existing.Email == nil || *existing.Email != email) {
			existing.Email = &email
			changed = true
		}
		if displayName != "" && existing.DisplayName != displayName {
			existing.DisplayName = displayName
			changed = true
		}
		if changed {
			if err := store.UpdateUser(existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	newUser := &User{
		ExternalUID: externalUID,
		DisplayName: displayName,
	}
	if email != "" {
		newUser.Email = &email
	}
	if err := store.CreateUser(newUser); err != nil {
		return nil, err
	}
	return newUser, nil
}
