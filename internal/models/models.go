package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin    = "admin"
	RoleCustomer = "customer"

	DefaultProductImage = "images/default.jpg"
)

// User passwords are stored in whatever form the configured hash.Scheme produces.
type User struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"                 json:"id"`
	Name      string    `gorm:"not null"                             json:"name"`
	Email     string    `gorm:"uniqueIndex:idx_users_email;not null" json:"email"`
	Password  string    `gorm:"not null"                             json:"-"`
	Role      string    `gorm:"not null;default:customer;check:chk_users_role,role IN ('admin','customer')" json:"role"`
	CreatedAt time.Time `json:"-"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if u.Role == "" {
		u.Role = RoleCustomer
	}
	return nil
}

func (u *User) Public() PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role}
}

// PublicUser is the projection handed to clients. It has no password field.
type PublicUser struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Role  string    `json:"role"`
}

type Product struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"              json:"id"`
	Name      string    `gorm:"not null"                          json:"name"`
	Price     float64   `gorm:"not null"                          json:"price"`
	Amount    float64   `gorm:"not null;default:0"                json:"amount"`
	Img       string    `gorm:"not null"                          json:"img"`
	CreatedAt time.Time `json:"-"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
