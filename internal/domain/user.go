package domain

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// Contact methods. Empty means the user has not picked one yet.
const (
	ContactEmail = "EMAIL"
	ContactPhone = "PHONE"
	ContactNone  = ""
)

type User struct {
	ID           string `gorm:"primaryKey;size:32"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`
	Username     string `gorm:"uniqueIndex;size:80;not null"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Role         string `gorm:"size:10;not null;default:USER"`

	PublicContact   bool   `gorm:"not null;default:false"`
	PreferredMethod string `gorm:"size:10"`
	ContactEmail    string `gorm:"size:255"`
	ContactPhone    string `gorm:"size:20"` // E.164

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (User) TableName() string { return "users" }

// ResolveContact returns the contact value a viewer may see. forceReveal is
// set by contexts that override the public flag (an accepted swap); otherwise
// only users who opted into public contact expose anything. The value follows
// the preferred method; a user without one reveals nothing either way.
func ResolveContact(u *User, forceReveal bool) string {
	if !forceReveal && !u.PublicContact {
		return ""
	}
	switch u.PreferredMethod {
	case ContactEmail:
		return u.ContactEmail
	case ContactPhone:
		return u.ContactPhone
	default:
		return ""
	}
}

type UserRepository interface {
	Create(u *User) error
	FindByID(id string) (*User, error)
	FindByEmail(email string) (*User, error)
	FindByUsername(username string) (*User, error)
	List(q string, offset, limit int, withBanned bool) ([]User, int64, error)
	Update(u *User) error
	SoftDelete(id string) error
}
