package user

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// AccountID is the user-facing account identifier, generated with a
	// collision-checked retry loop against the unique index.
	AccountID string `gorm:"column:account_id;uniqueIndex;not null" json:"account_id"`

	Email     string `gorm:"uniqueIndex;not null;column:email" json:"email"`
	Password  string `gorm:"not null;column:password" json:"-"`
	FirstName string `gorm:"not null;column:first_name" json:"first_name"`
	LastName  string `gorm:"not null;column:last_name" json:"last_name"`

	Affiliation string `gorm:"column:affiliation" json:"affiliation"`

	IsAdmin bool `gorm:"column:is_admin;not null;default:false" json:"is_admin"`

	CreatedAt time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (User) TableName() string { return "user" }

// FullName is used as the recipient display name on notifications and as the
// reviewer identity stamped on evaluations.
func (u *User) FullName() string {
	return u.FirstName + " " + u.LastName
}
