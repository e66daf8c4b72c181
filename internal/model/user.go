package model

import "time"

// User represents an account that can authenticate and own posts.
type User struct {
	ID           uint      `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;size:255;not null"`
	Username     string    `json:"username" gorm:"uniqueIndex;size:100;not null"`
	FullName     string    `json:"full_name,omitempty" gorm:"size:255"`
	PasswordHash string    `json:"-" gorm:"size:255;not null"` // Never expose in JSON
	IsActive     bool      `json:"is_active" gorm:"default:true;not null"`
	IsSuperuser  bool      `json:"is_superuser" gorm:"default:false;not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// UserPatch carries a partial user update. Only non-nil fields are applied.
type UserPatch struct {
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Username *string `json:"username,omitempty" validate:"omitempty,min=3,max=100"`
	FullName *string `json:"full_name,omitempty" validate:"omitempty,max=255"`
	IsActive *bool   `json:"is_active,omitempty"`
}

// Apply merges the set fields onto the user. The password hash and role
// flags are deliberately outside the patchable set.
func (p *UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.FullName != nil {
		u.FullName = *p.FullName
	}
	if p.IsActive != nil {
		u.IsActive = *p.IsActive
	}
}
