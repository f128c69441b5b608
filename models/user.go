package models

import "time"

// User is an officer or administrator account. The password field holds a
// bcrypt hash and is never serialized in responses.
type User struct {
	ID           int        `json:"id" bson:"_id"`
	Username     string     `json:"username" bson:"username"`
	Email        string     `json:"email" bson:"email"`
	Password     string     `json:"-" bson:"password"`
	FirstName    string     `json:"firstName" bson:"firstName"`
	LastName     string     `json:"lastName" bson:"lastName"`
	Role         string     `json:"role" bson:"role"` // "admin" or "user"
	BadgeNumber  string     `json:"badgeNumber" bson:"badgeNumber"`
	Department   string     `json:"department" bson:"department"`
	Position     string     `json:"position" bson:"position"`
	Phone        string     `json:"phone" bson:"phone"`
	ProfileImage *string    `json:"profileImage" bson:"profileImage"`
	IsActive     bool       `json:"isActive" bson:"isActive"`
	CreatedAt    time.Time  `json:"createdAt" bson:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updatedAt"`
	LastLoginAt  *time.Time `json:"lastLoginAt" bson:"lastLoginAt"`
}
