// internal/domain/models/teacher.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Teacher is a staff account that can sign in and manage announcements.
type Teacher struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"-"`
	Username     string             `bson:"username" json:"username"`
	UsernameCI   string             `bson:"username_ci" json:"-"` // folded for case-insensitive lookup
	DisplayName  string             `bson:"display_name" json:"display_name"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // teacher | admin

	CreatedAt time.Time `bson:"created_at" json:"-"`
	UpdatedAt time.Time `bson:"updated_at" json:"-"`
}

const (
	RoleTeacher = "teacher"
	RoleAdmin   = "admin"
)
