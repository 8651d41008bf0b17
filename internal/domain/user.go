package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is an account that can log in and manage tasks.
// Password holds the stored credential (a bcrypt hash, or a plain value for
// legacy seed data) and must never leave the service layer.
type User struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Email     string             `bson:"email"`
	Username  string             `bson:"username"`
	Password  string             `bson:"password"`
	CreatedAt time.Time          `bson:"created_at"`
}

// Sanitized returns a copy of u without the stored credential.
func (u *User) Sanitized() *User {
	if u == nil {
		return nil
	}
	clean := *u
	clean.Password = ""
	return &clean
}
