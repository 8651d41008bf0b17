package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserSanitized(t *testing.T) {
	t.Parallel()

	user := &User{
		ID:        primitive.NewObjectID(),
		Email:     "admin@example.com",
		Username:  "admin",
		Password:  "secret",
		CreatedAt: time.Now().UTC(),
	}

	clean := user.Sanitized()

	require.NotNil(t, clean)
	assert.Empty(t, clean.Password)
	assert.Equal(t, user.ID, clean.ID)
	assert.Equal(t, user.Email, clean.Email)
	assert.Equal(t, user.Username, clean.Username)
	assert.Equal(t, "secret", user.Password, "original must not be modified")

	var nilUser *User
	assert.Nil(t, nilUser.Sanitized())
}
