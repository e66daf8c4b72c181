package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"blogapi/internal/model"
)

func TestCanModify(t *testing.T) {
	ownerID := uint(1)

	tests := []struct {
		name      string
		isOwner   bool
		superuser bool
		want      bool
	}{
		{"owner, not superuser", true, false, true},
		{"owner, superuser", true, true, true},
		{"not owner, superuser", false, true, true},
		{"not owner, not superuser", false, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actor := &model.User{ID: 2, IsSuperuser: tt.superuser}
			if tt.isOwner {
				actor.ID = ownerID
			}
			assert.Equal(t, tt.want, CanModify(actor, &ownerID))
		})
	}
}

func TestCanModify_NilOwner(t *testing.T) {
	assert.False(t, CanModify(&model.User{ID: 1}, nil))
	assert.True(t, CanModify(&model.User{ID: 1, IsSuperuser: true}, nil))
}

func TestCanListUsers(t *testing.T) {
	assert.False(t, CanListUsers(&model.User{ID: 1}))
	assert.True(t, CanListUsers(&model.User{ID: 1, IsSuperuser: true}))
}

func TestCanViewUser(t *testing.T) {
	assert.True(t, CanViewUser(&model.User{ID: 7}, 7))
	assert.False(t, CanViewUser(&model.User{ID: 7}, 8))
	assert.True(t, CanViewUser(&model.User{ID: 7, IsSuperuser: true}, 8))
}
