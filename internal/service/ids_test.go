package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestValidateMemberID_Valid(t *testing.T) {
	assert.NoError(t, ValidateMemberID(uuid.New().String()))
}

func TestValidateMemberID_Invalid(t *testing.T) {
	for _, id := range []string{"", "not-a-uuid", "1234", "123e4567-e89b-12d3-a456"} {
		assert.ErrorIs(t, ValidateMemberID(id), ErrInvalidMemberID, "id %q", id)
	}
}
