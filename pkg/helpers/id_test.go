package helpers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/minbase/account-service/pkg/helpers"
)

func TestNewUserID(t *testing.T) {
	id := helpers.NewUserID()
	assert.Len(t, id, 32)
	assert.Regexp(t, "^[0-9a-f]{32}$", id)

	assert.NotEqual(t, id, helpers.NewUserID())
}
