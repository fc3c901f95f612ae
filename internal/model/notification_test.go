package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotificationStatusValid(t *testing.T) {
	assert.True(t, NotificationQueued.Valid())
	assert.True(t, NotificationSent.Valid())
	assert.True(t, NotificationFailed.Valid())
	assert.False(t, NotificationStatus("delivered").Valid())
	assert.False(t, NotificationStatus("").Valid())
}
