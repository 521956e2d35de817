package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	n := &Notification{UserID: "u-1", Title: " Pedido recebido ", Message: "ok", Type: TypeOrderUpdate}
	assert.NoError(t, n.Validate())
	assert.Equal(t, "Pedido recebido", n.Title)

	assert.ErrorIs(t, (&Notification{Title: "t", Message: "m", Type: TypeInfo}).Validate(), ErrEmptyUserID)
	assert.ErrorIs(t, (&Notification{UserID: "u", Message: "m", Type: TypeInfo}).Validate(), ErrEmptyTitle)
	assert.ErrorIs(t, (&Notification{UserID: "u", Title: "t", Type: TypeInfo}).Validate(), ErrEmptyMessage)
	assert.ErrorIs(t, (&Notification{UserID: "u", Title: "t", Message: "m", Type: "spam"}).Validate(), ErrInvalidType)
}

func TestMarkRead(t *testing.T) {
	n := &Notification{}
	assert.True(t, n.MarkRead())
	assert.False(t, n.MarkRead())
}
