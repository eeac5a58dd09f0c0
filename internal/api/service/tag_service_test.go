package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTagCreateRequiresName(t *testing.T) {
	svc := NewTagService(nil)
	_, err := svc.Create(context.Background(), "")
	assert.ErrorIs(t, err, ErrTagNameRequired)
}
