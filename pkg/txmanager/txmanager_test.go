package txmanager

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsSerializationFailure(t *testing.T) {
	conflict := &pq.Error{Code: "40001"}

	assert.True(t, IsSerializationFailure(conflict))
	assert.True(t, IsSerializationFailure(fmt.Errorf("count active: %w", conflict)))
	assert.False(t, IsSerializationFailure(&pq.Error{Code: "23505"}))
	assert.False(t, IsSerializationFailure(errors.New("boom")))
	assert.False(t, IsSerializationFailure(nil))
}

func TestGetExecutor_OutsideTransaction(t *testing.T) {
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Nil(t, GetExecutor(ctx, nil))
}
