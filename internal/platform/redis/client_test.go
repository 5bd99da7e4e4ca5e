package redis

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"crease/internal/sentinel"
)

func TestNewWithoutAddrReturnsNil(t *testing.T) {
	client, err := New(context.Background(), Config{})
	require.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewUnreachableRedisIsUnavailable(t *testing.T) {
	_, err := New(context.Background(), Config{Addr: "127.0.0.1:1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, sentinel.ErrUnavailable)
}
