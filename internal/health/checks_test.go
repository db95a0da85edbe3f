package health

import (
	"context"
	"testing"

	"github.com/storedesk/backoffice-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHealthHandler(t *testing.T) {
	cfg := &config.Config{
		Database:     config.Database{Host: "localhost", Port: "5432", User: "u", Password: "p", Name: "d", SSLMode: "disable"},
		RedisConnect: config.RedisConnect{Host: "localhost", Port: "6379"},
	}

	h, err := NewHealthHandler(cfg, nil)

	require.NoError(t, err)
	assert.NotNil(t, h)
}

func TestSchemaCheckWithoutPool(t *testing.T) {
	err := SchemaCheck(nil)(context.Background())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}
