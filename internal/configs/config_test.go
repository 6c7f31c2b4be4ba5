package configs

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_ExpandsEnvAndDefaults(t *testing.T) {
	t.Setenv("MONGO_URI", "mongodb://127.0.0.1:27017")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Parse(strings.NewReader(`
server:
  debug_routes: true
database:
  uri: "${MONGO_URI}"
redis:
  redis_addr: "${REDIS_ADDR}"
jwt:
  token_ttl: 72h
`))
	require.NoError(t, err)

	assert.True(t, cfg.Server.DebugRoutes)
	assert.Equal(t, "*", cfg.Server.AllowOrigins)
	assert.Equal(t, DriverMongo, cfg.DB.Driver)
	assert.Equal(t, "mongodb://127.0.0.1:27017", cfg.DB.URI)
	assert.Equal(t, "flo_db", cfg.DB.Name)
	assert.Equal(t, 5*time.Second, cfg.DB.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 72*time.Hour, cfg.JWT.TokenTTL)
	assert.Equal(t, 10, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
}

func TestParse_RejectsUnknownDriver(t *testing.T) {
	_, err := Parse(strings.NewReader("database:\n  driver: postgres\n"))
	assert.Error(t, err)
}

func TestLoad_ReadsEnvironmentFile(t *testing.T) {
	t.Setenv("CONFIG_DIR", ".")
	t.Setenv("MONGO_URI", "mongodb://db:27017")
	t.Setenv("MONGO_DB", "shop")

	dev, err := Load("development")
	require.NoError(t, err)
	assert.True(t, dev.Server.DebugRoutes)
	assert.False(t, dev.DB.Transactions)
	assert.Equal(t, time.Duration(0), dev.JWT.TokenTTL)

	prod, err := Load("production")
	require.NoError(t, err)
	assert.False(t, prod.Server.DebugRoutes)
	assert.True(t, prod.DB.Transactions)
	assert.Equal(t, "shop", prod.DB.Name)
}
