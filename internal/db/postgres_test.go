package db

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hitpulse/internal/config/configs"
)

func mustURL(t *testing.T, raw string) url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return *u
}

func TestPoolConfig(t *testing.T) {
	conf, err := poolConfig(configs.Postgres{
		Addr:     mustURL(t, "postgres://u:p@db:5432/hits?sslmode=disable"),
		MaxConns: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, int32(7), conf.MaxConns)
	assert.Equal(t, "db", conf.ConnConfig.Host)
	assert.Equal(t, "hits", conf.ConnConfig.Database)
	assert.Equal(t, applicationName, conf.ConnConfig.RuntimeParams["application_name"])
}

func TestPoolConfigKeepsExplicitApplicationName(t *testing.T) {
	conf, err := poolConfig(configs.Postgres{
		Addr: mustURL(t, "postgres://u:p@db:5432/hits?application_name=worker"),
	})
	require.NoError(t, err)
	assert.Equal(t, "worker", conf.ConnConfig.RuntimeParams["application_name"])
	assert.Positive(t, conf.MaxConns)
}
