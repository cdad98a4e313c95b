package data

import (
	"strings"
	"testing"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearMySQLEnv(t *testing.T) {
	for _, key := range []string{"MYSQL_DSN", "MYSQL_HOST", "MYSQL_PORT", "MYSQL_USER", "MYSQL_PASSWORD", "MYSQL_DATABASE"} {
		t.Setenv(key, "")
	}
}

func TestGetMySQLDSNPrefersExplicitDSN(t *testing.T) {
	clearMySQLEnv(t)
	t.Setenv("MYSQL_DSN", "bot:secret@tcp(db:3306)/proposals")
	t.Setenv("MYSQL_DATABASE", "ignored")

	dsn, err := GetMySQLDSN()
	require.NoError(t, err)
	assert.Equal(t, "bot:secret@tcp(db:3306)/proposals", dsn)
}

func TestGetMySQLDSNRejectsMalformedDSN(t *testing.T) {
	clearMySQLEnv(t)
	t.Setenv("MYSQL_DSN", "not a dsn")

	_, err := GetMySQLDSN()
	assert.ErrorContains(t, err, "MYSQL_DSN is invalid")
}

func TestGetMySQLDSNFromParts(t *testing.T) {
	clearMySQLEnv(t)
	t.Setenv("MYSQL_HOST", "db.internal")
	t.Setenv("MYSQL_USER", "bot")
	t.Setenv("MYSQL_PASSWORD", "p@ss")
	t.Setenv("MYSQL_DATABASE", "proposals")

	dsn, err := GetMySQLDSN()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "bot:p@ss@tcp(db.internal:3306)/proposals"), dsn)

	cfg, err := mysqldriver.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db.internal:3306", cfg.Addr)
	assert.Equal(t, "p@ss", cfg.Passwd)
	assert.Equal(t, "proposals", cfg.DBName)
}

func TestGetMySQLDSNRequiresDatabase(t *testing.T) {
	clearMySQLEnv(t)
	t.Setenv("MYSQL_HOST", "db.internal")

	_, err := GetMySQLDSN()
	assert.Error(t, err)
}

func TestEnsureParam(t *testing.T) {
	assert.Equal(t, "u@tcp(h)/db?parseTime=true", ensureParam("u@tcp(h)/db", "parseTime", "true"))
	assert.Equal(t, "u@tcp(h)/db?a=b&parseTime=true", ensureParam("u@tcp(h)/db?a=b", "parseTime", "true"))
	assert.Equal(t, "u@tcp(h)/db?parseTime=false", ensureParam("u@tcp(h)/db?parseTime=false", "parseTime", "true"))
}
