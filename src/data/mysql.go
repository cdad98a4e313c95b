package data

import (
	"fmt"
	"net"
	"os"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
)

// GetMySQLDSN returns the MySQL DSN configured via environment. MYSQL_DSN wins;
// otherwise the DSN is assembled from MYSQL_HOST, MYSQL_PORT, MYSQL_USER,
// MYSQL_PASSWORD and MYSQL_DATABASE.
func GetMySQLDSN() (string, error) {
	if dsn := strings.TrimSpace(os.Getenv("MYSQL_DSN")); dsn != "" {
		if _, err := mysqldriver.ParseDSN(dsn); err != nil {
			return "", fmt.Errorf("MYSQL_DSN is invalid: %w", err)
		}
		return dsn, nil
	}

	database := strings.TrimSpace(os.Getenv("MYSQL_DATABASE"))
	if database == "" {
		return "", fmt.Errorf("MYSQL_DSN is not set and MYSQL_DATABASE is empty")
	}

	host := envOr("MYSQL_HOST", "127.0.0.1")
	port := envOr("MYSQL_PORT", "3306")

	cfg := mysqldriver.NewConfig()
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.User = envOr("MYSQL_USER", "root")
	cfg.Passwd = os.Getenv("MYSQL_PASSWORD")
	cfg.DBName = database
	return cfg.FormatDSN(), nil
}

func envOr(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
