package testutil

import (
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/go-sql-driver/mysql"
)

type TestDB struct {
	DB      *sql.DB
	Cleanup func() error
}

// SetupTestDB creates a throwaway database on the server behind TEST_DB_DSN,
// so parallel test packages never share schema state. Cleanup drops it again.
func SetupTestDB() (*TestDB, error) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		return nil, fmt.Errorf("TEST_DB_DSN env-var not set")
	}

	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse DSN %q: %w", dsn, err)
	}

	baseName := cfg.DBName
	cfg.DBName = ""
	adminDB, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("open admin connection: %w", err)
	}

	dbName := fmt.Sprintf("%s_%d", baseName, time.Now().UnixNano())
	if _, err := adminDB.Exec("CREATE DATABASE " + dbName); err != nil {
		_ = adminDB.Close()
		return nil, fmt.Errorf("create database %q: %w", dbName, err)
	}

	cfg.DBName = dbName
	testDB, err := sql.Open("mysql", cfg.FormatDSN())
	if err != nil {
		_, _ = adminDB.Exec("DROP DATABASE " + dbName)
		_ = adminDB.Close()
		return nil, fmt.Errorf("open test database %q: %w", dbName, err)
	}

	cleanup := func() error {
		if err := testDB.Close(); err != nil {
			return err
		}
		if _, err := adminDB.Exec("DROP DATABASE " + dbName); err != nil {
			_ = adminDB.Close()
			return fmt.Errorf("drop database %q: %w", dbName, err)
		}
		return adminDB.Close()
	}

	return &TestDB{DB: testDB, Cleanup: cleanup}, nil
}
