package testutil

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

type MariaDBContainerInfo struct {
	DSN     string
	Cleanup func()
}

// StartMariaDBContainer runs a disposable MariaDB for the integration suite
// and waits until it answers pings. The returned DSN points at the stock
// `mysql` database; SetupTestDB carves per-test databases out of it.
func StartMariaDBContainer() (*MariaDBContainerInfo, error) {
	const (
		tag          = "10.11"
		rootPassword = "root"
	)

	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, fmt.Errorf("could not connect to docker: %w", err)
	}

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mariadb",
		Tag:        tag,
		Env:        []string{"MARIADB_ROOT_PASSWORD=" + rootPassword},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		return nil, fmt.Errorf("could not start mariadb container: %w", err)
	}

	dsn := fmt.Sprintf("root:%s@(localhost:%s)/mysql?parseTime=true", rootPassword, resource.GetPort("3306/tcp"))
	if err := pool.Retry(func() error {
		conn, err := sql.Open("mysql", dsn)
		if err != nil {
			return err
		}
		defer func() { _ = conn.Close() }()
		return conn.Ping()
	}); err != nil {
		_ = pool.Purge(resource)
		return nil, fmt.Errorf("mariadb did not become ready: %w", err)
	}

	return &MariaDBContainerInfo{
		DSN: dsn,
		Cleanup: func() {
			if err := pool.Purge(resource); err != nil {
				log.Printf("could not purge mariadb container: %s", err)
			}
		},
	}, nil
}
