package common

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testPostgresImage = "docker.io/postgres:14.11-bookworm"
	testRabbitMQImage = "rabbitmq:3.12.11-management-alpine"
)

// TestRabbitMQ starts a disposable RabbitMQ container and returns its AMQP URL.
func TestRabbitMQ(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	c, err := rabbitmq.Run(ctx, testRabbitMQImage,
		rabbitmq.WithAdminUsername("guest"),
		rabbitmq.WithAdminPassword("guest"))
	if err != nil {
		t.Fatalf("could not start rabbitmq container: %v", err)
	}
	t.Cleanup(func() { terminate(t, c) })

	uri, err := c.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("could not get rabbitmq URL: %v", err)
	}

	return uri
}

// TestDB starts a disposable Postgres container and returns a pool to it with
// the schema migrated, through the same path the server uses at startup.
func TestDB(t *testing.T) *sql.DB {
	t.Helper()
	ctx := context.Background()

	c, err := postgres.Run(ctx, testPostgresImage,
		postgres.WithDatabase("bloglist_test"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)))
	if err != nil {
		t.Fatalf("could not start postgres container: %v", err)
	}
	t.Cleanup(func() { terminate(t, c) })

	uri, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("could not get postgres connection string: %v", err)
	}

	db, err := NewDB(uri, 10, 10, time.Minute)
	if err != nil {
		t.Fatalf("could not connect to postgres: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := MigrateDB(db); err != nil {
		t.Fatalf("%v", err)
	}

	return db
}

func terminate(t *testing.T, c testcontainers.Container) {
	if err := c.Terminate(context.Background()); err != nil {
		t.Logf("could not terminate container: %v", err)
	}
}
