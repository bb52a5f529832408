package testhelper

import (
	"context"
	"testing"

	"github.com/docker/go-connections/nat"
	"github.com/redis/rueidis"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const redisPort = nat.Port("6379/tcp")

// NewRedisContainer starts a Redis container. The test is skipped when
// no container runtime is available.
func NewRedisContainer(t *testing.T) testcontainers.Container {
	t.Helper()

	ctx := context.Background()
	req := testcontainers.ContainerRequest{
		Image:        "redis:latest",
		ExposedPorts: []string{string(redisPort)},
		WaitingFor:   wait.ForListeningPort(redisPort),
	}
	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Skipf("failed to create Redis container: %v", err)
	}

	t.Cleanup(func() {
		if err := redisC.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate Redis container: %v", err)
		}
	})

	return redisC
}

func NewRedisClient(t *testing.T, container testcontainers.Container) rueidis.Client {
	t.Helper()

	endpoint, err := container.PortEndpoint(context.Background(), redisPort, "")
	if err != nil {
		t.Skipf("failed to get Redis container endpoint: %v", err)
	}

	redisClient, err := rueidis.NewClient(rueidis.ClientOption{
		InitAddress:  []string{endpoint},
		DisableCache: true,
	})
	if err != nil {
		t.Skipf("failed to create Redis client: %v", err)
	}

	t.Cleanup(func() {
		redisClient.Close()
	})

	return redisClient
}
