//go:build integration

package main_test

import (
	"context"
	"fmt"
	"net"
	"testing"
	"time"

	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/application"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/config"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/database"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/events"
	"github.com/Kilat-Pet-Delivery/service-dog-registry/internal/repository"

	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	kafkamodule "github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const testTopic = "dog.events"

// testInfra holds shared test infrastructure.
type testInfra struct {
	DB           *gorm.DB
	KafkaBrokers []string
	Cleanup      func()
}

// dogStack holds wired-up registry components.
type dogStack struct {
	Repo     *repository.GormDogRepository
	Service  *application.DogService
	Producer *events.Producer
}

// setupContainers starts PostgreSQL and Kafka testcontainers and returns a
// connected GORM DB.
func setupContainers(t *testing.T) *testInfra {
	t.Helper()
	ctx := context.Background()

	pgReq := testcontainers.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "test_dogs",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}
	pgContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: pgReq,
		Started:          true,
	})
	require.NoError(t, err, "failed to start PostgreSQL container")

	pgHost, err := pgContainer.Host(ctx)
	require.NoError(t, err)
	pgPort, err := pgContainer.MappedPort(ctx, "5432")
	require.NoError(t, err)

	dbCfg := config.DatabaseConfig{
		Driver:   config.DriverPostgres,
		Host:     pgHost,
		Port:     pgPort.Port(),
		User:     "test",
		Password: "test",
		DBName:   "test_dogs",
		SSLMode:  "disable",
	}

	// Poll until the connector can open and ping.
	var db *gorm.DB
	require.Eventually(t, func() bool {
		var err error
		db, err = database.Connect(dbCfg, zap.NewNop())
		return err == nil
	}, 30*time.Second, 1*time.Second, "PostgreSQL not ready for connections")

	kafkaContainer, err := kafkamodule.Run(ctx, "confluentinc/confluent-local:7.5.0")
	require.NoError(t, err, "failed to start Kafka container")

	kafkaBrokers, err := kafkaContainer.Brokers(ctx)
	require.NoError(t, err, "failed to get Kafka brokers")

	createTopics(t, kafkaBrokers, testTopic)

	cleanup := func() {
		_ = database.Close(db)
		if err := kafkaContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate Kafka container: %v", err)
		}
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}

	return &testInfra{
		DB:           db,
		KafkaBrokers: kafkaBrokers,
		Cleanup:      cleanup,
	}
}

// setupDogStack wires the registry on top of the containers.
func setupDogStack(t *testing.T, db *gorm.DB, brokers []string) *dogStack {
	t.Helper()
	logger, _ := zap.NewDevelopment()

	repo := repository.NewGormDogRepository(db, logger)
	producer := events.NewProducer(brokers, testTopic, logger)
	return &dogStack{
		Repo:     repo,
		Service:  application.NewDogService(repo, producer, logger),
		Producer: producer,
	}
}

// consumeEvents reads from the topic until n events arrived or the timeout hits.
func consumeEvents(t *testing.T, brokers []string, n int, timeout time.Duration) []events.CloudEvent {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	groupID := fmt.Sprintf("test-assert-%d", time.Now().UnixNano())
	consumer := events.NewDogEventConsumer(brokers, groupID, testTopic, zap.NewNop())
	defer func() { _ = consumer.Close() }()

	var got []events.CloudEvent
	err := consumer.Start(ctx, func(_ context.Context, ce events.CloudEvent) error {
		got = append(got, ce)
		if len(got) == n {
			cancel()
		}
		return nil
	})
	if len(got) < n {
		t.Fatalf("received %d of %d events before stopping: %v", len(got), n, err)
	}
	return got
}

// createTopics pre-creates Kafka topics so producers don't fail with "Unknown Topic".
func createTopics(t *testing.T, brokers []string, topics ...string) {
	t.Helper()
	conn, err := kafkago.Dial("tcp", brokers[0])
	require.NoError(t, err, "failed to dial Kafka for topic creation")
	defer conn.Close()

	controller, err := conn.Controller()
	require.NoError(t, err, "failed to get Kafka controller")

	controllerConn, err := kafkago.Dial("tcp", net.JoinHostPort(controller.Host, fmt.Sprintf("%d", controller.Port)))
	require.NoError(t, err, "failed to connect to Kafka controller")
	defer controllerConn.Close()

	topicConfigs := make([]kafkago.TopicConfig, len(topics))
	for i, topic := range topics {
		topicConfigs[i] = kafkago.TopicConfig{
			Topic:             topic,
			NumPartitions:     1,
			ReplicationFactor: 1,
		}
	}
	err = controllerConn.CreateTopics(topicConfigs...)
	require.NoError(t, err, "failed to create Kafka topics")

	// Give Kafka a moment to propagate topic metadata.
	time.Sleep(1 * time.Second)
}
