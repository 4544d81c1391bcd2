package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/oksasatya/nz-walks-api/config"
	"github.com/oksasatya/nz-walks-api/internal/infrastructure/search"
	"github.com/oksasatya/nz-walks-api/pkg/helpers"
)

// region_indexer consumes region change events and mirrors them into Elasticsearch.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-indexer", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQRegionsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if len(cfg.ESAddrs()) == 0 || cfg.ESRegionsIndex == "" {
		log.Fatal("Elasticsearch not configured")
	}

	es, err := helpers.NewESClient(helpers.ESOptions{
		Addrs:           cfg.ESAddrs(),
		Username:        cfg.ElasticsearchUser,
		Password:        cfg.ElasticsearchPass,
		ResponseTimeout: cfg.ESResponseTimeout,
		MaxRetries:      cfg.ESMaxRetries,
	})
	if err != nil {
		log.Fatalf("es client: %v", err)
	}
	index := search.NewRegionIndex(es, cfg.ESRegionsIndex, logger)

	conn, ch, err := helpers.DialQueue(cfg.RabbitMQURL, cfg.RabbitMQRegionsQueue)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch between indexer replicas
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQRegionsQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			requeue, err := index.HandleMessage(ctx, msg.Body)
			if err != nil {
				logger.WithError(err).WithField("requeue", requeue).Warn("region event not applied")
				_ = msg.Nack(false, requeue)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("region indexer listening on queue=%s index=%s", cfg.RabbitMQRegionsQueue, cfg.ESRegionsIndex)
	<-stop
	logger.Info("shutting down...")
	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
