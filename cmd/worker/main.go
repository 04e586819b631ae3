package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"prodreel/config"
	"prodreel/kafka"
	"prodreel/processor"
	"prodreel/types"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}
	if cfg.KafkaBrokers == "" || cfg.KafkaTopic == "" {
		log.Fatal("KAFKA_BROKERS and KAFKA_TOPIC are required for the worker")
	}

	pipeline, err := processor.New(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to build pipeline: %v", err)
	}

	handler := &kafka.TypedHandler[types.ProductJob]{
		Validate: func(job *types.ProductJob) bool {
			if job.Title == "" {
				log.Println("dropping job without title")
				return false
			}
			if len(job.Images) == 0 {
				log.Printf("dropping job %s without images", job.BaseName())
				return false
			}
			return true
		},
		Process: func(ctx context.Context, job *types.ProductJob) error {
			result, err := pipeline.GenerateProduct(ctx, *job)
			if err != nil {
				return err
			}
			log.Printf("[%s] generated %s", job.BaseName(), result.VideoPath)
			return nil
		},
		// Generation failures are mostly input-shaped; retrying the same
		// message would fail the same way.
		AlwaysMark: true,
	}

	consumer, err := kafka.NewConsumer(kafka.ConsumerConfig{
		Brokers: strings.Split(cfg.KafkaBrokers, ","),
		Topic:   cfg.KafkaTopic,
		GroupID: cfg.KafkaGroupID,
		Handler: handler,
	})
	if err != nil {
		log.Fatalf("failed to create kafka consumer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		log.Fatalf("failed to start consumer: %v", err)
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	log.Println("shutting down")
	cancel()
	if err := consumer.Close(); err != nil {
		log.Printf("consumer close error: %v", err)
	}
}
