package main

import (
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/mikeodnis/core-service/config"
	"github.com/mikeodnis/core-service/internal/application"
	"github.com/mikeodnis/core-service/pkg/helpers"
)

var errMalformedEvent = errors.New("malformed user event")

// handle decodes one user event and writes it to the audit log.
func handle(logger *logrus.Logger, body []byte) error {
	var ev application.UserEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return err
	}
	if ev.Type == "" || ev.UserID == "" {
		return errMalformedEvent
	}
	entry := logger.WithFields(logrus.Fields{
		"event":       ev.Type,
		"user_id":     ev.UserID,
		"occurred_at": ev.OccurredAt.Format(time.RFC3339Nano),
	})
	if ev.User != nil {
		entry = entry.WithField("email", ev.User.Email)
	}
	entry.Info("user event")
	return nil
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if !cfg.EventsEnabled() {
		log.Println("RABBITMQ_URL not set; events worker disabled")
		return
	}
	logger := helpers.NewLogger(cfg.AppName+"-events", cfg.Env, cfg.LogLevel)

	conn, err := amqp.Dial(cfg.RabbitMQURL)
	if err != nil {
		logger.Fatalf("amqp dial: %v", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalf("amqp channel: %v", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(16, 0, false); err != nil {
		logger.Fatalf("qos: %v", err)
	}
	if err := ch.ExchangeDeclare(cfg.RabbitMQExchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		logger.Fatalf("exchange declare: %v", err)
	}
	if _, err := ch.QueueDeclare(cfg.RabbitMQEventsQueue, true, false, false, false, nil); err != nil {
		logger.Fatalf("queue declare: %v", err)
	}
	if err := ch.QueueBind(cfg.RabbitMQEventsQueue, "user.*", cfg.RabbitMQExchange, false, nil); err != nil {
		logger.Fatalf("queue bind: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEventsQueue, "", false, false, false, false, nil)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			if err := handle(logger, msg.Body); err != nil {
				logger.WithError(err).WithField("routing_key", msg.RoutingKey).Warn("dropping message")
				_ = msg.Nack(false, false)
				continue
			}
			_ = msg.Ack(false)
		}
		close(done)
	}()

	logger.Infof("events worker listening on queue=%s exchange=%s", cfg.RabbitMQEventsQueue, cfg.RabbitMQExchange)
	<-stop
	logger.Info("shutting down...")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
