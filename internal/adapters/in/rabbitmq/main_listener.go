package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/hospital-desk/internal/config"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

// CacheEventListener слушает события бэкенда об изменении записей и врачей
// и поддерживает кэши в актуальном состоянии
type CacheEventListener struct {
	conn      *amqp.Connection
	channel   *amqp.Channel
	cachePort out.CachePort
	cfg       *config.Config
	logger    out.LoggerPort
}

type (
	CacheEventType         string
	CacheEventResourceType string
)

type CacheMessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType CacheEventResourceType
	ResourceID   string
	EventType    CacheEventType
}

const (
	CacheEventResourceTypeAll         CacheEventResourceType = "_all_"
	CacheEventResourceTypeAppointment CacheEventResourceType = "appointment"
	CacheEventResourceTypeDoctor      CacheEventResourceType = "doctor"
)

const (
	CacheEventTypeStore      CacheEventType = "store"
	CacheEventTypeInvalidate CacheEventType = "invalidate"
)

func NewCacheEventListener(cachePort out.CachePort, cfg *config.Config, logger out.LoggerPort) (*CacheEventListener, error) {
	logger = logger.WithModule("CacheEventListener")

	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("rabbitmq.connect.failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("rabbitmq.channel.failed: %w", err)
	}

	return newCacheEventListener(conn, channel, cachePort, cfg, logger), nil
}

func newCacheEventListener(conn *amqp.Connection, channel *amqp.Channel, cachePort out.CachePort, cfg *config.Config, logger out.LoggerPort) *CacheEventListener {
	return &CacheEventListener{
		conn:      conn,
		channel:   channel,
		cachePort: cachePort,
		cfg:       cfg,
		logger:    logger,
	}
}

func (l *CacheEventListener) Start(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		true,  // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.declare_failed: %w", err)
	}

	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.Bind,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.bind_failed: %w", err)
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.consume_failed: %w", err)
	}

	go l.consume(ctx, msgs)

	l.logger.Info("rabbitmq.queue.started", out.LogFields{
		"queue": queue.Name,
		"bind":  l.cfg.RabbitMQ.Bind,
	})

	return nil
}

func (l *CacheEventListener) consume(ctx context.Context, msgs <-chan amqp.Delivery) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				l.logger.Warn("rabbitmq.queue.closed", nil)
				return
			}
			if err := l.processMessage(ctx, msg); err != nil {
				l.logger.Error("rabbitmq.message.failed", out.LogFields{
					"routingKey": msg.RoutingKey,
					"error":      err.Error(),
				})
				// Битое сообщение не переотправляем, иначе оно зациклится
				msg.Nack(false, false)
				continue
			}
			msg.Ack(false)
		}
	}
}

func (l *CacheEventListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

func (l *CacheEventListener) processMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := parseCacheMessageRoutingKey(msg.RoutingKey)
	if err != nil {
		return err
	}

	switch routingKey.ResourceType {
	case CacheEventResourceTypeAppointment:
		return l.processAppointmentMessage(ctx, routingKey, msg.Body)
	case CacheEventResourceTypeDoctor:
		return l.processDoctorMessage(ctx, routingKey)
	case CacheEventResourceTypeAll:
		return l.processAllMessage(ctx, routingKey)
	}

	l.logger.Debug("rabbitmq.message.skipped", out.LogFields{
		"routingKey": msg.RoutingKey,
	})
	return nil
}

// Пример routingKey:
// hospital.desk.appointment.66f1c2.store
// hospital.desk.appointment.66f1c2.invalidate
// hospital.desk.doctor.65aa01.invalidate
// hospital.desk._all_._all_.invalidate
func parseCacheMessageRoutingKey(routingKey string) (CacheMessageRoutingKey, error) {
	parts := strings.Split(routingKey, ".")

	if len(parts) < 5 {
		return CacheMessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return CacheMessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: CacheEventResourceType(parts[2]),
		ResourceID:   parts[3],
		EventType:    CacheEventType(parts[4]),
	}, nil
}
