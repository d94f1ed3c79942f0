package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/BloggingApp/friends-service/internal/dto"
	"github.com/BloggingApp/friends-service/internal/model"
	amqp "github.com/rabbitmq/amqp091-go"
)

type MQConn struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	queue string
}

// New dials RabbitMQ and declares the durable follow events queue.
func New(url string, queue string) (*MQConn, error) {
	if queue == "" {
		queue = FOLLOWS_QUEUE
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue(%s): %w", queue, err)
	}

	return &MQConn{
		conn:  conn,
		ch:    ch,
		queue: queue,
	}, nil
}

func newPublishing(e model.FollowEvent) (amqp.Publishing, error) {
	body, err := json.Marshal(dto.NewMQFollow(e))
	if err != nil {
		return amqp.Publishing{}, err
	}

	return amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    e.ID.String(),
		Type:         e.Type,
		Timestamp:    e.CreatedAt,
		Body:         body,
	}, nil
}

func (mq *MQConn) PublishFollowEvent(ctx context.Context, e model.FollowEvent) error {
	msg, err := newPublishing(e)
	if err != nil {
		return err
	}
	return mq.ch.PublishWithContext(ctx, "", mq.queue, false, false, msg)
}

func (mq *MQConn) Close() error {
	if err := mq.ch.Close(); err != nil {
		mq.conn.Close()
		return err
	}
	return mq.conn.Close()
}
