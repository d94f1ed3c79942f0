package broker

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/BloggingApp/friends-service/internal/dto"
	"github.com/BloggingApp/friends-service/internal/model"
	"github.com/segmentio/kafka-go"
)

type KafkaPublisher struct {
	writer *kafka.Writer
}

func NewKafkaPublisher(brokers []string, topic string) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:                   kafka.TCP(brokers...),
			Topic:                  topic,
			Balancer:               &kafka.Hash{},
			RequiredAcks:           kafka.RequireAll,
			AllowAutoTopicCreation: true,
			WriteTimeout:           10 * time.Second,
		},
	}
}

// newMessage keys by the followed user so one user's events stay ordered within a partition.
func newMessage(e model.FollowEvent) (kafka.Message, error) {
	value, err := json.Marshal(dto.NewMQFollow(e))
	if err != nil {
		return kafka.Message{}, err
	}

	return kafka.Message{
		Key:   []byte(strconv.FormatInt(e.FollowingID, 10)),
		Value: value,
		Time:  e.CreatedAt,
		Headers: []kafka.Header{
			{Key: "event_id", Value: []byte(e.ID.String())},
			{Key: "type", Value: []byte(e.Type)},
		},
	}, nil
}

func (p *KafkaPublisher) PublishFollowEvent(ctx context.Context, e model.FollowEvent) error {
	msg, err := newMessage(e)
	if err != nil {
		return err
	}
	return p.writer.WriteMessages(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
