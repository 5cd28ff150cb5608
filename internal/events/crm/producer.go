package crm

//go:generate go run go.uber.org/mock/mockgen -source=./producer.go -destination=./mocks/producer_mock.go -package=mocks

import (
	"context"
	"fmt"

	"rackcity/config"
	"rackcity/infras/kafka"
	"rackcity/infras/otel"
	"rackcity/shared/constant"

	"github.com/rs/zerolog/log"
)

type Producer interface {
	Publish(ctx context.Context, event Event) error
}

type producerImpl struct {
	kafka kafka.Client
	cfg   *config.Config
	otel  otel.Otel
}

func NewProducer(kafkaClient kafka.Client, cfg *config.Config, otel otel.Otel) Producer {
	return &producerImpl{
		kafka: kafkaClient,
		cfg:   cfg,
		otel:  otel,
	}
}

func (p *producerImpl) Publish(ctx context.Context, event Event) (err error) {
	ctx, scope := p.otel.NewScope(ctx, constant.OtelEventScopeName, constant.OtelEventScopeName+".Publish")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute("event.type", string(event.Type))

	message := kafka.Message{
		Key:   event.ID,
		Value: event,
	}

	if err = p.kafka.SendMessages(ctx, p.cfg.Kafka.CRMTopic, message); err != nil {
		log.Error().Err(err).Str("type", string(event.Type)).Msg("failed to publish CRM event")

		return fmt.Errorf("failed to publish CRM event: %w", err)
	}

	return nil
}
