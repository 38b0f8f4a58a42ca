package events

import (
	"context"

	"storefront-service/models"
	awspkg "storefront-service/pkg/aws"
)

// SNSPublisher sends events to a single SNS topic.
type SNSPublisher struct {
	client   awspkg.SNSPublisher
	topicArn string
}

func NewSNSPublisher(client awspkg.SNSPublisher, topicArn string) *SNSPublisher {
	return &SNSPublisher{client: client, topicArn: topicArn}
}

func (p *SNSPublisher) Publish(ctx context.Context, event models.DomainEvent) error {
	body, err := encode(event)
	if err != nil {
		return err
	}
	return p.client.Publish(ctx, p.topicArn, body, attributes(event))
}

func (p *SNSPublisher) Close() error { return nil }

// SQSPublisher sends events to a single SQS queue.
type SQSPublisher struct {
	client   awspkg.SQSSender
	queueURL string
}

func NewSQSPublisher(client awspkg.SQSSender, queueURL string) *SQSPublisher {
	return &SQSPublisher{client: client, queueURL: queueURL}
}

func (p *SQSPublisher) Publish(ctx context.Context, event models.DomainEvent) error {
	body, err := encode(event)
	if err != nil {
		return err
	}
	return p.client.SendMessage(ctx, p.queueURL, body, attributes(event))
}

func (p *SQSPublisher) Close() error { return nil }
