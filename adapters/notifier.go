package adapters

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"go.uber.org/zap"
)

// FilingProcessedEvent is published once a filing finishes running through
// the engine, so downstream consumers (search indexers, alerting) can react
// without polling.
type FilingProcessedEvent struct {
	CIK             string   `json:"cik"`
	AccessionNumber string   `json:"accession_number"`
	StatementTypes  []string `json:"statement_types"`
	DiagnosticCount int      `json:"diagnostic_count"`
}

// Notifier publishes FilingProcessedEvent messages to an SNS topic.
type Notifier struct {
	client   *sns.Client
	topicARN string
	logger   *zap.Logger
}

// NewNotifier builds a Notifier against topicARN, loading AWS credentials
// the standard SDK-v2 way.
func NewNotifier(ctx context.Context, topicARN, region string, logger *zap.Logger) (*Notifier, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("adapters: load AWS config for SNS: %w", err)
	}
	return &Notifier{client: sns.NewFromConfig(cfg), topicARN: topicARN, logger: logger}, nil
}

// Publish sends event to the configured topic. A publish failure is
// returned to the caller (batch orchestration decides whether that's fatal
// for the filing) rather than only logged, since downstream consumers
// silently missing an event is worse than a retry.
func (n *Notifier) Publish(ctx context.Context, event FilingProcessedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("adapters: marshal filing-processed event: %w", err)
	}

	_, err = n.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(n.topicARN),
		Message:  aws.String(string(body)),
	})
	if err != nil {
		n.logger.Warn("failed to publish filing-processed event",
			zap.String("accession_number", event.AccessionNumber), zap.Error(err))
		return fmt.Errorf("adapters: publish to SNS: %w", err)
	}
	return nil
}
