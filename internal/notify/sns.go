// Package notify publishes upload announcements to an SNS topic.
//
// Publishing is best-effort by contract: callers log and discard the
// returned error rather than failing the request that triggered it.
package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/rs/zerolog/log"
)

// SNSAPI is the subset of the SNS client used by the Publisher.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// Compile-time check that the real SDK client satisfies the interface.
var _ SNSAPI = (*sns.Client)(nil)

// Publisher sends free-text notifications to a single SNS topic.
type Publisher struct {
	client   SNSAPI
	topicARN string
}

// NewPublisher creates a Publisher for the given topic ARN.
func NewPublisher(client SNSAPI, topicARN string) *Publisher {
	return &Publisher{
		client:   client,
		topicARN: topicARN,
	}
}

// Publish sends one message with the given subject to the topic.
func (p *Publisher) Publish(ctx context.Context, subject, message string) error {
	out, err := p.client.Publish(ctx, &sns.PublishInput{
		TopicArn: &p.topicARN,
		Subject:  &subject,
		Message:  &message,
	})
	if err != nil {
		return fmt.Errorf("SNS Publish to %s: %w", p.topicARN, err)
	}

	messageID := ""
	if out.MessageId != nil {
		messageID = *out.MessageId
	}
	log.Debug().Str("subject", subject).Str("messageId", messageID).Msg("Notification published")
	return nil
}
