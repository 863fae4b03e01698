package notify

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestPublish(t *testing.T) {
	f := &fakeSNS{}
	p := NewPublisher(f, "arn:aws:sns:us-east-1:123456789012:streamvault-upload-events")

	err := p.Publish(context.Background(), "New video uploaded", "User user1 uploaded holiday.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *f.input.Subject != "New video uploaded" {
		t.Errorf("subject not passed through: %q", *f.input.Subject)
	}
	if *f.input.Message != "User user1 uploaded holiday.mp4" {
		t.Errorf("message not passed through: %q", *f.input.Message)
	}
	if !strings.HasSuffix(*f.input.TopicArn, "streamvault-upload-events") {
		t.Errorf("unexpected topic: %s", *f.input.TopicArn)
	}
}

func TestPublishError(t *testing.T) {
	f := &fakeSNS{err: errors.New("topic gone")}
	p := NewPublisher(f, "arn:aws:sns:us-east-1:123456789012:missing")

	if err := p.Publish(context.Background(), "s", "m"); err == nil {
		t.Fatal("expected error")
	}
}
