// internal/common/aws/sns.go
package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSAPI is the subset of the SNS client used here.
type SNSAPI interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSClient publishes JSON events to a single topic.
type SNSClient struct {
	client   SNSAPI
	topicARN string
}

func NewSNSClient(ctx context.Context, region, topicARN string) (*SNSClient, error) {
	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewSNSClientWithAPI(sns.NewFromConfig(cfg), topicARN), nil
}

func NewSNSClientWithAPI(api SNSAPI, topicARN string) *SNSClient {
	return &SNSClient{client: api, topicARN: topicARN}
}

// PublishEvent marshals payload as the message body and tags it with an
// eventType attribute for subscription filtering. It returns the message id.
func (s *SNSClient) PublishEvent(ctx context.Context, eventType string, payload interface{}) (string, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("encode %s event: %w", eventType, err)
	}

	out, err := s.client.Publish(ctx, &sns.PublishInput{
		TopicArn: aws.String(s.topicARN),
		Message:  aws.String(string(body)),
		Subject:  aws.String(eventType),
		MessageAttributes: map[string]types.MessageAttributeValue{
			"eventType": {
				DataType:    aws.String("String"),
				StringValue: aws.String(eventType),
			},
		},
	})
	if err != nil {
		return "", fmt.Errorf("publish %s event: %w", eventType, err)
	}
	return aws.ToString(out.MessageId), nil
}
