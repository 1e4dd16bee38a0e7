package aws

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSNS struct {
	input *sns.PublishInput
	err   error
}

func (f *fakeSNS) Publish(_ context.Context, params *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSNSClient_PublishEvent(t *testing.T) {
	api := &fakeSNS{}
	client := NewSNSClientWithAPI(api, "arn:aws:sns:us-east-1:123456789012:career-events")

	id, err := client.PublishEvent(context.Background(), "quiz_result_save_failed", map[string]string{
		"studentId": "s-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "msg-1", id)

	require.NotNil(t, api.input)
	assert.Equal(t, "arn:aws:sns:us-east-1:123456789012:career-events", aws.ToString(api.input.TopicArn))
	assert.Equal(t, "quiz_result_save_failed", aws.ToString(api.input.MessageAttributes["eventType"].StringValue))

	var body map[string]string
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(api.input.Message)), &body))
	assert.Equal(t, "s-1", body["studentId"])
}

func TestSNSClient_PublishError(t *testing.T) {
	client := NewSNSClientWithAPI(&fakeSNS{err: errors.New("throttled")}, "arn")

	_, err := client.PublishEvent(context.Background(), "quiz_result_save_failed", struct{}{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}

func TestSNSClient_UnencodablePayload(t *testing.T) {
	api := &fakeSNS{}
	client := NewSNSClientWithAPI(api, "arn")

	_, err := client.PublishEvent(context.Background(), "x", make(chan int))
	require.Error(t, err)
	assert.Nil(t, api.input)
}
