package store

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tinyurl.local/internal/app/tinyurl"
	"tinyurl.local/internal/platform/dynamo"
)

type fakeDynamo struct {
	putIn  *dynamodb.PutItemInput
	getIn  *dynamodb.GetItemInput
	getOut *dynamodb.GetItemOutput
	err    error
}

func (f *fakeDynamo) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	f.putIn = in
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (f *fakeDynamo) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	f.getIn = in
	if f.err != nil {
		return nil, f.err
	}
	return f.getOut, nil
}

func (f *fakeDynamo) DescribeTable(_ context.Context, _ *dynamodb.DescribeTableInput, _ ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dynamodb.DescribeTableOutput{}, nil
}

func tableMissing() error {
	return &types.ResourceNotFoundException{Message: aws.String("Cannot do operations on a non-existent table")}
}

func withStatus(code int, err error) error {
	return &smithy.OperationError{
		ServiceID:     "DynamoDB",
		OperationName: "GetItem",
		Err: &awshttp.ResponseError{
			ResponseError: &smithyhttp.ResponseError{
				Response: &smithyhttp.Response{Response: &http.Response{StatusCode: code}},
				Err:      err,
			},
			RequestID: "req-1",
		},
	}
}

func TestDynamo_PutWritesItem(t *testing.T) {
	fake := &fakeDynamo{}
	d := NewDynamo(fake, "tinyurl", time.Second)

	res := d.Put(context.Background(), tinyurl.Mapping{ID: "abc", URL: "http://example.com"})

	require.Equal(t, tinyurl.OutcomeOK, res.Outcome)
	require.NotNil(t, fake.putIn)
	assert.Equal(t, "tinyurl", aws.ToString(fake.putIn.TableName))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "abc"}, fake.putIn.Item["id"])
	assert.Equal(t, &types.AttributeValueMemberS{Value: "http://example.com"}, fake.putIn.Item["url"])
	assert.Len(t, fake.putIn.Item, 2)
	assert.Nil(t, fake.putIn.ConditionExpression, "writes are unconditional")
}

func TestDynamo_PutTableMissing(t *testing.T) {
	d := NewDynamo(&fakeDynamo{err: tableMissing()}, "tinyurl", time.Second)

	res := d.Put(context.Background(), tinyurl.Mapping{ID: "abc", URL: "http://example.com"})

	require.Equal(t, tinyurl.OutcomeFailure, res.Outcome)
	assert.Equal(t, http.StatusBadRequest, res.Failure.Code)
	assert.Equal(t, "ResourceNotFoundException", res.Failure.Name)
	assert.Equal(t, "DynamoDB: ResourceNotFoundException: Cannot do operations on a non-existent table", res.Failure.Error())
}

func TestDynamo_GetFound(t *testing.T) {
	fake := &fakeDynamo{getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
		"id":  &types.AttributeValueMemberS{Value: "abc"},
		"url": &types.AttributeValueMemberS{Value: "http://example.com"},
	}}}
	d := NewDynamo(fake, "links", time.Second)

	res := d.Get(context.Background(), "abc")

	require.Equal(t, tinyurl.OutcomeOK, res.Outcome)
	assert.Equal(t, "http://example.com", res.URL)
	assert.Equal(t, "links", aws.ToString(fake.getIn.TableName))
	assert.Equal(t, &types.AttributeValueMemberS{Value: "abc"}, fake.getIn.Key["id"])
}

func TestDynamo_GetNotFound(t *testing.T) {
	tests := []struct {
		name string
		out  *dynamodb.GetItemOutput
	}{
		{"nil output", nil},
		{"no item", &dynamodb.GetItemOutput{}},
		{"item without url", &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: "abc"},
		}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDynamo(&fakeDynamo{getOut: tt.out}, "tinyurl", time.Second)

			res := d.Get(context.Background(), "abc")

			assert.Equal(t, tinyurl.OutcomeNotFound, res.Outcome)
			assert.Nil(t, res.Failure)
		})
	}
}

func TestDynamoFailure(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantName string
		wantMsg  string
	}{
		{
			name:     "client fault without response",
			err:      tableMissing(),
			wantCode: http.StatusBadRequest,
			wantName: "ResourceNotFoundException",
			wantMsg:  "Cannot do operations on a non-existent table",
		},
		{
			name:     "status from response",
			err:      withStatus(http.StatusServiceUnavailable, &smithy.GenericAPIError{Code: "ServiceUnavailable", Message: "ServiceUnavailable", Fault: smithy.FaultServer}),
			wantCode: http.StatusServiceUnavailable,
			wantName: "ServiceUnavailable",
			wantMsg:  "ServiceUnavailable",
		},
		{
			name:     "client status wins over fault",
			err:      withStatus(http.StatusBadRequest, tableMissing()),
			wantCode: http.StatusBadRequest,
			wantName: "ResourceNotFoundException",
			wantMsg:  "Cannot do operations on a non-existent table",
		},
		{
			name:     "deadline",
			err:      fmt.Errorf("operation error DynamoDB: GetItem: %w", context.DeadlineExceeded),
			wantCode: http.StatusGatewayTimeout,
			wantName: "Timeout",
		},
		{
			name:     "unclassified",
			err:      fmt.Errorf("dial tcp 127.0.0.1:8000: connect: connection refused"),
			wantCode: http.StatusInternalServerError,
			wantName: "InternalError",
			wantMsg:  "dial tcp 127.0.0.1:8000: connect: connection refused",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := dynamoFailure(tt.err)
			assert.Equal(t, DynamoName, f.Store)
			assert.Equal(t, tt.wantCode, f.Code)
			assert.Equal(t, tt.wantName, f.Name)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, f.Message)
			}
		})
	}
}

func TestDynamo_GetFailureIsNotNotFound(t *testing.T) {
	d := NewDynamo(&fakeDynamo{err: tableMissing()}, "tinyurl", time.Second)

	res := d.Get(context.Background(), "abc")

	require.Equal(t, tinyurl.OutcomeFailure, res.Outcome)
	require.NotNil(t, res.Failure)
	assert.Equal(t, 400, res.Failure.Code)
}

// TestDynamo_Local runs against DynamoDB Local when DYNAMO_ENDPOINT is set and
// the table exists.
func TestDynamo_Local(t *testing.T) {
	endpoint := os.Getenv("DYNAMO_ENDPOINT")
	if endpoint == "" {
		t.Skip("skip: DYNAMO_ENDPOINT not set")
	}
	table := os.Getenv("DYNAMO_TABLE")
	if table == "" {
		table = "tinyurl"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client, err := dynamo.NewClient(ctx, dynamo.Options{Region: "local", Endpoint: endpoint, Local: true})
	require.NoError(t, err)

	d := NewDynamo(client, table, 2*time.Second)
	if err := d.Ping(ctx); err != nil {
		t.Skipf("skip: dynamodb table %s not reachable at %s: %v", table, endpoint, err)
	}

	id := tinyurl.NewID()
	require.Equal(t, tinyurl.OutcomeOK, d.Put(ctx, tinyurl.Mapping{ID: id, URL: "http://example.com/local"}).Outcome)

	res := d.Get(ctx, id)
	require.Equal(t, tinyurl.OutcomeOK, res.Outcome)
	assert.Equal(t, "http://example.com/local", res.URL)

	assert.Equal(t, tinyurl.OutcomeNotFound, d.Get(ctx, "missing"+id[:4]).Outcome)
}
