package store

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"tinyurl.local/internal/app/tinyurl"
)

// DynamoAPI is the part of *dynamodb.Client the adapter uses.
type DynamoAPI interface {
	PutItem(ctx context.Context, in *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	GetItem(ctx context.Context, in *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	DescribeTable(ctx context.Context, in *dynamodb.DescribeTableInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DescribeTableOutput, error)
}

// Dynamo stores mappings as items {id (hash key), url} in one table.
type Dynamo struct {
	client  DynamoAPI
	table   string
	timeout time.Duration
}

var _ tinyurl.MappingStore = (*Dynamo)(nil)

func NewDynamo(client DynamoAPI, table string, timeout time.Duration) *Dynamo {
	return &Dynamo{
		client:  client,
		table:   table,
		timeout: timeout,
	}
}

func (d *Dynamo) Name() string { return DynamoName }

// Put is a plain PutItem: an existing item with the same id is replaced.
func (d *Dynamo) Put(ctx context.Context, m tinyurl.Mapping) tinyurl.Result {
	item, err := attributevalue.MarshalMap(m)
	if err != nil {
		return tinyurl.Failed(&tinyurl.Failure{Store: DynamoName, Code: http.StatusInternalServerError, Name: "SerializationException", Message: err.Error()})
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	_, err = d.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(d.table),
		Item:      item,
	})
	if err != nil {
		return tinyurl.Failed(dynamoFailure(err))
	}
	return tinyurl.OK("")
}

func (d *Dynamo) Get(ctx context.Context, id string) tinyurl.Result {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	out, err := d.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(d.table),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
	})
	if err != nil {
		return tinyurl.Failed(dynamoFailure(err))
	}
	if out == nil || len(out.Item) == 0 {
		return tinyurl.NotFound()
	}

	var m tinyurl.Mapping
	if err := attributevalue.UnmarshalMap(out.Item, &m); err != nil {
		return tinyurl.Failed(&tinyurl.Failure{Store: DynamoName, Code: http.StatusInternalServerError, Name: "SerializationException", Message: err.Error()})
	}
	if m.URL == "" {
		return tinyurl.NotFound()
	}
	return tinyurl.OK(m.URL)
}

// Ping checks the configured table exists and is reachable.
func (d *Dynamo) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()
	_, err := d.client.DescribeTable(ctx, &dynamodb.DescribeTableInput{TableName: aws.String(d.table)})
	if err != nil {
		return dynamoFailure(err)
	}
	return nil
}

// dynamoFailure keeps the API error code and message and the HTTP status of
// the response. Errors that never reached the service fall back to the
// smithy fault class.
func dynamoFailure(err error) *tinyurl.Failure {
	if f, ok := contextFailure(DynamoName, err); ok {
		return f
	}

	f := &tinyurl.Failure{
		Store:   DynamoName,
		Code:    http.StatusInternalServerError,
		Name:    "InternalError",
		Message: err.Error(),
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		f.Name = apiErr.ErrorCode()
		f.Message = apiErr.ErrorMessage()
		if apiErr.ErrorFault() == smithy.FaultClient {
			f.Code = http.StatusBadRequest
		}
	}

	var respErr *awshttp.ResponseError
	if errors.As(err, &respErr) && respErr.HTTPStatusCode() != 0 {
		f.Code = respErr.HTTPStatusCode()
	}
	return f
}
