// Package lambdaapi adapts the services to API Gateway proxy events so each
// one can run as its own Lambda function.
package lambdaapi

import (
	"context"
	"encoding/base64"

	"github.com/aws/aws-lambda-go/events"

	"tinyurl.local/internal/app/tinyurl"
)

type Handler func(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error)

func NewGenerateHandler(s *tinyurl.GenerateService) Handler {
	return func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return toResponse(s.Generate(ctx, toRequest(ev))), nil
	}
}

func NewResolveHandler(s *tinyurl.ResolveService) Handler {
	return func(ctx context.Context, ev events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
		return toResponse(s.Resolve(ctx, toRequest(ev))), nil
	}
}

// toRequest decodes base64 bodies. An undecodable body is passed on raw and
// rejected by the service like any other malformed body.
func toRequest(ev events.APIGatewayProxyRequest) tinyurl.Request {
	req := tinyurl.Request{
		RequestID:      ev.RequestContext.RequestID,
		Method:         ev.HTTPMethod,
		Path:           ev.Path,
		PathParameters: ev.PathParameters,
		Body:           ev.Body,
	}
	if ev.IsBase64Encoded && ev.Body != "" {
		if b, err := base64.StdEncoding.DecodeString(ev.Body); err == nil {
			req.Body = string(b)
		}
	}
	return req
}

func toResponse(resp tinyurl.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}
}
