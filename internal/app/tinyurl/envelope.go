package tinyurl

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// ParamTinyID is the path parameter carrying the identifier on resolve.
const ParamTinyID = "tinyId"

const (
	MsgInvalidURL    = "Invalid Url"
	MsgInvalidTinyID = "Invalid tinyId"
)

// Request is the transport-neutral view of an inbound call. HTTP and Lambda
// front ends both build one; it is logged verbatim with every outcome.
type Request struct {
	RequestID      string            `json:"requestId,omitempty"`
	Method         string            `json:"httpMethod,omitempty"`
	Path           string            `json:"path,omitempty"`
	PathParameters map[string]string `json:"pathParameters,omitempty"`
	Body           string            `json:"body,omitempty"`
}

// Response is the envelope every service call ends in.
type Response struct {
	StatusCode int               `json:"statusCode"`
	Headers    map[string]string `json:"headers"`
	Body       string            `json:"body,omitempty"`
}

// ShortenRequest is the JSON body accepted by generate. Comment is accepted
// for client compatibility and never stored.
type ShortenRequest struct {
	URL     string `json:"url"`
	Comment string `json:"comment,omitempty"`
}

type ShortenResponse struct {
	TinyID string `json:"tinyId"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

func corsHeaders() map[string]string {
	return map[string]string{
		"Access-Control-Allow-Origin":      "*",
		"Access-Control-Allow-Credentials": "true",
	}
}

// JSONResponse encodes body with two-space indentation.
func JSONResponse(status int, body any) Response {
	headers := corsHeaders()
	headers["Content-Type"] = "application/json"
	data, err := json.MarshalIndent(body, "", "  ")
	if err != nil {
		status = http.StatusInternalServerError
		data = []byte(`{"message":"Internal Server Error"}`)
	}
	return Response{StatusCode: status, Headers: headers, Body: string(data)}
}

func MessageJSON(status int, message string) Response {
	return JSONResponse(status, MessageResponse{Message: message})
}

// Redirect carries no Content-Type and no body.
func Redirect(status int, location string) Response {
	headers := corsHeaders()
	headers["Location"] = location
	return Response{StatusCode: status, Headers: headers}
}

// logOutcome writes the terminal transition of op. Server-side failures go
// out at warn, everything else at info.
func logOutcome(logger *slog.Logger, op string, req Request, resp Response) {
	if resp.StatusCode >= http.StatusInternalServerError {
		logger.Warn("warn", "op", op, "request", req, "response", resp)
		return
	}
	logger.Info("event", "op", op, "request", req, "response", resp)
}

// recoverOutcome turns a panic inside a service call into a logged 500.
// It must be deferred directly.
func recoverOutcome(logger *slog.Logger, op string, req Request, resp *Response) {
	r := recover()
	if r == nil {
		return
	}
	var msg string
	if err, ok := r.(error); ok {
		msg = err.Error()
	} else {
		msg = fmt.Sprint(r)
	}
	if msg == "" {
		msg = "internal error"
	}
	*resp = MessageJSON(http.StatusInternalServerError, msg)
	logger.Warn("warn", "op", op, "request", req, "response", *resp, "panic", msg)
}
