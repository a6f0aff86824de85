package gee

// ErrorResponse is the JSON body written by AbortWithError.
type ErrorResponse struct {
	Message   string `json:"message"`
	RequestId string `json:"requestId,omitempty"` //没有就省略
}

func NewErrorResponse(c *Context, message string) ErrorResponse {
	return ErrorResponse{
		Message:   message,
		RequestId: c.Req.Header.Get("X-Request-ID"),
	}
}
