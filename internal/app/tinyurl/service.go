package tinyurl

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
)

const (
	OpGenerate = "generate"
	OpResolve  = "resolve"
)

// GenerateService handles shorten requests:
// validate the body, mint an id, write the mapping, answer.
type GenerateService struct {
	store  MappingStore
	newID  func() string
	logger *slog.Logger
}

func NewGenerateService(store MappingStore, logger *slog.Logger) *GenerateService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GenerateService{
		store:  store,
		newID:  NewID,
		logger: logger,
	}
}

// Generate always returns a well-formed envelope: 200 with the new tinyId,
// 422 for an unusable body and 500 when the store reports a failure.
// There is no retry; a failed write is reported to the caller as is.
func (s *GenerateService) Generate(ctx context.Context, req Request) (resp Response) {
	defer recoverOutcome(s.logger, OpGenerate, req, &resp)

	url, ok := parseShorten(req.Body)
	if !ok {
		return s.finish(req, MessageJSON(http.StatusUnprocessableEntity, MsgInvalidURL))
	}

	id := s.newID()
	res := s.store.Put(ctx, Mapping{ID: id, URL: url})
	if res.Outcome != OutcomeOK {
		return s.finish(req, failureResponse(res))
	}
	return s.finish(req, JSONResponse(http.StatusOK, ShortenResponse{TinyID: id}))
}

func (s *GenerateService) finish(req Request, resp Response) Response {
	logOutcome(s.logger, OpGenerate, req, resp)
	return resp
}

// parseShorten extracts a validated URL from a raw JSON body.
func parseShorten(body string) (string, bool) {
	if strings.TrimSpace(body) == "" {
		return "", false
	}
	var in ShortenRequest
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		return "", false
	}
	if strings.TrimSpace(in.URL) == "" || !IsValidURL(in.URL) {
		return "", false
	}
	return in.URL, true
}

// ResolveService handles redirect requests.
type ResolveService struct {
	store  MappingStore
	logger *slog.Logger
}

func NewResolveService(store MappingStore, logger *slog.Logger) *ResolveService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ResolveService{
		store:  store,
		logger: logger,
	}
}

// Resolve answers 301 to the stored URL. A malformed id and an unknown id
// both yield 422 "Invalid tinyId"; store failures yield 500.
func (s *ResolveService) Resolve(ctx context.Context, req Request) (resp Response) {
	defer recoverOutcome(s.logger, OpResolve, req, &resp)

	id := req.PathParameters[ParamTinyID]
	if id == "" || !IsValidID(id) {
		return s.finish(req, MessageJSON(http.StatusUnprocessableEntity, MsgInvalidTinyID))
	}

	res := s.store.Get(ctx, id)
	switch res.Outcome {
	case OutcomeOK:
		if res.URL != "" {
			return s.finish(req, Redirect(http.StatusMovedPermanently, res.URL))
		}
		return s.finish(req, MessageJSON(http.StatusUnprocessableEntity, MsgInvalidTinyID))
	case OutcomeNotFound:
		return s.finish(req, MessageJSON(http.StatusUnprocessableEntity, MsgInvalidTinyID))
	default:
		return s.finish(req, failureResponse(res))
	}
}

func (s *ResolveService) finish(req Request, resp Response) Response {
	logOutcome(s.logger, OpResolve, req, resp)
	return resp
}

// failureResponse maps any non-ok store result to 500, whatever code band the
// backend reported.
func failureResponse(res Result) Response {
	if res.Failure == nil {
		return MessageJSON(http.StatusInternalServerError, "store: "+res.Outcome.String())
	}
	return MessageJSON(http.StatusInternalServerError, res.Failure.Error())
}
