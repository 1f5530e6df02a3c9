package nats

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"

	"github.com/go-kit/kit/endpoint"
	"github.com/nats-io/nats.go/micro"

	"github.com/lexgrove/faqrag"
	"github.com/lexgrove/faqrag/retrieval"
)

func AnswerQueryHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		var req faqrag.AnswerQueryRequest
		if err := json.Unmarshal(r.Data(), &req); err != nil {
			r.Error("400", err.Error(), nil)
			return
		}

		if req.Query == "" || req.UserID == "" || req.SessionID == "" {
			r.Error("400", "query, user_id and session_id are required", nil)
			return
		}

		ctx := context.Background()
		resp, err := endpoint(ctx, req)
		if err != nil {
			r.Error(errorCode(err), err.Error(), nil)
			return
		}

		answer, ok := resp.(*faqrag.Answer)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.RespondJSON(answer)
	}
}

func EndSessionHandler(endpoint endpoint.Endpoint) micro.HandlerFunc {
	return func(r micro.Request) {
		var req faqrag.EndSessionRequest
		if err := json.Unmarshal(r.Data(), &req); err != nil {
			r.Error("400", err.Error(), nil)
			return
		}

		if req.UserID == "" || req.SessionID == "" {
			r.Error("400", "user_id and session_id are required", nil)
			return
		}

		ctx := context.Background()
		resp, err := endpoint(ctx, req)
		if err != nil {
			r.Error(errorCode(err), err.Error(), nil)
			return
		}

		result, ok := resp.(faqrag.EndSessionResponse)
		if !ok {
			r.Error("500", "invalid response type", nil)
			return
		}

		r.RespondJSON(&result)
	}
}

func errorCode(err error) string {
	code := 417
	if errors.Is(err, retrieval.ErrMissingSourceURI) {
		code = 404
	}

	return strconv.Itoa(code)
}
