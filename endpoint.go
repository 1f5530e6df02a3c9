package faqrag

import (
	"context"
	"errors"

	"github.com/go-kit/kit/endpoint"
)

type EndpointSet struct {
	AnswerQuery endpoint.Endpoint
	EndSession  endpoint.Endpoint
	Fallback    endpoint.Endpoint
}

type AnswerQueryRequest struct {
	Query     string `json:"query"`
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

func AnswerQueryEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(AnswerQueryRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.AnswerQuery(ctx, req.Query, req.UserID, req.SessionID)
	}
}

type EndSessionRequest struct {
	UserID    string `json:"user_id"`
	SessionID string `json:"session_id"`
}

type EndSessionResponse struct {
	Message string `json:"message"`
	Flushed int    `json:"flushed"`
}

func EndSessionEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(EndSessionRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		flushed, err := svc.EndSession(ctx, req.UserID, req.SessionID)
		if err != nil {
			return nil, err
		}

		return EndSessionResponse{
			Message: "session ended and history updated",
			Flushed: flushed,
		}, nil
	}
}

func FallbackEndpoint(svc Service) endpoint.Endpoint {
	return func(ctx context.Context, request any) (any, error) {
		req, ok := request.(AnswerQueryRequest)
		if !ok {
			return nil, errors.New("invalid request type")
		}

		return svc.Fallback(ctx, req.Query, req.UserID, req.SessionID)
	}
}
