package faqrag

import (
	"context"
	"errors"
)

// ProxyMiddleware adapts a remote EndpointSet (e.g. the NATS client
// endpoints) to the Service interface.
func ProxyMiddleware(endpoints *EndpointSet) ServiceMiddleware {
	return func(next Service) Service {
		return &proxyMiddleware{
			endpoints: endpoints,
		}
	}
}

type proxyMiddleware struct {
	endpoints *EndpointSet
}

func (mw *proxyMiddleware) Close() error {
	return errors.New("method not implemented")
}

func (mw *proxyMiddleware) AnswerQuery(ctx context.Context, query, userID, sessionID string) (*Answer, error) {
	req := AnswerQueryRequest{
		Query:     query,
		UserID:    userID,
		SessionID: sessionID,
	}

	resp, err := mw.endpoints.AnswerQuery(ctx, req)
	if err != nil {
		return nil, err
	}

	answer, ok := resp.(*Answer)
	if !ok {
		return nil, errors.New("invalid response type")
	}

	return answer, nil
}

func (mw *proxyMiddleware) EndSession(ctx context.Context, userID, sessionID string) (int, error) {
	req := EndSessionRequest{
		UserID:    userID,
		SessionID: sessionID,
	}

	resp, err := mw.endpoints.EndSession(ctx, req)
	if err != nil {
		return 0, err
	}

	result, ok := resp.(EndSessionResponse)
	if !ok {
		return 0, errors.New("invalid response type")
	}

	return result.Flushed, nil
}

func (mw *proxyMiddleware) Fallback(ctx context.Context, query, userID, sessionID string) (string, error) {
	return "", errors.New("method not implemented")
}
