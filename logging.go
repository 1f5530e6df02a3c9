package faqrag

import (
	"context"

	"go.uber.org/zap"
)

func LoggingMiddleware(log *zap.Logger) ServiceMiddleware {
	log = log.With(
		zap.String("service", "faqrag"),
	)

	return func(next Service) Service {
		log.Info("service initialized")

		return &loggingMiddleware{
			log:  log,
			next: next,
		}
	}
}

type loggingMiddleware struct {
	log  *zap.Logger
	next Service
}

func (mw *loggingMiddleware) Close() error {
	log := mw.log.With(
		zap.String("action", "close"),
	)

	err := mw.next.Close()
	if err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("service closed")
	return nil
}

func (mw *loggingMiddleware) AnswerQuery(ctx context.Context, query, userID, sessionID string) (*Answer, error) {
	log := mw.log.With(
		zap.String("action", "answer_query"),
		zap.String("user_id", userID),
		zap.String("session_id", sessionID),
	)

	answer, err := mw.next.AnswerQuery(ctx, query, userID, sessionID)
	if err != nil {
		log.Error(err.Error())
		return nil, err
	}

	log.Info("query answered", zap.String("gcs_uri", answer.GCSURI))
	return answer, nil
}

func (mw *loggingMiddleware) EndSession(ctx context.Context, userID, sessionID string) (int, error) {
	log := mw.log.With(
		zap.String("action", "end_session"),
		zap.String("user_id", userID),
		zap.String("session_id", sessionID),
	)

	flushed, err := mw.next.EndSession(ctx, userID, sessionID)
	if err != nil {
		log.Error(err.Error(), zap.Int("flushed", flushed))
		return flushed, err
	}

	log.Info("session ended", zap.Int("flushed", flushed))
	return flushed, nil
}

func (mw *loggingMiddleware) Fallback(ctx context.Context, query, userID, sessionID string) (string, error) {
	log := mw.log.With(
		zap.String("action", "fallback"),
		zap.String("user_id", userID),
		zap.String("session_id", sessionID),
	)

	reply, err := mw.next.Fallback(ctx, query, userID, sessionID)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}

	log.Info("fallback recorded")
	return reply, nil
}
