package faqrag

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/lexgrove/faqrag/retrieval"
)

// Service defines the core logic of the grounded FAQ answering system.
type Service interface {

	// Close gracefully shuts down the service.
	Close() error

	// AnswerQuery resolves the query against the corpus, generates a grounded
	// answer with a canonical citation, and records the interaction against
	// the session.
	AnswerQuery(ctx context.Context, query, userID, sessionID string) (*Answer, error)

	// EndSession drains the session and flushes its interactions to durable
	// history, returning the number of interactions flushed.
	EndSession(ctx context.Context, userID, sessionID string) (int, error)

	// Fallback records the canned knowledge-gap reply against the session and
	// returns it. Used by boundary paths that bypass retrieval.
	Fallback(ctx context.Context, query, userID, sessionID string) (string, error)
}

type ServiceMiddleware func(Service) Service

// Resolver resolves a query to its grounding context and citation URI.
type Resolver interface {
	Resolve(ctx context.Context, query string) (retrieval.Result, error)
}

// Generator invokes the external language model once, without retries or
// streaming, and returns its raw text.
type Generator interface {
	Generate(ctx context.Context, prompt, systemPolicy string, opts GenerationOptions) (string, error)
}

// HistoryStore persists drained interactions, one call per interaction, with
// read-then-append-then-write semantics at the storage key.
type HistoryStore interface {
	AppendInteraction(ctx context.Context, userID, sessionID string, interaction Interaction) error
}

func NewService(cfg Config, retriever Resolver, generator Generator, history HistoryStore) Service {
	log := zap.L().With(
		zap.String("service", "faqrag"),
	)

	if cfg.Citation.Bucket == "" {
		cfg.Citation.Bucket = DefaultCanonicalBucket
	}

	return &service{
		retriever: retriever,
		generator: generator,
		history:   history,
		sessions:  NewSessionStore(),

		cfg: cfg,
		log: log,
	}
}

type service struct {
	retriever Resolver
	generator Generator
	history   HistoryStore
	sessions  *SessionStore

	cfg Config
	log *zap.Logger
}

func (svc *service) Close() error {
	return nil
}

func (svc *service) AnswerQuery(ctx context.Context, query, userID, sessionID string) (*Answer, error) {
	result, err := svc.retriever.Resolve(ctx, query)
	if err != nil {
		return nil, err
	}

	citation := NormalizeCitation(svc.cfg.Citation.Bucket, result.CitationURI)
	prompt := BuildPrompt(result.Context, citation, query)

	raw, err := svc.generator.Generate(ctx, prompt, SystemPolicy, svc.cfg.Generation)
	if err != nil {
		return nil, errors.Join(ErrGeneration, err)
	}

	// The prompt already demands a GCS URI section, but model adherence
	// drifts; the citation line is appended unconditionally so it is never
	// missing from the answer.
	response := raw + "\n* GCS URI: " + citation

	svc.sessions.Record(sessionID, query, response)

	return &Answer{
		Response:  response,
		Reference: result.Context,
		GCSURI:    citation,
	}, nil
}

func (svc *service) EndSession(ctx context.Context, userID, sessionID string) (int, error) {
	interactions := svc.sessions.Drain(sessionID)

	// Interactions are already out of the accumulator; a flush failure loses
	// the remainder. The count reports what actually reached storage.
	for flushed, interaction := range interactions {
		err := svc.history.AppendInteraction(ctx, userID, sessionID, interaction)
		if err != nil {
			svc.log.Error("interactions lost after drain",
				zap.String("session_id", sessionID),
				zap.Int("flushed", flushed),
				zap.Int("lost", len(interactions)-flushed),
			)

			return flushed, errors.Join(ErrFlush, err)
		}
	}

	return len(interactions), nil
}

func (svc *service) Fallback(ctx context.Context, query, userID, sessionID string) (string, error) {
	svc.sessions.Record(sessionID, query, NoKnowledgeReply)
	return NoKnowledgeReply, nil
}
