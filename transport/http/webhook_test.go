package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/lexgrove/faqrag"
	"github.com/lexgrove/faqrag/retrieval"
)

type fakeService struct {
	answer    *faqrag.Answer
	answerErr error

	flushed   int
	fallbacks int
}

func (s *fakeService) Close() error {
	return nil
}

func (s *fakeService) AnswerQuery(ctx context.Context, query, userID, sessionID string) (*faqrag.Answer, error) {
	if s.answerErr != nil {
		return nil, s.answerErr
	}

	return s.answer, nil
}

func (s *fakeService) EndSession(ctx context.Context, userID, sessionID string) (int, error) {
	return s.flushed, nil
}

func (s *fakeService) Fallback(ctx context.Context, query, userID, sessionID string) (string, error) {
	s.fallbacks++
	return faqrag.NoKnowledgeReply, nil
}

func newTestRouter(svc faqrag.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)

	endpoints := faqrag.EndpointSet{
		AnswerQuery: faqrag.AnswerQueryEndpoint(svc),
		EndSession:  faqrag.EndSessionEndpoint(svc),
		Fallback:    faqrag.FallbackEndpoint(svc),
	}

	r := gin.New()
	AddRouters(r, endpoints)

	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	return w
}

func TestDialogflowWebhook(t *testing.T) {
	assert := assert.New(t)

	svc := &fakeService{
		answer: &faqrag.Answer{
			Response:  "Response: You must be 18.\n* GCS URI: gs://rag-test2/the-basics-of-making-a-will",
			Reference: "context",
			GCSURI:    "gs://rag-test2/the-basics-of-making-a-will",
		},
	}

	w := postJSON(newTestRouter(svc), "/api/dialogflow_webhook", `{
		"sessionInfo": {
			"parameters": {
				"query": "How old must I be?",
				"user_id": "user-1",
				"session_id": "session-1"
			}
		},
		"fulfillmentInfo": { "tag": "generate_will" }
	}`)

	if !assert.Equal(http.StatusOK, w.Code) {
		return
	}

	var resp DialogflowResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		assert.Fail(err.Error())
		return
	}

	if assert.Len(resp.FulfillmentResponse.Messages, 1) {
		texts := resp.FulfillmentResponse.Messages[0].Text.Text
		if assert.Len(texts, 1) {
			assert.Equal(svc.answer.Response, texts[0])
		}
	}

	assert.Equal(0, svc.fallbacks)
}

func TestDialogflowWebhookUnknownTag(t *testing.T) {
	assert := assert.New(t)

	svc := &fakeService{}

	w := postJSON(newTestRouter(svc), "/api/dialogflow_webhook", `{
		"sessionInfo": {
			"parameters": {
				"query": "How old must I be?",
				"user_id": "user-1",
				"session_id": "session-1"
			}
		},
		"fulfillmentInfo": { "tag": "something_else" }
	}`)

	if !assert.Equal(http.StatusOK, w.Code) {
		return
	}

	var resp DialogflowResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		assert.Fail(err.Error())
		return
	}

	if assert.Len(resp.FulfillmentResponse.Messages, 1) {
		texts := resp.FulfillmentResponse.Messages[0].Text.Text
		if assert.Len(texts, 1) {
			assert.Equal(faqrag.NoKnowledgeReply, texts[0])
		}
	}

	assert.Equal(1, svc.fallbacks)
}

func TestDialogflowWebhookMissingParameter(t *testing.T) {
	assert := assert.New(t)

	w := postJSON(newTestRouter(&fakeService{}), "/api/dialogflow_webhook", `{
		"sessionInfo": {
			"parameters": {
				"user_id": "user-1",
				"session_id": "session-1"
			}
		},
		"fulfillmentInfo": { "tag": "generate_will" }
	}`)

	assert.Equal(http.StatusBadRequest, w.Code)
	assert.Contains(w.Body.String(), "missing required parameter: query")
}

func TestDialogflowWebhookRetrievalMiss(t *testing.T) {
	assert := assert.New(t)

	svc := &fakeService{answerErr: retrieval.ErrMissingSourceURI}

	w := postJSON(newTestRouter(svc), "/api/dialogflow_webhook", `{
		"sessionInfo": {
			"parameters": {
				"query": "unanswerable",
				"user_id": "user-1",
				"session_id": "session-1"
			}
		},
		"fulfillmentInfo": { "tag": "generate_will" }
	}`)

	assert.Equal(http.StatusNotFound, w.Code)
}
