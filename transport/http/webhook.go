package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lexgrove/faqrag"
)

// TagGenerateWill is the fulfillment tag routed through the RAG pipeline;
// every other tag receives the canned fallback reply.
const TagGenerateWill = "generate_will"

// DialogflowRequest is the typed shape of the loosely-structured Dialogflow CX
// webhook payload. Only the fields the service reads are declared; required
// parameters are validated explicitly before any dispatch.
type DialogflowRequest struct {
	SessionInfo struct {
		Parameters map[string]any `json:"parameters"`
	} `json:"sessionInfo"`

	FulfillmentInfo struct {
		Tag string `json:"tag"`
	} `json:"fulfillmentInfo"`
}

func (r DialogflowRequest) parameter(name string) (string, bool) {
	value, ok := r.SessionInfo.Parameters[name].(string)
	return value, ok && value != ""
}

type DialogflowResponse struct {
	FulfillmentResponse FulfillmentResponse `json:"fulfillmentResponse"`
}

type FulfillmentResponse struct {
	Messages []DialogflowMessage `json:"messages"`
}

type DialogflowMessage struct {
	Text struct {
		Text []string `json:"text"`
	} `json:"text"`
}

func newDialogflowResponse(text string) DialogflowResponse {
	var message DialogflowMessage
	message.Text.Text = []string{text}

	return DialogflowResponse{
		FulfillmentResponse: FulfillmentResponse{
			Messages: []DialogflowMessage{message},
		},
	}
}

type MissingParameterError struct {
	Name string
}

func (e *MissingParameterError) Error() string {
	return "missing required parameter: " + e.Name
}

func DialogflowWebhookHandler(endpoints faqrag.EndpointSet) gin.HandlerFunc {
	return func(c *gin.Context) {
		var payload DialogflowRequest
		if err := c.ShouldBindJSON(&payload); err != nil {
			c.String(http.StatusBadRequest, err.Error())
			c.Error(err)
			c.Abort()
			return
		}

		req := faqrag.AnswerQueryRequest{}
		for _, p := range []struct {
			name  string
			value *string
		}{
			{"query", &req.Query},
			{"user_id", &req.UserID},
			{"session_id", &req.SessionID},
		} {
			value, ok := payload.parameter(p.name)
			if !ok {
				err := &MissingParameterError{Name: p.name}
				c.String(http.StatusBadRequest, err.Error())
				c.Error(err)
				c.Abort()
				return
			}

			*p.value = value
		}

		ctx := c.Request.Context()

		var text string

		if payload.FulfillmentInfo.Tag == TagGenerateWill {
			resp, err := endpoints.AnswerQuery(ctx, req)
			if err != nil {
				c.String(statusCode(err), err.Error())
				c.Error(err)
				c.Abort()
				return
			}

			answer, ok := resp.(*faqrag.Answer)
			if !ok {
				c.String(http.StatusInternalServerError, "invalid response type")
				c.Abort()
				return
			}

			text = answer.Response
		} else {
			resp, err := endpoints.Fallback(ctx, req)
			if err != nil {
				c.String(statusCode(err), err.Error())
				c.Error(err)
				c.Abort()
				return
			}

			reply, ok := resp.(string)
			if !ok {
				c.String(http.StatusInternalServerError, "invalid response type")
				c.Abort()
				return
			}

			text = reply
		}

		response := newDialogflowResponse(text)
		c.JSON(http.StatusOK, &response)
	}
}
