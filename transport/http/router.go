package http

import (
	"github.com/gin-gonic/gin"

	"github.com/lexgrove/faqrag"
)

func AddRouters(r *gin.Engine, endpoints faqrag.EndpointSet) {
	api := r.Group("/api")
	{
		api.POST("/query", AnswerQueryHandler(endpoints.AnswerQuery))
		api.POST("/end_session", EndSessionHandler(endpoints.EndSession))
		api.POST("/dialogflow_webhook", DialogflowWebhookHandler(endpoints))
	}
}
