package nats

import (
	"github.com/nats-io/nats.go/micro"

	"github.com/lexgrove/faqrag"
)

func AddEndpoints(group micro.Group, endpoints faqrag.EndpointSet) {
	group.AddEndpoint("answer_query", AnswerQueryHandler(endpoints.AnswerQuery))
	group.AddEndpoint("end_session", EndSessionHandler(endpoints.EndSession))
}
