package faqrag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildPrompt(t *testing.T) {
	assert := assert.New(t)

	prompt := BuildPrompt(
		"You must be at least 18 years old.",
		"gs://rag-test2/the-basics-of-making-a-will",
		"How old do I have to be to make a will?",
	)

	expected := "Context: You must be at least 18 years old.\n" +
		"GCS URI: gs://rag-test2/the-basics-of-making-a-will\n" +
		"Query: How old do I have to be to make a will?"

	assert.Equal(expected, prompt)
}

func TestSystemPolicyContract(t *testing.T) {
	assert := assert.New(t)

	// The policy carries the three-section output contract and the citation
	// rewrite rules the models are held to.
	assert.Contains(SystemPolicy, "Response: The answer to the query")
	assert.Contains(SystemPolicy, "Reference: Document used as reference for the answer")
	assert.Contains(SystemPolicy, "GCS URI: gs://rag-test2/the-basics-of-making-a-will")
	assert.Contains(SystemPolicy, NoKnowledgeReply)
}
