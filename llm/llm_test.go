package llm_test

import (
	"testing"

	"github.com/soartravel/soar/llm"
	"github.com/stretchr/testify/assert"
)

func TestParseMessageType(t *testing.T) {
	assert.Equal(t, llm.MessageTypeWebSearch, llm.ParseMessageType("WEB_SEARCH"))
	assert.Equal(t, llm.MessageTypeWebSearch, llm.ParseMessageType("\"web_search\"\n"))
	assert.Equal(t, llm.MessageTypeStatement, llm.ParseMessageType("statement."))
	assert.Equal(t, llm.MessageTypeQuery, llm.ParseMessageType("QUERY"))
	assert.Equal(t, llm.MessageTypeQuery, llm.ParseMessageType(""))
	assert.Equal(t, llm.MessageTypeQuery, llm.ParseMessageType("banana"))
}

func TestMessageTypeString(t *testing.T) {
	assert.Equal(t, "QUERY", llm.MessageTypeQuery.String())
	assert.Equal(t, "STATEMENT", llm.MessageTypeStatement.String())
	assert.Equal(t, "WEB_SEARCH", llm.MessageTypeWebSearch.String())
}
