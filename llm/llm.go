package llm

import (
	"context"
	"strings"

	"github.com/soartravel/soar/memory"
)

type MessageType int

const (
	MessageTypeQuery MessageType = iota
	MessageTypeStatement
	MessageTypeWebSearch
)

func (t MessageType) String() string {
	switch t {
	case MessageTypeStatement:
		return "STATEMENT"
	case MessageTypeWebSearch:
		return "WEB_SEARCH"
	default:
		return "QUERY"
	}
}

// ParseMessageType maps a classifier reply to a MessageType. WEB_SEARCH is checked first, and anything
// unrecognized is a query.
func ParseMessageType(reply string) MessageType {
	normalized := strings.ToUpper(strings.TrimSpace(reply))
	switch {
	case strings.Contains(normalized, "WEB_SEARCH"):
		return MessageTypeWebSearch
	case strings.Contains(normalized, "QUERY"):
		return MessageTypeQuery
	case strings.Contains(normalized, "STATEMENT"):
		return MessageTypeStatement
	default:
		return MessageTypeQuery
	}
}

type Client interface {
	Classify(ctx context.Context, message string) (MessageType, error)
	GenerateResponse(ctx context.Context, query string, memories []memory.Record) (string, error)
	GenerateAcknowledgment(ctx context.Context, statement string) (string, error)
	WebSearch(ctx context.Context, query string) (string, error)
	Reformat(ctx context.Context, rawResults string, query string) (string, error)
}
