package chat

import (
	"context"
	"log/slog"
	"strings"
	"sync/atomic"

	"github.com/soartravel/soar/internal/mylog"
	"github.com/soartravel/soar/internal/mymetrics"
	"github.com/soartravel/soar/internal/stringutils"
	"github.com/soartravel/soar/llm"
	"github.com/soartravel/soar/memory"
)

const (
	FallbackNoInformation     = "I don't have specific information about that. Could you ask something about your trips or flights?"
	FallbackMemoryUnavailable = "I'm having trouble accessing your travel information right now. Please try again later."
	FallbackAcknowledgment    = "Thanks for sharing that information!"
	FallbackSearchUnavailable = "I'm having trouble searching for that information right now. Please try again later."

	maxResponseMemories = 3
)

type (
	// Orchestrator turns one user message into one assistant reply. It never fails: every error path
	// degrades to a fixed or locally built reply.
	Orchestrator struct {
		memories memory.Store
		llm      llm.Client
		recorder *Recorder
		logger   *slog.Logger
		metrics  *mymetrics.Collector

		processing atomic.Bool
	}

	Option func(*Orchestrator)
)

func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

func WithMetrics(metrics *mymetrics.Collector) Option {
	return func(o *Orchestrator) {
		o.metrics = metrics
	}
}

// WithRecorder sets the background writer used for statements. By default one is built on the same memory store.
func WithRecorder(recorder *Recorder) Option {
	return func(o *Orchestrator) {
		o.recorder = recorder
	}
}

func NewOrchestrator(memories memory.Store, llmClient llm.Client, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		memories: memories,
		llm:      llmClient,
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = mylog.Discard()
	}
	if o.recorder == nil {
		o.recorder = NewRecorder(memories, WithRecorderLogger(o.logger), WithRecorderMetrics(o.metrics))
	}
	return o
}

// IsProcessing reports whether a Handle call is running. It is a display hint and does not serialize calls.
func (o *Orchestrator) IsProcessing() bool {
	return o.processing.Load()
}

func (o *Orchestrator) Recorder() *Recorder {
	return o.recorder
}

// Handle classifies message and answers it from the user's memories, by acknowledging and storing it,
// or from a web search.
func (o *Orchestrator) Handle(ctx context.Context, message string, userID string) string {
	o.processing.Store(true)
	defer o.processing.Store(false)

	statement := message
	message = stringutils.NormalizeMessage(message)

	messageType, err := o.llm.Classify(ctx, message)
	if err != nil {
		o.logger.Warn("failed to classify message, treating it as a query", "user_id", userID, "error", err)
		messageType = llm.MessageTypeQuery
	}
	o.metrics.ObserveChatMessage(messageType.String())
	o.logger.Debug("handling message", "user_id", userID, "type", messageType)

	switch messageType {
	case llm.MessageTypeStatement:
		return o.handleStatement(ctx, statement, message, userID)
	case llm.MessageTypeWebSearch:
		return o.handleWebSearch(ctx, message, userID)
	default:
		return o.handleQuery(ctx, message, userID)
	}
}

func (o *Orchestrator) handleQuery(ctx context.Context, message string, userID string) string {
	records, err := o.memories.Search(ctx, message, userID)
	if err != nil {
		o.logger.Warn("failed to search memories", "user_id", userID, "error", err)
		return FallbackMemoryUnavailable
	}
	if len(records) == 0 {
		return FallbackNoInformation
	}

	top := memory.TopN(records, maxResponseMemories)
	reply, err := o.llm.GenerateResponse(ctx, message, top)
	if err != nil {
		o.logger.Warn("failed to generate response, answering with raw memories", "user_id", userID, "error", err)
		return BulletFallback(top)
	}
	return reply
}

// handleStatement stores the statement exactly as the user typed it and acknowledges the normalized message.
func (o *Orchestrator) handleStatement(ctx context.Context, statement, message string, userID string) string {
	o.recorder.Record(ctx, userID, statement)

	reply, err := o.llm.GenerateAcknowledgment(ctx, message)
	if err != nil {
		o.logger.Warn("failed to generate acknowledgment", "user_id", userID, "error", err)
		return FallbackAcknowledgment
	}
	return reply
}

func (o *Orchestrator) handleWebSearch(ctx context.Context, message string, userID string) string {
	results, err := o.llm.WebSearch(ctx, message)
	if err != nil {
		o.logger.Warn("web search failed", "user_id", userID, "error", err)
		return FallbackSearchUnavailable
	}

	reply, err := o.llm.Reformat(ctx, results, message)
	if err != nil {
		o.logger.Warn("failed to reformat web search results", "user_id", userID, "error", err)
		return FallbackSearchUnavailable
	}
	return reply
}

// BulletFallback lists memory texts when no generated answer is available.
func BulletFallback(records []memory.Record) string {
	bullets := make([]string, 0, len(records))
	for _, r := range records {
		bullets = append(bullets, "• "+r.Text+"\n")
	}
	return "Based on your travel information:\n\n" + strings.Join(bullets, "\n")
}
