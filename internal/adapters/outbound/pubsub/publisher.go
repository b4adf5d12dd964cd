package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	pubsubV2 "cloud.google.com/go/pubsub/v2"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/domain"
	"github.com/cleitonmarx/symbiont-tool-gateway/internal/telemetry"
	"github.com/cleitonmarx/symbiont/depend"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// EventType_ToolExecuted is the event_type attribute of published usage events.
const EventType_ToolExecuted = "TOOL_EXECUTED"

// PubSubEventPublisher implements domain.ToolEventPublisher using Google Cloud Pub/Sub.
type PubSubEventPublisher struct {
	publisher *pubsubV2.Publisher
}

// NewPubSubEventPublisher creates a publisher for the given topic.
func NewPubSubEventPublisher(client *pubsubV2.Client, topic string) PubSubEventPublisher {
	return PubSubEventPublisher{publisher: client.Publisher(topic)}
}

// PublishEvent publishes the usage event and waits for the server acknowledgement.
func (p PubSubEventPublisher) PublishEvent(ctx context.Context, event domain.ToolExecutedEvent) error {
	spanCtx, span := telemetry.Start(ctx,
		trace.WithAttributes(
			attribute.String("event_id", event.ID.String()),
			attribute.String("tool.name", event.ToolName),
			attribute.String("tool.status", string(event.Status)),
		),
	)
	defer span.End()

	payload, err := json.Marshal(event)
	if telemetry.RecordErrorAndStatus(span, err) {
		return fmt.Errorf("failed to marshal tool event: %w", err)
	}

	result := p.publisher.Publish(spanCtx, &pubsubV2.Message{
		Data: payload,
		Attributes: map[string]string{
			"event_type": EventType_ToolExecuted,
			"tool_name":  event.ToolName,
			"status":     string(event.Status),
		},
	})

	_, err = result.Get(spanCtx)
	if telemetry.RecordErrorAndStatus(span, err) {
		return fmt.Errorf("failed to publish tool event: %w", err)
	}
	return nil
}

// Stop flushes pending messages.
func (p PubSubEventPublisher) Stop() {
	p.publisher.Stop()
}

// LogEventPublisher writes usage events to the process log.
// It is used when no Pub/Sub project is configured.
type LogEventPublisher struct {
	Logger *log.Logger
}

// PublishEvent logs the event as a single JSON line.
func (p LogEventPublisher) PublishEvent(_ context.Context, event domain.ToolExecutedEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal tool event: %w", err)
	}
	p.Logger.Printf("ToolEvent: %s", payload)
	return nil
}

// InitPublisher registers the domain.ToolEventPublisher implementation.
type InitPublisher struct {
	Logger    *log.Logger `resolve:""`
	ProjectID string      `config:"PUBSUB_PROJECT_ID" default:"-"`
	TopicID   string      `config:"PUBSUB_TOPIC_ID" default:"tool-events"`
	client    *pubsubV2.Client
	publisher *PubSubEventPublisher
}

// Initialize publishes to Pub/Sub when a project is configured and to the log otherwise.
func (i *InitPublisher) Initialize(ctx context.Context) (context.Context, error) {
	if i.ProjectID == "-" {
		depend.Register[domain.ToolEventPublisher](LogEventPublisher{Logger: i.Logger})
		i.Logger.Println("InitPublisher: PUBSUB_PROJECT_ID not set, usage events go to the log")
		return ctx, nil
	}

	if i.client == nil {
		client, err := newClient(ctx, i.ProjectID)
		if err != nil {
			return ctx, err
		}
		i.client = client
	}

	publisher := NewPubSubEventPublisher(i.client, i.TopicID)
	i.publisher = &publisher
	depend.Register[domain.ToolEventPublisher](publisher)
	i.Logger.Printf("InitPublisher: publishing usage events to topic %s", i.TopicID)
	return ctx, nil
}

// Close flushes the publisher and closes the client.
func (i *InitPublisher) Close() {
	if i.publisher != nil {
		i.publisher.Stop()
	}
	if i.client == nil {
		return
	}
	if err := i.client.Close(); err != nil {
		i.Logger.Printf("InitPublisher: failed to close pubsub client: %v", err)
	}
}
