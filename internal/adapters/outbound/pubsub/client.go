package pubsub

import (
	"context"
	"fmt"

	pubsubV2 "cloud.google.com/go/pubsub/v2"
)

// newClient creates a Pub/Sub client. PUBSUB_EMULATOR_HOST is honoured by the SDK.
func newClient(ctx context.Context, projectID string) (*pubsubV2.Client, error) {
	client, err := pubsubV2.NewClient(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("failed to create pubsub client: %w", err)
	}
	return client, nil
}
