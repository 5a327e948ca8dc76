package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// InstallationIDKey is where the per-installation id is cached locally.
const InstallationIDKey = "resumeUserId"

// InstallationID returns this installation's random id, generating and
// caching it on first use. Remote records are keyed by it.
func InstallationID(ctx context.Context, local KeyValue) (string, error) {
	id, ok, err := local.Get(ctx, InstallationIDKey)
	if err != nil {
		return "", fmt.Errorf("failed to read installation id: %w", err)
	}
	if ok {
		if _, err := uuid.Parse(id); err == nil {
			return id, nil
		}
	}

	id = uuid.NewString()
	if err := local.Set(ctx, InstallationIDKey, id); err != nil {
		return "", fmt.Errorf("failed to cache installation id: %w", err)
	}
	return id, nil
}
