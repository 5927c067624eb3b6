package secrets

import (
	"context"
	"fmt"

	"attune/internal/api"
	"attune/pkg/logging"
)

// Manager handles the lifecycle of secrets referenced by deployed functions:
// creating missing secrets and granting runtime service accounts access to
// them. Deletion is out of scope; the Pruner only reports what is safe to
// delete.
type Manager struct {
	store Store
}

// NewManager creates a Manager over the given secret store.
func NewManager(store Store) *Manager {
	return &Manager{store: store}
}

// EnsureSecret returns the named secret, creating it with the managed label
// if it does not exist yet.
//
// An existing secret that lacks the managed label is returned as-is with a
// warning; attune never takes ownership of a secret it did not create.
func (m *Manager) EnsureSecret(ctx context.Context, projectID, name string) (*Secret, error) {
	secret, err := m.store.GetSecret(ctx, projectID, name)
	if err != nil {
		if !api.IsNotFound(err) {
			return nil, fmt.Errorf("getting secret %s: %w", name, err)
		}
		logging.Info("Secrets", "Creating secret %s in project %s", name, projectID)
		created, err := m.store.CreateSecret(ctx, projectID, name, map[string]string{ManagedLabel: "true"})
		if err != nil {
			return nil, fmt.Errorf("creating secret %s: %w", name, err)
		}
		return created, nil
	}

	if secret.Labels[ManagedLabel] != "true" {
		logging.Warn("Secrets", "Secret %s exists but is not managed by attune; leaving it untouched", name)
	}
	return secret, nil
}

// EnsureAccess grants the accessor role on the secret to the given service
// accounts so deployed functions can read its value at runtime. The grant is
// idempotent at the store.
func (m *Manager) EnsureAccess(ctx context.Context, secret Secret, serviceAccounts []string) error {
	if len(serviceAccounts) == 0 {
		return nil
	}
	if err := m.store.GrantAccess(ctx, secret, AccessorRole, serviceAccounts); err != nil {
		return fmt.Errorf("granting access to secret %s: %w", secret.Name, err)
	}
	logging.Debug("Secrets", "Granted %s on secret %s to %d members", AccessorRole, secret.Name, len(serviceAccounts))
	return nil
}

// LatestVersion resolves the symbolic "latest" pointer of a secret to its
// concrete most recent version.
func (m *Manager) LatestVersion(ctx context.Context, projectID, name string) (*SecretVersion, error) {
	version, err := m.store.GetSecretVersion(ctx, projectID, name, Latest)
	if err != nil {
		return nil, fmt.Errorf("resolving latest version of secret %s: %w", name, err)
	}
	return version, nil
}
