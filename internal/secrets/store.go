package secrets

import "context"

// AccessorRole is the store role granted to service accounts that need to
// read secret values at runtime.
const AccessorRole = "secretAccessor"

// Store provides access to the secret storage service.
//
// Implementations are thin wrappers over the storage API; they signal a
// missing resource with api.NotFoundError and surface transport failures
// unchanged.
type Store interface {
	// GetSecret fetches a secret by name.
	GetSecret(ctx context.Context, projectID, name string) (*Secret, error)

	// CreateSecret creates a new, empty secret container with the given
	// labels.
	CreateSecret(ctx context.Context, projectID, name string, labels map[string]string) (*Secret, error)

	// ListSecrets lists every secret of a project.
	ListSecrets(ctx context.Context, projectID string) ([]Secret, error)

	// ListSecretVersions lists every version of a secret.
	ListSecretVersions(ctx context.Context, secret Secret) ([]SecretVersion, error)

	// GetSecretVersion fetches one version of a secret. The versionID may be
	// the symbolic "latest", which the store resolves to the concrete most
	// recent version.
	GetSecretVersion(ctx context.Context, projectID, secretName, versionID string) (*SecretVersion, error)

	// GrantAccess grants role on the secret to the given members. Granting
	// an already held role is a no-op at the store.
	GrantAccess(ctx context.Context, secret Secret, role string, members []string) error
}
