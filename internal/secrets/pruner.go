package secrets

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"attune/pkg/logging"
)

// maxConcurrentVersionListings bounds the per-secret version listing fan-out
// so large projects don't hammer the store.
const maxConcurrentVersionListings = 8

// Pruner computes which secret versions of a project are referenced by no
// deployed endpoint and are therefore safe to delete.
type Pruner struct {
	store Store
}

// NewPruner creates a Pruner over the given secret store.
func NewPruner(store Store) *Pruner {
	return &Pruner{store: store}
}

// Prune returns every secret version of the project that no endpoint's
// secret environment variable bindings resolve to.
//
// Bindings recorded with the symbolic "latest" version are resolved to the
// concrete version they currently point at before diffing, so a version that
// is only reachable through "latest" is never reported as prunable. A binding
// referencing a secret or version absent from the project's listed pool is
// ignored.
//
// Any failure listing secrets or versions, or resolving a "latest" pointer,
// aborts the whole computation; a partial pruning list is never returned.
// Result ordering beyond set membership is unspecified.
func (p *Pruner) Prune(ctx context.Context, projectID string, endpoints []Endpoint) ([]SecretVersion, error) {
	secrets, err := p.store.ListSecrets(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("listing secrets of project %s: %w", projectID, err)
	}

	// One listing call per secret, fanned out into per-secret slots so the
	// flattened pool is deterministic regardless of completion order.
	perSecret := make([][]SecretVersion, len(secrets))
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(maxConcurrentVersionListings)
	for i, secret := range secrets {
		i, secret := i, secret
		group.Go(func() error {
			versions, err := p.store.ListSecretVersions(groupCtx, secret)
			if err != nil {
				return fmt.Errorf("listing versions of secret %s: %w", secret.Name, err)
			}
			perSecret[i] = versions
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}

	var pool []SecretVersion
	for _, versions := range perSecret {
		pool = append(pool, versions...)
	}

	inUse, err := p.inUseVersions(ctx, projectID, endpoints)
	if err != nil {
		return nil, err
	}

	var prunable []SecretVersion
	for _, version := range pool {
		if _, used := inUse[versionKey(version.Secret.Name, version.VersionID)]; !used {
			prunable = append(prunable, version)
		}
	}

	logging.Debug("Secrets", "Project %s: %d of %d secret versions are unused", projectID, len(prunable), len(pool))
	return prunable, nil
}

// inUseVersions builds the set of (secret name, concrete version) pairs the
// endpoints' bindings resolve to.
func (p *Pruner) inUseVersions(ctx context.Context, projectID string, endpoints []Endpoint) (map[string]struct{}, error) {
	inUse := make(map[string]struct{})
	for _, endpoint := range endpoints {
		for _, envVar := range endpoint.SecretEnvVars {
			version := envVar.Version
			if version == Latest {
				resolved, err := p.store.GetSecretVersion(ctx, projectID, envVar.Secret, Latest)
				if err != nil {
					return nil, fmt.Errorf("resolving latest version of secret %s for endpoint %s: %w", envVar.Secret, endpoint.ID, err)
				}
				version = resolved.VersionID
			}
			inUse[versionKey(envVar.Secret, version)] = struct{}{}
		}
	}
	return inUse, nil
}

func versionKey(secretName, versionID string) string {
	return secretName + "@" + versionID
}
