package secrets

// ManagedLabel marks a secret as created and managed by attune. Secrets
// without this label are left alone by lifecycle operations and only warned
// about.
const ManagedLabel = "attune-managed"

// Latest is the symbolic version pointer that the secret store resolves to
// the most recent enabled version of a secret.
const Latest = "latest"

// Secret identifies a named secret container within a project.
type Secret struct {
	// ProjectID is the project owning the secret.
	ProjectID string

	// Name is the secret's name, unique within the project.
	Name string

	// Labels are the secret's metadata labels.
	Labels map[string]string
}

// SecretVersion identifies one immutable revision of a secret's value.
// Versions are append-only: a secret accumulates versions over its lifetime
// and never loses one except through explicit pruning.
type SecretVersion struct {
	Secret    Secret
	VersionID string
}

// SecretEnvVar is one deployed endpoint's binding of an environment variable
// to a secret version.
type SecretEnvVar struct {
	// ProjectID is the project owning the referenced secret.
	ProjectID string

	// Key is the environment variable name.
	Key string

	// Secret is the referenced secret's name.
	Secret string

	// Version is a concrete version identifier or the symbolic "latest".
	Version string
}

// Endpoint is a deployed function that owns zero or more secret environment
// variable bindings. Read-only from this package's perspective.
type Endpoint struct {
	// ID identifies the endpoint.
	ID string

	// SecretEnvVars are the endpoint's secret bindings.
	SecretEnvVars []SecretEnvVar
}
