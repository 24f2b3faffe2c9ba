package secret

import (
	"fmt"

	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/projects"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/secretmanager"
	"github.com/pulumi/pulumi-gcp/sdk/v9/go/gcp/serviceaccount"
	"github.com/pulumi/pulumi/sdk/v3/go/pulumi"
)

// Manager creates secrets once the Secret Manager API is enabled.
type Manager struct {
	provider *gcp.Provider
	service  *projects.Service
}

func (m *Manager) AddSecret(ctx *pulumi.Context,
	resourceName,
	secretID string,
	value pulumi.StringInput) (*secretmanager.Secret, error) {
	s, err := secretmanager.NewSecret(ctx, resourceName, &secretmanager.SecretArgs{
		SecretId: pulumi.String(secretID),
		Replication: &secretmanager.SecretReplicationArgs{
			Auto: &secretmanager.SecretReplicationAutoArgs{},
		},
	},
		pulumi.Provider(m.provider),
		pulumi.DependsOn([]pulumi.Resource{m.service}),
	)
	if err != nil {
		return nil, err
	}

	_, err = secretmanager.NewSecretVersion(ctx, resourceName+"Version", &secretmanager.SecretVersionArgs{
		Secret:     s.ID(),
		SecretData: value,
	},
		pulumi.Provider(m.provider),
	)
	if err != nil {
		return nil, err
	}

	return s, nil
}

// GrantAccess lets the service account read one secret at runtime.
func (m *Manager) GrantAccess(ctx *pulumi.Context,
	resourceName string,
	s *secretmanager.Secret,
	apiSA *serviceaccount.Account) error {
	_, err := secretmanager.NewSecretIamMember(ctx, resourceName, &secretmanager.SecretIamMemberArgs{
		SecretId: s.SecretId,
		Role:     pulumi.String("roles/secretmanager.secretAccessor"),
		Member: apiSA.Email.ApplyT(func(email string) string {
			return fmt.Sprintf("serviceAccount:%s", email)
		}).(pulumi.StringOutput),
	},
		pulumi.Provider(m.provider),
	)
	return err
}

func SetupSecretManager(ctx *pulumi.Context, prov *gcp.Provider) (*Manager, error) {
	service, err := projects.NewService(ctx, "secretManagerService", &projects.ServiceArgs{
		Service: pulumi.String("secretmanager.googleapis.com"),
	},
		pulumi.Provider(prov),
	)
	if err != nil {
		return nil, err
	}

	return &Manager{provider: prov, service: service}, nil
}
