package bootstrap

import (
	"context"
	"fmt"
	"strings"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
)

// SecretVersionName expands a bare secret name to its latest version.
// projects/{project}/secrets/{secret}/versions/{version}
func SecretVersionName(name string) string {
	if strings.Contains(name, "/versions/") {
		return name
	}
	return strings.TrimRight(name, "/") + "/versions/latest"
}

// ResolveSecret reads a secret payload from Google Secret Manager.
func ResolveSecret(ctx context.Context, name string) (string, error) {
	client, err := secretmanager.NewClient(ctx)
	if err != nil {
		return "", fmt.Errorf("create secret manager client: %w", err)
	}
	defer client.Close()

	res, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: SecretVersionName(name),
	})
	if err != nil {
		return "", fmt.Errorf("access secret %s: %w", name, err)
	}
	return strings.TrimSpace(string(res.GetPayload().GetData())), nil
}
