package secrets

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	jsoniter "github.com/json-iterator/go"
)

type secretsManagerAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

var (
	loadDefaultConfig       = config.LoadDefaultConfig
	newSecretsManagerClient = func(cfg aws.Config) secretsManagerAPI {
		return secretsmanager.NewFromConfig(cfg)
	}
	setenv = os.Setenv
)

// GetSecret returns the raw secret string stored under secretID.
func GetSecret(ctx context.Context, secretID string) (string, error) {
	cfg, err := loadDefaultConfig(ctx)
	if err != nil {
		return "", fmt.Errorf("load aws config: %w", err)
	}

	out, err := newSecretsManagerClient(cfg).GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretID),
	})
	if err != nil {
		return "", fmt.Errorf("get secret %q: %w", secretID, err)
	}
	if out == nil || out.SecretString == nil {
		return "", fmt.Errorf("secret %q has no string value", secretID)
	}
	return *out.SecretString, nil
}

// ExportToEnv loads a JSON object secret and exports each key as an
// environment variable so config.Load picks it up. It returns the exported
// keys.
func ExportToEnv(ctx context.Context, secretID string) ([]string, error) {
	secretID = strings.TrimSpace(secretID)
	if secretID == "" {
		return nil, nil
	}

	raw, err := GetSecret(ctx, secretID)
	if err != nil {
		return nil, err
	}

	values := make(map[string]string)
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.UnmarshalFromString(raw, &values); err != nil {
		return nil, fmt.Errorf("decode secret %q: %w", secretID, err)
	}

	keys := make([]string, 0, len(values))
	for key, value := range values {
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		if err := setenv(key, value); err != nil {
			return keys, fmt.Errorf("export %s: %w", key, err)
		}
		keys = append(keys, key)
	}
	return keys, nil
}
