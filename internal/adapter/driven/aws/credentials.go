package aws

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/ec2rolecreds"

	"github.com/costpulse/costpulse/internal/shared/types"
)

// ChainProvider tries an explicit, ordered list of credential providers
// and returns the first credentials found. It replaces the SDK's ambient
// default chain so the resolution order is visible and injectable.
type ChainProvider struct {
	providers []aws.CredentialsProvider
}

func NewChainProvider(providers []aws.CredentialsProvider) *ChainProvider {
	return &ChainProvider{providers: providers}
}

// Retrieve implements aws.CredentialsProvider. Providers that fail or
// come back without keys are skipped; exhausting the list reports
// ErrNoCredentials with each provider's reason attached.
func (c *ChainProvider) Retrieve(ctx context.Context) (aws.Credentials, error) {
	var reasons []string
	for _, p := range c.providers {
		creds, err := p.Retrieve(ctx)
		if err == nil && creds.HasKeys() {
			return creds, nil
		}
		if err != nil {
			reasons = append(reasons, err.Error())
		}
	}

	if len(reasons) > 0 {
		return aws.Credentials{}, fmt.Errorf("%w (%s)", types.ErrNoCredentials, strings.Join(reasons, "; "))
	}
	return aws.Credentials{}, types.ErrNoCredentials
}

// DefaultCredentialChain assembles the provider order the tool resolves
// credentials with: static keys from the config file, environment
// variables, the shared config profile, then EC2 instance role metadata.
func DefaultCredentialChain(cfg *types.Config, profile string) []aws.CredentialsProvider {
	providers := make([]aws.CredentialsProvider, 0, 4)
	if cfg != nil && cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		providers = append(providers,
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken))
	}
	return append(providers,
		envProvider{},
		&profileProvider{profile: profile},
		ec2rolecreds.New(),
	)
}

// envProvider reads the standard AWS environment variables.
type envProvider struct{}

func (envProvider) Retrieve(context.Context) (aws.Credentials, error) {
	id := os.Getenv("AWS_ACCESS_KEY_ID")
	secret := os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.Credentials{}, errors.New("AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY are not both set")
	}
	return aws.Credentials{
		AccessKeyID:     id,
		SecretAccessKey: secret,
		SessionToken:    os.Getenv("AWS_SESSION_TOKEN"),
		Source:          "environment",
	}, nil
}

// profileProvider reads static credentials for one named profile from
// the shared AWS config and credentials files.
type profileProvider struct {
	profile string
}

func (p *profileProvider) Retrieve(ctx context.Context) (aws.Credentials, error) {
	profile := p.profile
	if profile == "" {
		profile = "default"
	}

	shared, err := config.LoadSharedConfigProfile(ctx, profile)
	if err != nil {
		return aws.Credentials{}, fmt.Errorf("shared profile %s: %w", profile, err)
	}
	if !shared.Credentials.HasKeys() {
		return aws.Credentials{}, fmt.Errorf("shared profile %s has no static credentials", profile)
	}

	creds := shared.Credentials
	creds.Source = "shared profile " + profile
	return creds, nil
}
