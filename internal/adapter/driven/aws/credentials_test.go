package aws

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/ec2rolecreds"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/costpulse/costpulse/internal/shared/types"
)

type fakeProvider struct {
	creds aws.Credentials
	err   error
}

func (f fakeProvider) Retrieve(context.Context) (aws.Credentials, error) {
	return f.creds, f.err
}

func keys(id string) aws.Credentials {
	return aws.Credentials{AccessKeyID: id, SecretAccessKey: "secret"}
}

func TestChainFirstSuccessWins(t *testing.T) {
	chain := NewChainProvider([]aws.CredentialsProvider{
		fakeProvider{creds: keys("first")},
		fakeProvider{creds: keys("second")},
	})

	creds, err := chain.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "first", creds.AccessKeyID)
}

func TestChainSkipsFailedProviders(t *testing.T) {
	chain := NewChainProvider([]aws.CredentialsProvider{
		fakeProvider{err: errors.New("not configured")},
		fakeProvider{creds: aws.Credentials{}},
		fakeProvider{creds: keys("third")},
	})

	creds, err := chain.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "third", creds.AccessKeyID)
}

func TestChainExhaustion(t *testing.T) {
	chain := NewChainProvider([]aws.CredentialsProvider{
		fakeProvider{err: errors.New("env not set")},
		fakeProvider{err: errors.New("no profile")},
	})

	_, err := chain.Retrieve(context.Background())
	require.ErrorIs(t, err, types.ErrNoCredentials)
	assert.Contains(t, err.Error(), "env not set")
	assert.Contains(t, err.Error(), "no profile")
}

func TestChainEmpty(t *testing.T) {
	_, err := NewChainProvider(nil).Retrieve(context.Background())
	assert.ErrorIs(t, err, types.ErrNoCredentials)
}

func TestEnvProvider(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "secret")
	t.Setenv("AWS_SESSION_TOKEN", "token")

	creds, err := envProvider{}.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
	assert.Equal(t, "token", creds.SessionToken)
	assert.Equal(t, "environment", creds.Source)
}

func TestEnvProviderIncomplete(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "AKIAEXAMPLE")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "")

	_, err := envProvider{}.Retrieve(context.Background())
	assert.Error(t, err)
}

func TestDefaultCredentialChainWithStaticKeys(t *testing.T) {
	cfg := &types.Config{AccessKeyID: "AKIAEXAMPLE", SecretAccessKey: "secret", SessionToken: "token"}

	providers := DefaultCredentialChain(cfg, "billing")
	require.Len(t, providers, 4)

	creds, err := providers[0].Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIAEXAMPLE", creds.AccessKeyID)
	assert.IsType(t, credentials.StaticCredentialsProvider{}, providers[0])
	assert.IsType(t, envProvider{}, providers[1])
	assert.IsType(t, &profileProvider{}, providers[2])
	assert.IsType(t, &ec2rolecreds.Provider{}, providers[3])
}

func TestDefaultCredentialChainWithoutStaticKeys(t *testing.T) {
	providers := DefaultCredentialChain(nil, "")
	require.Len(t, providers, 3)
	assert.IsType(t, envProvider{}, providers[0])
}
