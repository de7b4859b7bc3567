package breed

import (
	"context"
	"crypto/ed25519"
	"time"

	"github.com/mr-tron/base58"
	"github.com/pkg/errors"

	"github.com/hatchery-labs/breed-client/pkg/config/env"
)

const (
	envConfigPrefix = "BREED_CLIENT_"

	ProgramIDConfigEnvName         = envConfigPrefix + "PROGRAM_ID"
	FeeTokenConfigEnvName          = envConfigPrefix + "FEE_TOKEN"
	AuthorityKeyConfigEnvName      = envConfigPrefix + "AUTHORITY_KEY"
	ParentsCollectionConfigEnvName = envConfigPrefix + "PARENTS_COLLECTION"
	RewardCollectionConfigEnvName  = envConfigPrefix + "REWARD_COLLECTION"
	IncineratorConfigEnvName       = envConfigPrefix + "INCINERATOR"
	RPCEndpointConfigEnvName       = envConfigPrefix + "RPC_ENDPOINT"

	ConfirmationTimeoutConfigEnvName = envConfigPrefix + "CONFIRMATION_TIMEOUT"
	defaultConfirmationTimeout       = 60 * time.Second

	CooldownDelayConfigEnvName = envConfigPrefix + "COOLDOWN_DELAY"
	defaultCooldownDelay       = 6 * time.Second

	RefreshIntervalConfigEnvName = envConfigPrefix + "REFRESH_INTERVAL"
	defaultRefreshInterval       = 20 * time.Second

	defaultRPCEndpoint        = "https://api.mainnet-beta.solana.com"
	defaultIncineratorAddress = "1nc1nerator11111111111111111111111111111111"
)

// Config carries the addresses and timing knobs for one breeding
// machine. Network-specific addresses are never hardcoded in logic;
// they all flow through here.
type Config struct {
	ProgramID           ed25519.PublicKey
	FeeTokenAddress     ed25519.PublicKey
	AuthorityKey        ed25519.PublicKey
	ParentsCollectionID ed25519.PublicKey
	RewardCollectionID  ed25519.PublicKey
	IncineratorAddress  ed25519.PublicKey

	RPCEndpoint string

	// How long to poll for confirmation before giving up on a submission.
	ConfirmationTimeout time.Duration
	// How long a terminal status is held before resetting to idle.
	CooldownDelay time.Duration
	// How often the background worker refreshes the machine snapshot.
	RefreshInterval time.Duration
}

// Validate checks that every required key is present and well formed.
func (c *Config) Validate() error {
	for _, key := range []struct {
		name  string
		value ed25519.PublicKey
	}{
		{"program id", c.ProgramID},
		{"fee token", c.FeeTokenAddress},
		{"authority key", c.AuthorityKey},
		{"parents collection", c.ParentsCollectionID},
		{"reward collection", c.RewardCollectionID},
		{"incinerator", c.IncineratorAddress},
	} {
		if len(key.value) != ed25519.PublicKeySize {
			return errors.Errorf("invalid %s", key.name)
		}
	}

	if len(c.RPCEndpoint) == 0 {
		return errors.New("missing rpc endpoint")
	}

	return nil
}

// ConfigProvider defines how config values are pulled
type ConfigProvider func() (*Config, error)

// WithEnvConfigs returns configuration pulled from environment variables
func WithEnvConfigs() ConfigProvider {
	return func() (*Config, error) {
		ctx := context.Background()

		conf := &Config{
			RPCEndpoint:         env.NewStringConfig(RPCEndpointConfigEnvName, defaultRPCEndpoint).Get(ctx),
			ConfirmationTimeout: env.NewDurationConfig(ConfirmationTimeoutConfigEnvName, defaultConfirmationTimeout).Get(ctx),
			CooldownDelay:       env.NewDurationConfig(CooldownDelayConfigEnvName, defaultCooldownDelay).Get(ctx),
			RefreshInterval:     env.NewDurationConfig(RefreshIntervalConfigEnvName, defaultRefreshInterval).Get(ctx),
		}

		for _, key := range []struct {
			envName      string
			defaultValue string
			target       *ed25519.PublicKey
		}{
			{ProgramIDConfigEnvName, "", &conf.ProgramID},
			{FeeTokenConfigEnvName, "", &conf.FeeTokenAddress},
			{AuthorityKeyConfigEnvName, "", &conf.AuthorityKey},
			{ParentsCollectionConfigEnvName, "", &conf.ParentsCollectionID},
			{RewardCollectionConfigEnvName, "", &conf.RewardCollectionID},
			{IncineratorConfigEnvName, defaultIncineratorAddress, &conf.IncineratorAddress},
		} {
			encoded := env.NewStringConfig(key.envName, key.defaultValue).Get(ctx)
			if len(encoded) == 0 {
				return nil, errors.Errorf("%s is not set", key.envName)
			}

			decoded, err := base58.Decode(encoded)
			if err != nil {
				return nil, errors.Wrapf(err, "invalid base58 value for %s", key.envName)
			}
			*key.target = decoded
		}

		return conf, conf.Validate()
	}
}
