package usecase

import (
	"context"
	"fmt"

	"github.com/trebuchet-org/storectl/internal/domain"
	"github.com/trebuchet-org/storectl/internal/domain/config"
)

// selectNetwork resolves the network named in the runtime config. When no name was
// given and the project defines exactly one network, that one is used.
func selectNetwork(ctx context.Context, cfg *config.RuntimeConfig, resolver NetworkResolver) (*config.Network, error) {
	name := cfg.NetworkName
	if name == "" {
		names := resolver.GetNetworks(ctx)
		if len(names) != 1 {
			return nil, fmt.Errorf("%w: use --network to pick one of %v", domain.ErrNoNetwork, names)
		}
		name = names[0]
	}

	network, err := resolver.ResolveNetwork(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve network %s: %w", name, err)
	}
	return network, nil
}

// confirmBroadcast gates networks marked `confirm = true`
func confirmBroadcast(ctx context.Context, cfg *config.RuntimeConfig, confirmer BroadcastConfirmer, network *config.Network, summary string) error {
	if !network.Confirm || cfg.Yes {
		return nil
	}
	if cfg.NonInteractive || confirmer == nil {
		return fmt.Errorf("network %s requires confirmation: re-run with --yes", network.Name)
	}

	ok, err := confirmer.ConfirmBroadcast(ctx, network, summary)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrAborted
	}
	return nil
}

// resolveFees layers explicit parameters over flag values over project defaults
func resolveFees(explicit domain.FeeParams, cfg *config.RuntimeConfig) domain.FeeParams {
	fees := explicit.Merge(cfg.Fees.Params())
	if cfg.Project != nil {
		fees = fees.Merge(cfg.Project.Fees.Params())
	}
	return fees
}
