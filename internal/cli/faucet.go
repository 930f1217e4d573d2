package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/output"
	"github.com/mrz1836/suiwallet/internal/service/faucet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var faucetWallet string

// faucetCmd requests test SUI for a wallet.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var faucetCmd = &cobra.Command{
	Use:   "faucet",
	Short: "Request test SUI from the network faucet",
	Long: `Ask the network faucet to send test SUI to a wallet.

Only devnet, testnet and localnet have a faucet. The tokens usually arrive
within a few seconds; check with "suiwallet balance".`,
	Example: `  suiwallet faucet --wallet main
  suiwallet faucet --wallet main --network testnet`,
	Args: cobra.NoArgs,
	RunE: runFaucet,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	faucetCmd.GroupID = "wallet"
	rootCmd.AddCommand(faucetCmd)

	faucetCmd.Flags().StringVarP(&faucetWallet, "wallet", "w", "", "wallet name (required)")
	_ = faucetCmd.MarkFlagRequired("wallet")
}

func runFaucet(cmd *cobra.Command, _ []string) error {
	cc, err := requireCmdContext(cmd)
	if err != nil {
		return err
	}

	meta, err := cc.Wallets().LoadMetadata(faucetWallet)
	if err != nil {
		return err
	}
	ledger, err := cc.Ledger()
	if err != nil {
		return err
	}

	svc := faucet.NewService(&faucet.Config{
		Requester: ledger,
		Logger:    cc.Logger().Named("faucet"),
	})
	ctx, cancel := contextWithTimeout(cmd, faucet.DefaultTimeout)
	defer cancel()

	ok := svc.Request(ctx, meta)

	w := cmd.OutOrStdout()
	if formatFor(cmd).IsJSON() {
		if err := output.WriteJSON(w, map[string]any{"wallet": meta.Name, "address": meta.Address, "requested": ok}); err != nil {
			return err
		}
	} else if ok {
		output.Success(w, "Requested test SUI for %s", output.ShortAddress(meta.Address))
	}

	if !ok {
		return walleterr.WithSuggestion(walleterr.ErrNetworkError,
			"the faucet rejected the request or is unavailable on this network; run with -v and check the log")
	}
	return nil
}
