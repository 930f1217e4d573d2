package cli

import (
	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/output"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	receiveWallet string
	receiveShort  bool
	receiveNoQR   bool
)

// receiveCmd shows the address to receive SUI at.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var receiveCmd = &cobra.Command{
	Use:   "receive",
	Short: "Show the address to receive SUI",
	Long: `Show a wallet's address so others can send SUI to it.

On a terminal the address is also rendered as a QR code.`,
	Example: `  suiwallet receive --wallet main
  suiwallet receive --wallet main --short
  suiwallet receive --wallet main -o json`,
	Args: cobra.NoArgs,
	RunE: runReceive,
}

// ReceiveResponse is the JSON form of a receive address.
type ReceiveResponse struct {
	Wallet   string `json:"wallet"`
	Address  string `json:"address"`
	Short    string `json:"short"`
	Explorer string `json:"explorer,omitempty"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	receiveCmd.GroupID = "wallet"
	rootCmd.AddCommand(receiveCmd)

	receiveCmd.Flags().StringVarP(&receiveWallet, "wallet", "w", "", "wallet name (required)")
	receiveCmd.Flags().BoolVar(&receiveShort, "short", false, "print only the shortened address")
	receiveCmd.Flags().BoolVar(&receiveNoQR, "no-qr", false, "do not render a QR code")

	_ = receiveCmd.MarkFlagRequired("wallet")
}

func runReceive(cmd *cobra.Command, _ []string) error {
	cc, err := requireCmdContext(cmd)
	if err != nil {
		return err
	}

	meta, err := cc.Wallets().LoadMetadata(receiveWallet)
	if err != nil {
		return err
	}

	resp := ReceiveResponse{
		Wallet:  meta.Name,
		Address: meta.Address,
		Short:   output.ShortAddress(meta.Address),
	}
	if cc.Cfg != nil {
		resp.Explorer = chain.AccountURL(cc.Cfg.GetExplorer(), meta.Address)
	}

	w := cmd.OutOrStdout()
	if formatFor(cmd).IsJSON() {
		return output.WriteJSON(w, resp)
	}
	if receiveShort {
		outln(w, resp.Short)
		return nil
	}

	out(w, "Receive SUI at:\n\n  %s\n\n", resp.Address)
	if !receiveNoQR {
		if err := output.RenderQR(w, resp.Address, output.DefaultQRConfig()); err != nil {
			return err
		}
	}
	if resp.Explorer != "" {
		out(w, "Explorer: %s\n", resp.Explorer)
	}
	return nil
}
