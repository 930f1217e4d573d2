package cli

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/output"
	"github.com/mrz1836/suiwallet/internal/service/transaction"
	walletservice "github.com/mrz1836/suiwallet/internal/service/wallet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

const sendTimeout = 60 * time.Second

// ErrSendCanceled is returned when the user declines the confirmation prompt.
var ErrSendCanceled = errors.New("send canceled")

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	sendWalletName string
	sendTo         string
	sendAmount     string
	sendSui        string
	sendYes        bool
)

// sendCmd transfers SUI.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send SUI to an address",
	Long: `Send SUI from a wallet to another address.

The amount is given in MIST with --amount or in SUI with --sui. The transfer
splits the amount off the gas coin and sends it in one transaction. Gas is
paid from the same wallet.`,
	Example: `  suiwallet send --wallet main --to 0x2a... --amount 1000000
  suiwallet send --wallet main --to 0x2a... --sui 0.5
  suiwallet send --wallet main --to 0x2a... --sui 1 --yes -o json`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

// SendResponse is the JSON form of a transfer result.
type SendResponse struct {
	Wallet    string `json:"wallet"`
	From      string `json:"from"`
	To        string `json:"to"`
	Amount    uint64 `json:"amount_mist"`
	AmountSui string `json:"amount_sui"`
	Status    string `json:"status"`
	Digest    string `json:"digest,omitempty"`
	Explorer  string `json:"explorer,omitempty"`
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	sendCmd.GroupID = "wallet"
	rootCmd.AddCommand(sendCmd)

	sendCmd.Flags().StringVar(&sendWalletName, "wallet", "", "wallet to send from (required)")
	sendCmd.Flags().StringVar(&sendTo, "to", "", "recipient address (required)")
	sendCmd.Flags().StringVar(&sendAmount, "amount", "", "amount in MIST")
	sendCmd.Flags().StringVar(&sendSui, "sui", "", "amount in SUI (decimal)")
	sendCmd.Flags().BoolVarP(&sendYes, "yes", "y", false, "skip the confirmation prompt")

	_ = sendCmd.MarkFlagRequired("wallet")
	_ = sendCmd.MarkFlagRequired("to")
	sendCmd.MarkFlagsMutuallyExclusive("amount", "sui")
	sendCmd.MarkFlagsOneRequired("amount", "sui")
}

// sendAmountMist parses whichever of --amount or --sui was given.
func sendAmountMist() (uint64, error) {
	if sendSui != "" {
		return transaction.ParseAmount(sendSui, true)
	}
	return transaction.ParseAmount(sendAmount, false)
}

// loadWallet unlocks name, prompting for its password when no session is cached.
func loadWallet(cmd *cobra.Command, cc *CommandContext, name string) (*walletservice.LoadResult, error) {
	return cc.Wallets().Load(&walletservice.LoadRequest{
		Name:         name,
		PasswordFunc: promptPasswordFn,
		OnAuthMessage: func(msg string) {
			outln(cmd.ErrOrStderr(), msg)
		},
	})
}

func runSend(cmd *cobra.Command, _ []string) error {
	cc, err := requireCmdContext(cmd)
	if err != nil {
		return err
	}

	amount, err := sendAmountMist()
	if err != nil {
		return err
	}
	if _, err = transaction.Validate(sendTo, amount); err != nil {
		return err
	}

	jsonOut := formatFor(cmd).IsJSON()
	if !sendYes && !jsonOut {
		question := fmt.Sprintf("Send %s %s (%d MIST) to %s?", chain.FormatMist(amount), chain.Symbol, amount, sendTo)
		if !promptConfirmFn(question) {
			return ErrSendCanceled
		}
	}

	res, err := loadWallet(cmd, cc, sendWalletName)
	if err != nil {
		return err
	}
	defer res.Account.Forget()

	ledger, err := cc.Ledger()
	if err != nil {
		return err
	}
	executor := transaction.NewExecutor(&transaction.Config{
		Logger:  cc.Logger().Named("transfer"),
		Metrics: cc.metrics(),
	})

	ctx, cancel := contextWithTimeout(cmd, sendTimeout)
	defer cancel()

	outcome, err := executor.Execute(ctx, ledger, res.Account, sendTo, amount)
	if err != nil {
		return err
	}

	resp := SendResponse{
		Wallet:    sendWalletName,
		From:      res.Account.Address,
		To:        sendTo,
		Amount:    amount,
		AmountSui: chain.FormatMist(amount),
		Status:    outcome.Status.String(),
		Digest:    outcome.Digest,
	}
	if cc.Cfg != nil {
		resp.Explorer = outcome.ExplorerURL(cc.Cfg.GetExplorer())
	}

	w := cmd.OutOrStdout()
	if jsonOut {
		if err := output.WriteJSON(w, resp); err != nil {
			return err
		}
	} else {
		displaySendText(w, resp)
	}

	if !outcome.Succeeded() {
		return walleterr.WithSuggestion(walleterr.ErrTransactionFailed,
			"check the balance covers the amount plus gas")
	}
	return nil
}

func displaySendText(w io.Writer, resp SendResponse) {
	if resp.Status != transaction.StatusSuccess.String() {
		outln(w, "Transaction Failed")
		return
	}
	outln(w, "Transaction Successful!")
	out(w, "  Amount: %s %s\n", resp.AmountSui, chain.Symbol)
	out(w, "  To:     %s\n", resp.To)
	if resp.Digest != "" {
		out(w, "  Digest: %s\n", resp.Digest)
	}
	if resp.Explorer != "" {
		out(w, "  View:   %s\n", resp.Explorer)
	}
}
