package cli

import (
	"context"
	"errors"
	"io"
	"math/big"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/chain/sui"
	"github.com/mrz1836/suiwallet/internal/output"
	"github.com/mrz1836/suiwallet/internal/service/balance"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

const balanceTimeout = 30 * time.Second

// ErrWalletOrAddress is returned when neither or both of --wallet and --address are given.
var ErrWalletOrAddress = errors.New("exactly one of --wallet or --address is required")

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	balanceWalletName string
	balanceAddress    string
	balanceWatch      bool
	balanceInterval   time.Duration
	balanceCount      int
	balanceRaw        bool
)

// balanceCmd shows the SUI balance of a wallet or address.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show the SUI balance",
	Long: `Show the SUI balance of a wallet or any address.

Balances are shown in whole SUI, truncated. Use --raw to also show the exact
amount in MIST (1 SUI = 1,000,000,000 MIST).

With --watch the balance is fetched every --interval until interrupted or
--count updates have been shown.`,
	Example: `  suiwallet balance --wallet main
  suiwallet balance --address 0x2a... --raw
  suiwallet balance --wallet main --watch --interval 5s --count 3
  suiwallet balance --wallet main -o json`,
	Args: cobra.NoArgs,
	RunE: runBalance,
}

// BalanceResponse is the JSON form of one balance reading.
type BalanceResponse struct {
	Wallet    string `json:"wallet,omitempty"`
	Address   string `json:"address"`
	Balance   uint64 `json:"balance"`
	Mist      string `json:"mist,omitempty"`
	Symbol    string `json:"symbol"`
	Network   string `json:"network,omitempty"`
	Timestamp string `json:"timestamp"`
}

// addressOwner is a bare address used as a balance owner.
type addressOwner string

func (a addressOwner) SuiAddress() string { return string(a) }

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	balanceCmd.GroupID = "wallet"
	rootCmd.AddCommand(balanceCmd)

	balanceCmd.Flags().StringVar(&balanceWalletName, "wallet", "", "wallet name")
	balanceCmd.Flags().StringVar(&balanceAddress, "address", "", "any Sui address")
	balanceCmd.Flags().BoolVar(&balanceWatch, "watch", false, "keep refreshing the balance")
	balanceCmd.Flags().DurationVar(&balanceInterval, "interval", 10*time.Second, "refresh interval for --watch")
	balanceCmd.Flags().IntVar(&balanceCount, "count", 0, "stop --watch after this many updates (0 = until interrupted)")
	balanceCmd.Flags().BoolVar(&balanceRaw, "raw", false, "also show the exact balance in MIST")
}

// resolveOwner returns the owner named by --wallet or --address.
func resolveOwner(cc *CommandContext, walletName, address string) (balance.Owner, string, error) {
	if (walletName == "") == (address == "") {
		return nil, "", walleterr.WithSuggestion(walleterr.ErrInvalidInput, ErrWalletOrAddress.Error())
	}
	if address != "" {
		if _, err := sui.ParseAddress(address); err != nil {
			return nil, "", walleterr.WithDetails(walleterr.ErrInvalidAddress, map[string]string{"address": address})
		}
		return addressOwner(address), "", nil
	}
	meta, err := cc.Wallets().LoadMetadata(walletName)
	if err != nil {
		return nil, "", err
	}
	return meta, meta.Name, nil
}

func runBalance(cmd *cobra.Command, _ []string) error {
	cc, err := requireCmdContext(cmd)
	if err != nil {
		return err
	}

	owner, name, err := resolveOwner(cc, balanceWalletName, balanceAddress)
	if err != nil {
		return err
	}
	ledger, err := cc.Ledger()
	if err != nil {
		return err
	}
	fetcher := balance.NewFetcher(&balance.Config{
		Client:  ledger,
		Logger:  cc.Logger().Named("balance"),
		Metrics: cc.metrics(),
	})

	resp := BalanceResponse{Wallet: name, Address: owner.SuiAddress(), Symbol: chain.Symbol}
	if cc.Cfg != nil {
		resp.Network = cc.Cfg.GetNetwork().Name
	}

	if balanceWatch {
		return watchBalance(cmd, fetcher, owner, resp)
	}

	ctx, cancel := contextWithTimeout(cmd, balanceTimeout)
	defer cancel()

	mist, err := fetcher.FetchBalanceMist(ctx, owner)
	if errors.Is(err, balance.ErrNoBalanceRecord) {
		mist, err = new(big.Int), nil
	}
	if err != nil {
		return walleterr.Wrap(walleterr.ErrNetworkError, "fetching balance: %v", err)
	}

	resp.Balance = chain.MistToSui(mist)
	if balanceRaw {
		resp.Mist = mist.String()
	}
	resp.Timestamp = time.Now().UTC().Format(time.RFC3339)
	return displayBalance(cmd, resp)
}

// watchBalance prints every poller update until interrupted or --count is reached.
// Watch mode shows whole SUI only: a failed fetch reads as zero.
func watchBalance(cmd *cobra.Command, fetcher *balance.Fetcher, owner balance.Owner, resp BalanceResponse) error {
	if balanceInterval <= 0 {
		return walleterr.WithSuggestion(walleterr.ErrInvalidInput, "--interval must be positive")
	}

	base := cmd.Context()
	if base == nil {
		base = context.Background()
	}
	ctx, stop := signal.NotifyContext(base, os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := balance.NewPoller(ctx, fetcher, owner)
	defer poller.Close()
	updates := poller.Subscribe()
	go poller.Run(ctx, balanceInterval)

	resp.Mist = ""
	shown := 0
	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			resp.Balance = u.Balance
			resp.Timestamp = u.UpdatedAt.UTC().Format(time.RFC3339)
			if err := displayBalance(cmd, resp); err != nil {
				return err
			}
			shown++
			if balanceCount > 0 && shown >= balanceCount {
				return nil
			}
		}
	}
}

func displayBalance(cmd *cobra.Command, resp BalanceResponse) error {
	w := cmd.OutOrStdout()
	if formatFor(cmd).IsJSON() {
		return output.WriteJSON(w, resp)
	}
	displayBalanceText(w, resp)
	return nil
}

func displayBalanceText(w io.Writer, resp BalanceResponse) {
	label := resp.Address
	if resp.Wallet != "" {
		label = resp.Wallet + " (" + resp.Address + ")"
	}
	out(w, "%s: %d %s", label, resp.Balance, resp.Symbol)
	if resp.Mist != "" {
		out(w, " (%s MIST)", resp.Mist)
	}
	outln(w)
}
