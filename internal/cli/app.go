package cli

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/app"
	"github.com/mrz1836/suiwallet/internal/service/account"
	"github.com/mrz1836/suiwallet/internal/tui"
	"github.com/mrz1836/suiwallet/internal/wallet"
)

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var appWallet string

// runProgramFn runs a bubbletea program to completion. Swapped in tests.
//
//nolint:gochecknoglobals // Swappable for tests
var runProgramFn = func(ctx context.Context, m tea.Model) (tea.Model, error) {
	return tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
}

// appCmd opens the interactive wallet.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var appCmd = &cobra.Command{
	Use:   "app",
	Short: "Open the interactive wallet",
	Long: `Open the interactive wallet with its Home, Explore and Activity screens
and the Send and Receive sheets.

With --wallet the stored wallet is unlocked. Without it a setup screen offers
to create a new account or import one from a recovery phrase; that account
lives only until the app exits. Use "suiwallet wallet create" to keep one.`,
	Example: `  suiwallet app --wallet main
  suiwallet app`,
	Args: cobra.NoArgs,
	RunE: runApp,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	appCmd.GroupID = "wallet"
	rootCmd.AddCommand(appCmd)

	appCmd.Flags().StringVarP(&appWallet, "wallet", "w", "", "wallet to open (default: set up a temporary account)")
}

func runApp(cmd *cobra.Command, _ []string) error {
	cc, err := requireCmdContext(cmd)
	if err != nil {
		return err
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	acct, err := appAccount(ctx, cmd, cc)
	if err != nil || acct == nil {
		return err
	}
	defer acct.Forget()

	ledger, err := cc.Ledger()
	if err != nil {
		return err
	}

	appCfg := &app.Config{
		Account: acct,
		Ledger:  ledger,
		Logger:  cc.Logger(),
		Metrics: cc.metrics(),
	}
	if cc.Cfg != nil {
		appCfg.ExplorerURL = cc.Cfg.GetExplorer()
		appCfg.PollInterval = cc.Cfg.GetPollInterval()
	}
	session, err := app.New(ctx, appCfg)
	if err != nil {
		return err
	}
	session.Start(ctx)
	defer session.Close()

	_, err = runProgramFn(ctx, tui.NewWalletModel(ctx, session))
	return err
}

// appAccount unlocks --wallet or runs the setup screens. A nil account with
// a nil error means setup was abandoned.
func appAccount(ctx context.Context, cmd *cobra.Command, cc *CommandContext) (*wallet.Account, error) {
	if appWallet != "" {
		res, err := loadWallet(cmd, cc, appWallet)
		if err != nil {
			return nil, err
		}
		return res.Account, nil
	}

	scheme, err := resolveScheme(cc)
	if err != nil {
		return nil, err
	}
	flow := account.NewFlow(newProvisioner(cc, scheme, 0))

	final, err := runProgramFn(ctx, tui.NewSetupModel(ctx, flow))
	if err != nil {
		return nil, err
	}
	setup, ok := final.(tui.SetupModel)
	if !ok || setup.Account() == nil {
		if pending := flow.Account(); pending != nil {
			pending.Forget()
		}
		if ok {
			return nil, setup.Err()
		}
		return nil, nil //nolint:nilnil // abandoned setup is not an error
	}
	return setup.Account(), nil
}
