package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/mrz1836/suiwallet/internal/chain"
	"github.com/mrz1836/suiwallet/internal/output"
	"github.com/mrz1836/suiwallet/internal/service/account"
	walletservice "github.com/mrz1836/suiwallet/internal/service/wallet"
	"github.com/mrz1836/suiwallet/internal/wallet"
	walleterr "github.com/mrz1836/suiwallet/pkg/errors"
)

// walletOpTimeout bounds key generation and derivation.
const walletOpTimeout = 30 * time.Second

// out is a helper for CLI output that ignores write errors (standard pattern for CLI tools).
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func out(w io.Writer, format string, args ...interface{}) {
	fmt.Fprintf(w, format, args...)
}

// outln is a helper for CLI output with newline.
//
//nolint:errcheck // CLI output writes to stdout are intentionally unchecked
func outln(w io.Writer, args ...interface{}) {
	fmt.Fprintln(w, args...)
}

//nolint:gochecknoglobals // Cobra CLI pattern requires package-level flag variables
var (
	// createWords is the number of words for mnemonic generation.
	createWords int
	// walletScheme is the key scheme for create and import.
	walletScheme string
	// importInput is the recovery phrase for wallet import.
	importInput string
)

// walletCmd is the parent command for wallet operations.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage wallets",
	Long:  `Create, import, list, and inspect Sui wallets.`,
}

// walletCreateCmd creates a new wallet.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a new wallet",
	Long: `Create a new wallet with a freshly generated BIP39 recovery phrase.

The phrase will be displayed once - write it down and store it securely.
You will be prompted for a password to encrypt the wallet file.`,
	Example: `  suiwallet wallet create main
  suiwallet wallet create main --words 24
  suiwallet wallet create main --scheme secp256k1`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletCreate,
}

// walletImportCmd imports a wallet from a recovery phrase.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletImportCmd = &cobra.Command{
	Use:     "import <name>",
	Aliases: []string{"restore"},
	Short:   "Import a wallet from a recovery phrase",
	Long: `Import an existing account from its 12 or 24 word BIP39 recovery phrase.

Numbered lists, commas and extra whitespace are accepted. Misspelled words are
reported with the closest valid word.`,
	Example: `  suiwallet wallet import backup --input "abandon abandon ... about"
  suiwallet wallet import backup   # prompts for the phrase`,
	Args: cobra.ExactArgs(1),
	RunE: runWalletImport,
}

// walletListCmd lists all wallets.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletListCmd = &cobra.Command{
	Use:     "list",
	Short:   "List all wallets",
	Long:    `List all wallets in the suiwallet data directory.`,
	Example: "  suiwallet wallet list\n  suiwallet wallet list -o json",
	Aliases: []string{"ls"},
	Args:    cobra.NoArgs,
	RunE:    runWalletList,
}

// walletShowCmd shows wallet details.
//
//nolint:gochecknoglobals // Cobra CLI pattern requires package-level command variables
var walletShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show wallet details",
	Long: `Show the address, key scheme and derivation path of a wallet.

Details are read from the wallet metadata; no password is needed.`,
	Example: "  suiwallet wallet show main",
	Args:    cobra.ExactArgs(1),
	RunE:    runWalletShow,
}

//nolint:gochecknoinits // Cobra CLI pattern requires init for command registration
func init() {
	walletCmd.GroupID = "wallet"
	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(walletCreateCmd)
	walletCmd.AddCommand(walletImportCmd)
	walletCmd.AddCommand(walletListCmd)
	walletCmd.AddCommand(walletShowCmd)

	walletCreateCmd.Flags().IntVar(&createWords, "words", wallet.DefaultWordCount, "mnemonic word count (12 or 24)")
	for _, c := range []*cobra.Command{walletCreateCmd, walletImportCmd} {
		c.Flags().StringVar(&walletScheme, "scheme", "", "key scheme: ed25519, secp256k1 (default from config)")
	}
	walletImportCmd.Flags().StringVar(&importInput, "input", "", "recovery phrase")
}

// walletSummary is the JSON form of a wallet.
type walletSummary struct {
	Name      string `json:"name"`
	Address   string `json:"address"`
	Scheme    string `json:"scheme"`
	Path      string `json:"path"`
	PublicKey string `json:"public_key,omitempty"`
	Imported  bool   `json:"imported"`
	CreatedAt string `json:"created_at,omitempty"`
	Explorer  string `json:"explorer,omitempty"`
	Mnemonic  string `json:"mnemonic,omitempty"`
}

func summarize(w *wallet.Wallet, explorer string) walletSummary {
	s := walletSummary{
		Name:      w.Name,
		Address:   w.Address,
		Scheme:    w.Scheme.String(),
		Path:      w.Path,
		PublicKey: w.PublicKey,
		Imported:  w.Imported,
	}
	if !w.CreatedAt.IsZero() {
		s.CreatedAt = w.CreatedAt.UTC().Format(time.RFC3339)
	}
	if explorer != "" {
		s.Explorer = chain.AccountURL(explorer, w.Address)
	}
	return s
}

// resolveScheme returns the --scheme flag or the configured default.
func resolveScheme(cc *CommandContext) (wallet.Scheme, error) {
	name := walletScheme
	if name == "" && cc.Cfg != nil {
		name = cc.Cfg.GetDefaultScheme()
	}
	return wallet.ParseScheme(name)
}

// validateNewWallet checks the name is valid and unused.
func validateNewWallet(cc *CommandContext, name string) error {
	if err := wallet.ValidateWalletName(name); err != nil {
		if suggested := wallet.SuggestWalletName(name); suggested != "" && suggested != name {
			return walleterr.WithSuggestion(err, fmt.Sprintf("try '%s'", suggested))
		}
		return err
	}

	exists, err := cc.Storage.Exists(name)
	if err != nil {
		return err
	}
	if exists {
		return walleterr.WithSuggestion(
			wallet.ErrWalletExists,
			fmt.Sprintf("wallet '%s' already exists. Choose a different name.", name),
		)
	}
	return nil
}

func newProvisioner(cc *CommandContext, scheme wallet.Scheme, words int) *account.Provisioner {
	return account.NewProvisioner(&account.Config{
		Scheme:    scheme,
		WordCount: words,
		Logger:    cc.Logger().Named("account"),
		Metrics:   cc.metrics(),
	})
}

func runWalletCreate(cmd *cobra.Command, args []string) error {
	cc, err := requireCmdContext(cmd)
	if err != nil {
		return err
	}
	name := args[0]

	if createWords != 12 && createWords != 24 {
		return walleterr.WithSuggestion(walleterr.ErrInvalidInput, "word count must be 12 or 24")
	}
	if err = validateNewWallet(cc, name); err != nil {
		return err
	}
	scheme, err := resolveScheme(cc)
	if err != nil {
		return err
	}

	ctx, cancel := contextWithTimeout(cmd, walletOpTimeout)
	defer cancel()

	acct, err := newProvisioner(cc, scheme, createWords).CreateAccount(ctx)
	if err != nil {
		return err
	}
	mnemonic := acct.Mnemonic
	acct.Forget()

	password, err := promptNewPasswordFn()
	if err != nil {
		return err
	}

	w, saved, err := cc.Wallets().Save(&walletservice.SaveRequest{
		Name:     name,
		Mnemonic: mnemonic,
		Scheme:   scheme,
		Password: password,
	})
	if err != nil {
		return err
	}
	saved.Forget()

	return displayNewWallet(cmd, cc, w, mnemonic)
}

func runWalletImport(cmd *cobra.Command, args []string) error {
	cc, err := requireCmdContext(cmd)
	if err != nil {
		return err
	}
	name := args[0]

	if err = validateNewWallet(cc, name); err != nil {
		return err
	}
	scheme, err := resolveScheme(cc)
	if err != nil {
		return err
	}

	input := importInput
	if input == "" {
		if input, err = promptMnemonicFn(); err != nil {
			return err
		}
	}
	phrase := wallet.NormalizeMnemonicInput(input)
	if typos := wallet.DetectTypos(phrase); len(typos) > 0 {
		return walleterr.WithSuggestion(walleterr.ErrInvalidMnemonic, wallet.FormatTypoSuggestions(typos))
	}

	ctx, cancel := contextWithTimeout(cmd, walletOpTimeout)
	defer cancel()

	acct, err := newProvisioner(cc, scheme, 0).Import(ctx, strings.Fields(phrase))
	if err != nil {
		return walleterr.WithSuggestion(err, "check the word order and that the phrase has 12 or 24 words")
	}
	acct.Forget()

	password, err := promptNewPasswordFn()
	if err != nil {
		return err
	}

	w, saved, err := cc.Wallets().Save(&walletservice.SaveRequest{
		Name:     name,
		Mnemonic: phrase,
		Scheme:   scheme,
		Password: password,
		Imported: true,
	})
	if err != nil {
		return err
	}
	saved.Forget()

	return displayNewWallet(cmd, cc, w, "")
}

// displayNewWallet reports a saved wallet. A non-empty mnemonic is shown once.
func displayNewWallet(cmd *cobra.Command, cc *CommandContext, w *wallet.Wallet, mnemonic string) error {
	wr := cmd.OutOrStdout()
	explorer := ""
	if cc.Cfg != nil {
		explorer = cc.Cfg.GetExplorer()
	}

	if formatFor(cmd).IsJSON() {
		s := summarize(w, explorer)
		s.Mnemonic = mnemonic
		return output.WriteJSON(wr, s)
	}

	if mnemonic != "" {
		displayMnemonic(wr, mnemonic)
	}
	out(wr, "Address: %s\n", w.Address)
	outln(wr)
	verb := "created"
	if w.Imported {
		verb = "imported"
	}
	output.Success(wr, "Wallet '%s' %s successfully.", w.Name, verb)
	return nil
}

// displayMnemonic shows the recovery phrase with formatting.
func displayMnemonic(w io.Writer, mnemonic string) {
	outln(w)
	outln(w, "═══════════════════════════════════════════════════════════════")
	outln(w, "                    RECOVERY PHRASE")
	outln(w, "═══════════════════════════════════════════════════════════════")
	outln(w)
	outln(w, "Write down these words in order and store them securely.")
	outln(w, "This is the ONLY way to recover your wallet.")
	outln(w)

	for i, word := range strings.Fields(mnemonic) {
		out(w, "%2d. %s\n", i+1, word)
	}

	outln(w)
	outln(w, "═══════════════════════════════════════════════════════════════")
	outln(w)
}

func runWalletList(cmd *cobra.Command, _ []string) error {
	cc, err := requireCmdContext(cmd)
	if err != nil {
		return err
	}
	svc := cc.Wallets()

	names, err := svc.List()
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if formatFor(cmd).IsJSON() {
		wallets := make([]walletSummary, 0, len(names))
		for _, name := range names {
			meta, metaErr := svc.LoadMetadata(name)
			if metaErr != nil {
				cc.Logger().Error("reading wallet %s: %v", name, metaErr)
				continue
			}
			wallets = append(wallets, summarize(meta, ""))
		}
		return output.WriteJSON(w, wallets)
	}

	if len(names) == 0 {
		outln(w, "No wallets found.")
		outln(w, "Create one with: suiwallet wallet create <name>")
		return nil
	}

	table := output.NewTable("NAME", "ADDRESS", "SCHEME")
	for _, name := range names {
		meta, metaErr := svc.LoadMetadata(name)
		if metaErr != nil {
			table.AddRow(name, "(unreadable)", "")
			continue
		}
		table.AddRow(name, output.ShortAddress(meta.Address), meta.Scheme.String())
	}
	return table.Render(w)
}

func runWalletShow(cmd *cobra.Command, args []string) error {
	cc, err := requireCmdContext(cmd)
	if err != nil {
		return err
	}

	meta, err := cc.Wallets().LoadMetadata(args[0])
	if err != nil {
		return err
	}

	explorer := ""
	if cc.Cfg != nil {
		explorer = cc.Cfg.GetExplorer()
	}
	s := summarize(meta, explorer)

	w := cmd.OutOrStdout()
	if formatFor(cmd).IsJSON() {
		return output.WriteJSON(w, s)
	}

	out(w, "Wallet:   %s\n", s.Name)
	out(w, "Address:  %s\n", s.Address)
	out(w, "Scheme:   %s\n", s.Scheme)
	out(w, "Path:     %s\n", s.Path)
	out(w, "Imported: %t\n", s.Imported)
	if s.CreatedAt != "" {
		out(w, "Created:  %s\n", meta.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	if s.Explorer != "" {
		out(w, "Explorer: %s\n", s.Explorer)
	}
	return nil
}
