package cli

import (
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/charmbracelet/huh"
	"github.com/rileyhilliard/gpuoverlay/internal/errors"
	"github.com/rileyhilliard/gpuoverlay/internal/logger"
	"github.com/rileyhilliard/gpuoverlay/internal/prefs"
	"github.com/rileyhilliard/gpuoverlay/internal/ui"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

var prefsResetYes bool

// prefsCmd groups the preference subcommands
var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Inspect or reset saved overlay preferences",
	Long: `The overlay remembers where you dragged it and whether you closed it.
These commands show or clear what it saved.`,
}

var prefsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print saved preferences",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openPrefs(cfg)
		if err != nil {
			return err
		}
		return prefsShow(store, cmd.OutOrStdout())
	},
}

var prefsResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Forget the overlay position and closed state",
	Long: `Remove the saved position and closed flag. The next run places the overlay
at the top-right corner, open.

Examples:
  gpuoverlay prefs reset
  gpuoverlay prefs reset --yes`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		store, err := openPrefs(cfg)
		if err != nil {
			return err
		}

		if !prefsResetYes {
			// Can't show interactive prompts without a terminal
			if !term.IsTerminal(int(os.Stdin.Fd())) {
				return errors.New(errors.ErrPrefs,
					"Not resetting without confirmation",
					"Pass --yes to reset non-interactively")
			}
			return confirmAndReset(store, cmd.OutOrStdout())
		}
		return prefsReset(store, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(prefsCmd)
	prefsCmd.AddCommand(prefsShowCmd, prefsResetCmd)
	prefsResetCmd.Flags().BoolVarP(&prefsResetYes, "yes", "y", false, "skip the confirmation prompt")
}

// keyLister is implemented by stores that can enumerate their contents.
type keyLister interface {
	Keys() map[string]string
}

func prefsShow(store keyLister, out io.Writer) error {
	if p, ok := store.(interface{ Path() string }); ok {
		fmt.Fprintln(out, ui.Muted("file: "+p.Path()))
	}

	values := store.Keys()
	if len(values) == 0 {
		fmt.Fprintln(out, "no saved preferences")
		return nil
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %s\n", k, values[k])
	}
	return nil
}

func prefsReset(store prefs.Store, out io.Writer) error {
	if err := prefs.Reset(store); err != nil {
		return err
	}
	logger.Default().Debug("overlay preferences cleared")
	fmt.Fprintln(out, ui.Success("Overlay preferences cleared."))
	return nil
}

// confirmAndReset prompts, then resets. Only an explicit "no" or an aborted
// prompt counts as a cancel.
func confirmAndReset(store *prefs.FileStore, out io.Writer) error {
	confirmed, err := confirmReset(store.Path())
	if err != nil && !stderrors.Is(err, huh.ErrUserAborted) {
		return errors.WrapWithCode(err, errors.ErrPrefs,
			"Confirmation prompt failed",
			"Pass --yes to reset without a prompt")
	}
	if err != nil || !confirmed {
		fmt.Fprintln(out, ui.Warning("Cancelled."))
		return nil
	}
	return prefsReset(store, out)
}

// confirmReset asks before clearing preferences.
var confirmReset = func(path string) (bool, error) {
	var confirm bool
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Reset overlay preferences?").
				Description("Clears the saved position and closed state in " + path).
				Value(&confirm),
		),
	)
	if err := form.Run(); err != nil {
		return false, err
	}
	return confirm, nil
}
