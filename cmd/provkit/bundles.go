package provkit

import (
	"fmt"

	"github.com/spf13/cobra"
)

var flagBundleMaps bool

var bundlesCmd = &cobra.Command{
	Use:   "bundles [pattern]",
	Short: "List registered bundles",
	Long:  "Bundles lists the bundles registered by the loaded configuration directories, optionally filtered by a glob pattern on the bundle name.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBundles,
}

func init() {
	rootCmd.AddCommand(bundlesCmd)
	bundlesCmd.Flags().BoolVar(&flagBundleMaps, "maps", false, "also print each bundle's script and file maps")
}

func runBundles(cmd *cobra.Command, args []string) error {
	names := st.Bundles.Names()
	if len(args) == 1 {
		var err error
		names, err = st.Bundles.Match(args[0])
		if err != nil {
			return fmt.Errorf("bad pattern %q: %w", args[0], err)
		}
	}
	w := cmd.OutOrStdout()
	maxName := len("BUNDLE")
	for _, n := range names {
		if len(n) > maxName {
			maxName = len(n)
		}
	}
	fmt.Fprintf(w, "%-*s  %7s  %5s\n", maxName, "BUNDLE", "SCRIPTS", "FILES")
	for _, n := range names {
		b, _ := st.Bundles.Get(n)
		fmt.Fprintf(w, "%-*s  %7d  %5d\n", maxName, n, len(b.ScriptMap), len(b.FileMap))
		if flagBundleMaps {
			for _, target := range sortedKeys(b.ScriptMap) {
				fmt.Fprintf(w, "  run  %s <- %s\n", target, b.ScriptMap[target])
			}
			for _, target := range sortedKeys(b.FileMap) {
				fmt.Fprintf(w, "  copy %s <- %s\n", target, b.FileMap[target])
			}
		}
	}
	return nil
}
