package provkit

import (
	"fmt"

	shellquote "github.com/kballard/go-shellquote"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan <bundle>...",
	Short: "Print the deployment steps for the selected bundles",
	Long:  "Plan resolves the named bundles plus any common bundles and prints the copy and run steps a node deployment would perform, as shell commands.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	names := append([]string{}, st.CommonBundles...)
	names = append(names, args...)

	w := cmd.OutOrStdout()
	image := st.ImageNames[st.ImageName]
	if image == "" {
		image = st.ImageName
	}
	fmt.Fprintf(w, "# node %s (%s)\n", st.NodeName(), image)

	seen := make(map[string]bool, len(names))
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		b, ok := st.Bundles.Get(name)
		if !ok {
			return fmt.Errorf("unknown bundle %q", name)
		}
		fmt.Fprintf(w, "# bundle %s\n", name)
		for _, target := range sortedKeys(b.FileMap) {
			fmt.Fprintln(w, shellquote.Join("install", "-D", b.FileMap[target], target))
		}
		for _, target := range sortedKeys(b.ScriptMap) {
			fmt.Fprintln(w, shellquote.Join("install", "-D", b.ScriptMap[target], target))
			fmt.Fprintln(w, shellquote.Join("sh", target))
		}
	}
	return nil
}
