package provkit

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/spf13/cobra"
)

var pubkeysCmd = &cobra.Command{
	Use:   "pubkeys",
	Short: "List the accumulated public keys",
	Long:  "Pubkeys lists the public keys collected from every configuration directory's pubkeys/ subdirectory, in processing order, with a short fingerprint for quick comparison.",
	Args:  cobra.NoArgs,
	RunE:  runPubkeys,
}

func init() {
	rootCmd.AddCommand(pubkeysCmd)
}

func runPubkeys(cmd *cobra.Command, _ []string) error {
	w := cmd.OutOrStdout()
	for _, key := range st.Pubkeys {
		fmt.Fprintf(w, "%016x  %s\n", xxhash.Sum64String(key), keyComment(key))
	}
	fmt.Fprintf(w, "%d keys\n", len(st.Pubkeys))
	return nil
}

// keyComment returns the trailing comment field of an OpenSSH public key,
// falling back to the key type when there is none.
func keyComment(key string) string {
	fields := strings.Fields(key)
	if len(fields) >= 3 {
		return fields[2]
	}
	if len(fields) > 0 {
		return fields[0]
	}
	return "(empty)"
}
