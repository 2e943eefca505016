package cli

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/solmock/shadow-oracle/sandbox"
)

var dumpDB string

var dumpCmd = &cobra.Command{
	Use:   "dump <address>",
	Short: "Hex-dump a persisted account from a store",
	Args:  cobra.ExactArgs(1),
	RunE:  runDump,
}

func init() {
	dumpCmd.Flags().StringVar(&dumpDB, "db", "", "store path (required)")
	dumpCmd.MarkFlagRequired("db")
	rootCmd.AddCommand(dumpCmd)
}

func runDump(cmd *cobra.Command, args []string) error {
	addr, err := solana.PublicKeyFromBase58(args[0])
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", args[0], err)
	}

	store, err := sandbox.OpenStore(dumpDB)
	if err != nil {
		return err
	}
	defer store.Close()

	acct, ok, err := store.Get(addr)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("no account at %s", addr)
	}

	fmt.Printf("address:  %s\n", addr)
	fmt.Printf("owner:    %s\n", acct.Owner)
	fmt.Printf("lamports: %d\n", acct.Lamports)
	fmt.Printf("data:     %d bytes\n", len(acct.Data))
	fmt.Print(hex.Dump(acct.Data))
	return nil
}

// indent prefixes every non-empty line of s.
func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = prefix + line
		}
	}
	return strings.Join(lines, "\n")
}
