package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/solmock/shadow-oracle/ledger"
	"github.com/solmock/shadow-oracle/price"
	"github.com/solmock/shadow-oracle/provider/chainlink"
	"github.com/solmock/shadow-oracle/provider/pyth"
	"github.com/solmock/shadow-oracle/provider/switchboard"
	"github.com/solmock/shadow-oracle/sandbox"
)

var (
	feedsProvider string
	feedsDB       string
	feedsDump     bool
)

var feedsCmd = &cobra.Command{
	Use:   "feeds",
	Short: "Fabricate the standard feed set and print the resulting accounts",
	RunE:  runFeeds,
}

func init() {
	feedsCmd.Flags().StringVar(&feedsProvider, "provider", "all", "provider to fabricate (pyth|switchboard|chainlink|all)")
	feedsCmd.Flags().StringVar(&feedsDB, "db", "", "persist accounts to a store at this path")
	feedsCmd.Flags().BoolVar(&feedsDump, "dump", false, "hex-dump each account's data")
	rootCmd.AddCommand(feedsCmd)
}

// standardAsset is one entry of the standard feed set, with defaults that the
// configuration file may override.
type standardAsset struct {
	name       string
	price      float64
	confidence float64
}

func standardAssets() []standardAsset {
	assets := []standardAsset{
		{"sol", 100.0, 0.1},
		{"btc", 43000.0, 10.0},
		{"eth", 2200.0, 1.0},
		{"usdc", 1.0, 0.0001},
		{"usdt", 1.0, 0.0001},
	}
	for i := range assets {
		priceKey := fmt.Sprintf("feeds.%s.price", assets[i].name)
		confKey := fmt.Sprintf("feeds.%s.confidence", assets[i].name)
		if viper.IsSet(priceKey) {
			assets[i].price = viper.GetFloat64(priceKey)
		}
		if viper.IsSet(confKey) {
			assets[i].confidence = viper.GetFloat64(confKey)
		}
	}
	return assets
}

// feedCreator is the part of a provider registry the feeds command needs.
type feedCreator interface {
	CreatePriceFeed(cfg price.Config) solana.PublicKey
}

func runFeeds(cmd *cobra.Command, args []string) error {
	log := newLogger()
	defer log.Sync()

	var sb *sandbox.Sandbox
	var err error
	if feedsDB != "" {
		sb, err = sandbox.Open(feedsDB, sandbox.WithLogger(log))
		if err != nil {
			return err
		}
	} else {
		sb = sandbox.New(sandbox.WithLogger(log))
	}
	defer sb.Close()

	creators := map[string]feedCreator{}
	switch feedsProvider {
	case "pyth":
		creators["pyth"] = pyth.New(sb)
	case "switchboard":
		creators["switchboard"] = switchboard.New(sb)
	case "chainlink":
		creators["chainlink"] = chainlink.New(sb)
	case "all":
		creators["pyth"] = pyth.New(sb)
		creators["switchboard"] = switchboard.New(sb)
		creators["chainlink"] = chainlink.New(sb)
	default:
		return fmt.Errorf("unknown provider %q", feedsProvider)
	}

	assets := standardAssets()
	for name, creator := range creators {
		fmt.Printf("%s:\n", name)
		for _, asset := range assets {
			addr := creator.CreatePriceFeed(price.NewUSD(asset.price, asset.confidence))
			acct, _ := sb.GetAccount(addr)
			fmt.Printf("  %-5s %s  $%.4f  (%d bytes)\n", asset.name, addr, asset.price, len(acct.Data))
			if feedsDump {
				dumpAccount(acct)
			}
		}
	}
	return nil
}

func dumpAccount(acct ledger.Account) {
	fmt.Printf("    owner: %s  lamports: %d\n", acct.Owner, acct.Lamports)
	fmt.Print(indent(hex.Dump(acct.Data), "    "))
}
