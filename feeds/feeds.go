// Package feeds exposes the canonical mainnet price feed addresses for each
// oracle provider. They carry no behavior; use them with CreatePriceFeedAt to
// fabricate accounts at the addresses production code already knows.
package feeds

import "github.com/gagliardetto/solana-go"

// Pyth mainnet price accounts.
var Pyth = struct {
	SOLUSD  solana.PublicKey
	BTCUSD  solana.PublicKey
	ETHUSD  solana.PublicKey
	USDCUSD solana.PublicKey
	USDTUSD solana.PublicKey
}{
	SOLUSD:  solana.MustPublicKeyFromBase58("H6ARHf6YXhGYeQfUzQNGk6rDNnLBQKrenN712K4AQJEG"),
	BTCUSD:  solana.MustPublicKeyFromBase58("GVXRSBjFk6e6J3NbVPXohDJetcTjaeeuykUpbQF8UoMU"),
	ETHUSD:  solana.MustPublicKeyFromBase58("JBu1AL4obBcCMqKBBxhpWCNUt136ijcuMZLFvTP7iWdB"),
	USDCUSD: solana.MustPublicKeyFromBase58("Gnt27xtC473ZT2Mw5u8wZ68Z3gULkSTb5DuxJy7eJotD"),
	USDTUSD: solana.MustPublicKeyFromBase58("3vxLXJqLqF3JG5TCbYycbKWRBbCJQLxQmBGCkyqEEefL"),
}

// Switchboard mainnet aggregator accounts.
var Switchboard = struct {
	SOLUSD solana.PublicKey
	BTCUSD solana.PublicKey
	ETHUSD solana.PublicKey
}{
	SOLUSD: solana.MustPublicKeyFromBase58("GvDMxPzN1sCj7L26YDK2HnMRXEQmQ2aemov8YBtPS7vR"),
	BTCUSD: solana.MustPublicKeyFromBase58("8SXvChNYFhRq4EZuZvnhjrB3jJRQCv4k3P4W6hesH3Ee"),
	ETHUSD: solana.MustPublicKeyFromBase58("HNStfhaLnqwF2ZtJUizaA9uHDAVB976r2AgTUx9LrdEo"),
}

// Chainlink mainnet feed accounts.
var Chainlink = struct {
	SOLUSD solana.PublicKey
	BTCUSD solana.PublicKey
	ETHUSD solana.PublicKey
}{
	SOLUSD: solana.MustPublicKeyFromBase58("CcPVS9bqyXbD9cLnTbhhHazLsrua8QMFUHTutPtjyDzq"),
	BTCUSD: solana.MustPublicKeyFromBase58("CGmWwBNsTRDENT5gmVZzRu38GnNnMm1K5C3sFiUUyYQX"),
	ETHUSD: solana.MustPublicKeyFromBase58("5JcBbyiwxPxFMvNJHLxLqg5LPZeC4sC3VdWFfaKManYm"),
}
