package ddc

// config holds decoder settings.
type config struct {
	// debug emits one Debug annotation per input event.
	debug bool

	// strictRepeatedStart requires the address after a repeated START to
	// belong to the protocol that set the offset.
	strictRepeatedStart bool

	// observer is called with each finalized transaction.
	observer func(Transaction)
}

func defaultConfig() config {
	return config{debug: true}
}

// Option configures a Decoder.
type Option func(*config)

// WithDebug enables or disables the per-event Debug trace.
func WithDebug(enabled bool) Option {
	return func(c *config) {
		c.debug = enabled
	}
}

// WithStrictRepeatedStart re-validates the device address after a repeated
// START. A mismatch downgrades the transaction to ProtocolUnknown.
func WithStrictRepeatedStart(strict bool) Option {
	return func(c *config) {
		c.strictRepeatedStart = strict
	}
}

// WithObserver registers fn to receive every finalized transaction, after
// its annotations have been emitted.
//
// Example:
//
//	var txs []ddc.Transaction
//	dec := ddc.NewDecoder(catalog.Default(), sink,
//	    ddc.WithObserver(func(tx ddc.Transaction) { txs = append(txs, tx) }),
//	)
func WithObserver(fn func(Transaction)) Option {
	return func(c *config) {
		c.observer = fn
	}
}
