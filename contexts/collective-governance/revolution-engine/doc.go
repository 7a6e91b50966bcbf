// Package revolutionengine implements the recurring submission → voting →
// auction cycle inside the collective-governance context.
//
// The module owns the period lifecycle (initiate, date-gated graduation),
// weighted vote tallying with deterministic top-N cutoffs, and the auction
// allocation engine that admits bids under a creator-rate floor and settles
// to the bid maximizing the weighted treasury/creator value function.
// Identity, voting power, and custody stay behind ports; the engine never
// mints, issues shares, or moves cash itself.
package revolutionengine
