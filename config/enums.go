package config

// How trailing comment text of an enumerator is validated before the
// surrounding quotation marks are removed.
// ENUM(strict, warn, legacy)
type QuotePolicy int

// Strips reports whether the unvalidated first/last character removal is
// allowed for malformed comments.
func (q QuotePolicy) Strips() bool {
	return q == QuotePolicyWarn || q == QuotePolicyLegacy
}
