// Package mirror maintains a local relational copy of the remote device
// catalog.
//
// A mirror pass has two phases. Fetch reads the full catalog (assets,
// devices, relations) and categorizes every asset into country, state, or
// device-like using an ordered predicate chain: exact profile match first,
// then type keywords, then name patterns. Persist upserts the categorized
// snapshot into the country_asset, state_asset, and devices tables, keyed
// by natural identity (country name, state name per country, serial
// number) so repeated passes converge instead of duplicating.
//
// The pass degrades instead of aborting: missing relations, attributes, or
// parents fall back to documented defaults (DEFAULT_COUNTRY, DEFAULT_STATE,
// zero coordinates, firmware "1.0.0"), and each
// persisted kind runs in its own transaction so one failing kind does not
// roll back the others.
package mirror
