// Package store persists Lookout settings and counters in SQLite.
//
// It exposes typed get-with-default and set operations over a single
// key/value table. Reads never fail on a missing key; the caller-supplied
// fallback is returned instead. Seeding inserts defaults for missing keys
// only, so explicit values always survive restarts and upgrades.
package store
