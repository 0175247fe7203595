// Package ttlstore provides a process-local, capacity-bounded key/value store with per-entry time to live.
//
// Features:
//
//  - Fixed capacity with deterministic eviction (oldest write first, or least recently used).
//  - Optional expiration per entry, expired entries are never served.
//  - Lazy expiration on read and periodic background sweep.
//  - Background sweep is stopped synchronously with Close.
//  - Soft-typed reads with GetAs, type mismatch yields a miss instead of a panic.
//  - Single-flight loading of missing values.
//  - Allows logging, stats collection.
//  - Can serve as a backend for github.com/bool64/cache.Failover.
package ttlstore
