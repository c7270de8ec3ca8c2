// Package storage persists the last closest-arcade result between cycles.
//
// The state is a single JSON document: when the check ran, which arcade was closest
// and how far away it was. The default backend is a file on local disk, written
// atomically through a temporary file and a rename. A Redis backend keeps the same
// document under one key for deployments without a persistent volume.
//
// A missing state is not an error; a state that exists but cannot be decoded is
// reported as ErrCorruptState and left untouched.
package storage
