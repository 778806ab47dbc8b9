// Package groupshare groups uploaded files into named albums backed by
// two independent stores: a relational metadata store and an object
// store holding the bytes. The service keeps the two aligned across
// create, upload, list and delete operations, and can reconstruct media
// records from the object store alone.
//
// Create a service with functional options:
//
//	svc, err := groupshare.New(
//		groupshare.WithRepository(repo),
//		groupshare.WithBlobStore(store),
//	)
//
// Repositories live under repo/ (memory, postgres) and blob stores under
// storage/ (memory, fs, s3).
package groupshare
