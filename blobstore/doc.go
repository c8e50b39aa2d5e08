// Package blobstore abstracts where trait-table blobs live.
//
// A Table only needs a way to open an independent sequential read pass over
// its backing blob, and writers only need an append sink, so the Store
// interface is deliberately small: Open and Create. Implementations exist
// for the local file system, Amazon S3, MinIO/S3-compatible storage, and an
// in-memory store for tests.
//
// Trait tables are often shipped compressed. OpenDecoded and CreateEncoded
// layer transparent gzip, zstd, or lz4 codecs over a store based on the
// blob name's extension.
package blobstore
