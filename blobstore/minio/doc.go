// Package minio provides a MinIO / S3-compatible implementation of
// blobstore.Store.
package minio
