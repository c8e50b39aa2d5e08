// Package s3 provides an Amazon S3 implementation of blobstore.Store.
//
// Reads stream directly from GetObject bodies, so a table pass never buffers
// the whole blob. Writes go through a managed multipart upload.
package s3
