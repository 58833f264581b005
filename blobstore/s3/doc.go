// Package s3 provides an S3 implementation of the blobstore.BlobStore interface.
//
// # Usage
//
//	client, err := s3.NewClient(ctx, s3.WithRegion("us-east-1"))
//	store := s3.NewStore(client, "my-bucket", "datasets/ogbn-mag/")
//
// # Features
//
//   - Range reads so feature slices can be fetched without downloading
//     whole payload files
//   - Multipart uploads with CRC32C checksums for large artifacts
//   - Automatic pagination for listing
//   - Configurable prefix for keeping several datasets in one bucket
//
// For atomic manifest commits with concurrent writers, see DDBCommitStore.
package s3
