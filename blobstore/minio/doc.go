// Package minio provides a BlobStore implementation using the MinIO client.
//
// MinIO is a high-performance, S3-compatible object storage system. This
// package uses the official MinIO Go client for compatibility with MinIO
// and other S3-compatible systems like Ceph, SeaweedFS, and Garage. It is
// the usual choice for self-hosted dataset storage and for CI, where a
// local MinIO stands in for S3.
//
// # Basic Usage
//
//	client, err := minio.New("localhost:9000", &minio.Options{
//	    Creds:  credentials.NewStaticV4("minioadmin", "minioadmin", ""),
//	    Secure: false,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	store := minioblob.NewStore(client, "datasets", "ogbn-mag/")
//
// # Features
//
//   - Range reads for partial feature fetches
//   - Streaming uploads for large payload files
//   - Works with any S3-compatible storage
//   - Air-gap friendly (no AWS dependencies required)
package minio
