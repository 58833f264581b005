package s3

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Client is the subset of the S3 API used by the store.
// *s3.Client satisfies it; tests substitute a mock.
type Client interface {
	manager.UploadAPIClient
	s3.HeadObjectAPIClient
	s3.ListObjectsV2APIClient

	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// ClientOptions configures NewClient.
type ClientOptions struct {
	// Region overrides the region from the default config chain.
	Region string

	// EndpointURL points the client at an S3-compatible endpoint
	// (e.g. a local MinIO used in CI).
	EndpointURL string

	// UsePathStyle forces path-style addressing, required by most
	// S3-compatible endpoints.
	UsePathStyle bool
}

// WithRegion sets the region.
func WithRegion(region string) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.Region = region
	}
}

// WithEndpoint points the client at an S3-compatible endpoint.
func WithEndpoint(url string, pathStyle bool) func(*ClientOptions) {
	return func(o *ClientOptions) {
		o.EndpointURL = url
		o.UsePathStyle = pathStyle
	}
}

// NewClient creates an S3 client from the default AWS config chain
// (environment, shared config, instance metadata).
func NewClient(ctx context.Context, optFns ...func(*ClientOptions)) (*s3.Client, error) {
	var opts ClientOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		if opts.EndpointURL != "" {
			o.BaseEndpoint = aws.String(opts.EndpointURL)
		}
		o.UsePathStyle = opts.UsePathStyle
	}), nil
}
