package roots3

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go/logging"
	"github.com/aws/smithy-go/middleware"
)

// gatewayRegion is a placeholder region. The gateway routes on the request
// path and API key, never on region, but the SDK requires one.
const gatewayRegion = "weur"

// Client issues bucket and object operations against a Root storage gateway,
// scoped to a single project. It is immutable after construction and safe
// for concurrent use. It holds no connections needing explicit teardown.
type Client struct {
	api       *s3.Client
	endpoint  string
	projectID int
}

// S3Credentials are raw S3 credentials for talking to the gateway (or any
// S3-compatible endpoint) without the project-scoped API-key route. Used by
// NewWithS3Credentials.
type S3Credentials struct {
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// BucketInfo describes a bucket returned by ListBuckets.
type BucketInfo struct {
	Name      string
	CreatedAt time.Time
}

// ObjectInfo describes an object, as returned by GetObject, HeadObject and
// ListObjects. List results carry no ContentType or Metadata.
type ObjectInfo struct {
	Key          string
	Size         int64
	LastModified time.Time
	ETag         string
	ContentType  string
	Metadata     map[string]string
}

// PutResult is the outcome of a successful PutObject.
type PutResult struct {
	ETag      string
	VersionID string
}

// PutOption configures optional parameters on a PutObject request.
type PutOption func(*s3.PutObjectInput)

// WithContentType sets the content type of the uploaded object.
func WithContentType(ct string) PutOption {
	return func(input *s3.PutObjectInput) {
		input.ContentType = aws.String(ct)
	}
}

// WithMetadata attaches user-defined metadata to the uploaded object.
func WithMetadata(m map[string]string) PutOption {
	return func(input *s3.PutObjectInput) {
		input.Metadata = m
	}
}

// ListOption configures optional parameters on a ListObjects request.
type ListOption func(*s3.ListObjectsV2Input)

// WithPrefix restricts list results to keys starting with prefix.
func WithPrefix(prefix string) ListOption {
	return func(input *s3.ListObjectsV2Input) {
		input.Prefix = aws.String(prefix)
	}
}

// New creates a Client bound to endpoint, authenticating every request with
// apiKey and scoping it to projectID. The endpoint must be an absolute http
// or https URL; it is used exactly as given, with path-style bucket
// addressing. No network call is made here.
func New(endpoint, key string, projectID int) (*Client, error) {
	ak, err := newAPIKey(key)
	if err != nil {
		return nil, configErr("New", err)
	}
	if projectID <= 0 {
		return nil, configErr("New", fmt.Errorf("project id must be positive, got %d", projectID))
	}
	if err := validateEndpoint(endpoint); err != nil {
		return nil, configErr("New", err)
	}

	// The gateway never checks a signature, so requests go out unsigned;
	// the API key header added by the route middleware is the credential.
	api := newS3(endpoint, aws.AnonymousCredentials{},
		[]func(*middleware.Stack) error{withProjectRoute(ak, projectID)})

	return &Client{api: api, endpoint: endpoint, projectID: projectID}, nil
}

// NewWithS3Credentials creates a Client that talks to endpoint with plain
// SigV4-signed S3 requests. No API key header is added and no project route
// rewrite happens; the gateway treats the caller as a raw S3 principal.
func NewWithS3Credentials(endpoint string, creds S3Credentials) (*Client, error) {
	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" {
		return nil, configErr("NewWithS3Credentials", fmt.Errorf("access key id and secret access key are required"))
	}
	if err := validateEndpoint(endpoint); err != nil {
		return nil, configErr("NewWithS3Credentials", err)
	}

	provider := credentials.NewStaticCredentialsProvider(
		creds.AccessKeyID, creds.SecretAccessKey, creds.SessionToken)
	api := newS3(endpoint, provider, nil)

	return &Client{api: api, endpoint: endpoint}, nil
}

func newS3(endpoint string, provider aws.CredentialsProvider, apiOptions []func(*middleware.Stack) error) *s3.Client {
	return s3.New(s3.Options{
		Region:       gatewayRegion,
		Credentials:  provider,
		BaseEndpoint: aws.String(endpoint),
		UsePathStyle: true,
		Logger:       logging.Nop{},
		APIOptions:   apiOptions,
	})
}

func validateEndpoint(endpoint string) error {
	u, err := url.Parse(endpoint)
	if err != nil {
		return fmt.Errorf("invalid endpoint url %q: %v", endpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("endpoint url %q must be absolute with an http or https scheme", endpoint)
	}
	if u.Host == "" {
		return fmt.Errorf("endpoint url %q has no host", endpoint)
	}
	return nil
}

// Endpoint returns the base URL the client was constructed with.
func (c *Client) Endpoint() string { return c.endpoint }

// ProjectID returns the project scope of the client, or 0 in raw-credential
// mode.
func (c *Client) ProjectID() int { return c.projectID }

// CreateBucket creates a bucket in the client's project. Creating a bucket
// that already exists surfaces the backend's conflict error; there is no
// idempotency on top.
func (c *Client) CreateBucket(ctx context.Context, name string) error {
	_, err := c.api.CreateBucket(ctx, &s3.CreateBucketInput{
		Bucket: aws.String(name),
	})
	return classify("CreateBucket", err)
}

// DeleteBucket deletes a bucket. The backend requires the bucket to exist
// and be empty; violations come back as not-found or conflict errors.
func (c *Client) DeleteBucket(ctx context.Context, name string) error {
	_, err := c.api.DeleteBucket(ctx, &s3.DeleteBucketInput{
		Bucket: aws.String(name),
	})
	return classify("DeleteBucket", err)
}

// ListBuckets returns the buckets in the client's project, in backend order.
func (c *Client) ListBuckets(ctx context.Context) ([]BucketInfo, error) {
	resp, err := c.api.ListBuckets(ctx, &s3.ListBucketsInput{})
	if err != nil {
		return nil, classify("ListBuckets", err)
	}

	buckets := make([]BucketInfo, 0, len(resp.Buckets))
	for _, b := range resp.Buckets {
		info := BucketInfo{Name: aws.ToString(b.Name)}
		if b.CreationDate != nil {
			info.CreatedAt = *b.CreationDate
		}
		buckets = append(buckets, info)
	}
	return buckets, nil
}

// PutObject streams body to bucket/key. The body is handed to the transport
// as-is and is never buffered in full. If the transfer fails partway, object
// visibility is up to the backend's atomicity.
func (c *Client) PutObject(ctx context.Context, bucket, key string, body io.Reader, opts ...PutOption) (*PutResult, error) {
	input := &s3.PutObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	for _, opt := range opts {
		opt(input)
	}

	resp, err := c.api.PutObject(ctx, input)
	if err != nil {
		return nil, classify("PutObject", err)
	}
	return &PutResult{
		ETag:      aws.ToString(resp.ETag),
		VersionID: aws.ToString(resp.VersionId),
	}, nil
}

// GetObject returns the object body as a lazy stream plus its metadata. A
// missing bucket or key fails here, before any streaming begins; failures
// while consuming the stream surface from the returned reader. The caller
// must close the reader.
func (c *Client) GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, *ObjectInfo, error) {
	resp, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, nil, classify("GetObject", err)
	}

	info := &ObjectInfo{
		Key:      key,
		Size:     aws.ToInt64(resp.ContentLength),
		ETag:     aws.ToString(resp.ETag),
		Metadata: resp.Metadata,
	}
	if resp.LastModified != nil {
		info.LastModified = *resp.LastModified
	}
	if resp.ContentType != nil {
		info.ContentType = *resp.ContentType
	}
	return resp.Body, info, nil
}

// DeleteObject removes an object. Deleting a key that does not exist is a
// success, per S3 semantics; the backend's answer is passed through, never
// reinterpreted as not-found.
func (c *Client) DeleteObject(ctx context.Context, bucket, key string) error {
	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	return classify("DeleteObject", err)
}

// ListObjects returns the keys under bucket, in backend order. All pages are
// drained into a single slice.
func (c *Client) ListObjects(ctx context.Context, bucket string, opts ...ListOption) ([]ObjectInfo, error) {
	input := &s3.ListObjectsV2Input{
		Bucket: aws.String(bucket),
	}
	for _, opt := range opts {
		opt(input)
	}

	var objects []ObjectInfo
	paginator := s3.NewListObjectsV2Paginator(c.api, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classify("ListObjects", err)
		}
		for _, obj := range page.Contents {
			info := ObjectInfo{
				Key:  aws.ToString(obj.Key),
				Size: aws.ToInt64(obj.Size),
				ETag: aws.ToString(obj.ETag),
			}
			if obj.LastModified != nil {
				info.LastModified = *obj.LastModified
			}
			objects = append(objects, info)
		}
	}
	return objects, nil
}

// HeadObject returns object metadata without transferring the body. A
// missing key is a not-found error.
func (c *Client) HeadObject(ctx context.Context, bucket, key string) (*ObjectInfo, error) {
	resp, err := c.api.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, classify("HeadObject", err)
	}

	info := &ObjectInfo{
		Key:      key,
		Size:     aws.ToInt64(resp.ContentLength),
		ETag:     aws.ToString(resp.ETag),
		Metadata: resp.Metadata,
	}
	if resp.LastModified != nil {
		info.LastModified = *resp.LastModified
	}
	if resp.ContentType != nil {
		info.ContentType = *resp.ContentType
	}
	return info, nil
}

// CopyObject copies srcBucket/srcKey to dstBucket/dstKey server-side.
func (c *Client) CopyObject(ctx context.Context, srcBucket, srcKey, dstBucket, dstKey string) error {
	_, err := c.api.CopyObject(ctx, &s3.CopyObjectInput{
		Bucket:     aws.String(dstBucket),
		Key:        aws.String(dstKey),
		CopySource: aws.String(fmt.Sprintf("%s/%s", srcBucket, srcKey)),
	})
	return classify("CopyObject", err)
}
