/*
Package roots3 is a project-scoped client for the Root S3-compatible storage
gateway.

The gateway speaks the S3 wire protocol but authenticates with a static API
key and a project identifier instead of SigV4 credentials. Every request a
Client sends targets the exact configured endpoint with path-style bucket
addressing and is rewritten onto the gateway's project route:

	/api/v1/projects/{projectID}/s3/{bucket}/{key}

with the API key carried in the x-api-key header. The project identifier is
fixed at construction and cannot be overridden per call, so a Client can
never issue a cross-project operation.

A Client is immutable after construction and safe for concurrent use:

	client, err := roots3.New("http://localhost:9000", apiKey, 42)
	if err != nil {
	    log.Fatal(err)
	}
	err = client.CreateBucket(ctx, "reports")

Failures are classified (configuration, not found, conflict, transport,
local I/O) and returned unchanged in shape; the package performs no retries
of its own and never terminates the process. Retry policy, if any, belongs
to the underlying AWS SDK transport.
*/
package roots3
