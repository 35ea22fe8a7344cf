package roots3

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/smithy-go/middleware"
	smithyhttp "github.com/aws/smithy-go/transport/http"
)

// apiKeyHeader carries the gateway credential on every request. The gateway
// authenticates on this header alone; no SigV4 signature is computed.
const apiKeyHeader = "x-api-key"

// apiKey is the static gateway credential. It is supplied once at client
// construction and used verbatim for the lifetime of the Client; there is no
// credential chain lookup and no refresh.
type apiKey string

func newAPIKey(raw string) (apiKey, error) {
	if raw == "" {
		return "", fmt.Errorf("api key must not be empty")
	}
	// The key travels as an HTTP header value, so it cannot contain
	// control characters. Anything else is for the backend to judge.
	if strings.ContainsFunc(raw, func(r rune) bool { return r < 0x20 || r == 0x7f }) {
		return "", fmt.Errorf("api key contains control characters")
	}
	return apiKey(raw), nil
}

// projectRoute injects the API key header and rewrites the serialized S3
// request path under the gateway's project-scoped route:
//
//	/api/v1/projects/{projectID}/s3{original path}
//
// It runs in the finalize step, after endpoint resolution has serialized the
// bucket and key into the path and before the request is sent. Query
// parameters are part of the URL and survive the rewrite untouched.
type projectRoute struct {
	key       apiKey
	projectID int
}

func (m *projectRoute) ID() string { return "RootProjectRoute" }

func (m *projectRoute) HandleFinalize(ctx context.Context, in middleware.FinalizeInput, next middleware.FinalizeHandler) (
	middleware.FinalizeOutput, middleware.Metadata, error,
) {
	req, ok := in.Request.(*smithyhttp.Request)
	if !ok {
		return middleware.FinalizeOutput{}, middleware.Metadata{},
			fmt.Errorf("unexpected transport type %T", in.Request)
	}

	req.Header.Set(apiKeyHeader, string(m.key))

	prefix := fmt.Sprintf("/api/v1/projects/%d/s3", m.projectID)
	if req.URL.Path == "/" {
		req.URL.Path = prefix
	} else {
		req.URL.Path = prefix + req.URL.Path
	}
	if req.URL.RawPath != "" {
		req.URL.RawPath = prefix + req.URL.RawPath
	}

	return next.HandleFinalize(ctx, in)
}

// withProjectRoute registers the route middleware on an operation stack. It
// is appended to s3.Options.APIOptions so every operation issued by the
// Client carries exactly one project scope, fixed at construction.
func withProjectRoute(key apiKey, projectID int) func(*middleware.Stack) error {
	return func(stack *middleware.Stack) error {
		return stack.Finalize.Insert(&projectRoute{key: key, projectID: projectID}, "ResolveEndpointV2", middleware.After)
	}
}
