package roots3

// An in-memory stand-in for the Root storage gateway. It implements just
// enough of the S3 wire protocol, mounted under the project route, to
// exercise the client end to end and to record what actually went over the
// wire.

import (
	"crypto/md5"
	"encoding/xml"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"sync"
	"time"
)

type recordedRequest struct {
	Method    string
	Path      string
	RawQuery  string
	APIKey    string
	AuthHdr   string
	BodyBytes int
}

type fakeObject struct {
	data        []byte
	contentType string
	metadata    map[string]string
	modified    time.Time
}

type fakeBucket struct {
	created time.Time
	objects map[string]*fakeObject
}

type fakeGateway struct {
	mu        sync.Mutex
	apiKey    string
	projectID int // 0 means raw-credential mode: no route prefix expected
	buckets   map[string]*fakeBucket
	requests  []recordedRequest
	server    *httptest.Server
}

func newFakeGateway(apiKey string, projectID int) *fakeGateway {
	g := &fakeGateway{
		apiKey:    apiKey,
		projectID: projectID,
		buckets:   make(map[string]*fakeBucket),
	}
	g.server = httptest.NewServer(g)
	return g
}

func (g *fakeGateway) Close() { g.server.Close() }

func (g *fakeGateway) URL() string { return g.server.URL }

func (g *fakeGateway) Requests() []recordedRequest {
	g.mu.Lock()
	defer g.mu.Unlock()
	return append([]recordedRequest(nil), g.requests...)
}

type countingWriter struct {
	http.ResponseWriter
	n int
}

func (w *countingWriter) Write(p []byte) (int, error) {
	n, err := w.ResponseWriter.Write(p)
	w.n += n
	return n, err
}

func (g *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	g.mu.Lock()
	defer g.mu.Unlock()

	cw := &countingWriter{ResponseWriter: w}
	rec := recordedRequest{
		Method:   r.Method,
		Path:     r.URL.Path,
		RawQuery: r.URL.RawQuery,
		APIKey:   r.Header.Get("x-api-key"),
		AuthHdr:  r.Header.Get("Authorization"),
	}
	defer func() {
		rec.BodyBytes = cw.n
		g.requests = append(g.requests, rec)
	}()

	path := r.URL.Path
	if g.projectID > 0 {
		prefix := fmt.Sprintf("/api/v1/projects/%d/s3", g.projectID)
		if !strings.HasPrefix(path, prefix) {
			http.Error(cw, "missing project route: "+path, http.StatusBadRequest)
			return
		}
		if r.Header.Get("x-api-key") != g.apiKey {
			http.Error(cw, "bad api key", http.StatusForbidden)
			return
		}
		path = strings.TrimPrefix(path, prefix)
	}

	if path == "" || path == "/" {
		if r.Method == http.MethodGet {
			g.listBuckets(cw)
			return
		}
		http.Error(cw, "unsupported service operation", http.StatusBadRequest)
		return
	}

	parts := strings.SplitN(strings.TrimPrefix(path, "/"), "/", 2)
	bucket := parts[0]
	if len(parts) == 1 {
		g.bucketOp(cw, r, bucket)
		return
	}
	g.objectOp(cw, r, bucket, parts[1])
}

func (g *fakeGateway) bucketOp(w http.ResponseWriter, r *http.Request, bucket string) {
	b := g.buckets[bucket]
	switch r.Method {
	case http.MethodPut:
		if b != nil {
			writeS3Error(w, http.StatusConflict, "BucketAlreadyExists", "bucket exists: "+bucket)
			return
		}
		g.buckets[bucket] = &fakeBucket{
			created: time.Now().UTC(),
			objects: make(map[string]*fakeObject),
		}
		w.Header().Set("Location", "/"+bucket)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		if b == nil {
			writeS3Error(w, http.StatusNotFound, "NoSuchBucket", "no bucket: "+bucket)
			return
		}
		if len(b.objects) > 0 {
			writeS3Error(w, http.StatusConflict, "BucketNotEmpty", "bucket not empty: "+bucket)
			return
		}
		delete(g.buckets, bucket)
		w.WriteHeader(http.StatusNoContent)
	case http.MethodGet:
		if b == nil {
			writeS3Error(w, http.StatusNotFound, "NoSuchBucket", "no bucket: "+bucket)
			return
		}
		g.listObjects(w, r, bucket, b)
	default:
		http.Error(w, "unsupported bucket operation", http.StatusBadRequest)
	}
}

func (g *fakeGateway) objectOp(w http.ResponseWriter, r *http.Request, bucket, key string) {
	b := g.buckets[bucket]
	switch r.Method {
	case http.MethodPut:
		if b == nil {
			writeS3Error(w, http.StatusNotFound, "NoSuchBucket", "no bucket: "+bucket)
			return
		}
		if src := r.Header.Get("x-amz-copy-source"); src != "" {
			g.copyObject(w, b, src, key)
			return
		}
		data, err := io.ReadAll(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		obj := &fakeObject{
			data:        data,
			contentType: r.Header.Get("Content-Type"),
			metadata:    make(map[string]string),
			modified:    time.Now().UTC(),
		}
		for name, vals := range r.Header {
			lower := strings.ToLower(name)
			if strings.HasPrefix(lower, "x-amz-meta-") && len(vals) > 0 {
				obj.metadata[strings.TrimPrefix(lower, "x-amz-meta-")] = vals[0]
			}
		}
		b.objects[key] = obj
		w.Header().Set("ETag", etagOf(data))
		w.WriteHeader(http.StatusOK)
	case http.MethodGet:
		obj := lookup(b, key)
		if obj == nil {
			writeS3Error(w, http.StatusNotFound, "NoSuchKey", "no key: "+key)
			return
		}
		writeObjectHeaders(w, obj)
		w.WriteHeader(http.StatusOK)
		w.Write(obj.data)
	case http.MethodHead:
		obj := lookup(b, key)
		if obj == nil {
			// HEAD responses carry no error document.
			w.WriteHeader(http.StatusNotFound)
			return
		}
		writeObjectHeaders(w, obj)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		// Idempotent: deleting a missing key (or from a missing bucket)
		// still answers 204.
		if b != nil {
			delete(b.objects, key)
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "unsupported object operation", http.StatusBadRequest)
	}
}

func (g *fakeGateway) copyObject(w http.ResponseWriter, dst *fakeBucket, src, dstKey string) {
	parts := strings.SplitN(strings.TrimPrefix(src, "/"), "/", 2)
	if len(parts) != 2 {
		http.Error(w, "bad copy source", http.StatusBadRequest)
		return
	}
	obj := lookup(g.buckets[parts[0]], parts[1])
	if obj == nil {
		writeS3Error(w, http.StatusNotFound, "NoSuchKey", "no copy source: "+src)
		return
	}
	dup := *obj
	dup.modified = time.Now().UTC()
	dst.objects[dstKey] = &dup

	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `<CopyObjectResult><ETag>%s</ETag><LastModified>%s</LastModified></CopyObjectResult>`,
		xmlEscape(etagOf(dup.data)), dup.modified.Format("2006-01-02T15:04:05Z"))
}

func (g *fakeGateway) listBuckets(w http.ResponseWriter) {
	names := make([]string, 0, len(g.buckets))
	for name := range g.buckets {
		names = append(names, name)
	}
	sort.Strings(names)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString(`<ListAllMyBucketsResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	sb.WriteString(`<Owner><ID>root</ID></Owner><Buckets>`)
	for _, name := range names {
		fmt.Fprintf(&sb, `<Bucket><Name>%s</Name><CreationDate>%s</CreationDate></Bucket>`,
			xmlEscape(name), g.buckets[name].created.Format("2006-01-02T15:04:05Z"))
	}
	sb.WriteString(`</Buckets></ListAllMyBucketsResult>`)

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, sb.String())
}

func (g *fakeGateway) listObjects(w http.ResponseWriter, r *http.Request, bucket string, b *fakeBucket) {
	prefix := r.URL.Query().Get("prefix")

	keys := make([]string, 0, len(b.objects))
	for key := range b.objects {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	var sb strings.Builder
	sb.WriteString(`<?xml version="1.0" encoding="UTF-8"?>`)
	sb.WriteString(`<ListBucketResult xmlns="http://s3.amazonaws.com/doc/2006-03-01/">`)
	fmt.Fprintf(&sb, `<Name>%s</Name><KeyCount>%d</KeyCount><MaxKeys>1000</MaxKeys><IsTruncated>false</IsTruncated>`,
		xmlEscape(bucket), len(keys))
	for _, key := range keys {
		obj := b.objects[key]
		fmt.Fprintf(&sb, `<Contents><Key>%s</Key><LastModified>%s</LastModified><ETag>%s</ETag><Size>%d</Size></Contents>`,
			xmlEscape(key), obj.modified.Format("2006-01-02T15:04:05Z"),
			xmlEscape(etagOf(obj.data)), len(obj.data))
	}
	sb.WriteString(`</ListBucketResult>`)

	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(http.StatusOK)
	io.WriteString(w, sb.String())
}

func lookup(b *fakeBucket, key string) *fakeObject {
	if b == nil {
		return nil
	}
	return b.objects[key]
}

func writeObjectHeaders(w http.ResponseWriter, obj *fakeObject) {
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(obj.data)))
	w.Header().Set("ETag", etagOf(obj.data))
	w.Header().Set("Last-Modified", obj.modified.Format(http.TimeFormat))
	if obj.contentType != "" {
		w.Header().Set("Content-Type", obj.contentType)
	}
	for k, v := range obj.metadata {
		w.Header().Set("x-amz-meta-"+k, v)
	}
}

func writeS3Error(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?><Error><Code>%s</Code><Message>%s</Message></Error>`,
		xmlEscape(code), xmlEscape(message))
}

func etagOf(data []byte) string {
	return fmt.Sprintf("%q", fmt.Sprintf("%x", md5.Sum(data)))
}

func xmlEscape(s string) string {
	var sb strings.Builder
	xml.EscapeText(&sb, []byte(s))
	return sb.String()
}
