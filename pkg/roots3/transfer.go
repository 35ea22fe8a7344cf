package roots3

import (
	"context"
	"io"
	"os"
)

// copyChunkSize is the buffer size for streaming downloads to disk.
const copyChunkSize = 32 * 1024

// UploadFile streams the file at path to bucket/key. The file handle is
// released on every exit path. A failure to open or read the file is a local
// I/O error, distinct from any backend failure.
func (c *Client) UploadFile(ctx context.Context, bucket, key, path string, opts ...PutOption) (*PutResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, localErr("UploadFile", err)
	}
	defer f.Close()

	return c.PutObject(ctx, bucket, key, f, opts...)
}

// DownloadFile streams the object at bucket/key into a file at path,
// returning the number of bytes written. On any failure, including
// cancellation mid-stream, the file handle is released and the partial file
// is removed. Failures reading the response stream classify as transport
// errors; failures creating or writing the file as local I/O errors.
func (c *Client) DownloadFile(ctx context.Context, bucket, key, path string) (int64, error) {
	body, _, err := c.GetObject(ctx, bucket, key)
	if err != nil {
		return 0, err
	}
	defer body.Close()

	f, err := os.Create(path)
	if err != nil {
		return 0, localErr("DownloadFile", err)
	}

	written, err := copyStream(f, body)
	if cerr := f.Close(); err == nil && cerr != nil {
		err = localErr("DownloadFile", cerr)
	}
	if err != nil {
		os.Remove(path)
		return written, err
	}
	return written, nil
}

// copyStream is io.Copy with the two failure directions kept apart: source
// (network) errors classify as transport, sink (disk) errors as local I/O.
func copyStream(dst io.Writer, src io.Reader) (int64, error) {
	buf := make([]byte, copyChunkSize)
	var written int64
	for {
		n, rerr := src.Read(buf)
		if n > 0 {
			wn, werr := dst.Write(buf[:n])
			written += int64(wn)
			if werr != nil {
				return written, localErr("DownloadFile", werr)
			}
			if wn < n {
				return written, localErr("DownloadFile", io.ErrShortWrite)
			}
		}
		if rerr == io.EOF {
			return written, nil
		}
		if rerr != nil {
			return written, &Error{Kind: KindTransport, Op: "DownloadFile", Err: rerr}
		}
	}
}
