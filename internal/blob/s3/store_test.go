package s3

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"gsep-planner/internal/blob/core"
)

// fakeBucket answers the handful of S3 calls the store makes, keyed by the
// path-style object path.
type fakeBucket struct {
	mu   sync.Mutex
	objs map[string]fakeObject
}

type fakeObject struct {
	body        []byte
	contentType string
}

func reply(status int, body []byte, hdr http.Header) *http.Response {
	if hdr == nil {
		hdr = http.Header{}
	}
	return &http.Response{StatusCode: status, Body: io.NopCloser(bytes.NewReader(body)), Header: hdr}
}

func (f *fakeBucket) RoundTrip(req *http.Request) (*http.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(req.URL.Path, "/"), "/", 2)
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}

	if req.Method == http.MethodGet && req.URL.Query().Get("list-type") == "2" {
		prefix := req.URL.Query().Get("prefix")
		var keys []string
		for k := range f.objs {
			if strings.HasPrefix(k, prefix) {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		var b strings.Builder
		b.WriteString(`<?xml version="1.0"?><ListBucketResult><IsTruncated>false</IsTruncated>`)
		for _, k := range keys {
			fmt.Fprintf(&b, "<Contents><Key>%s</Key><Size>%d</Size><LastModified>2025-01-01T00:00:00Z</LastModified></Contents>", k, len(f.objs[k].body))
		}
		b.WriteString("</ListBucketResult>")
		return reply(http.StatusOK, []byte(b.String()), http.Header{"Content-Type": {"application/xml"}}), nil
	}

	obj, ok := f.objs[key]
	switch req.Method {
	case http.MethodHead, http.MethodGet:
		if !ok {
			return reply(http.StatusNotFound, nil, nil), nil
		}
		hdr := http.Header{
			"Content-Length": {strconv.Itoa(len(obj.body))},
			"Content-Type":   {obj.contentType},
			"Etag":           {`"abc123"`},
			"Last-Modified":  {time.Now().UTC().Format(http.TimeFormat)},
		}
		if req.Method == http.MethodHead {
			return reply(http.StatusOK, nil, hdr), nil
		}
		return reply(http.StatusOK, obj.body, hdr), nil
	case http.MethodPut:
		body, _ := io.ReadAll(req.Body)
		if dec, ok := dechunk(body); ok {
			body = dec
		}
		f.objs[key] = fakeObject{body: body, contentType: req.Header.Get("Content-Type")}
		return reply(http.StatusOK, nil, http.Header{"Etag": {`"abc123"`}}), nil
	case http.MethodDelete:
		delete(f.objs, key)
		return reply(http.StatusNoContent, nil, nil), nil
	}
	return reply(http.StatusNotImplemented, nil, nil), nil
}

// dechunk unwraps a single-chunk aws-chunked payload:
// <hex size>\r\n<data>\r\n0\r\n<trailers>
func dechunk(b []byte) ([]byte, bool) {
	i := bytes.Index(b, []byte("\r\n"))
	if i <= 0 {
		return nil, false
	}
	n, err := strconv.ParseInt(string(b[:i]), 16, 64)
	if err != nil {
		return nil, false
	}
	rest := b[i+2:]
	if int64(len(rest)) < n+2 || !bytes.HasPrefix(rest[n:], []byte("\r\n0")) {
		return nil, false
	}
	return rest[:n], true
}

func newFakeStore(t *testing.T, prefix string) *Store {
	t.Helper()
	cfg, err := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	if err != nil {
		t.Fatalf("aws config: %v", err)
	}
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String("https://s3.test.local")
		o.HTTPClient = &http.Client{Transport: &fakeBucket{objs: map[string]fakeObject{}}}
		o.UsePathStyle = true
	})
	return newWithClient(client, "gsep-exports", prefix)
}

func TestStoreFlow(t *testing.T) {
	ctx := context.Background()
	s := newFakeStore(t, "planner")

	info, err := s.Put(ctx, "plans/a.json", bytes.NewReader([]byte("hello")), core.PutOptions{ContentType: "application/json"})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if info.Key != "plans/a.json" || info.ContentType != "application/json" || info.ETag != "abc123" {
		t.Errorf("info = %+v", info)
	}
	if _, err := s.Put(ctx, "plans/a.json", bytes.NewReader([]byte("again")), core.PutOptions{}); !errors.Is(err, core.ErrExists) {
		t.Errorf("duplicate put err = %v, want ErrExists", err)
	}

	_, rc, err := s.Get(ctx, "plans/a.json")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	body, _ := io.ReadAll(rc)
	_ = rc.Close()
	if string(body) != "hello" {
		t.Errorf("body = %q", body)
	}

	list, err := s.List(ctx, "plans/")
	if err != nil || len(list) != 1 || list[0].Key != "plans/a.json" {
		t.Fatalf("list = %+v, %v", list, err)
	}

	if u, err := s.PresignURL(ctx, "plans/a.json", core.SignedURLOptions{}); err != nil || !strings.Contains(u, "planner/plans/a.json") {
		t.Errorf("presign = %q, %v", u, err)
	}

	if ok, err := s.Delete(ctx, "plans/a.json"); err != nil || !ok {
		t.Fatalf("delete = %v, %v", ok, err)
	}
	if ok, err := s.Delete(ctx, "plans/a.json"); err != nil || ok {
		t.Errorf("second delete = %v, %v", ok, err)
	}
	if _, err := s.Head(ctx, "plans/a.json"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("head err = %v, want ErrNotFound", err)
	}
}

func TestNewRequiresBucket(t *testing.T) {
	if _, err := New(context.Background(), Config{}); err == nil {
		t.Fatal("expected error without bucket")
	}
}

func TestDechunk(t *testing.T) {
	got, ok := dechunk([]byte("5\r\nhello\r\n0\r\nx-amz-checksum-crc32:AAAA\r\n\r\n"))
	if !ok || string(got) != "hello" {
		t.Errorf("dechunk = %q, %v", got, ok)
	}
	if _, ok := dechunk([]byte("plain body")); ok {
		t.Error("plain body treated as chunked")
	}
}
