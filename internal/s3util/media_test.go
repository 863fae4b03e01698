package s3util

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
)

type fakeS3 struct {
	putInputs []*s3.PutObjectInput
	putBodies []string
	putErr    error

	listPages []*s3.ListObjectsV2Output
	listCalls []*s3.ListObjectsV2Input
	listErr   error
}

func (f *fakeS3) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	f.putInputs = append(f.putInputs, params)
	if params.Body != nil {
		b, _ := io.ReadAll(params.Body)
		f.putBodies = append(f.putBodies, string(b))
	}
	if f.putErr != nil {
		return nil, f.putErr
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) ListObjectsV2(ctx context.Context, params *s3.ListObjectsV2Input, optFns ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.listCalls = append(f.listCalls, params)
	if f.listErr != nil {
		return nil, f.listErr
	}
	page := f.listPages[len(f.listCalls)-1]
	return page, nil
}

type fakePresigner struct {
	input   *s3.PutObjectInput
	expires time.Duration
	err     error
}

func (f *fakePresigner) PresignPutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.PresignOptions)) (*v4.PresignedHTTPRequest, error) {
	f.input = params
	opts := &s3.PresignOptions{}
	for _, fn := range optFns {
		fn(opts)
	}
	f.expires = opts.Expires
	if f.err != nil {
		return nil, f.err
	}
	return &v4.PresignedHTTPRequest{URL: "https://media.s3.amazonaws.com/" + *params.Key + "?X-Amz-Signature=abc"}, nil
}

func TestPresignUpload(t *testing.T) {
	p := &fakePresigner{}
	m := NewMediaStore(&fakeS3{}, p, "streamvault-media")

	url, err := m.PresignUpload(context.Background(), "user1/vid.mp4", "video/mp4", 15*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(url, "user1/vid.mp4") {
		t.Errorf("URL does not reference the key: %s", url)
	}
	if *p.input.Bucket != "streamvault-media" {
		t.Errorf("expected bucket streamvault-media, got %s", *p.input.Bucket)
	}
	if *p.input.ContentType != "video/mp4" {
		t.Errorf("expected content type video/mp4, got %s", *p.input.ContentType)
	}
	if p.expires != 15*time.Minute {
		t.Errorf("expected 15m expiry, got %v", p.expires)
	}
}

func TestPresignUploadError(t *testing.T) {
	p := &fakePresigner{err: errors.New("signing failed")}
	m := NewMediaStore(&fakeS3{}, p, "streamvault-media")

	if _, err := m.PresignUpload(context.Background(), "k", "video/mp4", time.Minute); err == nil {
		t.Fatal("expected error")
	}
}

func TestPutObject(t *testing.T) {
	c := &fakeS3{}
	m := NewMediaStore(c, &fakePresigner{}, "streamvault-media")

	err := m.PutObject(context.Background(), "tts/abc.mp3", "audio/mpeg", strings.NewReader("mp3bytes"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(c.putInputs) != 1 {
		t.Fatalf("expected 1 PutObject call, got %d", len(c.putInputs))
	}
	if *c.putInputs[0].Key != "tts/abc.mp3" {
		t.Errorf("unexpected key: %s", *c.putInputs[0].Key)
	}
	if c.putBodies[0] != "mp3bytes" {
		t.Errorf("body not passed through: %q", c.putBodies[0])
	}
}

func TestListPrefixPagination(t *testing.T) {
	now := time.Now()
	c := &fakeS3{
		listPages: []*s3.ListObjectsV2Output{
			{
				Contents: []s3types.Object{
					{Key: aws.String("user1/a.mp4"), LastModified: &now},
					{Key: aws.String("user1/b.mp4"), LastModified: &now},
				},
				IsTruncated:           aws.Bool(true),
				NextContinuationToken: aws.String("token1"),
			},
			{
				Contents: []s3types.Object{
					{Key: aws.String("user1/c.mp4"), LastModified: &now},
				},
				IsTruncated: aws.Bool(false),
			},
		},
	}
	m := NewMediaStore(c, &fakePresigner{}, "streamvault-media")

	objs, err := m.ListPrefix(context.Background(), "user1/")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(objs) != 3 {
		t.Fatalf("expected 3 objects across pages, got %d", len(objs))
	}
	if objs[2].Key != "user1/c.mp4" {
		t.Errorf("listing order not preserved: %v", objs)
	}
	if len(c.listCalls) != 2 {
		t.Fatalf("expected 2 list calls, got %d", len(c.listCalls))
	}
	if c.listCalls[1].ContinuationToken == nil || *c.listCalls[1].ContinuationToken != "token1" {
		t.Error("continuation token not forwarded to second page")
	}
	if *c.listCalls[0].Prefix != "user1/" {
		t.Errorf("unexpected prefix: %s", *c.listCalls[0].Prefix)
	}
}

func TestListPrefixError(t *testing.T) {
	c := &fakeS3{listErr: errors.New("access denied")}
	m := NewMediaStore(c, &fakePresigner{}, "streamvault-media")

	if _, err := m.ListPrefix(context.Background(), "user1/"); err == nil {
		t.Fatal("expected error")
	}
}
