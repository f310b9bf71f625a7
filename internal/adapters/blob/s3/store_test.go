package s3

import (
	"bytes"
	"context"
	"io"
	"sort"
	"strings"
	"sync"
	"testing"

	"guidedog-records/internal/ports/blob"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAPI guarda objetos en memoria con la semántica de error de S3.
type fakeAPI struct {
	mu   sync.Mutex
	objs map[string][]byte
	ct   map[string]string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{objs: map[string][]byte{}, ct: map[string]string{}}
}

func (f *fakeAPI) HeadObject(_ context.Context, in *s3.HeadObjectInput, _ ...func(*s3.Options)) (*s3.HeadObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objs[*in.Key]
	if !ok {
		return nil, &types.NotFound{}
	}
	return &s3.HeadObjectOutput{ContentLength: aws.Int64(int64(len(b))), ContentType: aws.String(f.ct[*in.Key])}, nil
}

func (f *fakeAPI) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	b, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objs[*in.Key] = b
	f.ct[*in.Key] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeAPI) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.objs[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(bytes.NewReader(b)),
		ContentLength: aws.Int64(int64(len(b))),
		ContentType:   aws.String(f.ct[*in.Key]),
	}, nil
}

func (f *fakeAPI) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.objs, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeAPI) ListObjectsV2(_ context.Context, in *s3.ListObjectsV2Input, _ ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	keys := make([]string, 0, len(f.objs))
	for k := range f.objs {
		if strings.HasPrefix(k, aws.ToString(in.Prefix)) {
			keys = append(keys, k)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	out := &s3.ListObjectsV2Output{IsTruncated: aws.Bool(false)}
	for _, k := range keys {
		out.Contents = append(out.Contents, types.Object{Key: aws.String(k), Size: aws.Int64(int64(len(f.objs[k])))})
	}
	return out, nil
}

func TestStore_RoundTrip(t *testing.T) {
	s := &Store{client: newFakeAPI(), bucket: "photos"}
	ctx := context.Background()

	info, err := s.Put(ctx, "medical/r1/p1.jpg", bytes.NewBufferString("jpeg"), blob.PutOptions{ContentType: "image/jpeg"})
	require.NoError(t, err)
	assert.EqualValues(t, 4, info.Size)
	assert.Equal(t, "image/jpeg", info.ContentType)

	_, err = s.Put(ctx, "medical/r1/p1.jpg", bytes.NewBufferString("x"), blob.PutOptions{})
	assert.ErrorIs(t, err, blob.ErrExists)

	_, rc, err := s.Get(ctx, "medical/r1/p1.jpg")
	require.NoError(t, err)
	b, _ := io.ReadAll(rc)
	_ = rc.Close()
	assert.Equal(t, "jpeg", string(b))

	_, err = s.Put(ctx, "medical/r1/p0.jpg", bytes.NewBufferString("x"), blob.PutOptions{})
	require.NoError(t, err)
	items, err := s.List(ctx, "medical/r1/")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "medical/r1/p0.jpg", items[0].Key)

	_, err = s.Delete(ctx, "medical/r1/p1.jpg")
	require.NoError(t, err)
	_, _, err = s.Get(ctx, "medical/r1/p1.jpg")
	assert.ErrorIs(t, err, blob.ErrNotFound)
	assert.Equal(t, blob.DriverS3, s.Driver())
}

func TestNew_RequiresBucket(t *testing.T) {
	_, err := New(context.Background(), Config{})
	assert.Error(t, err)
}
