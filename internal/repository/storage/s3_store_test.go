package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeObjectAPI keeps objects in memory
type fakeObjectAPI struct {
	objects map[string][]byte
	putErr  error
	keys    []string
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: make(map[string][]byte)}
}

func (f *fakeObjectAPI) GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	key := aws.ToString(params.Bucket) + "/" + aws.ToString(params.Key)
	f.objects[key] = data
	f.keys = append(f.keys, key)
	return &s3.PutObjectOutput{}, nil
}

func TestS3Store_GetMissing(t *testing.T) {
	store := NewS3StoreWithClient(newFakeObjectAPI(), "bucket", "ledgers")

	data, err := store.Get(context.Background(), "sprout.ledger")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestS3Store_SetGet(t *testing.T) {
	ctx := context.Background()
	api := newFakeObjectAPI()
	store := NewS3StoreWithClient(api, "bucket", "ledgers")

	require.NoError(t, store.Set(ctx, "home/sprout.ledger", []byte(`{"a":1}`)))

	data, err := store.Get(ctx, "home/sprout.ledger")
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))
	assert.Equal(t, []string{"bucket/ledgers/home/sprout.ledger.json"}, api.keys)
}

func TestS3Store_SetError(t *testing.T) {
	api := newFakeObjectAPI()
	api.putErr = errors.New("access denied")
	store := NewS3StoreWithClient(api, "bucket", "")

	err := store.Set(context.Background(), "k", []byte("v"))
	assert.ErrorContains(t, err, "access denied")
}
