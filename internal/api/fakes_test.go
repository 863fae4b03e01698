package api

import (
	"context"
	"io"
	"time"

	"github.com/streamvault/content-api/internal/identity"
	"github.com/streamvault/content-api/internal/s3util"
	"github.com/streamvault/content-api/internal/store"
)

// --- Collaborator fakes ---
//
// Every fake counts its calls so tests can assert that short-circuit paths
// (OPTIONS, validation failures) touch no collaborator.

type fakeProgressStore struct {
	records map[string]*store.Progress
	putErr  error
	getErr  error
	calls   int
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{records: make(map[string]*store.Progress)}
}

func (f *fakeProgressStore) Put(ctx context.Context, rec *store.Progress) error {
	f.calls++
	if f.putErr != nil {
		return f.putErr
	}
	cp := *rec
	f.records[rec.UserID+"|"+rec.MovieID] = &cp
	return nil
}

func (f *fakeProgressStore) Get(ctx context.Context, userID, movieID string) (*store.Progress, error) {
	f.calls++
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.records[userID+"|"+movieID], nil
}

type fakeUploadStore struct {
	records []*store.Upload
	err     error
	calls   int
}

func (f *fakeUploadStore) Put(ctx context.Context, rec *store.Upload) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, rec)
	return nil
}

type fakeAuth struct {
	user  *identity.User
	err   error
	calls int
}

func (f *fakeAuth) Authenticate(ctx context.Context, username string) (*identity.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

type fakeSynthesizer struct {
	audio []byte
	err   error
	panic bool
	calls int
}

func (f *fakeSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	f.calls++
	if f.panic {
		panic("synthesizer exploded")
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.audio, nil
}

type fakeMediaStore struct {
	presignedKeys []string
	presignErr    error

	putKeys []string
	putErr  error

	listObjects []s3util.Object
	listErr     error

	calls int
}

func (f *fakeMediaStore) PresignUpload(ctx context.Context, key, contentType string, expiry time.Duration) (string, error) {
	f.calls++
	if f.presignErr != nil {
		return "", f.presignErr
	}
	f.presignedKeys = append(f.presignedKeys, key)
	return "https://media.s3.amazonaws.com/" + key + "?X-Amz-Signature=abc", nil
}

func (f *fakeMediaStore) PutObject(ctx context.Context, key, contentType string, body io.Reader) error {
	f.calls++
	if f.putErr != nil {
		return f.putErr
	}
	f.putKeys = append(f.putKeys, key)
	return nil
}

func (f *fakeMediaStore) ListPrefix(ctx context.Context, prefix string) ([]s3util.Object, error) {
	f.calls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.listObjects, nil
}

type fakeNotifier struct {
	subjects []string
	messages []string
	err      error
	calls    int
}

func (f *fakeNotifier) Publish(ctx context.Context, subject, message string) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	f.subjects = append(f.subjects, subject)
	f.messages = append(f.messages, message)
	return nil
}
