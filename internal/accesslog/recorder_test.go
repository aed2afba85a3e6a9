package accesslog

import (
	"context"
	"errors"
	"testing"

	"github.com/cobaltpay/backoffice/internal/paging"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepository struct {
	created []*Log
	fail    bool
}

func (repo *fakeRepository) Get(_ context.Context, _ *Filter, _ paging.Request) ([]*Log, uint64, error) {
	return nil, 0, nil
}

func (repo *fakeRepository) CreateMany(_ context.Context, logs []*Log) error {
	if repo.fail {
		return errors.New("database unavailable")
	}
	repo.created = append(repo.created, logs...)
	return nil
}

func TestRecorderFlush(t *testing.T) {
	repo := &fakeRepository{}
	recorder := NewRecorder(repo)

	n, err := recorder.Flush()
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	recorder.Record(&Log{ID: uuid.New(), Method: "GET", Path: "/v1/payments"})
	recorder.Record(&Log{ID: uuid.New(), Method: "POST", Path: "/v1/settlements"})

	n, err = recorder.Flush()
	require.NoError(t, err)
	assert.Equal(t, 2, n)
	assert.Len(t, repo.created, 2)

	// A second flush has nothing left to write
	n, err = recorder.Flush()
	require.NoError(t, err)
	assert.Equal(t, 0, n)
}

func TestRecorderKeepsEntriesOnFailure(t *testing.T) {
	repo := &fakeRepository{fail: true}
	recorder := NewRecorder(repo)

	recorder.Record(&Log{ID: uuid.New(), Method: "GET", Path: "/v1/merchants"})

	_, err := recorder.Flush()
	assert.Error(t, err)

	repo.fail = false
	n, err := recorder.Flush()
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
