package fileops_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"jetpack/internal/adapters/filesystem"
	apperrors "jetpack/internal/errors"
	"jetpack/internal/fileops"
	"jetpack/internal/mocks"
	"jetpack/internal/testutil"
)

type AsyncTestSuite struct {
	suite.Suite
	dir   string
	async *fileops.Async
	ctx   context.Context
}

func (s *AsyncTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	ops := fileops.New(filesystem.New(), fileops.WithLogger(testutil.Logger()))
	s.async = fileops.NewAsync(ops, fileops.NewScheduler(fileops.SchedulerConfig{}, testutil.Logger()))
	s.ctx = context.Background()
}

func TestAsyncTestSuite(t *testing.T) {
	suite.Run(t, new(AsyncTestSuite))
}

func (s *AsyncTestSuite) TestWriteThenRead() {
	path := filepath.Join(s.dir, "state.json")

	s.Require().NoError(s.async.Write(s.ctx, path, map[string]any{"a": 1}, fileops.WriteOptions{Safe: true}).Wait(s.ctx))

	value, err := s.async.Read(s.ctx, path, fileops.ReadOptions{ReturnAs: "json", Safe: true}).Await(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[string]any{"a": float64(1)}, value)
	s.False(testutil.Exists(path + fileops.StagingExt))
	s.False(testutil.Exists(path + fileops.BackupExt))
}

func (s *AsyncTestSuite) TestReadMissing() {
	value, err := s.async.Read(s.ctx, filepath.Join(s.dir, "nope"), fileops.ReadOptions{}).Await(s.ctx)

	s.Require().NoError(err)
	s.Nil(value)
}

func (s *AsyncTestSuite) TestReadFallsBackToBackup() {
	path := filepath.Join(s.dir, "f.txt")
	testutil.WriteFile(s.T(), s.dir, "f.txt"+fileops.BackupExt, "old")

	value, err := s.async.Read(s.ctx, path, fileops.ReadOptions{Safe: true}).Await(s.ctx)

	s.Require().NoError(err)
	s.Equal("old", value)
}

func (s *AsyncTestSuite) TestAppendExisting() {
	path := testutil.WriteFile(s.T(), s.dir, "log.txt", "abc")

	s.Require().NoError(s.async.Append(s.ctx, path, "def", fileops.AppendOptions{}).Wait(s.ctx))

	s.Equal("abcdef", testutil.ReadFile(s.T(), path))
}

func (s *AsyncTestSuite) TestAppendMissingDirectory() {
	path := filepath.Join(s.dir, "logs", "log.txt")

	s.Require().NoError(s.async.Append(s.ctx, path, "def", fileops.AppendOptions{}).Wait(s.ctx))

	s.Equal("def", testutil.ReadFile(s.T(), path))
}

func (s *AsyncTestSuite) TestValidationFailureRejectsFuture() {
	err := s.async.Write(s.ctx, "", "x", fileops.WriteOptions{}).Wait(s.ctx)

	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))
}

func (s *AsyncTestSuite) TestCancelledBeforeStart() {
	ctx, cancel := context.WithCancel(s.ctx)
	cancel()
	path := filepath.Join(s.dir, "never.txt")

	err := s.async.Write(ctx, path, "x", fileops.WriteOptions{}).Wait(s.ctx)

	s.Require().ErrorIs(err, context.Canceled)
	s.False(testutil.Exists(path))
}

func (s *AsyncTestSuite) TestAwaitAll() {
	var futures []fileops.Awaiter
	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		futures = append(futures, s.async.Write(s.ctx, filepath.Join(s.dir, name), name, fileops.WriteOptions{Safe: true}))
	}

	s.Require().NoError(fileops.AwaitAll(s.ctx, futures...))

	for _, name := range []string{"a", "b", "c", "d", "e", "f"} {
		s.Equal(name, testutil.ReadFile(s.T(), filepath.Join(s.dir, name)))
	}
}

func (s *AsyncTestSuite) TestAwaitAllReportsFailure() {
	ok := s.async.Write(s.ctx, filepath.Join(s.dir, "ok"), "x", fileops.WriteOptions{})
	bad := s.async.Write(s.ctx, "", "x", fileops.WriteOptions{})

	err := fileops.AwaitAll(s.ctx, ok, bad)

	s.Require().Error(err)
	s.True(apperrors.IsValidation(err))
}

func TestAwaitAll_WaitsForSlowFutureAfterFailure(t *testing.T) {
	mockFS := mocks.NewMockFileSystemAdapter(t)
	ops := fileops.New(mockFS)
	async := fileops.NewAsync(ops, fileops.NewScheduler(fileops.SchedulerConfig{}, nil))

	release := make(chan struct{})
	mockFS.EXPECT().ReadFile("/slow").RunAndReturn(func(string) ([]byte, error) {
		<-release
		return []byte("done"), nil
	}).Once()
	mockFS.EXPECT().ReadFile("/bad").Return(nil, errors.New("disk full")).Once()

	slow := async.Read(context.Background(), "/slow", fileops.ReadOptions{})
	bad := async.Read(context.Background(), "/bad", fileops.ReadOptions{})

	result := make(chan error, 1)
	go func() {
		result <- fileops.AwaitAll(context.Background(), slow, bad)
	}()

	<-bad.Done()
	select {
	case err := <-result:
		t.Fatalf("AwaitAll returned %v before every future settled", err)
	case <-time.After(20 * time.Millisecond):
	}

	close(release)
	err := <-result
	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
}

func TestAsyncAppend_MissingDirectoryRetriesAppend(t *testing.T) {
	mockFS := mocks.NewMockFileSystemAdapter(t)
	ops := fileops.New(mockFS)
	async := fileops.NewAsync(ops, fileops.NewScheduler(fileops.SchedulerConfig{}, nil))

	mockFS.EXPECT().AppendFile("/logs/a.log", []byte("def"), mock.Anything).Return(notExist("/logs/a.log")).Once()
	mockFS.EXPECT().MkdirAll("/logs", mock.Anything).Return(nil).Once()
	mockFS.EXPECT().AppendFile("/logs/a.log", []byte("def"), mock.Anything).Return(nil).Once()

	require.NoError(t, async.Append(context.Background(), "/logs/a.log", "def", fileops.AppendOptions{}).Wait(context.Background()))
	mockFS.AssertNotCalled(t, "WriteFile", mock.Anything, mock.Anything, mock.Anything)
}

func TestAsyncAppend_SecondMissingPropagates(t *testing.T) {
	mockFS := mocks.NewMockFileSystemAdapter(t)
	ops := fileops.New(mockFS)
	async := fileops.NewAsync(ops, fileops.NewScheduler(fileops.SchedulerConfig{}, nil))

	mockFS.EXPECT().AppendFile("/logs/a.log", mock.Anything, mock.Anything).Return(notExist("/logs/a.log")).Twice()
	mockFS.EXPECT().MkdirAll("/logs", mock.Anything).Return(nil).Once()

	err := async.Append(context.Background(), "/logs/a.log", "def", fileops.AppendOptions{}).Wait(context.Background())

	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestAsyncAppend_MkdirFailure(t *testing.T) {
	mockFS := mocks.NewMockFileSystemAdapter(t)
	ops := fileops.New(mockFS)
	async := fileops.NewAsync(ops, fileops.NewScheduler(fileops.SchedulerConfig{}, nil))

	mkdirErr := errors.New("read-only file system")
	mockFS.EXPECT().AppendFile("/logs/a.log", mock.Anything, mock.Anything).Return(notExist("/logs/a.log")).Once()
	mockFS.EXPECT().MkdirAll("/logs", mock.Anything).Return(mkdirErr).Once()

	err := async.Append(context.Background(), "/logs/a.log", "def", fileops.AppendOptions{}).Wait(context.Background())

	require.ErrorIs(t, err, mkdirErr)
	var opErr *apperrors.OperationError
	require.ErrorAs(t, err, &opErr)
	assert.Equal(t, "mkdir", opErr.Step)
}

func TestFuture_AwaitGivesUpOnContext(t *testing.T) {
	mockFS := mocks.NewMockFileSystemAdapter(t)
	ops := fileops.New(mockFS)
	async := fileops.NewAsync(ops, fileops.NewScheduler(fileops.SchedulerConfig{}, nil))

	release := make(chan struct{})
	mockFS.EXPECT().ReadFile("/slow").RunAndReturn(func(string) ([]byte, error) {
		<-release
		return []byte("done"), nil
	}).Once()

	future := async.Read(context.Background(), "/slow", fileops.ReadOptions{})

	waitCtx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := future.Await(waitCtx)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	close(release)
	value, err := future.Await(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "done", value)
}
