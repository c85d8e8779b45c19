package redis

import (
	"context"

	"github.com/amyangfei/redlock-go/v3/redlock"
)

// LockFactory creates distributed locks for fetch jobs
type LockFactory interface {
	CreateJobLock(jobName string) JobLock
}

// RedisLockFactory creates Redis-based distributed locks
type RedisLockFactory struct {
	lockManager *redlock.RedLock
}

// NewRedisLockFactory creates new Redis lock factory
func NewRedisLockFactory(lockManager *redlock.RedLock) *RedisLockFactory {
	return &RedisLockFactory{
		lockManager: lockManager,
	}
}

// CreateJobLock creates a distributed lock for a specific job
func (f *RedisLockFactory) CreateJobLock(jobName string) JobLock {
	return NewDistributedLock(f.lockManager, jobName)
}

// MockLockFactory for testing (always succeeds)
type MockLockFactory struct{}

// NewMockLockFactory creates mock lock factory for tests
func NewMockLockFactory() *MockLockFactory {
	return &MockLockFactory{}
}

// CreateJobLock creates a mock lock that always succeeds
func (f *MockLockFactory) CreateJobLock(jobName string) JobLock {
	return &MockLock{jobName: jobName}
}

// MockLock is a no-op lock for testing
type MockLock struct {
	jobName string
}

func (l *MockLock) TryAcquire(ctx context.Context) (bool, error) {
	return true, nil
}

func (l *MockLock) Release(ctx context.Context) error {
	return nil
}

func (l *MockLock) CheckLockHeld(ctx context.Context) (bool, error) {
	return true, nil
}

func (l *MockLock) GetJobName() string {
	return l.jobName
}
