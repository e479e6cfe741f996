package testutil

import (
	"io/fs"
	"os"
)

// MockFS is a mock implementation of bearprof.FileSystem for testing.
type MockFS struct {
	StatFunc      func(name string) (fs.FileInfo, error)
	MkdirAllFunc  func(path string, perm fs.FileMode) error
	WriteFileFunc func(name string, data []byte, perm fs.FileMode) error
}

func (m *MockFS) Stat(name string) (fs.FileInfo, error) {
	if m.StatFunc != nil {
		return m.StatFunc(name)
	}
	return nil, os.ErrNotExist
}

func (m *MockFS) IsNotExist(err error) bool {
	return os.IsNotExist(err)
}

func (m *MockFS) MkdirAll(path string, perm fs.FileMode) error {
	if m.MkdirAllFunc != nil {
		return m.MkdirAllFunc(path, perm)
	}
	return nil
}

func (m *MockFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	if m.WriteFileFunc != nil {
		return m.WriteFileFunc(name, data, perm)
	}
	return nil
}
