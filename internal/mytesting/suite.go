package mytesting

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/joho/godotenv"
	"github.com/soartravel/soar/errors"
	"github.com/stretchr/testify/suite"
)

// Suite is the base of the package test suites. It is itself the test context, canceled after each test.
type Suite struct {
	suite.Suite
	context.Context

	Cancel context.CancelFunc
}

func (s *Suite) SetupTest() {
	root, err := moduleRoot()
	s.Require().NoError(err)

	// live credentials are optional
	if envFile := filepath.Join(root, ".env"); fileExists(envFile) {
		s.Require().NoError(godotenv.Load(envFile))
	}

	s.Context, s.Cancel = context.WithCancel(context.Background())
}

func (s *Suite) TearDownTest() {
	s.Cancel()
}

// RequireEnv skips the current test when the variable is not set.
func (s *Suite) RequireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		s.T().Skipf("%s is not set", key)
	}
	return v
}

func moduleRoot() (string, error) {
	_, filename, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("failed to locate mytesting source")
	}

	for dir := filepath.Dir(filename); ; dir = filepath.Dir(dir) {
		if fileExists(filepath.Join(dir, "go.mod")) {
			return dir, nil
		}
		if dir == filepath.Dir(dir) {
			return "", errors.New("go.mod not found above " + filename)
		}
	}
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
