package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFullVersion(t *testing.T) {
	oldVersion, oldCommit, oldDate := Version, GitCommit, BuildDate
	t.Cleanup(func() { Version, GitCommit, BuildDate = oldVersion, oldCommit, oldDate })

	Version = "v1.2.0"
	GitCommit = "0123456789abcdef"
	BuildDate = "2025-01-02"

	assert.Equal(t, "v1.2.0", GetVersion())
	assert.Equal(t, "v1.2.0 (commit 0123456, built 2025-01-02)", GetFullVersion())
}

func TestGetFullVersionShortCommit(t *testing.T) {
	oldVersion, oldCommit := Version, GitCommit
	t.Cleanup(func() { Version, GitCommit = oldVersion, oldCommit })

	Version = "v0.1.0"
	GitCommit = "abc"
	assert.Contains(t, GetFullVersion(), "commit abc,")
}
