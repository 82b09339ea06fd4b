package main

import (
	"context"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(wd) })
	return dir
}

func TestRunReportsConfigErrors(t *testing.T) {
	chdirTemp(t)
	t.Setenv("PORT", "notaport")

	err := run(context.Background())
	assert.ErrorContains(t, err, "invalid server port")
}

func TestRunReportsMalformedEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("PORT=\"8000\n"), 0o600))

	assert.Error(t, run(context.Background()))
}

func TestRunReturnsWhenPortIsTaken(t *testing.T) {
	dir := chdirTemp(t)
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer ln.Close()

	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	t.Setenv("PORT", port)
	t.Setenv("DATA_PATH", filepath.Join(dir, "server.db"))
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("ADMIN_PASSWORD", "x")

	done := make(chan error, 1)
	go func() { done <- run(context.Background()) }()
	select {
	case err := <-done:
		assert.ErrorContains(t, err, "address already in use")
	case <-time.After(30 * time.Second):
		t.Fatal("run did not return after listen failure")
	}
}
