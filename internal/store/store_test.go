package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/talentscout/hiring-assistant/internal/candidate"
)

func completeCandidate(t *testing.T) *candidate.Candidate {
	t.Helper()

	c := candidate.New()
	require.NoError(t, c.SetField(candidate.FieldFullName, "Alice Smith"))
	require.NoError(t, c.SetField(candidate.FieldEmail, "alice@x.com"))
	require.NoError(t, c.SetField(candidate.FieldYearsExperience, "3"))
	require.NoError(t, c.SetField(candidate.FieldDesiredRole, "Backend Engineer"))
	c.TechStack = []string{"Python", "SQL"}
	return c
}

func TestAppendWritesOneFilePerRecord(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, true, zap.NewNop())

	rec := completeCandidate(t).Record(true,
		map[string][]string{"Python": {"q1", "q2", "q3"}},
		map[string]string{"Python": "fallback"},
	)

	path, err := s.Append(rec)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var stored candidate.Record
	require.NoError(t, json.Unmarshal(data, &stored))
	assert.Equal(t, rec.ID, stored.ID)
	assert.Equal(t, []string{"Python", "SQL"}, stored.TechStack)
	assert.Equal(t, "fallback", stored.GeneratedVia["Python"])
}

func TestAppendTwiceProducesTwoEntries(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, true, zap.NewNop())

	rec := completeCandidate(t).Record(true, nil, nil)

	first, err := s.Append(rec)
	require.NoError(t, err)

	second, err := s.Append(rec)
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestAppendAnonymizedLeaksNoIdentity(t *testing.T) {
	dir := t.TempDir()
	s := New(dir, true, zap.NewNop())

	rec := completeCandidate(t).Record(true, nil, nil)

	path, err := s.Append(rec)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.ToLower(string(data))
	assert.NotContains(t, content, "alice")
	assert.NotContains(t, content, "alice@x.com")
}

func TestAppendRefusesRawIdentifiersInAnonymizedMode(t *testing.T) {
	s := New(t.TempDir(), true, zap.NewNop())

	rec := completeCandidate(t).Record(false, nil, nil)

	_, err := s.Append(rec)
	require.Error(t, err)

	var storageErr *StorageError
	assert.ErrorAs(t, err, &storageErr)
}

func TestAppendRawModeKeepsIdentity(t *testing.T) {
	s := New(t.TempDir(), false, zap.NewNop())

	rec := completeCandidate(t).Record(false, nil, nil)

	path, err := s.Append(rec)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alice Smith")
}

func TestAppendSurfacesStorageError(t *testing.T) {
	dir := t.TempDir()
	// A file where the data directory should be makes MkdirAll fail.
	blocked := filepath.Join(dir, "blocked")
	require.NoError(t, os.WriteFile(blocked, []byte("x"), 0o644))

	s := New(blocked, true, zap.NewNop())

	_, err := s.Append(completeCandidate(t).Record(true, nil, nil))
	require.Error(t, err)

	var storageErr *StorageError
	require.ErrorAs(t, err, &storageErr)
	assert.Equal(t, "mkdir", storageErr.Op)
}

func TestAppendNilRecord(t *testing.T) {
	s := New(t.TempDir(), true, zap.NewNop())

	_, err := s.Append(nil)
	require.Error(t, err)
}
