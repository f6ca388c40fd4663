package gcstore_test

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	tassert "github.com/stretchr/testify/assert"

	"oss.terrastruct.com/util-go/assert"

	"oss.terrastruct.com/gridclick/gcstore"
	"oss.terrastruct.com/gridclick/lib/log"
)

type clickOpts struct {
	Button   string `json:"button"`
	Duration int    `json:"duration"`
}

func TestBackends(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		file string
	}{
		{"json", gcstore.DEFAULT_FILE_NAME},
		{"sqlite", "settings.db"},
	}
	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := log.WithTB(context.Background(), t, nil)
			path := filepath.Join(t.TempDir(), "nested", tc.file)

			s, err := gcstore.OpenPath(ctx, path)
			assert.Success(t, err)
			tassert.Empty(t, s.Keys())

			def := clickOpts{Button: "left", Duration: 100}
			tassert.Equal(t, def, gcstore.Get(s, "gridClickOpts", def))

			err = s.Set(ctx, "gridClickOpts", clickOpts{Button: "right", Duration: 30})
			assert.Success(t, err)
			err = s.Set(ctx, "cursorClickingInProgress", true)
			assert.Success(t, err)
			err = s.Set(ctx, "gridClickOpts", clickOpts{Button: "middle", Duration: 40})
			assert.Success(t, err)
			assert.Success(t, s.Close())

			s, err = gcstore.OpenPath(ctx, path)
			assert.Success(t, err)
			defer s.Close()
			tassert.Equal(t, []string{"cursorClickingInProgress", "gridClickOpts"}, s.Keys())
			tassert.Equal(t, clickOpts{Button: "middle", Duration: 40}, gcstore.Get(s, "gridClickOpts", def))
			tassert.True(t, gcstore.Get(s, "cursorClickingInProgress", false))
			tassert.True(t, s.Has("gridClickOpts"))
			tassert.False(t, s.Has("homeClickOpts"))
		})
	}
}

func TestGetWrongType(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	s, err := gcstore.Open(ctx, gcstore.NewJSONFile(filepath.Join(t.TempDir(), "s.json")))
	assert.Success(t, err)

	assert.Success(t, s.Set(ctx, "n", "not a number"))
	tassert.Equal(t, 7, gcstore.Get(s, "n", 7))
	tassert.Equal(t, "not a number", gcstore.Get(s, "n", ""))
}

func TestJSONFileFormat(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	path := filepath.Join(t.TempDir(), gcstore.DEFAULT_FILE_NAME)
	err := os.WriteFile(path, []byte(`{"homePoint": {"x": 10, "y": 20}, "other": 1}`), 0o644)
	assert.Success(t, err)

	s, err := gcstore.Open(ctx, gcstore.NewJSONFile(path))
	assert.Success(t, err)
	type point struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	tassert.Equal(t, point{10, 20}, gcstore.Get(s, "homePoint", point{}))

	assert.Success(t, s.Set(ctx, "other", 2))
	b, err := os.ReadFile(path)
	assert.Success(t, err)
	var m map[string]interface{}
	assert.Success(t, json.Unmarshal(b, &m))
	tassert.Equal(t, float64(2), m["other"])
	tassert.NotNil(t, m["homePoint"], "untouched keys survive a rewrite")

	entries, err := os.ReadDir(filepath.Dir(path))
	assert.Success(t, err)
	tassert.Equal(t, 1, len(entries), "no temporary files are left behind")
}

func TestJSONFileCorrupt(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	path := filepath.Join(t.TempDir(), "s.json")
	assert.Success(t, os.WriteFile(path, []byte(`[1, 2`), 0o644))

	_, err := gcstore.Open(ctx, gcstore.NewJSONFile(path))
	tassert.Error(t, err)

	assert.Success(t, os.WriteFile(path, nil, 0o644))
	s, err := gcstore.Open(ctx, gcstore.NewJSONFile(path))
	assert.Success(t, err)
	tassert.Empty(t, s.Keys())
}

var errDiskFull = errors.New("disk full")

type failingBackend struct {
	saves int
}

func (b *failingBackend) Load(context.Context) (map[string]json.RawMessage, error) {
	return map[string]json.RawMessage{"kept": json.RawMessage(`"old"`)}, nil
}

func (b *failingBackend) Save(context.Context, string, json.RawMessage, map[string]json.RawMessage) error {
	b.saves++
	return errDiskFull
}

func (b *failingBackend) Close() error {
	return nil
}

func TestSetFailureKeepsMemory(t *testing.T) {
	t.Parallel()

	ctx := log.WithTB(context.Background(), t, nil)
	b := &failingBackend{}
	s, err := gcstore.Open(ctx, b)
	assert.Success(t, err)

	err = s.Set(ctx, "kept", "new")
	tassert.ErrorIs(t, err, errDiskFull)
	tassert.Equal(t, "old", gcstore.Get(s, "kept", ""))

	err = s.Set(ctx, "fresh", 1)
	tassert.ErrorIs(t, err, errDiskFull)
	tassert.False(t, s.Has("fresh"))
	tassert.Equal(t, 2, b.saves)

	err = s.Set(ctx, "bad", func() {})
	tassert.Error(t, err)
	tassert.Equal(t, 2, b.saves, "unencodable values never reach the backend")
}
