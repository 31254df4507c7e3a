package content_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtacn/GeoRisk-Intelligence/internal/domain/content"
	"github.com/turtacn/GeoRisk-Intelligence/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/GeoRisk-Intelligence/pkg/types/common"
)

func writeDoc(t *testing.T, root string, sourceType common.SourceType, source, name string, doc content.Document) string {
	t.Helper()
	dir := filepath.Join(root, string(sourceType), source)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func TestDocument_Records(t *testing.T) {
	t.Parallel()
	post := content.Record{Text: "p"}
	article := content.Record{Text: "a"}
	book := content.Record{Text: "b"}

	cases := []struct {
		doc  content.Document
		want []content.Record
	}{
		{content.Document{Type: common.SourceSocialMedia, Posts: []content.Record{post}}, []content.Record{post}},
		{content.Document{Type: common.SourceMainstreamMedia, Articles: []content.Record{article}}, []content.Record{article}},
		{content.Document{Type: common.SourceBook, Books: []content.Record{book}}, []content.Record{book}},
		{content.Document{Type: common.SourceCustom}, nil},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.doc.Records())
	}
}

func TestDocument_CustomFields(t *testing.T) {
	t.Parallel()
	doc := content.Document{
		Type:   common.SourceCustom,
		Source: "osint-feed",
		Data: map[string]json.RawMessage{
			"report_sentiment": json.RawMessage(`{"compound": -0.6}`),
			"report_entities":  json.RawMessage(`[{"text":"Acme Militia","type":"ORG","confidence":0.9}]`),
			"report_countries": json.RawMessage(`["Latvia"]`),
			"unrelated":        json.RawMessage(`42`),
			"bad_entities":     json.RawMessage(`"not an array"`),
		},
	}

	fields := doc.CustomFields()
	assert.Equal(t, -0.6, fields.Sentiment.Compound)
	require.Len(t, fields.Entities, 1)
	assert.Equal(t, "Acme Militia", fields.Entities[0].Text)
	assert.Equal(t, []string{"Latvia"}, fields.Countries)
}

func TestDocument_AllEntities(t *testing.T) {
	t.Parallel()
	doc := content.Document{
		Type: common.SourceSocialMedia,
		Posts: []content.Record{
			{Entities: []content.Entity{{Text: "A", Type: common.EntityOrganization}}},
			{Entities: []content.Entity{{Text: "B", Type: common.EntityPerson}}},
		},
	}
	entities := doc.AllEntities()
	require.Len(t, entities, 2)
	assert.Equal(t, "A", entities[0].Text)
	assert.Equal(t, "B", entities[1].Text)
}

func TestStore_Recent_ReadsAllBuckets(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	writeDoc(t, root, common.SourceSocialMedia, "feedx", "2026-01-01.json", content.Document{
		Type: common.SourceSocialMedia, Source: "feedx",
		Posts: []content.Record{{Text: "post"}},
	})
	writeDoc(t, root, common.SourceMainstreamMedia, "wire", "2026-01-01.json", content.Document{
		Type: common.SourceMainstreamMedia, Source: "wire",
		Articles: []content.Record{{Text: "article"}},
	})

	store := content.NewStore(root, logging.NewNopLogger())
	docs, err := store.Recent(24*time.Hour, 100)
	require.NoError(t, err)
	require.Len(t, docs, 2)
	// Buckets scan in fixed source-type order.
	assert.Equal(t, common.SourceSocialMedia, docs[0].Type)
	assert.Equal(t, common.SourceMainstreamMedia, docs[1].Type)
}

func TestStore_Recent_SkipsOldAndMalformed(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	fresh := writeDoc(t, root, common.SourceBook, "library", "b-new.json", content.Document{
		Type: common.SourceBook, Source: "library",
	})
	_ = fresh

	stale := writeDoc(t, root, common.SourceBook, "library", "a-old.json", content.Document{
		Type: common.SourceBook, Source: "library",
	})
	old := time.Now().Add(-48 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))

	badPath := filepath.Join(root, string(common.SourceBook), "library", "c-bad.json")
	require.NoError(t, os.WriteFile(badPath, []byte("{broken"), 0o644))

	store := content.NewStore(root, logging.NewNopLogger())
	docs, err := store.Recent(24*time.Hour, 100)
	require.NoError(t, err)
	assert.Len(t, docs, 1)
}

func TestStore_Recent_HonoursDocumentCap(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	for _, name := range []string{"1.json", "2.json", "3.json"} {
		writeDoc(t, root, common.SourceCustom, "feed", name, content.Document{
			Type: common.SourceCustom, Source: "feed",
		})
	}

	store := content.NewStore(root, logging.NewNopLogger())
	docs, err := store.Recent(24*time.Hour, 2)
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}

func TestStore_Recent_EmptyRoot(t *testing.T) {
	t.Parallel()
	store := content.NewStore(filepath.Join(t.TempDir(), "missing"), logging.NewNopLogger())
	docs, err := store.Recent(24*time.Hour, 100)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestWatcher_DeliversArrivals(t *testing.T) {
	root := t.TempDir()
	// Pre-create the source directory so the initial walk watches it.
	require.NoError(t, os.MkdirAll(filepath.Join(root, string(common.SourceSocialMedia), "feedx"), 0o755))
	watcher := content.NewWatcher(root, logging.NewNopLogger())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- watcher.Run(ctx) }()

	// Give the watcher a moment to establish its watch set.
	time.Sleep(200 * time.Millisecond)

	writeDoc(t, root, common.SourceSocialMedia, "feedx", "drop.json", content.Document{
		Type: common.SourceSocialMedia, Source: "feedx",
	})

	select {
	case path := <-watcher.Arrivals():
		assert.Contains(t, path, "drop.json")
	case <-time.After(5 * time.Second):
		t.Fatal("no arrival delivered")
	}

	cancel()
	require.NoError(t, <-done)
}
