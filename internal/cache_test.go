package internal

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/lacehq/lace/testutil"
)

func testThreadTimeline(threadID string) *ThreadTimeline {
	return ProjectThread(threadID, []ThreadEvent{
		CreateTestEvent("e1", threadID, EventUserMessage, "hi", at(0)),
		CreateTestToolCall("e2", threadID, "c1", "bash", at(1)),
		CreateTestToolResult("e3", threadID, "c1", "out", false, at(2)),
	})
}

func TestCacheManager_TimelineRoundTrip(t *testing.T) {
	cm := NewCacheManager(testutil.CreateTempDir(t))
	original := testThreadTimeline("thread1")

	if err := cm.SaveTimeline(original); err != nil {
		t.Fatalf("SaveTimeline() error: %v", err)
	}

	restored, err := cm.LoadTimeline("thread1")
	if err != nil {
		t.Fatalf("LoadTimeline() error: %v", err)
	}
	if restored.ThreadID != "thread1" {
		t.Errorf("ThreadID = %q, want thread1", restored.ThreadID)
	}
	if !reflect.DeepEqual(restored.Timeline.Items, original.Timeline.Items) {
		t.Errorf("cached items differ:\n got %+v\nwant %+v", restored.Timeline.Items, original.Timeline.Items)
	}
	if restored.Timeline.Metadata.EventCount != 3 {
		t.Errorf("EventCount = %d, want 3", restored.Timeline.Metadata.EventCount)
	}
}

func TestCacheManager_LoadTimeline_Missing(t *testing.T) {
	cm := NewCacheManager(testutil.CreateTempDir(t))
	if _, err := cm.LoadTimeline("absent"); err == nil {
		t.Error("LoadTimeline() error = nil for missing cache file, want error")
	}
}

func TestCacheManager_IndexRoundTrip(t *testing.T) {
	cm := NewCacheManager(testutil.CreateTempDir(t))
	index := &ThreadIndex{
		Threads: []ThreadSummary{
			{ThreadID: "thread1", EventCount: 4, MessageCount: 2, FirstActivity: at(0).UTC(), LastActivity: at(3).UTC()},
		},
		Metadata: CacheMetadata{DatabasePath: "/tmp/lace.db", CacheVersion: "1.0"},
	}

	if err := cm.SaveIndex(index); err != nil {
		t.Fatalf("SaveIndex() error: %v", err)
	}

	restored, err := cm.LoadIndex()
	if err != nil {
		t.Fatalf("LoadIndex() error: %v", err)
	}
	if len(restored.Threads) != 1 || restored.Threads[0].ThreadID != "thread1" {
		t.Errorf("restored threads = %+v, want single thread1", restored.Threads)
	}
	if restored.Metadata.DatabasePath != "/tmp/lace.db" {
		t.Errorf("DatabasePath = %q, want /tmp/lace.db", restored.Metadata.DatabasePath)
	}
}

func TestCacheManager_IsCacheValid(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	cm := NewCacheManager(filepath.Join(dir, "cache"))
	dbPath := filepath.Join(dir, "lace.db")
	testutil.CreateSQLiteFixture(t, dbPath)

	valid, err := cm.IsCacheValid(dbPath)
	if err != nil {
		t.Fatalf("IsCacheValid() error: %v", err)
	}
	if valid {
		t.Error("IsCacheValid() = true with no cache, want false")
	}

	tt := testThreadTimeline("thread1")
	summaries := []ThreadSummary{{ThreadID: "thread1", EventCount: 4}}
	if err := cm.SaveTimelines([]*ThreadTimeline{tt}, summaries, dbPath); err != nil {
		t.Fatalf("SaveTimelines() error: %v", err)
	}

	valid, err = cm.IsCacheValid(dbPath)
	if err != nil {
		t.Fatalf("IsCacheValid() error: %v", err)
	}
	if !valid {
		t.Error("IsCacheValid() = false right after SaveTimelines, want true")
	}

	// Touching the database invalidates the cache.
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(dbPath, future, future); err != nil {
		t.Fatalf("Chtimes() error: %v", err)
	}
	valid, err = cm.IsCacheValid(dbPath)
	if err != nil {
		t.Fatalf("IsCacheValid() error: %v", err)
	}
	if valid {
		t.Error("IsCacheValid() = true after the database changed, want false")
	}
}

func TestCacheManager_IsCacheValid_DifferentDatabase(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	cm := NewCacheManager(filepath.Join(dir, "cache"))
	dbPath := filepath.Join(dir, "lace.db")
	otherPath := filepath.Join(dir, "other.db")
	testutil.CreateSQLiteFixture(t, dbPath)
	testutil.CreateSQLiteFixture(t, otherPath)

	if err := cm.SaveTimelines(nil, nil, dbPath); err != nil {
		t.Fatalf("SaveTimelines() error: %v", err)
	}

	valid, err := cm.IsCacheValid(otherPath)
	if err != nil {
		t.Fatalf("IsCacheValid() error: %v", err)
	}
	if valid {
		t.Error("IsCacheValid() = true for a different database path, want false")
	}
}

func TestCacheManager_ClearCache(t *testing.T) {
	dir := testutil.CreateTempDir(t)
	cm := NewCacheManager(filepath.Join(dir, "cache"))
	dbPath := filepath.Join(dir, "lace.db")
	testutil.CreateSQLiteFixture(t, dbPath)

	tt := testThreadTimeline("thread1")
	if err := cm.SaveTimelines([]*ThreadTimeline{tt}, []ThreadSummary{{ThreadID: "thread1"}}, dbPath); err != nil {
		t.Fatalf("SaveTimelines() error: %v", err)
	}

	if err := cm.ClearCache(); err != nil {
		t.Fatalf("ClearCache() error: %v", err)
	}
	if _, err := os.Stat(cm.GetIndexPath()); !os.IsNotExist(err) {
		t.Error("index file still exists after ClearCache")
	}
	if _, err := os.Stat(cm.GetTimelinePath("thread1")); !os.IsNotExist(err) {
		t.Error("timeline file still exists after ClearCache")
	}

	// Clearing an empty cache is fine.
	if err := cm.ClearCache(); err != nil {
		t.Errorf("ClearCache() on empty cache error: %v", err)
	}
}
