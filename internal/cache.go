package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// CacheManager caches projected timelines so repeat reads of an unchanged
// database skip re-projection.
type CacheManager struct {
	cacheDir string
}

// CacheMetadata stores metadata about the cache.
type CacheMetadata struct {
	DatabasePath    string    `json:"database_path" yaml:"database_path"`
	DatabaseModTime time.Time `json:"database_mod_time" yaml:"database_mod_time"`
	CacheVersion    string    `json:"cache_version" yaml:"cache_version"`
	CreatedAt       time.Time `json:"created_at" yaml:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" yaml:"updated_at"`
}

// ThreadIndex is the YAML index of all cached threads.
type ThreadIndex struct {
	Threads  []ThreadSummary `yaml:"threads"`
	Metadata CacheMetadata   `yaml:"metadata"`
}

// NewCacheManager creates a new cache manager.
func NewCacheManager(cacheDir string) *CacheManager {
	return &CacheManager{
		cacheDir: cacheDir,
	}
}

// EnsureCacheDir ensures the cache directory exists.
func (cm *CacheManager) EnsureCacheDir() error {
	return os.MkdirAll(cm.cacheDir, 0755)
}

// GetCacheDir returns the cache directory path.
func (cm *CacheManager) GetCacheDir() string {
	return cm.cacheDir
}

// GetIndexPath returns the path to the thread index YAML file.
func (cm *CacheManager) GetIndexPath() string {
	return filepath.Join(cm.cacheDir, "threads.yaml")
}

// GetTimelinePath returns the path to a thread's cached timeline.
func (cm *CacheManager) GetTimelinePath(threadID string) string {
	return filepath.Join(cm.cacheDir, fmt.Sprintf("timeline_%s.json", threadID))
}

// IsCacheValid checks if the cache is valid for the given database.
func (cm *CacheManager) IsCacheValid(dbPath string) (bool, error) {
	if _, err := os.Stat(cm.GetIndexPath()); os.IsNotExist(err) {
		return false, nil
	}

	index, err := cm.LoadIndex()
	if err != nil {
		return false, nil
	}

	if index.Metadata.DatabasePath != dbPath {
		return false, nil
	}

	dbInfo, err := os.Stat(dbPath)
	if err != nil {
		return false, nil
	}

	if !index.Metadata.DatabaseModTime.Equal(dbInfo.ModTime()) {
		return false, nil
	}

	return true, nil
}

// LoadIndex loads the thread index.
func (cm *CacheManager) LoadIndex() (*ThreadIndex, error) {
	data, err := os.ReadFile(cm.GetIndexPath())
	if err != nil {
		return nil, err
	}

	var index ThreadIndex
	if err := yaml.Unmarshal(data, &index); err != nil {
		return nil, fmt.Errorf("failed to unmarshal index: %w", err)
	}

	return &index, nil
}

// SaveIndex saves the thread index.
func (cm *CacheManager) SaveIndex(index *ThreadIndex) error {
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}

	data, err := yaml.Marshal(index)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	return os.WriteFile(cm.GetIndexPath(), data, 0644)
}

// SaveTimeline saves a single projected timeline to its cache file.
func (cm *CacheManager) SaveTimeline(tt *ThreadTimeline) error {
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(tt, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal timeline: %w", err)
	}

	return os.WriteFile(cm.GetTimelinePath(tt.ThreadID), data, 0644)
}

// LoadTimeline loads a single cached timeline.
func (cm *CacheManager) LoadTimeline(threadID string) (*ThreadTimeline, error) {
	data, err := os.ReadFile(cm.GetTimelinePath(threadID))
	if err != nil {
		return nil, err
	}

	var tt ThreadTimeline
	if err := json.Unmarshal(data, &tt); err != nil {
		return nil, fmt.Errorf("failed to unmarshal timeline: %w", err)
	}

	return &tt, nil
}

// SaveTimelines saves projected timelines for all threads and rebuilds
// the index.
func (cm *CacheManager) SaveTimelines(timelines []*ThreadTimeline, summaries []ThreadSummary, dbPath string) error {
	if err := cm.EnsureCacheDir(); err != nil {
		return err
	}

	dbInfo, err := os.Stat(dbPath)
	if err != nil {
		return err
	}

	index := ThreadIndex{
		Threads: summaries,
		Metadata: CacheMetadata{
			DatabasePath:    dbPath,
			DatabaseModTime: dbInfo.ModTime(),
			CacheVersion:    "1.0",
			CreatedAt:       time.Now(),
			UpdatedAt:       time.Now(),
		},
	}

	for _, tt := range timelines {
		if err := cm.SaveTimeline(tt); err != nil {
			LogWarn("Failed to cache timeline %s: %v", tt.ThreadID, err)
			continue
		}
	}

	return cm.SaveIndex(&index)
}

// ClearCache clears the cache.
func (cm *CacheManager) ClearCache() error {
	index, err := cm.LoadIndex()
	if err == nil {
		for _, entry := range index.Threads {
			_ = os.Remove(cm.GetTimelinePath(entry.ThreadID))
		}
	}

	if err := os.Remove(cm.GetIndexPath()); err != nil && !os.IsNotExist(err) {
		return err
	}

	return nil
}
