package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lacehq/lace/internal"
	"github.com/lacehq/lace/internal/export"
	"github.com/spf13/cobra"
)

var (
	format         string
	outputDir      string
	exportThreadID string
	clearCache     bool
)

// exportCmd represents the export command
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export projected timelines to file",
	Long: `Export thread timelines to various formats (jsonl, md, yaml, json).

You can export all threads or a single thread by ID.
Use 'lace list' to see available thread IDs.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		paths, err := internal.GetStoragePaths(dbPath)
		if err != nil {
			return fmt.Errorf("failed to get storage paths: %w", err)
		}

		exporter, err := export.NewExporter(format)
		if err != nil {
			return err
		}

		cacheManager := internal.NewCacheManager(paths.CacheDir)
		if clearCache {
			if err := cacheManager.ClearCache(); err != nil {
				internal.LogWarn("Failed to clear cache: %v", err)
			} else {
				internal.LogInfo("Cache cleared")
			}
		}

		var timelines []*internal.ThreadTimeline
		var summaries []internal.ThreadSummary

		steps := []internal.ProgressStep{
			{
				Message: "Loading threads from storage",
				Fn: func() error {
					db, err := internal.OpenDatabase(paths.DatabasePath)
					if err != nil {
						return err
					}
					defer db.Close()

					store := internal.NewStore(db)
					summaries, err = store.ListThreads()
					if err != nil {
						return err
					}
					if exportThreadID != "" {
						summaries = filterSummaries(summaries, exportThreadID)
						if len(summaries) == 0 {
							return fmt.Errorf("no events found for thread %s", exportThreadID)
						}
					}

					cacheValid, _ := cacheManager.IsCacheValid(paths.DatabasePath)
					dedup := internal.NewDeduplicator()
					for _, sum := range summaries {
						if cacheValid {
							if tt, err := cacheManager.LoadTimeline(sum.ThreadID); err == nil {
								timelines = append(timelines, tt)
								continue
							}
						}
						events, err := store.LoadEvents(sum.ThreadID)
						if err != nil {
							internal.LogWarn("Skipping thread %s: %v", sum.ThreadID, err)
							continue
						}
						timelines = append(timelines, internal.ProjectThread(sum.ThreadID, dedup.Deduplicate(events)))
					}
					return nil
				},
			},
			{
				Message: "Updating timeline cache",
				Fn: func() error {
					if err := cacheManager.SaveTimelines(timelines, summaries, paths.DatabasePath); err != nil {
						// Cache trouble shouldn't block an export.
						internal.LogWarn("Failed to update cache: %v", err)
					}
					return nil
				},
			},
			{
				Message: fmt.Sprintf("Writing timelines as %s", format),
				Fn: func() error {
					return writeTimelines(exporter, timelines)
				},
			},
		}

		if err := internal.RunSteps(steps); err != nil {
			return err
		}

		fmt.Printf("Exported %d timeline(s) to %s\n", len(timelines), outputDir)
		return nil
	},
}

func filterSummaries(summaries []internal.ThreadSummary, threadID string) []internal.ThreadSummary {
	var out []internal.ThreadSummary
	for _, sum := range summaries {
		if sum.ThreadID == threadID {
			out = append(out, sum)
		}
	}
	return out
}

func writeTimelines(exporter export.Exporter, timelines []*internal.ThreadTimeline) error {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	for _, tt := range timelines {
		path := filepath.Join(outputDir, fmt.Sprintf("thread_%s.%s", tt.ThreadID, exporter.Extension()))
		f, err := os.Create(path)
		if err != nil {
			return &internal.ExportError{Format: format, Path: path, Err: err}
		}
		if err := exporter.Export(tt, f); err != nil {
			f.Close()
			return &internal.ExportError{Format: format, Path: path, Err: err}
		}
		if err := f.Close(); err != nil {
			return &internal.ExportError{Format: format, Path: path, Err: err}
		}
		internal.LogDebug("Wrote %s", path)
	}

	return nil
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVar(&format, "format", "jsonl", "Export format (jsonl, md, yaml, json)")
	exportCmd.Flags().StringVar(&outputDir, "output-dir", "./lace-export", "Output directory")
	exportCmd.Flags().StringVar(&exportThreadID, "thread", "", "Export a single thread by ID")
	exportCmd.Flags().BoolVar(&clearCache, "clear-cache", false, "Clear the cache before running")
}
