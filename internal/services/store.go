package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"ratepulse/internal/files"
	"ratepulse/pkg/contracts/domain"
)

// snapshotLoadConcurrency caps the fan-out when reading snapshot files.
const snapshotLoadConcurrency = 8

// SnapshotStore loads competitor snapshots and user rates from the data
// directory. Snapshot files are one JSON document per competitor hotel.
type SnapshotStore struct {
	snapshotsDir  string
	userRatesFile string
	discovery     *files.Discovery
	logger        *slog.Logger
}

// NewSnapshotStore creates a store over the given snapshot directory and
// user rates file.
func NewSnapshotStore(snapshotsDir, userRatesFile string, logger *slog.Logger) *SnapshotStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SnapshotStore{
		snapshotsDir:  snapshotsDir,
		userRatesFile: userRatesFile,
		discovery:     files.NewDiscovery(""),
		logger:        logger,
	}
}

// LoadSnapshots reads every competitor snapshot file concurrently. Files
// that fail to parse are logged and skipped so one corrupt scrape does not
// take down the comparison. The result is sorted by competitor name.
func (s *SnapshotStore) LoadSnapshots(ctx context.Context) ([]domain.CompetitorSnapshot, error) {
	found, err := s.discovery.FindSnapshotFiles(s.snapshotsDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to list snapshot files: %w", err)
	}

	var (
		mu        sync.Mutex
		snapshots []domain.CompetitorSnapshot
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(snapshotLoadConcurrency)

	for _, file := range found {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			snapshot, err := readSnapshot(file.Path)
			if err != nil {
				s.logger.WarnContext(ctx, "skipping unreadable snapshot",
					slog.String("file", file.Name),
					slog.String("error", err.Error()))
				return nil
			}

			mu.Lock()
			snapshots = append(snapshots, snapshot)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(snapshots, func(i, j int) bool {
		return snapshots[i].Name < snapshots[j].Name
	})

	s.logger.DebugContext(ctx, "snapshots loaded",
		slog.Int("files", len(found)),
		slog.Int("parsed", len(snapshots)))

	return snapshots, nil
}

// LoadUserRates reads the user hotel's rate records. A missing file is not
// an error; it returns an empty slice so comparisons can still run with
// competitor data only.
func (s *SnapshotStore) LoadUserRates(ctx context.Context) ([]domain.UserRate, error) {
	data, err := os.ReadFile(s.userRatesFile)
	if err != nil {
		if os.IsNotExist(err) {
			s.logger.DebugContext(ctx, "user rates file missing",
				slog.String("path", s.userRatesFile))
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read user rates: %w", err)
	}

	var rates []domain.UserRate
	if err := json.Unmarshal(data, &rates); err != nil {
		return nil, fmt.Errorf("failed to parse user rates: %w", err)
	}

	return rates, nil
}

func readSnapshot(path string) (domain.CompetitorSnapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.CompetitorSnapshot{}, err
	}

	var snapshot domain.CompetitorSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return domain.CompetitorSnapshot{}, fmt.Errorf("invalid snapshot json: %w", err)
	}

	if snapshot.Name == "" {
		// Fall back to the file name when the scraper omitted it.
		base := filepath.Base(path)
		snapshot.Name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	return snapshot, nil
}
