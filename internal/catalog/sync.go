package catalog

import (
	"log/slog"

	"github.com/ondrel/curio/internal/models"
)

// Sync brings the source index in line with the fetched catalog and the
// user's custom lists:
//   - fetched and custom sources are upserted
//   - rows for sources no longer present anywhere are deleted
func Sync(db *DB, fetched []models.Source, custom []models.CustomList, logger *slog.Logger) error {
	keep := make(map[string]struct{}, len(fetched)+len(custom))

	for _, s := range fetched {
		keep[s.Repo] = struct{}{}
		if err := db.UpsertSource(s); err != nil {
			logger.Warn("sync: upsert failed",
				slog.String("repo", s.Repo),
				slog.String("error", err.Error()))
		}
	}

	for _, c := range custom {
		keep[c.Repo] = struct{}{}
		s := models.Source{
			Repo:        c.Repo,
			Name:        c.Name,
			User:        c.User,
			Description: c.Description,
			Custom:      true,
		}
		if err := db.UpsertSource(s); err != nil {
			logger.Warn("sync: upsert custom failed",
				slog.String("repo", c.Repo),
				slog.String("error", err.Error()))
		}
	}

	indexed, err := db.AllRepos()
	if err != nil {
		return err
	}
	for _, repo := range indexed {
		if _, ok := keep[repo]; ok {
			continue
		}
		if err := db.DeleteSource(repo); err != nil {
			logger.Warn("sync: delete stale failed",
				slog.String("repo", repo),
				slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: removed stale", slog.String("repo", repo))
		}
	}

	return nil
}
