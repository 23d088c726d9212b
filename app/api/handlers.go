package api

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blockwall/portfolio-pulse/app/archive"
	"github.com/blockwall/portfolio-pulse/app/cfg"
	"github.com/blockwall/portfolio-pulse/app/registry"
	"github.com/blockwall/portfolio-pulse/app/store"
)

var (
	slugRe = regexp.MustCompile(`^[a-z0-9-]+$`)
	dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

func NewHandler(reg *registry.Registry, runs *archive.RunRepository) *Handler {
	c := cfg.Get()

	return &Handler{
		registry: reg,
		store:    store.NewStore(filepath.Join(c.DataDir, "items.json")),
		runs:     runs,
		dataDir:  c.DataDir,
		version:  c.Version,
	}
}

func (h *Handler) GetLatest(c *gin.Context) {
	h.serveArtifact(c, filepath.Join(h.dataDir, "indexes", "latest.json"))
}

func (h *Handler) ListCompanies(c *gin.Context) {
	companies := h.registry.GetCompanies()

	list := make([]gin.H, 0, len(companies))
	for _, company := range companies {
		list = append(list, gin.H{
			"slug":    company.Slug,
			"name":    company.Name,
			"website": company.Website,
		})
	}

	c.JSON(http.StatusOK, gin.H{"companies": list})
}

func (h *Handler) GetCompany(c *gin.Context) {
	slug := c.Param("slug")
	if !slugRe.MatchString(slug) {
		c.Status(http.StatusNotFound)
		return
	}

	h.serveArtifact(c, filepath.Join(h.dataDir, "indexes", "by-company", slug+".json"))
}

func (h *Handler) GetDailyIndex(c *gin.Context) {
	h.serveArtifact(c, filepath.Join(h.dataDir, "indexes", "daily", "index.json"))
}

func (h *Handler) GetDaily(c *gin.Context) {
	date := c.Param("date")
	if !dateRe.MatchString(date) {
		c.Status(http.StatusNotFound)
		return
	}

	h.serveArtifact(c, filepath.Join(h.dataDir, "indexes", "daily", date+".json"))
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *Handler) GetStats(c *gin.Context) {
	stats := gin.H{
		"companies":   h.registry.GetCompanyCount(),
		"corpus_size": len(h.store.Load()),
	}

	if h.runs != nil {
		if run, err := h.runs.GetLastRun(); err != nil {
			slog.Error("Database error", "operation", "get_last_run", "error", err)
		} else if run != nil {
			stats["last_run"] = runStats(run)
		}

		if count, err := h.runs.GetRunCount(); err == nil {
			stats["total_runs"] = count
		}
	}

	c.JSON(http.StatusOK, stats)
}

func runStats(run *archive.Run) gin.H {
	s := gin.H{
		"started_at":  run.StartedAt.Format(time.RFC3339),
		"companies":   run.Companies,
		"fetched":     run.Fetched,
		"added":       run.Added,
		"corpus_size": run.CorpusSize,
	}
	if run.FinishedAt != nil {
		s["finished_at"] = run.FinishedAt.Format(time.RFC3339)
	}
	return s
}

func (h *Handler) serveArtifact(c *gin.Context, path string) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			c.Status(http.StatusNotFound)
			return
		}
		slog.Error("Failed to stat artifact", "path", path, "error", err)
		c.Status(http.StatusInternalServerError)
		return
	}

	c.Header("Content-Type", "application/json; charset=utf-8")
	c.File(path)
}
