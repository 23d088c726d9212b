package archive

import (
	"database/sql"
	"fmt"
	"time"
)

type Run struct {
	ID         int64
	StartedAt  time.Time
	FinishedAt *time.Time
	Companies  int
	Fetched    int
	Added      int
	CorpusSize int
}

type SourceFetch struct {
	ID          int64
	RunID       int64
	CompanySlug string
	SourceType  string
	ItemCount   int
	Error       string
	FetchedAt   time.Time
}

// RunRepository records collection runs and their per-source outcomes.
type RunRepository struct {
	db *DB
}

func NewRunRepository(db *DB) *RunRepository {
	return &RunRepository{db: db}
}

// StartRun opens a new run record and returns its id.
func (r *RunRepository) StartRun(companies int) (int64, error) {
	result, err := r.db.Exec(`
		INSERT INTO collection_runs (started_at, companies)
		VALUES (?, ?)
	`, time.Now().UTC(), companies)
	if err != nil {
		return 0, fmt.Errorf("failed to start run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get run id: %w", err)
	}

	return id, nil
}

// FinishRun closes a run record with final counters.
func (r *RunRepository) FinishRun(runID int64, fetched, added, corpusSize int) error {
	_, err := r.db.Exec(`
		UPDATE collection_runs
		SET finished_at = ?, fetched = ?, added = ?, corpus_size = ?
		WHERE id = ?
	`, time.Now().UTC(), fetched, added, corpusSize, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}

	return nil
}

// RecordFetch stores the outcome of a single source fetch. errMsg is
// empty for a successful fetch.
func (r *RunRepository) RecordFetch(runID int64, companySlug, sourceType string, itemCount int, errMsg string) error {
	_, err := r.db.Exec(`
		INSERT INTO source_fetches (run_id, company_slug, source_type, item_count, error, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, companySlug, sourceType, itemCount, errMsg, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to record fetch: %w", err)
	}

	return nil
}

// GetLastRun returns the most recently started run, or nil when the
// archive is empty.
func (r *RunRepository) GetLastRun() (*Run, error) {
	var run Run
	err := r.db.QueryRow(`
		SELECT id, started_at, finished_at, companies, fetched, added, corpus_size
		FROM collection_runs
		ORDER BY started_at DESC
		LIMIT 1
	`).Scan(&run.ID, &run.StartedAt, &run.FinishedAt, &run.Companies,
		&run.Fetched, &run.Added, &run.CorpusSize)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get last run: %w", err)
	}

	return &run, nil
}

// GetRunCount returns the total number of recorded runs.
func (r *RunRepository) GetRunCount() (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM collection_runs`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}

	return count, nil
}

// GetRunFetches returns the per-source records of a run.
func (r *RunRepository) GetRunFetches(runID int64) ([]SourceFetch, error) {
	rows, err := r.db.Query(`
		SELECT id, run_id, company_slug, source_type, item_count, error, fetched_at
		FROM source_fetches
		WHERE run_id = ?
		ORDER BY id
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("failed to get run fetches: %w", err)
	}
	defer rows.Close()

	var fetches []SourceFetch
	for rows.Next() {
		var fetch SourceFetch
		if err := rows.Scan(&fetch.ID, &fetch.RunID, &fetch.CompanySlug,
			&fetch.SourceType, &fetch.ItemCount, &fetch.Error, &fetch.FetchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan fetch: %w", err)
		}
		fetches = append(fetches, fetch)
	}

	return fetches, rows.Err()
}
