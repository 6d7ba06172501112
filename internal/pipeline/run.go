// Package pipeline wires the wizard steps together: resume analysis, catalog
// suggestions and external listing lookups.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/internship-finder/internal/catalog"
	"github.com/jonathan/internship-finder/internal/listings"
	"github.com/jonathan/internship-finder/internal/resume"
	"github.com/jonathan/internship-finder/internal/skills"
	"github.com/jonathan/internship-finder/internal/types"
)

// ProgressEvent represents a progress update while a scan runs
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	Content any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

const (
	StepAnalyze  = "analyze_resume"
	StepCatalog  = "suggest_jobs"
	StepListings = "fetch_listings"
)

// Suggestions is the combined output of the jobs step.
type Suggestions struct {
	Jobs     []string             `json:"jobs"`
	Listings []types.ListingGroup `json:"listings"`
}

// SuggestOptions holds the inputs of the jobs step
type SuggestOptions struct {
	Skills      types.SkillSet
	CatalogPath string
	// Fetcher may be nil, in which case no listings are fetched.
	Fetcher    *listings.Fetcher
	OnProgress ProgressCallback
}

func emitProgress(cb ProgressCallback, step, message string, content any) {
	if cb != nil {
		cb(ProgressEvent{Step: step, Message: message, Content: content})
	}
}

// AnalyzeUpload stores src in dir under a collision-free scratch name, extracts
// its skills, and removes the scratch file whether or not extraction succeeds.
func AnalyzeUpload(dir, filename string, src io.Reader) (types.SkillSet, error) {
	path, err := resume.SaveScratch(dir, filename, src)
	if err != nil {
		return nil, err
	}
	defer func() {
		if rmErr := os.Remove(path); rmErr != nil && !os.IsNotExist(rmErr) {
			log.Printf("[wizard] failed to remove scratch file %s: %v", path, rmErr)
		}
	}()

	return AnalyzeFile(path)
}

// AnalyzeFile extracts skills from a resume PDF on disk.
func AnalyzeFile(path string) (types.SkillSet, error) {
	text, err := resume.ExtractFile(path)
	if err != nil {
		return nil, err
	}
	return skills.Match(text), nil
}

// Suggest computes catalog matches and external listings for a skill set.
// The two branches run concurrently; only a catalog failure is returned, since
// listing failures already degrade to empty groups. OnProgress is never called
// from two goroutines at once.
func Suggest(ctx context.Context, opts SuggestOptions) (*Suggestions, error) {
	result := &Suggestions{Jobs: []string{}, Listings: []types.ListingGroup{}}

	var progressMu sync.Mutex
	progress := func(step, message string, content any) {
		progressMu.Lock()
		defer progressMu.Unlock()
		emitProgress(opts.OnProgress, step, message, content)
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		jobs, err := catalog.SuggestFromFile(opts.Skills, opts.CatalogPath)
		if err != nil {
			return err
		}
		result.Jobs = jobs
		progress(StepCatalog, fmt.Sprintf("%d catalog matches", len(jobs)), jobs)
		return nil
	})

	if opts.Fetcher != nil {
		g.Go(func() error {
			groups := opts.Fetcher.FetchAll(gctx, opts.Skills.Query())
			result.Listings = groups
			progress(StepListings, fmt.Sprintf("%d listing sources queried", len(groups)), groups)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return result, nil
}

// ScanOptions holds configuration for a one-shot command-line scan
type ScanOptions struct {
	ResumePath  string
	CatalogPath string
	Fetcher     *listings.Fetcher
	OnProgress  ProgressCallback
}

// Scan runs the whole wizard non-interactively against a resume on disk.
func Scan(ctx context.Context, opts ScanOptions) (types.SkillSet, *Suggestions, error) {
	found, err := AnalyzeFile(opts.ResumePath)
	if err != nil {
		return nil, nil, fmt.Errorf("resume analysis failed: %w", err)
	}
	emitProgress(opts.OnProgress, StepAnalyze, fmt.Sprintf("%d skills found", len(found)), found)

	suggestions, err := Suggest(ctx, SuggestOptions{
		Skills:      found,
		CatalogPath: opts.CatalogPath,
		Fetcher:     opts.Fetcher,
		OnProgress:  opts.OnProgress,
	})
	if err != nil {
		return found, nil, fmt.Errorf("job suggestion failed: %w", err)
	}
	return found, suggestions, nil
}
