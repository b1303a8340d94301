package pipeline

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/theirongolddev/budgetburn/internal/model"
	"github.com/theirongolddev/budgetburn/internal/source"
)

// LoadResult holds the output of an import run.
type LoadResult struct {
	Transactions []model.Transaction
	Formats      map[source.Format]int // discovered files per format
	TotalFiles   int
	ParsedFiles  int
	ParseErrors  int // malformed records inside readable files
	Rejected     int // well-formed records that failed validation
	FileErrors   int // files that could not be read at all
}

// ProgressFunc is called during loading to report progress.
// current is the number of files processed so far, total is the total count.
type ProgressFunc func(current, total int)

// Load discovers and parses every import file under dir, then validates
// each record into a transaction. Files are parsed by a bounded worker pool.
// Transactions come back newest first.
func Load(dir string, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(dir)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}

	result := &LoadResult{TotalFiles: len(files), Formats: source.CountFormats(files)}
	if len(files) == 0 {
		return result, nil
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	results := make([]source.ParseResult, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				results[idx] = source.ParseFile(files[idx])
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}

	wg.Wait()

	for _, pr := range results {
		if pr.Err != nil {
			result.FileErrors++
			continue
		}
		result.ParsedFiles++
		result.ParseErrors += pr.ParseErrors
		for _, rec := range pr.Records {
			txn, err := NewTransaction(rec.Date, rec.Category, rec.Description, rec.Amount)
			if err != nil {
				result.Rejected++
				continue
			}
			result.Transactions = append(result.Transactions, txn)
		}
	}
	SortTransactions(result.Transactions)

	return result, nil
}
