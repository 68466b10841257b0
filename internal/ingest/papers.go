// ABOUTME: Research paper ingestion: walks a directory of PDFs into the pipeline
// ABOUTME: Missing directories and unreadable files degrade to logged no-ops
package ingest

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/fitanalysis/server/internal/models"
)

// IngestPapers ingests every PDF in dir, one source per file with the file
// path as source ID. A missing directory or one without PDFs is logged and
// treated as a no-op. A single unreadable PDF skips that file only;
// embedding or storage failures propagate.
func (p *Pipeline) IngestPapers(ctx context.Context, dir string) error {
	p.logger.Printf("starting paper ingestion from %s", dir)

	entries, err := os.ReadDir(dir)
	if err != nil {
		p.logger.Printf("papers directory not found: %s", dir)
		return nil
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}

	if len(paths) == 0 {
		p.logger.Printf("no PDF files found in %s", dir)
		return nil
	}
	p.logger.Printf("found %d PDF files to process", len(paths))

	for _, path := range paths {
		text, err := ExtractPDFText(path)
		if err != nil {
			p.logger.Printf("skipping %s: %v", path, err)
			continue
		}
		if err := p.IngestText(ctx, path, models.SourceTypeResearchPaper, text, nil); err != nil {
			return err
		}
	}

	return nil
}
