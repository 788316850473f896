package printer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// SpoolPrinter drops one text file per receipt into a directory watched by
// a print spooler.
type SpoolPrinter struct {
	dir string
	now func() time.Time
}

func NewSpoolPrinter(dir string) (*SpoolPrinter, error) {
	err := os.MkdirAll(dir, 0o755)
	if err != nil {
		return nil, fmt.Errorf("SpoolPrinter - New - os.MkdirAll: %w", err)
	}

	return &SpoolPrinter{
		dir: dir,
		now: time.Now,
	}, nil
}

func (p *SpoolPrinter) Emit(ctx context.Context, name, company string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("SpoolPrinter - Emit: %w", err)
	}

	file := fmt.Sprintf("%s-%s.txt", p.now().UTC().Format("20060102T150405.000000000"), uuid.NewString()[:8])
	tmp := filepath.Join(p.dir, "."+file)

	err := os.WriteFile(tmp, []byte(Text(name, company)), 0o644)
	if err != nil {
		return fmt.Errorf("SpoolPrinter - Emit - os.WriteFile: %w", err)
	}

	// spoolers only see complete files
	err = os.Rename(tmp, filepath.Join(p.dir, file))
	if err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("SpoolPrinter - Emit - os.Rename: %w", err)
	}

	return nil
}
