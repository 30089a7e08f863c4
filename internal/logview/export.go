package logview

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/klauspost/compress/gzip"

	"github.com/hande-app/logwatch/internal/models"
)

// exportHeader is the fixed column row of every export file.
var exportHeader = []string{"ID", "Admin", "Email", "Action", "IP Address", "Date"}

// exportTimeLayout formats audit timestamps in export rows.
const exportTimeLayout = "2006-01-02 15:04:05"

// ErrNoRows is returned when the requested range holds no audit entries;
// no file is produced in that case.
var ErrNoRows = errors.New("no audit entries in range")

// AuditSource is the slice of the admin API the exporter fetches from.
type AuditSource interface {
	AuditRange(ctx context.Context, start, end time.Time) ([]models.AuditEntry, error)
}

// ExportResult describes a completed export.
type ExportResult struct {
	Filename string
	Path     string
	Rows     int
}

// Exporter produces audit-complete CSV snapshots. Exports always cover the
// raw entries of the requested range, never the currently filtered view.
type Exporter struct {
	source AuditSource
	dir    string
}

// NewExporter creates an Exporter writing files under dir.
func NewExporter(source AuditSource, dir string) *Exporter {
	return &Exporter{source: source, dir: dir}
}

// Export runs an export of the trailing 7 days, ending now.
func (e *Exporter) Export(ctx context.Context) (ExportResult, error) {
	end := time.Now()
	return e.ExportRange(ctx, end.AddDate(0, 0, -7), end)
}

// ExportRange fetches the raw audit entries between start and end and
// writes them as a CSV file. If the fetch fails or yields zero rows, no
// file is produced and the error is returned to the caller.
func (e *Exporter) ExportRange(ctx context.Context, start, end time.Time) (ExportResult, error) {
	data, filename, rows, err := e.build(ctx, start, end)
	if err != nil {
		return ExportResult{}, err
	}

	path := filepath.Join(e.dir, filename)
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("could not create export directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return ExportResult{}, fmt.Errorf("could not write export file: %w", err)
	}
	return ExportResult{Filename: filename, Path: path, Rows: rows}, nil
}

// ExportRangeArchive is ExportRange with gzip compression, used by the
// scheduled nightly export so archives stay small.
func (e *Exporter) ExportRangeArchive(ctx context.Context, start, end time.Time) (ExportResult, error) {
	data, filename, rows, err := e.build(ctx, start, end)
	if err != nil {
		return ExportResult{}, err
	}

	filename += ".gz"
	path := filepath.Join(e.dir, filename)
	if err := os.MkdirAll(e.dir, 0755); err != nil {
		return ExportResult{}, fmt.Errorf("could not create export directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return ExportResult{}, fmt.Errorf("could not create export archive: %w", err)
	}
	defer f.Close()

	zw := gzip.NewWriter(f)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		os.Remove(path)
		return ExportResult{}, fmt.Errorf("could not write export archive: %w", err)
	}
	if err := zw.Close(); err != nil {
		os.Remove(path)
		return ExportResult{}, fmt.Errorf("could not finalize export archive: %w", err)
	}
	return ExportResult{Filename: filename, Path: path, Rows: rows}, nil
}

func (e *Exporter) build(ctx context.Context, start, end time.Time) (data []byte, filename string, rows int, err error) {
	entries, err := e.source.AuditRange(ctx, start, end)
	if err != nil {
		return nil, "", 0, fmt.Errorf("export fetch failed: %w", err)
	}
	if len(entries) == 0 {
		return nil, "", 0, fmt.Errorf("%w (%s to %s)", ErrNoRows,
			start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	filename = fmt.Sprintf("audit_logs_%s.csv", end.Format("2006-01-02"))
	return SerializeAudit(entries), filename, len(entries), nil
}

// SerializeAudit renders audit entries as CSV bytes: one fixed header row,
// one row per entry, fields in a fixed order with every cell quoted.
// Identical input yields byte-identical output. encoding/csv is not used
// here because it only quotes cells that need it, and the dashboard's
// format quotes all of them.
func SerializeAudit(entries []models.AuditEntry) []byte {
	var b strings.Builder
	writeRow(&b, exportHeader)
	for _, entry := range entries {
		writeRow(&b, []string{
			fmt.Sprint(entry.ID),
			entry.AdminName,
			entry.AdminEmail,
			entry.Action,
			entry.IPAddress,
			entry.CreatedAt.Format(exportTimeLayout),
		})
	}
	return []byte(b.String())
}

func writeRow(b *strings.Builder, cells []string) {
	for i, cell := range cells {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteByte('"')
		b.WriteString(strings.ReplaceAll(cell, `"`, `""`))
		b.WriteByte('"')
	}
	b.WriteByte('\n')
}
