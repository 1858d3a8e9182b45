package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"

	"estate-backoffice/internal/ui"
)

// Download is a file handed to the browser
type Download struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ExportFilename names an export taken at the clock's UTC date
func (c *Controller) ExportFilename() string {
	return fmt.Sprintf("analytics_export_%s.json", c.now().UTC().Format("2006-01-02"))
}

// ExportData fetches the KPI export for the current range and filters and
// returns it as an indented JSON download. Failures are reported as toasts
// and yield nil.
func (c *Controller) ExportData(ctx context.Context) *Download {
	c.ui.SetLoading(LoadingExport, true)
	defer c.ui.SetLoading(LoadingExport, false)

	dl, err := c.export(ctx)
	if err != nil {
		log.Printf("[Analytics] Error exporting data: %v", err)
		c.ui.ShowError(msgExportFailed, ui.SlotToast)
		return nil
	}

	if c.archiver != nil {
		if err := c.archiver.Archive(ctx, dl.Filename, dl.Content); err != nil {
			log.Printf("[Analytics] Warning: failed to archive %s: %v", dl.Filename, err)
		}
	}

	c.ui.ShowSuccess(msgExported)
	return dl
}

func (c *Controller) export(ctx context.Context) (*Download, error) {
	q := c.query(url.Values{"type": {"kpis"}, "format": {"json"}})

	payload, err := c.api.Export(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(payload)) == 0 {
		payload = []byte("null")
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, payload, "", "  "); err != nil {
		return nil, fmt.Errorf("export body is not JSON: %w", err)
	}

	return &Download{
		Filename:    c.ExportFilename(),
		ContentType: "application/json",
		Content:     buf.Bytes(),
	}, nil
}
