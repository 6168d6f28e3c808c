package report

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"os"

	json "github.com/goccy/go-json"
	"github.com/mselser95/trade-hauls/internal/scan"
	"go.uber.org/zap"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

const defaultTitle = "Trade Hauls"

// Page is the input of the dashboard template.
type Page struct {
	Title string
	// Live makes the page follow the websocket feed after the initial render.
	Live bool
	Data template.JS
}

// RenderHTML writes a static dashboard page with ctx embedded as JSON.
func RenderHTML(w io.Writer, ctx any) error {
	return render(w, ctx, false)
}

// RenderHTMLFile writes a static dashboard page to path.
func RenderHTMLFile(path string, ctx any) error {
	var buf bytes.Buffer
	if err := RenderHTML(&buf, ctx); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write html report: %w", err)
	}
	return nil
}

func render(w io.Writer, ctx any, live bool) error {
	data, err := json.Marshal(ctx)
	if err != nil {
		return fmt.Errorf("encode report context: %w", err)
	}

	page := Page{
		Title: defaultTitle,
		Live:  live,
		// Marshal escapes <, > and & so the payload cannot close the script tag.
		Data: template.JS(data),
	}
	if err := dashboardTemplate.Execute(w, page); err != nil {
		return fmt.Errorf("render dashboard: %w", err)
	}
	return nil
}

// SnapshotSource returns the latest scan result, or nil before the first scan.
type SnapshotSource interface {
	Latest() *scan.Snapshot
}

// Dashboard serves the live dashboard page seeded with the latest snapshot.
type Dashboard struct {
	snapshots SnapshotSource
	logger    *zap.Logger
}

// NewDashboard creates the dashboard handler.
func NewDashboard(snapshots SnapshotSource, logger *zap.Logger) *Dashboard {
	return &Dashboard{
		snapshots: snapshots,
		logger:    logger,
	}
}

// ServeHTTP renders the page.
func (d *Dashboard) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var ctx any = map[string]string{"status": "bootstrapping"}
	if snap := d.snapshots.Latest(); snap != nil {
		ctx = snap
	}

	var buf bytes.Buffer
	if err := render(&buf, ctx, true); err != nil {
		d.logger.Error("dashboard-render-failed", zap.Error(err))
		http.Error(w, "render failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}
