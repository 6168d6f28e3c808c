package scan

import (
	"time"

	"github.com/mselser95/trade-hauls/internal/analysis"
	"github.com/mselser95/trade-hauls/pkg/types"
)

// LogInfo describes the input of a scan.
type LogInfo struct {
	Path       string `json:"path"`
	FileCount  int    `json:"file_count"`
	EventCount int    `json:"event_count"`
}

// Snapshot is the complete result of one scan. The embedded report fields
// are flattened into the JSON object.
type Snapshot struct {
	RunID       string    `json:"run_id"`
	GeneratedAt time.Time `json:"generated_at"`
	LogInfo     LogInfo   `json:"log_info"`
	analysis.Report
	Hauls     []types.Haul            `json:"hauls"`
	Inventory []types.Lot             `json:"inventory"`
	Balances  []types.ResourceBalance `json:"balances"`
}

// Unbalanced returns the resources whose sells or moves exceeded inventory.
func (s *Snapshot) Unbalanced() []types.ResourceBalance {
	var out []types.ResourceBalance
	for _, b := range s.Balances {
		if !b.Balanced() {
			out = append(out, b)
		}
	}
	return out
}
