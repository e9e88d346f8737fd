package store

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"ritmo/internal/core"
)

// Wire representations. Timestamps travel as RFC 3339 strings; a nil
// score stays nil so "not rated" survives the round trip.
type (
	activityRecord struct {
		ID        int64   `json:"id"`
		Timestamp string  `json:"timestamp"`
		EntryTime string  `json:"entryTime,omitempty"`
		Category  string  `json:"category"`
		Name      string  `json:"name"`
		Duration  float64 `json:"duration"`
		Score     *int    `json:"score,omitempty"`
		Notes     string  `json:"notes,omitempty"`
	}

	goalRecord struct {
		ID        int64   `json:"id"`
		Name      string  `json:"name"`
		Target    float64 `json:"target"`
		Unit      string  `json:"unit"`
		Category  string  `json:"category,omitempty"`
		CreatedAt string  `json:"createdAt"`
	}
)

func encodeActivities(list []core.Activity) []byte {
	records := make([]activityRecord, len(list))
	for i, a := range list {
		records[i] = activityRecord{
			ID:        a.ID,
			Timestamp: a.Timestamp.Format(time.RFC3339),
			EntryTime: a.EntryTime,
			Category:  a.Category,
			Name:      a.Name,
			Duration:  a.Duration,
			Score:     a.Score,
			Notes:     a.Notes,
		}
	}
	raw, _ := json.Marshal(records)
	return raw
}

// decodeActivities parses the activities blob. Records that fail to
// parse are skipped with a warning; an unreadable blob yields an empty
// list rather than an error.
func decodeActivities(ctx context.Context, raw []byte) []core.Activity {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		slog.WarnContext(ctx, "Activities blob unreadable, starting empty", "error", err)
		return nil
	}

	out := make([]core.Activity, 0, len(records))
	for i, r := range records {
		var rec activityRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			slog.WarnContext(ctx, "Skipping malformed activity record", "index", i, "error", err)
			continue
		}
		ts, err := time.Parse(time.RFC3339, rec.Timestamp)
		if err != nil {
			slog.WarnContext(ctx, "Skipping activity with bad timestamp",
				"index", i, "timestamp", rec.Timestamp, "error", err)
			continue
		}
		out = append(out, core.Activity{
			ID:        rec.ID,
			Timestamp: ts.Local(),
			EntryTime: rec.EntryTime,
			Category:  rec.Category,
			Name:      rec.Name,
			Duration:  rec.Duration,
			Score:     rec.Score,
			Notes:     rec.Notes,
		})
	}
	return out
}

func encodeGoals(list []core.Goal) []byte {
	records := make([]goalRecord, len(list))
	for i, g := range list {
		records[i] = goalRecord{
			ID:        g.ID,
			Name:      g.Name,
			Target:    g.Target,
			Unit:      g.Unit,
			Category:  g.Category,
			CreatedAt: g.CreatedAt.Format(time.RFC3339),
		}
	}
	raw, _ := json.Marshal(records)
	return raw
}

func decodeGoals(ctx context.Context, raw []byte) []core.Goal {
	var records []json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		slog.WarnContext(ctx, "Goals blob unreadable, starting empty", "error", err)
		return nil
	}

	out := make([]core.Goal, 0, len(records))
	for i, r := range records {
		var rec goalRecord
		if err := json.Unmarshal(r, &rec); err != nil {
			slog.WarnContext(ctx, "Skipping malformed goal record", "index", i, "error", err)
			continue
		}
		createdAt, err := time.Parse(time.RFC3339, rec.CreatedAt)
		if err != nil {
			// CreatedAt is informational only; keep the goal.
			createdAt = time.Time{}
		}
		out = append(out, core.Goal{
			ID:        rec.ID,
			Name:      rec.Name,
			Target:    rec.Target,
			Unit:      rec.Unit,
			Category:  rec.Category,
			CreatedAt: createdAt.Local(),
		})
	}
	return out
}

func encodeCategories(list []string) []byte {
	raw, _ := json.Marshal(list)
	return raw
}

func decodeCategories(ctx context.Context, raw []byte) []string {
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		slog.WarnContext(ctx, "Categories blob unreadable, using defaults", "error", err)
		return nil
	}
	return out
}
