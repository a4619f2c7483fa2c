package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/verte-zerg/zipfr/internal/model"
)

// RenderHistory prints recorded runs as a table. words, when non-nil, holds
// the stored top words of each run keyed by run id.
func RenderHistory(w io.Writer, runs []model.RunRecord, words map[int64][]model.WordCount) error {
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "No runs recorded.")
		return err
	}
	headers := []string{"ID", "Recorded", "Dataset", "Words", "Unique", "Parse", "Analysis", "Hash"}
	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			strconv.FormatInt(r.ID, 10),
			r.RecordedAt.Local().Format(time.DateTime),
			r.Dataset,
			strconv.Itoa(r.TotalWords),
			strconv.Itoa(r.UniqueWords),
			fmt.Sprintf("%dms", r.ParseDurationMs),
			fmt.Sprintf("%dms", r.AnalyzeMs),
			fmt.Sprintf("%016x", r.ContentHash),
		})
	}
	for _, line := range formatTable(headers, rows, map[int]bool{0: true, 3: true, 4: true, 5: true, 6: true}) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if words == nil {
		return nil
	}
	for _, r := range runs {
		top := words[r.ID]
		if len(top) == 0 {
			continue
		}
		parts := make([]string, len(top))
		for i, wc := range top {
			parts[i] = fmt.Sprintf("%s(%d)", wc.Word, wc.Count)
		}
		if _, err := fmt.Fprintf(w, "\n#%d %s: %s\n", r.ID, r.Dataset, strings.Join(parts, " ")); err != nil {
			return err
		}
	}
	return nil
}
