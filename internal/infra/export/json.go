package export

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"course_completion_report/internal/domain/report"
)

// JSONRenderer writes the report model itself.
type JSONRenderer struct{}

func (JSONRenderer) ContentType() string { return "application/json" }
func (JSONRenderer) Extension() string   { return "json" }

func (JSONRenderer) Render(_ context.Context, w io.Writer, rep *report.Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
