package containers

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"
)

var exportHeader = []string{
	"code",
	"neighborhood",
	"type",
	"waste_category",
	"fill_level",
	"status",
	"last_emptied",
	"capacity_kg",
}

// WriteCSV renders the container table as CSV, one row per container, in the
// order supplied by the caller.
func WriteCSV(w io.Writer, records []*Container) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(exportHeader); err != nil {
		return err
	}
	for _, rec := range records {
		if rec == nil {
			continue
		}
		lastEmptied := ""
		if rec.LastEmptiedAt != nil {
			lastEmptied = rec.LastEmptiedAt.UTC().Format(time.DateOnly)
		}
		row := []string{
			rec.Code,
			rec.Neighborhood,
			rec.Type.Display(),
			rec.WasteCategory.Display(),
			strconv.Itoa(rec.FillLevel),
			string(rec.Status),
			lastEmptied,
			strconv.Itoa(rec.CapacityKG),
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
