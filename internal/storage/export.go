package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"

	"github.com/san-kum/heatsim/internal/heat"
)

type ExportData struct {
	*RunMetadata
	Xs    []float64   `json:"xs"`
	Times []float64   `json:"times"`
	Field [][]float64 `json:"field"`
}

// ExportJSON writes metadata and the full field. A diverged field holds
// NaN or Inf, which JSON cannot encode; the encoder error is returned.
func ExportJSON(w io.Writer, meta *RunMetadata, field *heat.Field, times []float64) error {
	data := ExportData{
		RunMetadata: meta,
		Xs:          meta.Grid.Xs(),
		Times:       times,
		Field:       field.Rows(),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func ExportCSV(w io.Writer, field *heat.Field, times []float64) error {
	cw := csv.NewWriter(w)

	header := []string{"time"}
	for i := 0; i < field.Nx(); i++ {
		header = append(header, "x"+strconv.Itoa(i))
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for n := 0; n < field.Nt(); n++ {
		row := []string{strconv.FormatFloat(times[n], 'f', 6, 64)}
		for _, v := range field.Layer(n) {
			row = append(row, strconv.FormatFloat(v, 'f', 6, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
