package handlers

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"

	"github.com/parcelworks/nameguard/internal/domain/entities"
	"github.com/parcelworks/nameguard/internal/domain/ports"
)

// PropertiesHandler manages the locally owned property index.
type PropertiesHandler struct {
	writer ports.PropertyWriter
	index  ports.PropertyIndex
}

// NewPropertiesHandler creates a new properties handler.
func NewPropertiesHandler(writer ports.PropertyWriter, index ports.PropertyIndex) *PropertiesHandler {
	return &PropertiesHandler{
		writer: writer,
		index:  index,
	}
}

// Init prepares the index schema or collection.
func (h *PropertiesHandler) Init(ctx context.Context) error {
	return h.writer.Init(ctx)
}

// ImportResult contains the result of a property import.
type ImportResult struct {
	Imported int
	Skipped  int
	Total    int64
}

// Import loads geocoded properties from a CSV file into the index.
// Expected columns: name, lat, lon and optionally id. Rows with malformed
// coordinates are skipped, not fatal.
func (h *PropertiesHandler) Import(ctx context.Context, filePath string) (*ImportResult, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer file.Close()

	props, skipped, err := parseProperties(file)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", filePath, err)
	}

	if len(props) > 0 {
		if err := h.writer.Upsert(ctx, props); err != nil {
			return nil, fmt.Errorf("upserting properties: %w", err)
		}
	}

	total, err := h.writer.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("counting properties: %w", err)
	}

	return &ImportResult{
		Imported: len(props),
		Skipped:  skipped,
		Total:    total,
	}, nil
}

// Near returns the indexed properties within radiusMeters of the given
// coordinates, closest first.
func (h *PropertiesHandler) Near(ctx context.Context, lat, lon, radiusMeters float64) ([]entities.ExistingProperty, error) {
	props, err := h.index.FindPropertiesNear(ctx, lat, lon, radiusMeters)
	if err != nil {
		return nil, err
	}

	center := entities.Location{Lat: lat, Lon: lon}
	for i := range props {
		props[i].DistanceMeters = center.DistanceMeters(props[i].Position())
	}
	sort.Slice(props, func(i, j int) bool { return props[i].DistanceMeters < props[j].DistanceMeters })

	return props, nil
}

// parseProperties reads property rows from CSV.
func parseProperties(r io.Reader) ([]entities.ExistingProperty, int, error) {
	reader := csv.NewReader(r)

	header, err := reader.Read()
	if err != nil {
		return nil, 0, fmt.Errorf("reading CSV header: %w", err)
	}

	colIndex := make(map[string]int)
	for i, col := range header {
		colIndex[col] = i
	}
	for _, col := range []string{"name", "lat", "lon"} {
		if _, ok := colIndex[col]; !ok {
			return nil, 0, fmt.Errorf("missing required column: %s", col)
		}
	}

	var props []entities.ExistingProperty
	skipped := 0
	lineNum := 1

	for {
		lineNum++
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("line %d: %w", lineNum, err)
		}

		lat, latErr := strconv.ParseFloat(record[colIndex["lat"]], 64)
		lon, lonErr := strconv.ParseFloat(record[colIndex["lon"]], 64)
		name := record[colIndex["name"]]

		loc := entities.Location{Lat: lat, Lon: lon}
		if name == "" || latErr != nil || lonErr != nil || loc.Validate() != nil {
			skipped++
			continue
		}

		prop := entities.ExistingProperty{Name: name, Lat: lat, Lon: lon}
		if idx, ok := colIndex["id"]; ok && idx < len(record) {
			prop.ID = record[idx]
		}
		props = append(props, prop)
	}

	return props, skipped, nil
}
