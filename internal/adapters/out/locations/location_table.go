package locations

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/suchimauz/hospital-desk/internal/core/domain"
	"github.com/suchimauz/hospital-desk/internal/core/ports/out"
)

//go:embed data/locations.json
var bundledLocations []byte

// LocationTable - справочник локаций, загружается один раз при старте
type LocationTable struct {
	locations []domain.LocationNode
}

// NewLocationTable читает справочник из path, а при пустом path берет
// встроенный в бинарник файл
func NewLocationTable(path string, logger out.LoggerPort) (*LocationTable, error) {
	data := bundledLocations
	source := "bundled"

	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			logger.Error("locations.load.read_failed", out.LogFields{
				"path":  path,
				"error": err.Error(),
			})
			return nil, fmt.Errorf("locations.load.read_failed: %w", err)
		}
		data = fileData
		source = path
	}

	var locations []domain.LocationNode
	if err := json.Unmarshal(data, &locations); err != nil {
		logger.Error("locations.load.decode_failed", out.LogFields{
			"source": source,
			"error":  err.Error(),
		})
		return nil, fmt.Errorf("locations.load.decode_failed: %w", err)
	}

	logger.Info("locations.load.success", out.LogFields{
		"source":    source,
		"countries": len(locations),
	})

	return &LocationTable{locations: locations}, nil
}

func NewStaticTable(locations []domain.LocationNode) *LocationTable {
	return &LocationTable{locations: locations}
}

func (t *LocationTable) Locations() []domain.LocationNode {
	return t.locations
}
