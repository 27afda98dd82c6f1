package refdata

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// AirportRecord is one row of the reference airport dataset used to
// validate user-entered airports.
type AirportRecord struct {
	ICAO      string
	Latitude  float64
	Longitude float64
}

// AirportDataset resolves ICAO codes to reference coordinates.
type AirportDataset interface {
	FindByCode(icao string) (AirportRecord, bool)
}

type csvAirportDataset struct {
	byCode map[string]AirportRecord
}

// LoadAirports reads a CSV file with at least ICAO, Latitude and Longitude
// columns (header row required).
func LoadAirports(path string) (AirportDataset, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open airport dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read airport dataset header: %w", err)
	}

	col := map[string]int{}
	for i, name := range header {
		col[name] = i
	}
	for _, required := range []string{"ICAO", "Latitude", "Longitude"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("airport dataset missing column %s", required)
		}
	}

	ds := &csvAirportDataset{byCode: make(map[string]AirportRecord)}
	for {
		row, err := r.Read()
		if err != nil {
			break
		}
		lat, errLat := strconv.ParseFloat(row[col["Latitude"]], 64)
		lon, errLon := strconv.ParseFloat(row[col["Longitude"]], 64)
		if errLat != nil || errLon != nil {
			continue
		}
		code := row[col["ICAO"]]
		ds.byCode[code] = AirportRecord{ICAO: code, Latitude: lat, Longitude: lon}
	}
	return ds, nil
}

func (d *csvAirportDataset) FindByCode(icao string) (AirportRecord, bool) {
	rec, ok := d.byCode[icao]
	return rec, ok
}
