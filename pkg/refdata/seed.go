package refdata

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"pkg.jsn.cam/regfake/pkg/regfake"
)

// Seed is a YAML document of reference rows:
//
//	regions: [Moscow, Tver]
//	vehicle_marks: [KAMAZ, IVECO]
//	vehicles:
//	  - plate: A123BC77
//	    mark: KAMAZ
//	accounts:
//	  - login: demo
//	    password: secret
//	    negative_balance: true
type Seed struct {
	Regions      []string          `yaml:"regions"`
	VehicleMarks []string          `yaml:"vehicle_marks"`
	Vehicles     []regfake.Vehicle `yaml:"vehicles"`
	Accounts     []Account         `yaml:"accounts"`
}

// ParseSeed decodes a seed document. Unknown keys are rejected.
func ParseSeed(r io.Reader) (Seed, error) {
	var seed Seed
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&seed); err != nil {
		if errors.Is(err, io.EOF) {
			return Seed{}, nil
		}
		return Seed{}, fmt.Errorf("refdata: parse seed: %w", err)
	}
	return seed, nil
}

// LoadSeed reads a seed document from path.
func LoadSeed(path string) (Seed, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Seed{}, fmt.Errorf("refdata: read seed %s: %w", path, err)
	}
	seed, err := ParseSeed(bytes.NewReader(data))
	if err != nil {
		return Seed{}, fmt.Errorf("%w (file %s)", err, path)
	}
	return seed, nil
}

// Apply writes every row of the seed to w.
func (s Seed) Apply(ctx context.Context, w Writer) error {
	if err := w.AddRegions(ctx, s.Regions...); err != nil {
		return fmt.Errorf("refdata: seed regions: %w", err)
	}
	if err := w.AddVehicleMarks(ctx, s.VehicleMarks...); err != nil {
		return fmt.Errorf("refdata: seed vehicle marks: %w", err)
	}
	if err := w.AddVehicles(ctx, s.Vehicles...); err != nil {
		return fmt.Errorf("refdata: seed vehicles: %w", err)
	}
	if err := w.AddAccounts(ctx, s.Accounts...); err != nil {
		return fmt.Errorf("refdata: seed accounts: %w", err)
	}
	return nil
}

// Rows returns the number of rows in the seed.
func (s Seed) Rows() int {
	return len(s.Regions) + len(s.VehicleMarks) + len(s.Vehicles) + len(s.Accounts)
}
