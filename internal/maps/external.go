package maps

import "github.com/san-kum/orbitgrid/internal/dynamo"

// ExternalParams carries a trajectory computed outside this module,
// for example a JHMAP run read by the external package.
type ExternalParams struct {
	Name   string
	Points dynamo.Trajectory
}

func (p ExternalParams) Kind() Kind { return External }

func (p ExternalParams) validate() error {
	if len(p.Points) == 0 {
		return dynamo.Configf("points", "external trajectory %q is empty", p.Name)
	}
	return nil
}
