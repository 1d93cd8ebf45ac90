package main

import (
	"errors"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/katalvlaran/tightbind/lattice"
)

// checkReport is the output of `tbcore check`.
type checkReport struct {
	Cell      string `yaml:"cell"`
	States    int    `yaml:"states"`
	Hermitian bool   `yaml:"hermitian"`
	Problem   string `yaml:"problem,omitempty"`
}

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Check that the hopping table describes a Hermitian system",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCell(cmd.Context())
			if err != nil {
				return err
			}
			rep := checkReport{Cell: c.Name(), States: c.StateCount(), Hermitian: true}
			cerr := c.CheckHermitian()
			var ce *lattice.ConsistencyError
			if errors.As(cerr, &ce) {
				rep.Hermitian = false
				rep.Problem = ce.Error()
			}
			if err := writeYAML(cmd.OutOrStdout(), rep); err != nil {
				return err
			}

			return cerr
		},
	}
}

func (a *app) reciprocalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "reciprocal",
		Short: "Print the reciprocal vectors of the periodic basis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCell(cmd.Context())
			if err != nil {
				return err
			}
			g, err := c.ReciprocalVectors()
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), map[string][]flow{"reciprocal": vecRows(g)})
		},
	}
}

// zoneReport is the output of `tbcore bz`.
type zoneReport struct {
	Vertices []flow  `yaml:"vertices"`
	Faces    [][]int `yaml:"faces,flow"`
}

func (a *app) bzCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bz",
		Short: "Print the first Brillouin zone (vertices and faces)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCell(cmd.Context())
			if err != nil {
				return err
			}
			z, err := c.BrillouinZone()
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), zoneReport{Vertices: vecRows(z.Vertices), Faces: z.Faces})
		},
	}
}

// basisRow is one basis vector in `tbcore reduce` output.
type basisRow struct {
	Vector   flow `yaml:"vector"`
	Periodic bool `yaml:"periodic"`
}

func (a *app) reduceCmd() *cobra.Command {
	var scale float64
	cmd := &cobra.Command{
		Use:   "reduce",
		Short: "Print the LLL-reduced basis",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCell(cmd.Context())
			if err != nil {
				return err
			}
			if scale <= 0 {
				scale = a.cfg.Reduction.Scale
			}
			b, err := lattice.ReduceBasis(c.Basis(), scale, a.cfg.Reduction.Delta)
			if err != nil {
				return err
			}
			rows := make([]basisRow, len(b))
			for i, v := range b {
				rows[i] = basisRow{Vector: vecRow(v.Vec), Periodic: v.Periodic}
			}

			return writeYAML(cmd.OutOrStdout(), map[string][]basisRow{"basis": rows})
		},
	}
	cmd.Flags().Float64Var(&scale, "scale", 0, "Integer scaling factor (default: reduction.scale from config)")

	return cmd
}

func vecRow(v r3.Vec) flow { return flow{v.X, v.Y, v.Z} }

func vecRows(vs []r3.Vec) []flow {
	out := make([]flow, len(vs))
	for i, v := range vs {
		out[i] = vecRow(v)
	}

	return out
}
