package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/tightbind/config"
	"github.com/katalvlaran/tightbind/diag"
	"github.com/katalvlaran/tightbind/kpath"
	"github.com/katalvlaran/tightbind/lattice"
)

// bandsReport is the output of `tbcore bands` and `tbcore grid`.
type bandsReport struct {
	Cell        string `yaml:"cell"`
	KPoints     []flow `yaml:"kpoints"`
	Eigenvalues []flow `yaml:"eigenvalues"`
}

func (a *app) manager() *diag.Manager {
	return diag.NewManager(a.cfg.DiagOptions(a.logger)...)
}

// applyPath installs fractional special points (flag first, then config) on
// the cell in Cartesian form. With neither set the cell keeps its own.
func (a *app) applyPath(c *lattice.UnitCell, flagPath string) error {
	frac := a.cfg.Path.Special
	if flagPath != "" {
		var err error
		if frac, err = config.ParsePoints(flagPath); err != nil {
			return fmt.Errorf("--path: %w", err)
		}
	}
	if len(frac) == 0 {
		return nil
	}
	g, err := c.ReciprocalVectors()
	if err != nil {
		return err
	}
	cart, err := kpath.PathToCartesian(frac, g)
	if err != nil {
		return err
	}

	return c.SetSpecialPoints(cart)
}

// follow reports progress of run on w and returns its outcome.
func follow(w io.Writer, run *diag.Run) (*diag.Result, error) {
	for ev := range run.Events() {
		switch ev.Kind {
		case diag.EventProgress:
			fmt.Fprintf(w, "\rdiagonalizing %3d%%", ev.Percent)
		default:
			fmt.Fprintf(w, "\r%s\n", ev.Message)
		}
	}
	res, err := run.Wait()
	if errors.Is(err, diag.ErrAborted) {
		return nil, fmt.Errorf("interrupted: %w", err)
	}

	return res, err
}

func (a *app) bandsCmd() *cobra.Command {
	var (
		points int
		path   string
	)
	cmd := &cobra.Command{
		Use:   "bands",
		Short: "Compute the band structure along the special-point path",
		Long: `Compute the band structure along a path of special points.

--path takes fractional coordinates in units of the reciprocal vectors,
e.g. "0,0;0.5,0;0.5,0.5". Without it the path comes from path.special in
the config, then from the cell's own special points.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCell(cmd.Context())
			if err != nil {
				return err
			}
			if err := a.applyPath(c, path); err != nil {
				return err
			}
			if points <= 0 {
				points = a.cfg.Path.Points
			}

			mgr := a.manager()
			defer mgr.Shutdown()
			run, err := mgr.StartBands(cmd.Context(), c, points)
			if err != nil {
				return err
			}
			a.logger.Debug("bands started", zap.Stringer("run", run.ID()), zap.Int("points", points))
			res, err := follow(cmd.ErrOrStderr(), run)
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), bandsReport{
				Cell:        c.Name(),
				KPoints:     flows(res.KPoints),
				Eigenvalues: flows(res.Eigenvalues),
			})
		},
	}
	cmd.Flags().IntVar(&points, "points", 0, "Total samples along the path (default: path.points from config)")
	cmd.Flags().StringVar(&path, "path", "", `Fractional special points, e.g. "0,0;0.5,0"`)

	return cmd
}

func (a *app) gridCmd() *cobra.Command {
	var (
		div   string
		gamma bool
	)
	cmd := &cobra.Command{
		Use:   "grid",
		Short: "Compute eigenvalues on a regular Brillouin-zone grid",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := a.loadCell(cmd.Context())
			if err != nil {
				return err
			}
			divisions := a.cfg.Grid.Divisions
			if div != "" {
				n, err := config.ParseInts(div)
				if err != nil || len(n) == 0 || len(n) > 3 {
					return fmt.Errorf("--div %q: want 1 to 3 positive integers", div)
				}
				divisions = [3]int{1, 1, 1}
				copy(divisions[:], n)
			}
			if !cmd.Flags().Changed("gamma") {
				gamma = a.cfg.Grid.GammaCentered
			}

			mgr := a.manager()
			defer mgr.Shutdown()
			run, err := mgr.StartGrid(cmd.Context(), c, divisions, gamma)
			if err != nil {
				return err
			}
			res, err := follow(cmd.ErrOrStderr(), run)
			if err != nil {
				return err
			}

			return writeYAML(cmd.OutOrStdout(), bandsReport{
				Cell:        c.Name(),
				KPoints:     flows(res.KPoints),
				Eigenvalues: flows(res.Eigenvalues),
			})
		},
	}
	cmd.Flags().StringVar(&div, "div", "", `Grid divisions, e.g. "8,8,1" (default: grid.divisions from config)`)
	cmd.Flags().BoolVar(&gamma, "gamma", false, "Gamma-centred grid (default: grid.gamma_centered from config)")

	return cmd
}
