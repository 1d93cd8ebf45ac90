package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/tightbind/lattice"
	"github.com/katalvlaran/tightbind/persist"
	"github.com/katalvlaran/tightbind/project"
)

func (a *app) importCmd() *cobra.Command {
	var asProject bool
	cmd := &cobra.Command{
		Use:   "import <file>...",
		Short: "Store the cells of YAML model or project files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			p := project.New()
			for _, path := range args {
				if err := loadInto(p, path, asProject); err != nil {
					return err
				}
			}

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()
			for _, c := range p.Cells() {
				if err := s.Put(ctx, c); err != nil {
					return err
				}
				a.logger.Info("cell stored", zap.Stringer("cell", c.ID()), zap.String("name", c.Name()))
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", c.ID(), c.Name())
			}

			return nil
		},
	}
	cmd.Flags().BoolVar(&asProject, "project", false, "Files are project documents holding several cells")

	return cmd
}

// loadInto adds the cells of one file to p.
func loadInto(p *project.Project, path string, asProject bool) error {
	if !asProject {
		c, err := readModel(path)
		if err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
		return p.Add(c)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	part := project.New()
	if err := part.Load(f); err != nil {
		return fmt.Errorf("import %s: %w", path, err)
	}
	for _, c := range part.Cells() {
		if err := p.Add(c); err != nil {
			return fmt.Errorf("import %s: %w", path, err)
		}
	}

	return nil
}

func (a *app) exportCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "export [id|name]",
		Short: "Write a stored cell, or the whole store, as YAML",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !all {
				if len(args) == 1 {
					a.cellKey = args[0]
				}
				c, err := a.loadCell(ctx)
				if err != nil {
					return err
				}
				return persist.EncodeYAML(cmd.OutOrStdout(), c)
			}

			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()
			entries, err := s.List(ctx)
			if err != nil {
				return err
			}
			p := project.New()
			for _, e := range entries {
				c, err := s.Get(ctx, e.ID)
				if err != nil {
					return err
				}
				if err := p.Add(c); err != nil {
					return err
				}
			}

			return p.Save(cmd.OutOrStdout())
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "Export every stored cell as one project document")

	return cmd
}

func (a *app) listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List stored cells",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()
			entries, err := s.List(ctx)
			if err != nil {
				return err
			}
			for _, e := range entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", e.ID, e.Name, e.UpdatedAt.Format(time.RFC3339))
			}

			return nil
		},
	}
}

func (a *app) rmCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>...",
		Short: "Delete stored cells",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := a.openStore(ctx)
			if err != nil {
				return err
			}
			defer s.Close()
			for _, arg := range args {
				id, err := lattice.ParseID(arg)
				if err != nil {
					return fmt.Errorf("rm %q: %w", arg, err)
				}
				if err := s.Delete(ctx, id); err != nil {
					return err
				}
				a.logger.Info("cell deleted", zap.Stringer("cell", id))
			}

			return nil
		},
	}
}
