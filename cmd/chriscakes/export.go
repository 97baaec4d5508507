// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package main

import (
	"fmt"
	"io/fs"

	"github.com/spf13/cobra"

	"chriscakes/internal/export"
	"chriscakes/web"
)

var (
	exportOut    string
	exportStrict bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Render every page to static HTML",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := buildSite(cmd.Context(), cfg, false)
		if err != nil {
			return err
		}
		defer s.Close()

		static, err := fs.Sub(web.StaticFS, "static")
		if err != nil {
			return err
		}

		res, err := export.Run(cmd.Context(), s.handler, s.source, export.Options{
			OutDir: exportOut,
			Static: static,
		})
		if err != nil {
			return err
		}
		for _, f := range res.Failures {
			fmt.Fprintf(cmd.ErrOrStderr(), "%s: status %d\n", f.Path, f.Status)
		}
		if exportStrict && len(res.Failures) > 0 {
			return fmt.Errorf("export: %d routes failed", len(res.Failures))
		}
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "public", "output directory")
	exportCmd.Flags().BoolVar(&exportStrict, "strict", false, "fail when any route does not render")
	rootCmd.AddCommand(exportCmd)
}
