/*
Copyright © 2023 the MPASMesh authors.
This file is part of MPASMesh.

MPASMesh is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MPASMesh is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MPASMesh.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package mpasmeshutil holds the configuration and command-line interface
// for the mpasmesh program.
package mpasmeshutil

import (
	"fmt"
	"os"
	"time"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/mpasmesh"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/floats"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var logger *logrus.Logger

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logger = logrus.StandardLogger()
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
		DisableSorting:  true,
	})

	// Options are the configuration options available to mpasmesh.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "dual",
			usage: `
              dual specifies whether to build the dual (triangle) view of the
              mesh, with cell centers as nodes and vertices as face centers,
              instead of the primal (polygon) view.`,
			shorthand:  "d",
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "sphere_radius",
			usage: `
              sphere_radius overrides the sphere radius stored in the mesh
              file. The default of 0 keeps the stored value.`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{areaCmd.Flags(), checkCmd.Flags(), convertCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("MPASMESH")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(areaCmd)
	Root.AddCommand(checkCmd)
	Root.AddCommand(convertCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("mpasmesh: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// loadMesh reads the MPAS mesh in the named file and builds the view
// selected by the current configuration.
func loadMesh(path string) (*mpasmesh.Mesh, error) {
	f, err := os.Open(os.ExpandEnv(path))
	if err != nil {
		return nil, fmt.Errorf("mpasmesh: opening mesh file: %v", err)
	}
	defer f.Close()
	raw, err := mpasmesh.ReadMPAS(f)
	if err != nil {
		return nil, err
	}
	if r := Cfg.GetFloat64("sphere_radius"); r != 0 {
		raw.SphereRadius = r
	}
	dual, err := cast.ToBoolE(Cfg.Get("dual"))
	if err != nil {
		return nil, fmt.Errorf("mpasmesh: reading 'dual': %v", err)
	}
	return mpasmesh.New(raw, dual)
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "mpasmesh",
	Short: "A converter and checker for MPAS unstructured meshes.",
	Long: `mpasmesh loads MPAS-format unstructured mesh files, normalizes their
connectivity to the zero-based UGRID convention, and computes spherical
face areas and consistency diagnostics.

Refer to the subcommand documentation for configuration options and default
settings. Configuration can be changed by using a configuration file (and
providing the path to the file using the --config flag), by using
command-line arguments, or by setting environment variables in the format
'MPASMESH_var' where 'var' is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of mpasmesh.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("mpasmesh v%s\n", mpasmesh.Version)
	},
	DisableAutoGenTag: true,
}

// areaCmd computes spherical face areas for a mesh file.
var areaCmd = &cobra.Command{
	Use:   "area [mesh file]",
	Short: "Compute spherical face areas.",
	Long: `area loads the given MPAS mesh file and computes the spherical area of
every face, reporting summary statistics and the total. On a closed mesh
the total approximates the analytic sphere surface area 4πr².`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMesh(args[0])
		if err != nil {
			return err
		}
		areas, issues, err := m.FaceAreas()
		if err != nil {
			return err
		}
		for _, issue := range issues {
			logger.Warn(issue.String())
		}
		logger.WithFields(logrus.Fields{
			"faces": m.NFaces(),
			"min":   floats.Min(areas),
			"max":   floats.Max(areas),
			"mean":  floats.Sum(areas) / float64(len(areas)),
		}).Info("face area statistics")
		cmd.Printf("total face area: %g\n", floats.Sum(areas))
		return nil
	},
	DisableAutoGenTag: true,
}

// checkCmd runs the mesh consistency checks.
var checkCmd = &cobra.Command{
	Use:   "check [mesh file]",
	Short: "Check mesh consistency.",
	Long: `check loads the given MPAS mesh file and reports connectivity and
geometry problems: out-of-range indices, faces with fewer than three
nodes, edges whose endpoints share no face, and a non-positive sphere
radius. The command fails if any problem is found.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMesh(args[0])
		if err != nil {
			return err
		}
		issues := m.Check()
		for _, issue := range issues {
			logger.Warn(issue.String())
		}
		if len(issues) > 0 {
			return fmt.Errorf("mpasmesh: %d consistency problems found", len(issues))
		}
		cmd.Println("mesh is consistent")
		return nil
	},
	DisableAutoGenTag: true,
}

// convertCmd writes a normalized mesh out in the UGRID convention.
var convertCmd = &cobra.Command{
	Use:   "convert [mesh file] [output file]",
	Short: "Convert an MPAS mesh to UGRID.",
	Long: `convert loads the given MPAS mesh file, normalizes its connectivity to
the zero-based UGRID convention, and writes the result to the output file
as a UGRID-1.0 NetCDF dataset.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := loadMesh(args[0])
		if err != nil {
			return err
		}
		w, err := os.Create(os.ExpandEnv(args[1]))
		if err != nil {
			return fmt.Errorf("mpasmesh: creating output file: %v", err)
		}
		defer w.Close()
		if err := m.WriteUGRID(w); err != nil {
			return err
		}
		logger.WithFields(logrus.Fields{
			"nodes": m.NNodes(),
			"faces": m.NFaces(),
			"edges": m.NEdges(),
		}).Info("wrote UGRID mesh")
		return nil
	},
	DisableAutoGenTag: true,
}
