/*
 * config.go, part of mdinit.
 *
 * Copyright 2026 The mdinit authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//Package config reads initcond options from TOML or INI (gcfg) files. In both formats the options
//go in an [initcond] section. TOML keys use underscores (coord_file), INI keys use dashes (coord-file):
//
//	[initcond]
//	method = "random"
//	count = 50
//	temperature = 300.0
//	eliminate_angular_momentum = true
//	seed = 42
//
//Only the options present in the file are modified, so a file can be applied on top of
//initcond.DefaultOptions(), and command line flags on top of the file.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml"
	"github.com/rmera/mdinit/initcond"
	"gopkg.in/gcfg.v1"
)

//Section is the name of the section holding the options.
const Section = "initcond"

//Keys lists the option names understood, in their TOML form.
var Keys = []string{
	"method",
	"count",
	"coord_file",
	"vel_file",
	"eliminate_angular_momentum",
	"remove_translation",
	"dof",
	"temperature",
	"kinetic_energy",
	"linear",
	"seed",
	"cpus",
}

//Load reads the configuration file name into o. The format is taken from the extension:
//.toml for TOML, .ini, .gcfg or .cfg for INI. The options are not validated.
func Load(name string, o *initcond.Options) error {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".toml":
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := LoadTOML(f, o); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	case ".ini", ".gcfg", ".cfg":
		var ini iniFile
		if err := gcfg.ReadFileInto(&ini, name); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if err := ini.apply(o); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		return nil
	}
	return fmt.Errorf("%s: unknown configuration format %q", name, filepath.Ext(name))
}

//LoadTOML reads TOML options from r into o.
func LoadTOML(r io.Reader, o *initcond.Options) error {
	tree, err := toml.LoadReader(r)
	if err != nil {
		return err
	}
	for _, k := range tree.Keys() {
		if k != Section {
			return fmt.Errorf("unknown section or key %q", k)
		}
	}
	sec, ok := tree.Get(Section).(*toml.Tree)
	if !ok {
		if tree.Has(Section) {
			return fmt.Errorf("%s must be a table", Section)
		}
		return nil
	}
	for _, k := range sec.Keys() {
		var val string
		switch v := sec.Get(k).(type) {
		case string:
			val = v
		case int64, float64, bool:
			val = fmt.Sprint(v)
		default:
			return fmt.Errorf("%s.%s: unsupported value type %T", Section, k, v)
		}
		if err := Set(o, k, val); err != nil {
			return err
		}
	}
	return nil
}

//LoadINI reads INI options from r into o.
func LoadINI(r io.Reader, o *initcond.Options) error {
	var ini iniFile
	if err := gcfg.ReadInto(&ini, r); err != nil {
		return err
	}
	return ini.apply(o)
}

//iniFile is the gcfg layout. Every value is read as a string so unset options
//can be told apart from zero ones.
type iniFile struct {
	Initcond struct {
		Method                   string
		Count                    string
		CoordFile                string `gcfg:"coord-file"`
		VelFile                  string `gcfg:"vel-file"`
		EliminateAngularMomentum string `gcfg:"eliminate-angular-momentum"`
		RemoveTranslation        string `gcfg:"remove-translation"`
		DOF                      string `gcfg:"dof"`
		Temperature              string
		KineticEnergy            string `gcfg:"kinetic-energy"`
		Linear                   string
		Seed                     string
		Cpus                     string
	}
}

func (I *iniFile) apply(o *initcond.Options) error {
	s := I.Initcond
	vals := []string{s.Method, s.Count, s.CoordFile, s.VelFile, s.EliminateAngularMomentum, s.RemoveTranslation,
		s.DOF, s.Temperature, s.KineticEnergy, s.Linear, s.Seed, s.Cpus}
	for i, v := range vals {
		if v == "" {
			continue
		}
		if err := Set(o, Keys[i], v); err != nil {
			return err
		}
	}
	return nil
}

//Set parses val and assigns it to the option key of o. Dashes in key are taken as underscores.
func Set(o *initcond.Options, key, val string) error {
	var err error
	key = strings.ReplaceAll(strings.ToLower(key), "-", "_")
	val = strings.TrimSpace(val)
	switch key {
	case "method":
		o.Method = val
	case "count":
		o.Count, err = strconv.Atoi(val)
	case "coord_file":
		o.CoordFile = val
	case "vel_file":
		o.VelFile = val
	case "eliminate_angular_momentum":
		o.EliminateAngularMomentum, err = strconv.ParseBool(val)
	case "remove_translation":
		o.RemoveTranslation, err = strconv.ParseBool(val)
	case "dof":
		var d int
		if d, err = strconv.Atoi(val); err == nil {
			o.DOF = initcond.Int(d)
		}
	case "temperature":
		var t float64
		if t, err = strconv.ParseFloat(val, 64); err == nil {
			o.Temperature = initcond.Float(t)
		}
	case "kinetic_energy":
		var e float64
		if e, err = strconv.ParseFloat(val, 64); err == nil {
			o.KineticEnergy = initcond.Float(e)
		}
	case "linear":
		var l bool
		if l, err = strconv.ParseBool(val); err == nil {
			o.Linear = initcond.Bool(l)
		}
	case "seed":
		o.Seed, err = strconv.ParseUint(val, 10, 64)
	case "cpus":
		o.Cpus, err = strconv.Atoi(val)
	default:
		return fmt.Errorf("unknown option %q", key)
	}
	if err != nil {
		return fmt.Errorf("option %s: %w", key, err)
	}
	return nil
}
