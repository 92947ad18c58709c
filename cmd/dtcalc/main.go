// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Command dtcalc does calendar arithmetic on the command line.
//
// Usage:
//
//	dtcalc now [--format layout]
//	dtcalc convert <datetime> [--input-format layout]
//	dtcalc add <datetime> <duration>
//	dtcalc diff <datetime> <datetime> [--units years,months,days]
//	dtcalc week <datetime>
//	dtcalc format <datetime> <layout>
//	dtcalc relative <datetime> [--calendar]
//
// Date-times are read as ISO 8601 and durations as ISO 8601 durations, such
// as "P1M2DT3H". The global flags --zone and --locale select the zone and
// locale of the output, and --config reads defaults from a TOML, YAML or
// JSON file.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("dtcalc failed")
		os.Exit(1)
	}
}
