// Copyright 2024 Axel Wagner.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/dustin/go-humanize"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"gonih.org/datetime"
)

var (
	cfgFile string
	verbose bool
	zone    string
	locale  string
)

var rootCmd = &cobra.Command{
	Use:           "dtcalc",
	Short:         "Calendar arithmetic with zones and locales",
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
		if cfgFile == "" {
			return nil
		}
		s, err := datetime.LoadSettings(cfgFile)
		if err != nil {
			return err
		}
		log.WithFields(log.Fields{
			"config": cfgFile,
			"zone":   s.DefaultZone,
			"locale": s.DefaultLocale,
		}).Debug("applying settings")
		return s.Apply()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "settings file (TOML, YAML or JSON)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log debug output")
	rootCmd.PersistentFlags().StringVarP(&zone, "zone", "z", "", "output zone, such as UTC or Europe/Berlin")
	rootCmd.PersistentFlags().StringVarP(&locale, "locale", "l", "", "output locale, such as de-DE")

	nowCmd.Flags().String("format", "", "token layout for the output")
	convertCmd.Flags().String("input-format", "", "token layout of the input instead of ISO 8601")
	diffCmd.Flags().StringSlice("units", []string{"milliseconds"}, "units of the difference")
	relativeCmd.Flags().Bool("calendar", false, "count calendar days, months and years")

	rootCmd.AddCommand(nowCmd, convertCmd, addCmd, diffCmd, weekCmd, formatCmd, relativeCmd)
}

// options returns the zone and locale selected by the global flags.
func options() []datetime.Option {
	var opts []datetime.Option
	if zone != "" {
		opts = append(opts, datetime.WithZone(zone))
	}
	if locale != "" {
		opts = append(opts, datetime.WithLocale(locale))
	}
	return opts
}

// parse reads an ISO 8601 argument. The offset in the text is kept unless
// --zone is given.
func parse(s string) (datetime.DateTime, error) {
	opts := options()
	if zone == "" {
		opts = append(opts, datetime.WithSetZone())
	}
	dt, err := datetime.FromISO(s, opts...)
	if err != nil {
		return datetime.DateTime{}, err
	}
	log.WithFields(log.Fields{"input": s, "parsed": dt.ToISO(), "zone": dt.ZoneName()}).Debug("parsed date-time")
	return dt, nil
}

func output(cmd *cobra.Command, dt datetime.DateTime, layout string) {
	if layout == "" {
		fmt.Fprintln(cmd.OutOrStdout(), dt.ToISO())
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), dt.ToFormat(layout))
}

var nowCmd = &cobra.Command{
	Use:   "now",
	Short: "Print the current time",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, err := datetime.FromMillis(datetime.Now().ToMillis(), options()...)
		if err != nil {
			return err
		}
		layout, _ := cmd.Flags().GetString("format")
		output(cmd, dt, layout)
		return nil
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert <datetime>",
	Short: "Convert a date-time to another zone or locale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var (
			dt  datetime.DateTime
			err error
		)
		if layout, _ := cmd.Flags().GetString("input-format"); layout != "" {
			dt, err = datetime.FromFormat(args[0], layout, options()...)
		} else {
			dt, err = parse(args[0])
		}
		if err != nil {
			return err
		}
		output(cmd, dt, "")
		return nil
	},
}

var addCmd = &cobra.Command{
	Use:   "add <datetime> <duration>",
	Short: "Add an ISO 8601 duration to a date-time",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, err := parse(args[0])
		if err != nil {
			return err
		}
		d, err := datetime.ParseISODuration(args[1])
		if err != nil {
			return err
		}
		res := dt.Plus(d)
		if !res.IsValid() {
			return errors.Newf("%s plus %s is out of range", dt, d)
		}
		log.WithField("duration", d.ToHuman()).Debug("adding")
		output(cmd, res, "")
		return nil
	},
}

var diffCmd = &cobra.Command{
	Use:   "diff <datetime> <datetime>",
	Short: "Print the span from the first to the second date-time",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := parse(args[0])
		if err != nil {
			return err
		}
		b, err := parse(args[1])
		if err != nil {
			return err
		}
		names, _ := cmd.Flags().GetStringSlice("units")
		units := make([]datetime.Unit, 0, len(names))
		for _, n := range names {
			u, err := datetime.ParseUnit(strings.TrimSpace(n))
			if err != nil {
				return err
			}
			units = append(units, u)
		}
		d, err := b.Diff(a, units...)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s (%s)\n", d.ToISO(), d.ToHuman())
		return nil
	},
}

var weekCmd = &cobra.Command{
	Use:   "week <datetime>",
	Short: "Print the ISO week date",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, err := parse(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: the %s week of %d, %s day of the year\n",
			dt.ToISOWeekDate(), humanize.Ordinal(dt.WeekNumber()), dt.WeekYear(), humanize.Ordinal(dt.Ordinal()))
		return nil
	},
}

var formatCmd = &cobra.Command{
	Use:   "format <datetime> <layout>",
	Short: "Render a date-time with a token layout",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, err := parse(args[0])
		if err != nil {
			return err
		}
		output(cmd, dt, args[1])
		return nil
	},
}

var relativeCmd = &cobra.Command{
	Use:   "relative <datetime>",
	Short: "Describe a date-time relative to now",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dt, err := parse(args[0])
		if err != nil {
			return err
		}
		var s string
		if calendar, _ := cmd.Flags().GetBool("calendar"); calendar {
			s, err = dt.ToRelativeCalendar(datetime.RelativeOptions{})
		} else {
			s, err = dt.ToRelative(datetime.RelativeOptions{})
		}
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), s)
		return nil
	},
}
