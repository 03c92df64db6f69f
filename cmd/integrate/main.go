// Copyright Project GoHPC Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/briandowns/spinner"
	"github.com/sirupsen/logrus"

	"github.com/qcserestipy/gointegral/pkg/integrate"
	"github.com/qcserestipy/gointegral/pkg/partition"
	"github.com/qcserestipy/gointegral/pkg/reduce"
	"github.com/qcserestipy/gointegral/pkg/sample"
	"github.com/qcserestipy/gointegral/pkg/serve"
)

func init() {
	formatter := &logrus.TextFormatter{}
	formatter.FullTimestamp = true
	formatter.TimestampFormat = time.RFC3339
	logrus.SetLevel(logrus.WarnLevel)
	logrus.SetFormatter(formatter)
}

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(),
		"Usage: %s [flags] <function_id> <a> <b> <n> <intensity> <nb_threads> <sync> [granularity]\n", os.Args[0])
	flag.PrintDefaults()
}

func main() {
	schedPtr := flag.String("schedule", "", "static or dynamic (default: dynamic when a granularity is given, static otherwise)")
	servePtr := flag.Int("serve", 0, "serve the HTTP API on this port instead of running once")
	progressPtr := flag.Bool("progress", false, "show a spinner on stderr while integrating")
	verbosePtr := flag.Bool("v", false, "log run and worker details")
	flag.Usage = usage
	flag.Parse()

	if *verbosePtr {
		logrus.SetLevel(logrus.DebugLevel)
	}
	engine := integrate.New()

	if *servePtr > 0 {
		logrus.SetLevel(logrus.InfoLevel)
		if err := serve.Launch(serve.New(engine, logrus.StandardLogger()), *servePtr); err != nil {
			logrus.Fatalf("❌  Server failed: %v", err)
		}
		return
	}

	cfg, err := parseArgs(flag.Args(), *schedPtr)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		usage()
		os.Exit(1)
	}

	var s *spinner.Spinner
	if *progressPtr {
		s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
		s.Suffix = " integrating"
		s.Start()
	}
	res, err := engine.Run(context.Background(), cfg)
	if s != nil {
		s.Stop()
	}
	if err != nil {
		logrus.Fatalf("Integration failed: %v", err)
	}

	fmt.Println(res.Value)
	fmt.Fprintln(os.Stderr, res.Elapsed.Seconds())
}

// parseArgs reads the positional arguments in the order
// function_id a b n intensity nb_threads sync [granularity].
func parseArgs(args []string, schedule string) (integrate.Config, error) {
	if len(args) < 7 || len(args) > 8 {
		return integrate.Config{}, fmt.Errorf("expected 7 or 8 arguments, got %d", len(args))
	}
	var (
		cfg  integrate.Config
		errs []error
	)
	atoi := func(name, s string) int {
		v, err := strconv.Atoi(s)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return v
	}
	atof := func(name, s string) float64 {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
		return v
	}

	cfg.Function = sample.ID(atoi("function_id", args[0]))
	cfg.A = atof("a", args[1])
	cfg.B = atof("b", args[2])
	cfg.N = atoi("n", args[3])
	cfg.Intensity = atoi("intensity", args[4])
	cfg.Workers = atoi("nb_threads", args[5])
	syn, err := reduce.ParseKind(args[6])
	if err != nil {
		errs = append(errs, err)
	}
	cfg.Sync = syn
	if len(args) == 8 {
		cfg.Granularity = atoi("granularity", args[7])
	}
	if len(errs) > 0 {
		return integrate.Config{}, errs[0]
	}

	switch {
	case schedule != "":
		if cfg.Schedule, err = partition.ParseKind(schedule); err != nil {
			return integrate.Config{}, err
		}
	case len(args) == 8:
		cfg.Schedule = partition.KindDynamic
	default:
		cfg.Schedule = partition.KindStatic
	}
	return cfg, nil
}
