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
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/qcserestipy/gointegral/pkg/integrate"
	"github.com/qcserestipy/gointegral/pkg/sample"
)

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

func main() {
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s <function_id> <a> <b> <n> <intensity>\n", os.Args[0])
	}
	flag.Parse()
	args := flag.Args()
	if len(args) < 5 {
		flag.Usage()
		os.Exit(1)
	}

	id, err := strconv.Atoi(args[0])
	if err != nil {
		logrus.Fatalf("function_id: %v", err)
	}
	a, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		logrus.Fatalf("a: %v", err)
	}
	b, err := strconv.ParseFloat(args[2], 64)
	if err != nil {
		logrus.Fatalf("b: %v", err)
	}
	n, err := strconv.Atoi(args[3])
	if err != nil || n <= 0 {
		logrus.Fatalf("n must be a positive integer, got %q", args[3])
	}
	intensity, err := strconv.Atoi(args[4])
	if err != nil || intensity < 0 {
		logrus.Fatalf("intensity must be a non-negative integer, got %q", args[4])
	}

	fn, err := sample.Default().Lookup(sample.ID(id))
	if err != nil {
		logrus.Fatal(err)
	}

	start := time.Now()
	result := integrate.Sequential(fn, a, b, n, intensity)
	elapsed := time.Since(start)

	fmt.Println(result)
	fmt.Fprintln(os.Stderr, elapsed.Seconds())
}
