// Copyright (c) HashiCorp, Inc
// SPDX-License-Identifier: MPL-2.0

// Command walctl is a small operator CLI over a segmented write-ahead
// log directory. It only ever calls the public wal.Log API; it has no
// access to package internals.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"

	gklog "github.com/go-kit/log"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"

	"github.com/waldb/segwal"
)

func main() {
	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}

	cmd := os.Args[1]
	dir := os.Args[2]
	args := os.Args[3:]

	logger := gklog.NewLogfmtLogger(os.Stderr)
	reg := prometheus.NewRegistry()

	l, err := wal.Open(dir, wal.WithLogger(logger), wal.WithRegisterer(reg))
	if err != nil {
		fatal(logger, "open", err)
	}
	defer func() {
		if cerr := l.Close(); cerr != nil {
			fatal(logger, "close", cerr)
		}
		dumpMetrics(reg)
	}()

	switch cmd {
	case "append":
		runAppend(logger, l, args)
	case "read":
		runRead(logger, l, args)
	case "truncate-front":
		runTruncateFront(logger, l, args)
	case "truncate-back":
		runTruncateBack(logger, l, args)
	case "info":
		runInfo(logger, l)
	default:
		usage()
		os.Exit(2)
	}
}

func runAppend(logger gklog.Logger, l *wal.Log, args []string) {
	if len(args) != 1 {
		usage()
		os.Exit(2)
	}
	last, err := l.LastIndex()
	if err != nil {
		fatal(logger, "append", err)
	}
	if err := l.Write(last+1, []byte(args[0])); err != nil {
		fatal(logger, "append", err)
	}
	fmt.Println(last + 1)
}

func runRead(logger gklog.Logger, l *wal.Log, args []string) {
	if len(args) != 1 {
		usage()
		os.Exit(2)
	}
	index, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fatal(logger, "read", err)
	}
	data, err := l.Read(index)
	if err != nil {
		fatal(logger, "read", err)
	}
	os.Stdout.Write(data)
}

func runTruncateFront(logger gklog.Logger, l *wal.Log, args []string) {
	if len(args) != 1 {
		usage()
		os.Exit(2)
	}
	index, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fatal(logger, "truncate-front", err)
	}
	if err := l.TruncateFront(index); err != nil {
		fatal(logger, "truncate-front", err)
	}
}

func runTruncateBack(logger gklog.Logger, l *wal.Log, args []string) {
	if len(args) != 1 {
		usage()
		os.Exit(2)
	}
	index, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil {
		fatal(logger, "truncate-back", err)
	}
	if err := l.TruncateBack(index); err != nil {
		fatal(logger, "truncate-back", err)
	}
}

func runInfo(logger gklog.Logger, l *wal.Log) {
	first, err := l.FirstIndex()
	if err != nil {
		fatal(logger, "info", err)
	}
	last, err := l.LastIndex()
	if err != nil {
		fatal(logger, "info", err)
	}
	fmt.Printf("first_index=%d last_index=%d\n", first, last)
}

// dumpMetrics prints the registered counters and gauges plainly. No HTTP
// exposition format is pulled in for this: a network listener is outside
// the core's scope, so this just walks Gather() output.
func dumpMetrics(reg *prometheus.Registry) {
	families, err := reg.Gather()
	if err != nil {
		return
	}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			fmt.Fprintf(os.Stderr, "%s%s %s\n", mf.GetName(), labelString(m), metricValue(m))
		}
	}
}

func labelString(m *dto.Metric) string {
	if len(m.GetLabel()) == 0 {
		return ""
	}
	s := "{"
	for i, lp := range m.GetLabel() {
		if i > 0 {
			s += ","
		}
		s += lp.GetName() + "=" + lp.GetValue()
	}
	return s + "}"
}

func metricValue(m *dto.Metric) string {
	switch {
	case m.GetCounter() != nil:
		return strconv.FormatFloat(m.GetCounter().GetValue(), 'g', -1, 64)
	case m.GetGauge() != nil:
		return strconv.FormatFloat(m.GetGauge().GetValue(), 'g', -1, 64)
	default:
		return ""
	}
}

func fatal(logger gklog.Logger, op string, err error) {
	logger.Log("msg", "walctl failed", "op", op, "err", err)
	os.Exit(1)
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: walctl <append|read|truncate-front|truncate-back|info> <dir> [args...]")
	flag.PrintDefaults()
}
