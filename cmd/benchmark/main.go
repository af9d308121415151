package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/jamiealquiza/tachymeter"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/lowkeylabs/sourcekit/source"
	"github.com/lowkeylabs/sourcekit/subscribable"
	"github.com/olekukonko/tablewriter"
)

func main() {
	flag.Parse()

	f, err := os.Create("default.pgo")
	if err != nil {
		log.Fatal(err)
	}
	pprof.StartCPUProfile(f)
	defer pprof.StopCPUProfile()

	log.Printf("warming up")

	benchmarkMapChains(true)
	benchmarkCombineFanIn(true)
}

var (
	ww    = []int{1, 10, 100, 1_000}
	hh    = []int{1, 10, 100, 1_000}
	iters = 100
)

func addOne(v int) int {
	return v + 1
}

func benchmarkMapChains(shouldRender bool) {

	tbl := table.NewWriter()
	tbl.SetTitle("Map Chains")
	tbl.SetOutputMirror(os.Stdout)
	tbl.AppendHeader(table.Row{"benchmark", "avg", "min", "p75", "p99", "max"})

	for _, w := range ww {
		for _, h := range hh {
			tach := tachymeter.New(&tachymeter.Config{Size: iters})

			sched := subscribable.NewScheduler()
			src := source.NewValue(sched, 1)
			for i := 0; i < w; i++ {
				var last source.ValueSource[int] = src
				for j := 0; j < h; j++ {
					last = source.MapValue(sched, last, addOne)
				}
				last.Subscribe(subscribable.ReceiverFunc[int](func(int) {}))
			}

			for i := 0; i < iters; i++ {
				start := time.Now()
				src.Set(src.Snapshot() + 1)
				sched.Flush()
				tach.AddTime(time.Since(start))
			}

			calc := tach.Calc()
			tbl.AppendRows([]table.Row{
				{
					fmt.Sprintf("propagate: %d * %d", w, h),
					calc.Time.Avg,
					calc.Time.Min,
					calc.Time.P75,
					calc.Time.P99,
					calc.Time.Max,
				},
			})
		}
	}

	if shouldRender {
		tbl.Render()
	}
}

func benchmarkCombineFanIn(shouldRender bool) {

	tbl := tablewriter.NewWriter(os.Stdout)
	tbl.SetHeader([]string{"width", "iterations", "events", "time", "events/sec"})

	for _, w := range ww {
		sched := subscribable.NewScheduler()

		inputs := make([]*source.ManualValue[int], w)
		for i := range inputs {
			inputs[i] = source.NewValue(sched, i)
		}

		events := 0
		for i := 0; i+1 < len(inputs); i += 2 {
			sum := source.Combine2(sched, inputs[i], inputs[i+1], func(a, b int) int {
				return a + b
			})
			sum.Subscribe(subscribable.ReceiverFunc[int](func(int) {
				events++
			}))
		}

		start := time.Now()
		for i := 0; i < iters; i++ {
			for _, in := range inputs {
				in.Set(in.Snapshot() + 1)
			}
			sched.Flush()
		}
		elapsed := time.Since(start)

		perSec := int64(0)
		if elapsed > 0 {
			perSec = int64(float64(events) / elapsed.Seconds())
		}
		tbl.Append([]string{
			humanize.Comma(int64(w)),
			humanize.Comma(int64(iters)),
			humanize.Comma(int64(events)),
			elapsed.String(),
			humanize.Comma(perSec),
		})
	}

	if shouldRender {
		tbl.Render()
	}
}
