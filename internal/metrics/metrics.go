package metrics

import (
	"gfx.cafe/open/gotoprom"
	"github.com/prometheus/client_golang/prometheus"
)

type AlgoLabels struct {
	Algo string `label:"algo"`
}

var Solve struct {
	Runs          func(AlgoLabels) prometheus.Counter   `name:"runs" help:"completed solver runs"`
	NotApplicable func(AlgoLabels) prometheus.Counter   `name:"not_applicable" help:"runs rejected as not applicable (job ceiling, machine count)"`
	Failures      func(AlgoLabels) prometheus.Counter   `name:"failures" help:"runs that returned an unexpected error"`
	Evaluations   func(AlgoLabels) prometheus.Counter   `name:"evaluations" help:"makespan evaluations performed"`
	Nodes         func(AlgoLabels) prometheus.Counter   `name:"nodes" help:"search nodes or construction steps"`
	Duration      func(AlgoLabels) prometheus.Histogram `name:"duration_ms" buckets:"0.001,0.01,0.1,1,10,100,1000,10000,60000" help:"ms spent in a single solve"`
	Makespan      func(AlgoLabels) prometheus.Gauge     `name:"last_makespan" help:"makespan of the most recent run"`
}

type SourceLabels struct {
	Source string `label:"source"`
}

var Bench struct {
	Instances func(SourceLabels) prometheus.Counter `name:"instances" help:"instances loaded for benchmarking"`
	LoadErrs  func(SourceLabels) prometheus.Counter `name:"load_errors" help:"instance files that failed to load"`
}

func init() {
	gotoprom.MustInit(&Solve, "flowshop_solve", prometheus.Labels{})
	gotoprom.MustInit(&Bench, "flowshop_bench", prometheus.Labels{})
}

// WriteTextfile сохраняет все зарегистрированные метрики в текстовом формате Prometheus.
func WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
