package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	"github.com/plus3/blockfall/scheduler"
	"gopkg.in/yaml.v3"
)

type Report struct {
	// Configuration
	Duration     time.Duration `yaml:"duration"`
	PollInterval time.Duration `yaml:"poll_interval"`
	Randomizer   string        `yaml:"randomizer"`
	Seed         uint64        `yaml:"seed"`

	// Results
	Games         int           `yaml:"games"`
	Pieces        int           `yaml:"pieces"`
	Lines         int           `yaml:"lines"`
	BestScore     int           `yaml:"best_score"`
	BestSession   string        `yaml:"best_session"`
	Ticks         int64         `yaml:"ticks"`
	TotalUpdates  int64         `yaml:"total_updates"`
	TotalTime     time.Duration `yaml:"total_time"`
	SimulatedTime time.Duration `yaml:"simulated_time"`
	UpdateTime    Stats         `yaml:"update_time"`

	Systems        []scheduler.SystemStats `yaml:"-"`
	GCPauseMetrics bool                    `yaml:"-"`
	MemStatsStart  runtime.MemStats        `yaml:"-"`
	MemStatsEnd    runtime.MemStats        `yaml:"-"`
}

type Stats struct {
	Min     time.Duration   `yaml:"min"`
	Max     time.Duration   `yaml:"max"`
	Avg     time.Duration   `yaml:"avg"`
	Samples []time.Duration `yaml:"-"`
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))
}

func (r *Report) Generate(w io.Writer) error {
	const reportTemplate = `
# Blockfall Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Poll Interval:** {{.PollInterval}}
- **Randomizer:** {{.Randomizer}} (seed {{.Seed}})

## Play Results
- **Games:** {{.Games}}
- **Pieces:** {{.Pieces}}
- **Lines:** {{.Lines}}
- **Best Score:** {{.BestScore}}{{if .BestSession}} ({{.BestSession}}){{end}}
- **Gravity Ticks:** {{.Ticks}}
- **Simulated Time:** {{.SimulatedTime}}

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Update Time (Poll):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
{{range .Systems}}
- **{{.Name}}:** {{.ExecutionCount}} runs, avg {{.AvgDuration}}, max {{.MaxDuration}}{{end}}

## Memory Usage (Raw Bytes)
- Heap Alloc:     {{.MemStatsStart.HeapAlloc}} (start) -> {{.MemStatsEnd.HeapAlloc}} (end) -> delta: {{bsub .MemStatsEnd.HeapAlloc .MemStatsStart.HeapAlloc}}
- Total Alloc:    {{.MemStatsStart.TotalAlloc}} (start) -> {{.MemStatsEnd.TotalAlloc}} (end) -> delta: {{bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc}}
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{.MemStatsEnd.PauseTotalNs | ns}}
{{end}}`

	fm := template.FuncMap{
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns uint64) string {
			return time.Duration(ns).String()
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}

// GenerateYAML writes the results without the memory and per-system detail.
func (r *Report) GenerateYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return enc.Close()
}
