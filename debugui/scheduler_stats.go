package debugui

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/scheduler"
)

// SchedulerStats shows per-system timings and a poll delta graph. Register
// it on the scheduler it displays so it sees every frame.
type SchedulerStats struct {
	scheduler    *scheduler.Scheduler
	history      []float32
	historyIndex int
}

func NewSchedulerStats(s *scheduler.Scheduler, historyFrames int) *SchedulerStats {
	return &SchedulerStats{
		scheduler: s,
		history:   make([]float32, historyFrames),
	}
}

// Execute records the frame delta in milliseconds.
func (ss *SchedulerStats) Execute(frame *scheduler.Frame) {
	ss.history[ss.historyIndex] = float32(frame.DeltaTime.Seconds() * 1000)
	ss.historyIndex = (ss.historyIndex + 1) % len(ss.history)
}

// AveragePoll returns the mean of the recorded poll deltas in milliseconds.
func (ss *SchedulerStats) AveragePoll() float32 {
	var sum float32
	for _, ms := range ss.history {
		sum += ms
	}
	return sum / float32(len(ss.history))
}

func (ss *SchedulerStats) Item() Item {
	return Item{Render: ss.Render}
}

func (ss *SchedulerStats) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(430, 340), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(420, 260), imgui.CondOnce)
	if !imgui.BeginV("Scheduler", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	stats := ss.scheduler.GetStats()
	imgui.Text(fmt.Sprintf("Systems: %d", stats.SystemCount))
	imgui.Text(fmt.Sprintf("Polls: %d", stats.Polls))
	imgui.Text(fmt.Sprintf("Avg Poll Delta: %.2f ms", ss.AveragePoll()))

	imgui.Separator()
	imgui.Text("Poll Delta Graph (ms)")
	imgui.PlotLinesFloatPtr("##polldelta", &ss.history[0], int32(len(ss.history)))

	const tableFlags = imgui.TableFlagsBorders | imgui.TableFlagsRowBg
	if imgui.BeginTableV("SystemStatsTable", 5, tableFlags, imgui.NewVec2(0, 0), 0) {
		imgui.TableSetupColumn("System")
		imgui.TableSetupColumn("Count")
		imgui.TableSetupColumn("Min")
		imgui.TableSetupColumn("Avg")
		imgui.TableSetupColumn("Max")
		imgui.TableHeadersRow()

		for _, sys := range stats.Systems {
			imgui.TableNextRow()
			imgui.TableNextColumn()
			imgui.Text(sys.Name)
			imgui.TableNextColumn()
			imgui.Text(fmt.Sprintf("%d", sys.ExecutionCount))
			imgui.TableNextColumn()
			imgui.Text(sys.MinDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.AvgDuration.String())
			imgui.TableNextColumn()
			imgui.Text(sys.MaxDuration.String())
		}

		imgui.EndTable()
	}

	imgui.End()
}
