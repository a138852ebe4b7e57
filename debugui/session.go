package debugui

import (
	"fmt"
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/plus3/blockfall/game"
)

// SessionInspector shows the live state of a session.
type SessionInspector struct {
	Session *game.Session
}

func (si *SessionInspector) Item() Item {
	return Item{Render: si.Render}
}

func (si *SessionInspector) Render() {
	imgui.SetNextWindowPosV(imgui.NewVec2(430, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
	imgui.SetNextWindowSizeV(imgui.NewVec2(300, 320), imgui.CondOnce)
	if !imgui.BeginV("Session", nil, imgui.WindowFlagsNone) {
		imgui.End()
		return
	}

	s := si.Session
	snap := s.Snapshot()
	for _, line := range SessionLines(snap, s.Deadline().Sub(s.Clock().Now())) {
		imgui.Text(line)
	}

	imgui.Separator()
	Inspect("Piece", snap.Piece)
	Inspect("Snapshot", snap)

	imgui.End()
}

// SessionLines is the summary shown at the top of the session window.
func SessionLines(snap game.Snapshot, untilTick time.Duration) []string {
	return []string{
		fmt.Sprintf("ID: %s", snap.Session),
		fmt.Sprintf("State: %s", snap.State),
		fmt.Sprintf("Score: %d", snap.Score),
		fmt.Sprintf("Level: %d  Lines: %d", snap.Level, snap.Lines),
		fmt.Sprintf("Pieces: %d  Next: %s", snap.Pieces, snap.Next),
		fmt.Sprintf("Tick: %dms (due in %dms)", snap.TickInterval.Milliseconds(), untilTick.Milliseconds()),
	}
}
