package xwm

import (
	"log/slog"
	"sort"

	"github.com/ItsNotGoodName/x-scroller/internal/geom"
	"github.com/jezek/xgb/randr"
	"github.com/jezek/xgb/xproto"
)

// Monitor is an active output area of the screen.
type Monitor struct {
	Name string
	Box  geom.Box
}

// Monitors lists the enabled RandR outputs, or the whole screen when there
// are none.
func (wm *WM) Monitors() []Monitor {
	var monitors []Monitor
	if wm.randr {
		monitors = wm.randrMonitors()
	}
	if len(monitors) == 0 {
		monitors = []Monitor{screenMonitor(wm.screen)}
	}
	return monitors
}

func (wm *WM) randrMonitors() []Monitor {
	resources, err := randr.GetScreenResourcesCurrent(wm.conn, wm.root).Reply()
	if err != nil {
		slog.Warn("Failed to get screen resources", "package", "xwm", "error", err)
		return nil
	}

	var monitors []Monitor
	for _, output := range resources.Outputs {
		info, err := randr.GetOutputInfo(wm.conn, output, resources.ConfigTimestamp).Reply()
		if err != nil || info.Connection != randr.ConnectionConnected || info.Crtc == 0 {
			continue
		}
		crtc, err := randr.GetCrtcInfo(wm.conn, info.Crtc, resources.ConfigTimestamp).Reply()
		if err != nil || crtc.Width == 0 || crtc.Height == 0 {
			continue
		}
		monitors = append(monitors, Monitor{
			Name: string(info.Name),
			Box: geom.Box{
				X:      float64(crtc.X),
				Y:      float64(crtc.Y),
				Width:  float64(crtc.Width),
				Height: float64(crtc.Height),
			},
		})
	}
	sortMonitors(monitors)
	return monitors
}

func screenMonitor(screen *xproto.ScreenInfo) Monitor {
	return Monitor{
		Name: "screen",
		Box: geom.Box{
			Width:  float64(screen.WidthInPixels),
			Height: float64(screen.HeightInPixels),
		},
	}
}

// sortMonitors orders monitors left to right, then top to bottom.
func sortMonitors(monitors []Monitor) {
	sort.SliceStable(monitors, func(i, j int) bool {
		a, b := monitors[i].Box, monitors[j].Box
		if a.X != b.X {
			return a.X < b.X
		}
		return a.Y < b.Y
	})
}
