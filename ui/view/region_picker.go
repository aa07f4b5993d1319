package view

import (
	"fmt"
	"image"
	"log/slog"

	"github.com/soocke/smile-booth-go/config"
	"github.com/soocke/smile-booth-go/ui/form"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders
	. "modernc.org/tk9.0"
)

// RegionPicker opens a see-through window the user drags over the screen
// area the camera should grab. The window keeps the camera size.
type RegionPicker interface {
	OpenOrFocus()
}

type regionPicker struct {
	logger   *slog.Logger
	cfg      *config.Config
	cfgPath  string
	onChange func(image.Rectangle)
	win      *ToplevelWidget
}

// NewRegionPicker creates the picker. onChange receives the confirmed region.
func NewRegionPicker(cfg *config.Config, cfgPath string, logger *slog.Logger, onChange func(image.Rectangle)) RegionPicker {
	return &regionPicker{logger: logger, cfg: cfg, cfgPath: cfgPath, onChange: onChange}
}

func (v *regionPicker) OpenOrFocus() {
	if v.win != nil {
		WmGeometry(v.win.Window)
		return
	}
	r := v.cfg.Region()
	win := App.Toplevel(Borderwidth(2), Background("#008080"))
	win.WmTitle("Camera Region")
	v.win = win
	WmGeometry(win.Window, fmt.Sprintf("%dx%d+%d+%d", r.Dx(), r.Dy(), r.Min.X, r.Min.Y))
	WmAttributes(win.Window, "-topmost", 1)
	WmAttributes(win.Window, "-transparentcolor", "#008080")
	GridRowConfigure(win.Window, 0, Weight(1))
	GridColumnConfigure(win.Window, 0, Weight(1))
	center := win.Frame(Background("#008080"), Borderwidth(3), Relief("ridge"))
	Grid(center, Row(0), Column(0), Sticky("nsew"))
	controls := win.Frame()
	Grid(controls, Row(1), Column(0), Sticky("we"))
	confirm := win.Button(Txt("Confirm [Enter]"), Command(v.confirm))
	Grid(confirm, In(controls), Row(0), Column(0), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	cancel := win.Button(Txt("Cancel [Esc]"), Command(v.destroy))
	Grid(cancel, In(controls), Row(0), Column(1), Sticky("we"), Padx("0.2m"), Pady("0.2m"))
	Bind(win, "<Return>", Command(v.confirm))
	Bind(win, "<Escape>", Command(v.destroy))
}

func (v *regionPicker) confirm() {
	if v.win == nil {
		return
	}
	if rect, ok := form.ParseGeometry(WmGeometry(v.win.Window)); ok {
		// only the origin moves; frames stay at the configured size
		cur := v.cfg.Region()
		rect = image.Rectangle{Min: rect.Min, Max: rect.Min.Add(cur.Size())}
		v.cfg.SetRegion(rect)
		if err := v.cfg.Save(v.cfgPath); err != nil && v.logger != nil {
			v.logger.Error("config save failed", "error", err)
		}
		if v.onChange != nil {
			v.onChange(rect)
		}
	}
	v.destroy()
}

func (v *regionPicker) destroy() {
	if v.win != nil {
		Destroy(v.win)
		v.win = nil
	}
}
