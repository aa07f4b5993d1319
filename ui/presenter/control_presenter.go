package presenter

// RunningModel provides running state access.
type RunningModel interface {
	Enabled() bool
	SetEnabled(bool)
}

// LifecycleContract narrows what the presenter needs from the booth pipeline.
type LifecycleContract interface {
	Start()
	Stop()
}

// Resetter drops display state left over from a previous session.
type Resetter interface {
	Reset()
}

// ControlView updates UI elements affected by starting and stopping.
// Phase label updates are owned by PhasePresenter.
type ControlView interface {
	PreviewReset()
	ConfigEditable(bool)
}

// ControlPresenter owns the Start Session and Stop buttons.
type ControlPresenter struct {
	model  RunningModel
	booth  LifecycleContract
	view   ControlView
	resets []Resetter
}

func NewControlPresenter(model RunningModel, booth LifecycleContract, view ControlView, resets ...Resetter) *ControlPresenter {
	return &ControlPresenter{model: model, booth: booth, view: view, resets: resets}
}

func (c *ControlPresenter) ready() bool {
	return c != nil && c.model != nil && c.booth != nil && c.view != nil
}

// Start begins a fresh session. Pressing it while running discards the
// session in progress and starts over.
func (c *ControlPresenter) Start() {
	if !c.ready() {
		return
	}
	c.booth.Start()
	c.clear()
	c.model.SetEnabled(true)
	c.view.ConfigEditable(false)
}

// Stop halts the booth and resets the preview. Idempotent.
func (c *ControlPresenter) Stop() {
	if !c.ready() {
		return
	}
	if !c.model.Enabled() {
		return
	}
	c.booth.Stop()
	c.model.SetEnabled(false)
	c.clear()
	c.view.ConfigEditable(true)
}

// clear wipes the last review and any frame still queued for display.
func (c *ControlPresenter) clear() {
	for _, r := range c.resets {
		if r != nil {
			r.Reset()
		}
	}
	c.view.PreviewReset()
}
