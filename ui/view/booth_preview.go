package view

import (
	"image"

	"github.com/soocke/smile-booth-go/ui/images"

	//lint:ignore ST1001 Dot import is intentional for concise Tk widget DSL builders.
	. "modernc.org/tk9.0"
)

// BoothPreview shows the annotated live feed and the review playback side by side.
type BoothPreview interface {
	UpdateLive(img image.Image)
	UpdatePlayback(img image.Image)
	SetPlaybackText(text string)
	Reset()
}

type boothPreview struct {
	liveLabel     *LabelWidget
	playbackLabel *LabelWidget
	playbackText  *LabelWidget
	liveW, liveH  int
	playW, playH  int
	prevLive      *Img // last Tk photo for the live feed
	prevPlayback  *Img // last Tk photo for playback
}

// Old photos are deleted before replacement so off-screen pixel data does
// not accumulate in the Tcl interpreter.

// NewBoothPreview creates the preview labels in row. The live feed spans
// columns 0-3, playback sits in column 4 with its status text below.
func NewBoothPreview(row, liveW, liveH, playW, playH int) BoothPreview {
	v := &boothPreview{liveW: liveW, liveH: liveH, playW: playW, playH: playH}
	v.prevLive = NewPhoto(Data(placeholder(liveW, liveH)))
	v.prevPlayback = NewPhoto(Data(placeholder(playW, playH)))
	v.liveLabel = Label(Image(v.prevLive), Borderwidth(1), Relief("sunken"))
	v.playbackLabel = Label(Image(v.prevPlayback), Borderwidth(1), Relief("sunken"))
	v.playbackText = Label(Txt(""), Anchor("center"))
	Grid(v.liveLabel, Row(row), Column(0), Columnspan(4), Rowspan(2), Sticky("nwe"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.playbackLabel, Row(row), Column(4), Sticky("n"), Padx("0.4m"), Pady("0.4m"))
	Grid(v.playbackText, Row(row+1), Column(4), Sticky("we"), Padx("0.4m"))
	return v
}

func placeholder(w, h int) []byte {
	return images.EncodePNG(image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1))))
}

func (v *boothPreview) UpdateLive(img image.Image) {
	if v.liveLabel == nil || img == nil {
		return
	}
	scaled := images.ScaleToFit(img, v.liveW, v.liveH)
	if v.prevLive != nil {
		v.prevLive.Delete()
	}
	v.prevLive = NewPhoto(Data(images.EncodePNG(scaled)))
	v.liveLabel.Configure(Image(v.prevLive))
}

func (v *boothPreview) UpdatePlayback(img image.Image) {
	if v.playbackLabel == nil || img == nil {
		return
	}
	if v.prevPlayback != nil {
		v.prevPlayback.Delete()
	}
	v.prevPlayback = NewPhoto(Data(images.EncodePNG(img)))
	v.playbackLabel.Configure(Image(v.prevPlayback))
	v.playbackText.Configure(Txt(""))
}

// SetPlaybackText blanks the playback image and shows text instead.
func (v *boothPreview) SetPlaybackText(text string) {
	if v.playbackText == nil {
		return
	}
	if v.prevPlayback != nil {
		v.prevPlayback.Delete()
	}
	v.prevPlayback = NewPhoto(Data(placeholder(v.playW, v.playH)))
	v.playbackLabel.Configure(Image(v.prevPlayback))
	v.playbackText.Configure(Txt(text))
}

func (v *boothPreview) Reset() {
	if v.liveLabel != nil {
		if v.prevLive != nil {
			v.prevLive.Delete()
		}
		v.prevLive = NewPhoto(Data(placeholder(v.liveW, v.liveH)))
		v.liveLabel.Configure(Image(v.prevLive))
	}
	v.SetPlaybackText("")
}
