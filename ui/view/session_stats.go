package view

import (
	"fmt"
	"time"

	//lint:ignore ST1001 Dot import for concise Tk widget DSL.
	. "modernc.org/tk9.0"
)

// SessionStats shows run durations, photo session counters and the latest detector reading.
type SessionStats interface {
	SetSession(d time.Duration)
	SetTotal(d time.Duration)
	SetCounts(started, completed int)
	SetDetection(faces int, latency time.Duration)
}

type sessionStats struct {
	sessionLbl *LabelWidget
	totalLbl   *LabelWidget
	countsLbl  *LabelWidget
	detectLbl  *LabelWidget
}

// NewSessionStats grids the labels left to right starting at (row, startCol).
func NewSessionStats(row, startCol int) SessionStats {
	s := &sessionStats{
		sessionLbl: Label(Width(14), Txt("Running: 00:00")),
		totalLbl:   Label(Width(14), Txt("Total: 00:00")),
		countsLbl:  Label(Width(18), Txt("Photos: 0/0")),
		detectLbl:  Label(Width(18), Txt("Faces: 0")),
	}
	for i, l := range []*LabelWidget{s.sessionLbl, s.totalLbl, s.countsLbl, s.detectLbl} {
		Grid(l, Row(row+i/2), Column(startCol+i%2), Sticky("w"), Padx("0.2m"))
	}
	return s
}

func mmss(d time.Duration) string {
	seconds := int(d.Seconds())
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

func (s *sessionStats) SetSession(d time.Duration) {
	if s == nil || s.sessionLbl == nil {
		return
	}
	s.sessionLbl.Configure(Txt("Running: " + mmss(d)))
}

func (s *sessionStats) SetTotal(d time.Duration) {
	if s == nil || s.totalLbl == nil {
		return
	}
	s.totalLbl.Configure(Txt("Total: " + mmss(d)))
}

// SetCounts shows completed over started photo sessions.
func (s *sessionStats) SetCounts(started, completed int) {
	if s == nil || s.countsLbl == nil {
		return
	}
	s.countsLbl.Configure(Txt(fmt.Sprintf("Photos: %d/%d", completed, started)))
}

func (s *sessionStats) SetDetection(faces int, latency time.Duration) {
	if s == nil || s.detectLbl == nil {
		return
	}
	s.detectLbl.Configure(Txt(fmt.Sprintf("Faces: %d (%dms)", faces, latency.Milliseconds())))
}
