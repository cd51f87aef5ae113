// Package ics writes planner events as an iCalendar feed.
package ics

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"

	"tableflip.dev/pilot/pkg/event"
)

// ProductID identifies the feed producer.
const ProductID = "-//tableflip.dev//pilot//EN"

// Calendar builds a VCALENDAR holding one VEVENT per event. Times are
// interpreted in loc; stamp is the DTSTAMP of every component.
func Calendar(events []*event.Event, loc *time.Location, stamp time.Time) *ical.Calendar {
	if loc == nil {
		loc = time.Local
	}
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, ProductID)
	for _, e := range events {
		cal.Children = append(cal.Children, component(e, loc, stamp))
	}
	return cal
}

func component(e *event.Event, loc *time.Location, stamp time.Time) *ical.Component {
	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, e.ID)
	ve.Props.SetText(ical.PropSummary, e.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, stamp.UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, e.Start.On(e.Date, loc))
	ve.Props.SetDateTime(ical.PropDateTimeEnd, e.End.On(e.Date, loc))
	ve.Props.SetText(ical.PropCategories, string(e.Category))
	if e.Description != "" {
		ve.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Progress != nil {
		ve.Props.SetText(ical.PropPercentComplete, fmt.Sprint(*e.Progress))
	}
	return ve
}

// Write encodes events to w.
func Write(w io.Writer, events []*event.Event, loc *time.Location, stamp time.Time) error {
	if len(events) == 0 {
		// An empty VCALENDAR is rejected by the encoder.
		return fmt.Errorf("ics: no events to export")
	}
	if err := ical.NewEncoder(w).Encode(Calendar(events, loc, stamp)); err != nil {
		return fmt.Errorf("ics: encode: %w", err)
	}
	return nil
}
