// Package view keeps the map markers and the workout list consistent with
// the workout store.
package view

import (
	"fmt"
	"math"
	"strconv"

	"github.com/i474232898/workout-tracker/internal/workout"
)

// DefaultZoom is the zoom level used when centring on a workout.
const DefaultZoom = 13

// Annotation is the weather shown on a list row. It is display-only.
type Annotation struct {
	Place     string `json:"place"`
	Condition string `json:"condition"`
	IconURL   string `json:"iconUrl"`
}

// Input is an inline-editable or read-only value on a row.
type Input struct {
	Field    string `json:"field"`
	Value    string `json:"value"`
	Unit     string `json:"unit"`
	Disabled bool   `json:"disabled,omitempty"`
}

// Row is one entry of the workout list.
type Row struct {
	ID        string       `json:"id"`
	Kind      workout.Kind `json:"type"`
	Title     string       `json:"title"`
	Icon      string       `json:"icon"`
	Distance  Input        `json:"distance"`
	Duration  Input        `json:"duration"`
	Metric    Input        `json:"metric"`
	Attribute Input        `json:"attribute"`
	Weather   *Annotation  `json:"weather,omitempty"`
}

// State is everything the front-end needs to draw.
type State struct {
	Rows         []Row    `json:"rows"`
	Markers      []Marker `json:"markers"`
	Camera       Camera   `json:"camera"`
	ResetVisible bool     `json:"resetVisible"`
	FormVisible  bool     `json:"formVisible"`
	Notice       string   `json:"notice,omitempty"`
}

// Synchronizer mirrors store changes onto a map layer and the row list.
// Markers are tracked by workout id. It is not safe for concurrent use;
// the controller serializes calls.
type Synchronizer struct {
	layer   MapLayer
	zoom    int
	rows    []Row
	markers map[string]MarkerHandle
	form    bool
	notice  string
}

// NewSynchronizer creates a Synchronizer drawing on layer.
func NewSynchronizer(layer MapLayer, zoom int) *Synchronizer {
	if zoom <= 0 {
		zoom = DefaultZoom
	}
	return &Synchronizer{
		layer:   layer,
		zoom:    zoom,
		markers: make(map[string]MarkerHandle),
	}
}

// Added places a marker and appends a row for w.
func (s *Synchronizer) Added(w workout.Workout) {
	popup := fmt.Sprintf("%s %s", w.Kind.Icon(), w.Description)
	if old, ok := s.markers[w.ID]; ok {
		s.layer.RemoveMarker(old)
	}
	s.markers[w.ID] = s.layer.PlaceMarker(w.Coords, popup, string(w.Kind)+"-popup")

	row := buildRow(&w)
	if i := s.rowIndex(w.ID); i >= 0 {
		row.Weather = s.rows[i].Weather
		s.rows[i] = row
		return
	}
	s.rows = append(s.rows, row)
}

// Updated rewrites the row values for w. The marker is left in place.
func (s *Synchronizer) Updated(w workout.Workout) {
	i := s.rowIndex(w.ID)
	if i < 0 {
		return
	}
	next := buildRow(&w)
	next.Weather = s.rows[i].Weather
	s.rows[i] = next
}

// Removed drops the row and marker of the workout with the given id.
func (s *Synchronizer) Removed(id string) {
	if h, ok := s.markers[id]; ok {
		s.layer.RemoveMarker(h)
		delete(s.markers, id)
	}
	if i := s.rowIndex(id); i >= 0 {
		s.rows = append(s.rows[:i], s.rows[i+1:]...)
	}
}

// Cleared returns the view to its initial empty state.
func (s *Synchronizer) Cleared() {
	for id, h := range s.markers {
		s.layer.RemoveMarker(h)
		delete(s.markers, id)
	}
	s.rows = nil
	s.form = false
	s.notice = ""
	if vc, ok := s.layer.(ViewClearer); ok {
		vc.ClearView()
	}
}

// Focus centres the map on coords at the standard zoom level.
func (s *Synchronizer) Focus(coords workout.Coords) {
	s.layer.SetView(coords, s.zoom, true)
}

// Center moves the map without animation, used for the initial view.
func (s *Synchronizer) Center(coords workout.Coords) {
	s.layer.SetView(coords, s.zoom, false)
}

// Annotate attaches weather to the row of id. It reports false when the
// row no longer exists.
func (s *Synchronizer) Annotate(id string, a Annotation) bool {
	i := s.rowIndex(id)
	if i < 0 {
		return false
	}
	s.rows[i].Weather = &a
	return true
}

// Annotated reports whether the row of id already has weather.
func (s *Synchronizer) Annotated(id string) bool {
	i := s.rowIndex(id)
	return i >= 0 && s.rows[i].Weather != nil
}

// ShowForm toggles the new-workout form.
func (s *Synchronizer) ShowForm(visible bool) {
	s.form = visible
}

// SetNotice sets a passive message; an empty string clears it.
func (s *Synchronizer) SetNotice(msg string) {
	s.notice = msg
}

// State returns a copy of the current view.
func (s *Synchronizer) State() State {
	rows := make([]Row, len(s.rows))
	for i, r := range s.rows {
		rows[i] = r
		if r.Weather != nil {
			a := *r.Weather
			rows[i].Weather = &a
		}
	}
	st := State{
		Rows:         rows,
		Markers:      []Marker{},
		ResetVisible: len(rows) > 0,
		FormVisible:  s.form,
		Notice:       s.notice,
	}
	if snap, ok := s.layer.(Snapshotter); ok {
		st.Markers = snap.Markers()
		st.Camera = snap.Camera()
	}
	return st
}

func (s *Synchronizer) rowIndex(id string) int {
	for i := range s.rows {
		if s.rows[i].ID == id {
			return i
		}
	}
	return -1
}

func buildRow(w *workout.Workout) Row {
	m := w.Metric()
	field, value, unit := w.Attribute()
	return Row{
		ID:       w.ID,
		Kind:     w.Kind,
		Title:    w.Description,
		Icon:     w.Kind.Icon(),
		Distance: Input{Field: string(workout.FieldDistance), Value: formatValue(w.Distance), Unit: "km"},
		Duration: Input{Field: string(workout.FieldDuration), Value: formatValue(w.Duration), Unit: "min"},
		Metric: Input{
			Field:    m.Name,
			Value:    formatMetric(m.Value),
			Unit:     m.Unit,
			Disabled: true,
		},
		Attribute: Input{Field: string(field), Value: formatValue(value), Unit: unit},
	}
}

// formatMetric renders one decimal, rounding ties away from zero.
func formatMetric(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', 1, 64)
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
