package view

import (
	"strconv"
	"sync"

	"github.com/i474232898/workout-tracker/internal/workout"
)

// MarkerHandle identifies a marker placed on a MapLayer.
type MarkerHandle string

// MapLayer is the map widget capability the synchronizer drives.
type MapLayer interface {
	PlaceMarker(coords workout.Coords, popup, styleClass string) MarkerHandle
	RemoveMarker(h MarkerHandle)
	SetView(coords workout.Coords, zoom int, animated bool)
	OnClick(handler func(workout.Coords))
}

// Snapshotter is implemented by layers that can report what they show.
type Snapshotter interface {
	Markers() []Marker
	Camera() Camera
}

// ViewClearer is implemented by layers whose centre can be unset.
type ViewClearer interface {
	ClearView()
}

// Marker is a placed marker as handed to the front-end.
type Marker struct {
	Handle     MarkerHandle   `json:"handle"`
	Coords     workout.Coords `json:"coords"`
	Popup      string         `json:"popup"`
	StyleClass string         `json:"styleClass"`
}

// Camera is the current map centre. Set is false until the view has been
// centred once.
type Camera struct {
	Set      bool           `json:"set"`
	Center   workout.Coords `json:"center"`
	Zoom     int            `json:"zoom"`
	Animated bool           `json:"animated"`
}

// Layer is an in-process MapLayer whose state is rendered by the front-end.
type Layer struct {
	mu      sync.RWMutex
	next    int
	order   []MarkerHandle
	markers map[MarkerHandle]Marker
	camera  Camera
	onClick func(workout.Coords)
}

// NewLayer creates an empty Layer.
func NewLayer() *Layer {
	return &Layer{markers: make(map[MarkerHandle]Marker)}
}

func (l *Layer) PlaceMarker(coords workout.Coords, popup, styleClass string) MarkerHandle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	h := MarkerHandle("m" + strconv.Itoa(l.next))
	l.markers[h] = Marker{Handle: h, Coords: coords, Popup: popup, StyleClass: styleClass}
	l.order = append(l.order, h)
	return h
}

func (l *Layer) RemoveMarker(h MarkerHandle) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, ok := l.markers[h]; !ok {
		return
	}
	delete(l.markers, h)
	for i, oh := range l.order {
		if oh == h {
			l.order = append(l.order[:i], l.order[i+1:]...)
			break
		}
	}
}

func (l *Layer) SetView(coords workout.Coords, zoom int, animated bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.camera = Camera{Set: true, Center: coords, Zoom: zoom, Animated: animated}
}

// ClearView forgets the map centre, as on a fresh page.
func (l *Layer) ClearView() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.camera = Camera{}
}

func (l *Layer) OnClick(handler func(workout.Coords)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onClick = handler
}

// Click delivers a map click to the registered handler. It reports false
// when no handler is registered.
func (l *Layer) Click(coords workout.Coords) bool {
	l.mu.RLock()
	h := l.onClick
	l.mu.RUnlock()

	if h == nil {
		return false
	}
	h(coords)
	return true
}

// Markers returns the placed markers in placement order.
func (l *Layer) Markers() []Marker {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Marker, 0, len(l.order))
	for _, h := range l.order {
		out = append(out, l.markers[h])
	}
	return out
}

// Camera returns the current map centre.
func (l *Layer) Camera() Camera {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.camera
}
