package session

import (
	"log"
)

// Notifier shows user facing messages
type Notifier interface {
	Info(msg string)
	Warning(msg string)
	Error(msg string)
}

// Visualizer receives the quantities produced by a computation
type Visualizer interface {
	AddVertexScalarQuantity(name string, values []float64)
	AddEdgeScalarQuantity(name string, values []float64)
}

// Quantity names handed to the Visualizer
const (
	DistanceQuantity    = "geodesic_distance"
	SourceEdgesQuantity = "source_edges"
)

// LogNotifier writes messages to a logger; used when there is no window
type LogNotifier struct {
	Logger *log.Logger
}

func (n LogNotifier) logger() *log.Logger {
	if n.Logger == nil {
		return log.Default()
	}
	return n.Logger
}

func (n LogNotifier) Info(msg string)    { n.logger().Printf("%s", msg) }
func (n LogNotifier) Warning(msg string) { n.logger().Printf("warning: %s", msg) }
func (n LogNotifier) Error(msg string)   { n.logger().Printf("error: %s", msg) }

type nopVisualizer struct{}

func (nopVisualizer) AddVertexScalarQuantity(string, []float64) {}
func (nopVisualizer) AddEdgeScalarQuantity(string, []float64)   {}
