package analytics

import (
	"log"
	"maps"
	"sync"

	"estate-backoffice/internal/metrics"
)

// Board keeps the chart configs currently drawn on a session's page.
// A canvas holds at most one live widget.
type Board struct {
	mu       sync.Mutex
	configs  map[string]ChartConfig
	live     map[string]uint64
	next     uint64
	replaced int
}

func NewBoard() *Board {
	return &Board{
		configs: make(map[string]ChartConfig),
		live:    make(map[string]uint64),
	}
}

func (b *Board) Render(canvas string, cfg ChartConfig) (Widget, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.live[canvas]; ok {
		b.replaced++
		log.Printf("[Charts] Canvas %s redrawn while its previous chart was still live", canvas)
	}
	b.next++
	b.live[canvas] = b.next
	b.configs[canvas] = cfg
	return &boardWidget{board: b, canvas: canvas, id: b.next}, nil
}

func (b *Board) release(canvas string, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.live[canvas] != id {
		return
	}
	delete(b.live, canvas)
	delete(b.configs, canvas)
}

// Configs returns the live chart configs keyed by canvas id
func (b *Board) Configs() map[string]ChartConfig {
	b.mu.Lock()
	defer b.mu.Unlock()
	return maps.Clone(b.configs)
}

// Replaced counts canvases redrawn without releasing their previous widget
func (b *Board) Replaced() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.replaced
}

type boardWidget struct {
	board  *Board
	canvas string
	id     uint64
	once   sync.Once
}

func (w *boardWidget) Destroy() {
	w.once.Do(func() {
		metrics.ChartWidgetsDestroyed.WithLabelValues(w.canvas).Inc()
		w.board.release(w.canvas, w.id)
	})
}
