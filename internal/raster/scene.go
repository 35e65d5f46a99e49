package raster

import (
	"fmt"
	"runtime"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/airbusgeo/godal"
	"github.com/gammazero/workerpool"
	"github.com/schollz/progressbar/v3"
	"github.com/terrafuse/terrafuse-cli/internal/catalog"
	"github.com/terrafuse/terrafuse-cli/internal/grid"
)

var registerDrivers sync.Once

// Scene is an open raster dataset from the catalog. Bands load lazily: the
// first Grid call for a role reads the band from disk in block-sized chunks,
// later calls return the cached grid.
type Scene struct {
	entry catalog.Entry
	ds    *godal.Dataset
	gt    [6]float64
	epsg  int

	mu    sync.Mutex
	bands map[int]*grid.Grid
}

// Open opens the scene's raster file. The caller must Close the scene.
func Open(entry catalog.Entry) (*Scene, error) {
	registerDrivers.Do(godal.RegisterAll)

	ds, err := godal.Open(entry.Path, godal.ErrLogger(func(ec godal.ErrorCategory, code int, msg string) error {
		if ec == godal.CE_Warning {
			return nil
		}
		return fmt.Errorf("%s", msg)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to open raster %s: %w", entry.Path, err)
	}

	gt, err := ds.GeoTransform()
	if err != nil {
		ds.Close()
		return nil, fmt.Errorf("raster %s has no geotransform: %w", entry.Path, err)
	}

	epsg := entry.EPSG
	if epsg == 0 {
		sr := ds.SpatialRef()
		if code := sr.AuthorityCode(""); code != "" {
			epsg, _ = strconv.Atoi(code)
		}
		sr.Close()
	}
	if epsg == 0 {
		ds.Close()
		return nil, fmt.Errorf("cannot determine CRS of %s; set epsg in the catalog", entry.Path)
	}

	return &Scene{
		entry: entry,
		ds:    ds,
		gt:    gt,
		epsg:  epsg,
		bands: make(map[int]*grid.Grid),
	}, nil
}

func (s *Scene) Close() {
	if s.ds != nil {
		s.ds.Close()
		s.ds = nil
	}
}

func (s *Scene) Name() string {
	return s.entry.Name
}

func (s *Scene) Size() (int, int) {
	structure := s.ds.Structure()
	return structure.SizeX, structure.SizeY
}

func (s *Scene) GeoTransform() [6]float64 {
	return s.gt
}

func (s *Scene) EPSG() int {
	return s.epsg
}

// Grid materializes the band with the given role as a grid.
func (s *Scene) Grid(role string) (*grid.Grid, error) {
	idx, err := s.entry.BandIndex(role)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if g, ok := s.bands[idx]; ok {
		return g, nil
	}

	g, err := s.loadBand(idx, role)
	if err != nil {
		return nil, err
	}
	s.bands[idx] = g
	return g, nil
}

// loadBand reads one band in row-block chunks on a worker pool. Blocks write
// to disjoint slices of the target buffer, so no locking is needed around the
// reads themselves.
func (s *Scene) loadBand(idx int, role string) (*grid.Grid, error) {
	bands := s.ds.Bands()
	if idx < 1 || idx > len(bands) {
		return nil, fmt.Errorf("scene %s: band %d (%s) out of range, raster has %d bands", s.entry.Name, idx, role, len(bands))
	}
	band := bands[idx-1]

	structure := s.ds.Structure()
	width, height := structure.SizeX, structure.SizeY
	blockRows := structure.BlockSizeY
	if blockRows <= 0 || blockRows > height {
		blockRows = 256
	}

	data := make([]float64, width*height)
	label := fmt.Sprintf("Loading %s/%s", s.entry.Name, role)
	err := readRowBlocks(data, width, height, blockRows, label, func(y0, rows int, buf []float64) error {
		return band.Read(0, y0, buf, width, rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read band %d of scene %s: %w", idx, s.entry.Name, err)
	}

	if s.entry.NoData != nil {
		maskNoData(data, *s.entry.NoData)
	}

	return grid.FromData(width, height, s.gt, s.epsg, data)
}

// readRowBlocks fills data by reading row-block windows on a worker pool.
// Blocks write to disjoint slices of data, so the reads need no locking. The
// first failed read cancels the blocks still queued behind it.
func readRowBlocks(data []float64, width, height, blockRows int, label string, read func(y0, rows int, buf []float64) error) error {
	blocks := (height + blockRows - 1) / blockRows

	progressBar := progressbar.Default(int64(blocks), label)
	wp := workerpool.New(runtime.NumCPU())
	errChan := make(chan error, 1)
	var firstErr sync.Once
	var cancelled atomic.Bool

	for b := 0; b < blocks; b++ {
		y0 := b * blockRows
		rows := blockRows
		if y0+rows > height {
			rows = height - y0
		}
		wp.Submit(func() {
			if cancelled.Load() {
				return
			}
			buf := data[y0*width : (y0+rows)*width]
			if err := read(y0, rows, buf); err != nil {
				cancelled.Store(true)
				firstErr.Do(func() { errChan <- fmt.Errorf("failed to read rows %d-%d: %w", y0, y0+rows, err) })
				return
			}
			progressBar.Add(1)
		})
	}

	go func() {
		wp.StopWait()
		close(errChan)
	}()
	if err := <-errChan; err != nil {
		progressBar.Exit()
		return err
	}
	progressBar.Finish()
	return nil
}
