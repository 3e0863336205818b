package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/swdee/go-schlemmer"
	"github.com/swdee/go-schlemmer/config"
	"github.com/swdee/go-schlemmer/render"
	"github.com/swdee/go-schlemmer/visualizer"
	"go.uber.org/zap"
	"gocv.io/x/gocv"
)

var errQuit = errors.New("quit requested")

// Demo composites the pose overlays onto a black projector output and onto
// the mirrored camera preview
type Demo struct {
	log      *zap.SugaredLogger
	tunables *config.Tunables
	vis      *visualizer.Visualizer
	feed     *schlemmer.Feed
	camera   *gocv.VideoCapture
	// cam is the last frame read from the camera
	cam gocv.Mat
	// preview is the camera frame the overlays are drawn onto
	preview   gocv.Mat
	projector gocv.Mat
	previewT  *render.MatTarget
	windows   []*gocv.Window
	// jpeg holds the last encoded preview frame served over HTTP
	mu   sync.Mutex
	jpeg []byte
}

// NewDemo opens the camera and sets up both output surfaces
func NewDemo(log *zap.SugaredLogger, tunables *config.Tunables, camID int,
	projW, projH int, srcWidth float64, headless bool) (*Demo, error) {

	camera, err := gocv.OpenVideoCapture(camID)

	if err != nil {
		return nil, fmt.Errorf("error opening camera %d: %w", camID, err)
	}

	d := &Demo{
		log:       log,
		tunables:  tunables,
		feed:      schlemmer.NewFeed(),
		camera:    camera,
		cam:       gocv.NewMat(),
		preview:   gocv.NewMat(),
		projector: gocv.NewMatWithSize(projH, projW, gocv.MatTypeCV8UC3),
	}

	d.previewT = render.NewMatTarget(&d.preview)

	d.vis = visualizer.New(tunables,
		visualizer.WithLogger(log),
		visualizer.WithSurfaces(
			visualizer.Surface{
				Name:      "projector",
				Target:    render.NewMatTarget(&d.projector),
				Transform: render.Transform{Scale: float64(projW) / srcWidth},
				Clear:     true,
			},
			visualizer.Surface{
				Name:   "preview",
				Target: d.previewT,
				Transform: render.Transform{
					Scale:       1,
					Mirror:      true,
					SourceWidth: srcWidth,
				},
			},
		),
	)

	if !headless {
		d.windows = []*gocv.Window{
			gocv.NewWindow("projector"),
			gocv.NewWindow("preview"),
		}
	}

	return d, nil
}

// Close releases camera, Mat and window resources
func (d *Demo) Close() {
	for _, w := range d.windows {
		w.Close()
	}
	d.camera.Close()
	d.cam.Close()
	d.preview.Close()
	d.projector.Close()
}

// ReadPoses publishes pose lists decoded from r until it is exhausted
func (d *Demo) ReadPoses(r io.Reader) {

	reader := schlemmer.NewPoseReader(r)

	for {
		poses, err := reader.Next()

		if errors.Is(err, io.EOF) {
			d.log.Infow("Pose stream ended")
			return
		}

		if errors.Is(err, schlemmer.ErrDecode) {
			d.log.Warnw("Skipping pose line", "error", err)
			continue
		}

		if err != nil {
			d.log.Errorw("Pose stream failed", "error", err)
			return
		}

		d.feed.Publish(poses)
	}
}

// beforeDraw refreshes the preview surface with the latest camera frame,
// mirrored to match the preview transform
func (d *Demo) beforeDraw(frame *visualizer.Frame) error {

	if ok := d.camera.Read(&d.cam); !ok || d.cam.Empty() {
		return nil
	}

	gocv.Flip(d.cam, &d.preview, 1)

	return nil
}

// afterDraw presents the surfaces and handles key presses
func (d *Demo) afterDraw(frame *visualizer.Frame) error {

	d.previewT.Status([]string{
		fmt.Sprintf("Frame: %d", frame.Number),
		fmt.Sprintf("Poses: %d", frame.Poses),
		fmt.Sprintf("Base length: %.1f", frame.BaseLength),
	})

	if buf, err := gocv.IMEncode(".jpg", d.preview); err == nil {
		d.mu.Lock()
		d.jpeg = append(d.jpeg[:0], buf.GetBytes()...)
		d.mu.Unlock()
		buf.Close()
	}

	if len(d.windows) == 0 {
		return nil
	}

	d.windows[0].IMShow(d.projector)
	d.windows[1].IMShow(d.preview)

	switch d.windows[0].WaitKey(1) {
	case 'q', 27:
		return errQuit
	case 'c':
		d.log.Infow("Recalibration requested")
		d.vis.Recalibrate()
	case 't':
		d.tunables.Update(func(cfg *config.Config) {
			cfg.Springs = !cfg.Springs
		})
	case '+':
		d.tunables.Update(func(cfg *config.Config) {
			cfg.Spring.Elasticity += 0.1
		})
	case '-':
		d.tunables.Update(func(cfg *config.Config) {
			cfg.Spring.Elasticity -= 0.1
		})
	}

	return nil
}

// Stream is the HTTP handler streaming the preview as MJPEG
func (d *Demo) Stream(w http.ResponseWriter, r *http.Request) {

	d.log.Infow("New client connection established")

	w.Header().Set("Content-Type", "multipart/x-mixed-replace; boundary=frame")

	ticker := time.NewTicker(time.Second / 30)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			d.log.Infow("Client disconnected")
			return

		case <-ticker.C:
			d.mu.Lock()
			img := append([]byte(nil), d.jpeg...)
			d.mu.Unlock()

			if len(img) == 0 {
				continue
			}

			w.Write([]byte("--frame\r\n"))
			w.Write([]byte("Content-Type: image/jpeg\r\n\r\n"))
			w.Write(img)
			w.Write([]byte("\r\n"))

			if flusher, ok := w.(http.Flusher); ok {
				flusher.Flush()
			}
		}
	}
}

func main() {

	// read in cli flags
	camID := flag.Int("cam", 0, "Camera device ID")
	cfgFile := flag.String("c", "", "JSON config file, defaults are used if not given")
	projW := flag.Int("pw", 1920, "Projector output width")
	projH := flag.Int("ph", 1080, "Projector output height")
	srcWidth := flag.Float64("sw", 640, "Width of the frames the pose estimator runs on")
	httpAddr := flag.String("a", "", "HTTP address to stream the preview on, format address:port")
	headless := flag.Bool("headless", false, "Do not open display windows")
	debug := flag.Bool("debug", false, "Enable debug logging")

	flag.Parse()

	var logger *zap.Logger
	var err error

	if *debug {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}

	defer logger.Sync()
	log := logger.Sugar()

	cfg := config.DefaultConfig()

	if *cfgFile != "" {
		cfg, err = config.LoadConfig(*cfgFile)

		if err != nil {
			log.Fatalw("Error loading config", "error", err)
		}
	}

	tunables := config.NewTunables(cfg)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if *cfgFile != "" {
		go func() {
			if err := config.Watch(ctx, *cfgFile, tunables, log); err != nil {
				log.Warnw("Config watch stopped", "error", err)
			}
		}()
	}

	demo, err := NewDemo(log, tunables, *camID, *projW, *projH, *srcWidth, *headless)

	if err != nil {
		log.Fatalw("Error creating demo", "error", err)
	}

	defer demo.Close()

	// poses arrive from the external estimator as JSON lines on stdin
	go demo.ReadPoses(os.Stdin)

	if *httpAddr != "" {
		http.HandleFunc("/stream", demo.Stream)

		go func() {
			log.Infow("Open browser and view preview", "url",
				fmt.Sprintf("http://%s/stream", *httpAddr))

			if err := http.ListenAndServe(*httpAddr, nil); err != nil {
				log.Warnw("HTTP server stopped", "error", err)
			}
		}()
	}

	err = demo.vis.Loop(ctx, demo.feed, visualizer.LoopOptions{
		BeforeDraw: demo.beforeDraw,
		AfterDraw:  demo.afterDraw,
	})

	if err != nil && !errors.Is(err, errQuit) {
		log.Errorw("Frame loop stopped", "error", err)
	}
}
