package main

import (
	"context"
	"flag"
	"math"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/adammck/biped"
	"github.com/adammck/biped/components/legs"
	"github.com/adammck/biped/components/steering"
	"github.com/adammck/biped/config"
	"github.com/adammck/biped/debug"
	"github.com/adammck/biped/fake/body"
	"github.com/adammck/biped/math3d"
	"github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "", "path to a JSON tuning file")
	debugFlag  = flag.Bool("debug", false, "emit debug markers")
	addr       = flag.String("addr", "", "serve debug markers over websocket at this address, e.g. :8080")
	ticks      = flag.Int("ticks", 0, "stop after this many ticks (zero runs until interrupted)")
	stand      = flag.Bool("stand", false, "keep both feet planted")
	speed      = flag.Float64("speed", 0.4, "forward walking speed")
	verbose    = flag.Bool("v", false, "log at debug level")
	jsonLog    = flag.Bool("json", false, "log as JSON")
)

var log = logrus.WithFields(logrus.Fields{
	"pkg": "main",
})

// world advances the fake body once the limbs have moved, and publishes the
// markers they emitted.
type world struct {
	body *body.FakeBody
	sink *debug.Collector
	room *debug.Room
	n    int
}

func (w *world) Boot() error {
	return nil
}

func (w *world) Tick(t biped.Tick) error {
	w.n++

	if err := w.body.Step(t.Duration()); err != nil {
		return err
	}

	markers := w.sink.Drain()
	if w.room != nil && len(markers) > 0 {
		return w.room.Publish(debug.Frame{Tick: w.n, Markers: markers})
	}

	return nil
}

func main() {
	flag.Parse()

	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	if *jsonLog {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}

	params := config.Default(1)
	if *configPath != "" {
		p, err := config.Load(*configPath)
		if err != nil {
			log.Fatalf("error while loading config: %s", err)
		}
		params = p
	}

	if *debugFlag {
		params.Debug = true
	}

	// Two legs under a body at the desired height, hips either side of the
	// root, with the knees bent forwards.
	h := params.DesiredHeight
	seg := h * 0.6
	knee := seg*seg - (h/2)*(h/2)
	if knee < 0 {
		knee = 0
	}
	kz := math3d.Vector3{Y: h / 2, Z: math.Sqrt(knee)}

	b := body.New(math3d.Vector3{Y: params.GroundOffset + h})
	limb := func(x float64) *body.FakeLimb {
		base := math3d.Vector3{X: x, Y: params.GroundOffset}
		return b.Attach(base, base.Add(kz), base.Add(math3d.Vector3{Y: h}))
	}
	left := limb(-0.1 * params.Scale)
	right := limb(0.1 * params.Scale)

	var strategy legs.Strategy = legs.Walk{}
	if *stand {
		strategy = legs.Stand{}
	}

	sink := &debug.Collector{}
	pair, err := legs.NewPair(left, right, params, strategy, sink)
	if err != nil {
		log.Fatalf("error while creating limbs: %s", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	w := &world{body: b, sink: sink}
	if *addr != "" {
		w.room = debug.NewRoom()
		go w.room.Run(ctx)

		mux := http.NewServeMux()
		mux.Handle("/markers", w.room)
		srv := &http.Server{Addr: *addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				log.Errorf("error while serving: %s", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		log.Infof("serving markers at ws://%s/markers", *addr)
	}

	step := time.Duration(params.TickDuration * float64(time.Second))
	bp := biped.New(step)
	bp.Add(steering.New(params, steering.Fixed(math3d.Vector3{Z: *speed}), 1))
	bp.Add(pair[0])
	bp.Add(pair[1])
	bp.Add(w)

	log.Info("booting components")
	if err := bp.Boot(); err != nil {
		log.Fatalf("error while booting: %s", err)
	}

	// Catch both SIGINT (ctrl+c) and SIGTERM, to stop the loop cleanly.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range c {
			log.Info("caught signal, shutting down")
			cancel()
		}
	}()

	t := time.NewTicker(step)
	defer t.Stop()

	log.Info("starting loop")
	for {
		select {
		case <-ctx.Done():
			return

		case <-t.C:
			bp.Tick()

			if bp.Ticks()%60 == 0 {
				log.WithFields(logrus.Fields{
					"tick":       bp.Ticks(),
					"root":       b.Root.Pose.Position,
					"velocity":   b.Root.Velocity,
					"degenerate": pair[0].Degenerate() + pair[1].Degenerate(),
				}).Info("status")
			}

			if *ticks > 0 && bp.Ticks() >= *ticks {
				return
			}
		}
	}
}
