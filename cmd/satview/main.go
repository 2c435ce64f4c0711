package main

import (
	"context"
	"flag"
	"fmt"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/signalsfoundry/satview/frames"
	"github.com/signalsfoundry/satview/geodesy"
	"github.com/signalsfoundry/satview/internal/logging"
	"github.com/signalsfoundry/satview/internal/observability"
	"github.com/signalsfoundry/satview/lattice"
	"github.com/signalsfoundry/satview/orbit"
	"github.com/signalsfoundry/satview/rf"
	"github.com/signalsfoundry/satview/timectrl"
)

const degree = math.Pi / 180

func main() {
	duration := flag.Duration("duration", 60*time.Second, "total tracking duration (simulated)")
	tick := flag.Duration("tick", 10*time.Second, "tick interval")
	accelerated := flag.Bool("accelerated", true, "run in accelerated mode (vs real-time)")
	tle1 := flag.String(
		"tle1",
		"1 25544U 98067A   21275.59097222  .00000204  00000-0  10270-4 0  9990",
		"first TLE line of the tracked satellite",
	)
	tle2 := flag.String(
		"tle2",
		"2 25544  51.6459 115.9059 0001817  61.3028  35.9198 15.49370953257760",
		"second TLE line of the tracked satellite",
	)
	obsLatDeg := flag.Float64("obs-lat", 48.2082, "observer latitude in degrees")
	obsLonDeg := flag.Float64("obs-lon", 16.3738, "observer longitude in degrees")
	freqHz := flag.Float64("freq", 12e9, "downlink frequency in Hz, for path-loss output")
	beamPitch := flag.Float64("beam-pitch", 0.05, "beam spacing in the u/v plane")
	beamCount := flag.Int("beams", 7, "beams per lattice axis")
	beamColors := flag.Int("colors", 7, "frequency-reuse colors for the beam plan")
	metricsAddr := flag.String("metrics-addr", "", "address for the /metrics endpoint (empty disables)")

	flag.Parse()

	ctx := context.Background()
	log := logging.NewFromEnv()

	shutdown, err := observability.InitTracing(ctx, observability.TracingConfigFromEnv(), log)
	if err != nil {
		log.Error(ctx, "tracing init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	defer observability.ShutdownWithTimeout(ctx, shutdown, log)

	collector, err := observability.NewGeoCollector(nil)
	if err != nil {
		log.Error(ctx, "metrics init failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", collector.Handler())
		go func() {
			if err := http.ListenAndServe(*metricsAddr, mux); err != nil {
				log.Error(ctx, "metrics server stopped", logging.String("error", err.Error()))
			}
		}()
		log.Info(ctx, "serving metrics", logging.String("addr", *metricsAddr))
	}

	obs, err := geodesy.NewLLA(*obsLatDeg*degree, *obsLonDeg*degree, 0)
	if err != nil {
		log.Error(ctx, "bad observer coordinates", logging.String("error", err.Error()))
		os.Exit(1)
	}

	// ==== Beam plan: color a hexagonal beam lattice in the u/v plane ====

	beams := lattice.GenerateHex(*beamPitch, *beamCount, *beamCount, func(x, y float64) bool {
		return x*x+y*y <= 1
	})
	colorer := lattice.NewColorer(lattice.NewReuseMatrixCache(collector), log)
	colors, err := colorer.Assign(beams, *beamColors, lattice.AssignOptions{Kind: lattice.Triangular})
	if err != nil {
		log.Error(ctx, "beam coloring failed", logging.String("error", err.Error()))
		os.Exit(1)
	}
	perColor := make(map[int]int)
	for _, c := range colors {
		perColor[c]++
	}
	fmt.Printf("Beam plan: %d beams, %d colors, per-color counts %v\n", len(beams), *beamColors, perColor)

	// ==== Tracking loop ====

	src := orbit.NewSGP4Source(*tle1, *tle2)
	eraFromECEF := frames.NewERAFromECEF(obs, geodesy.WGS84)
	wavelength := rf.Wavelength(*freqHz)

	mode := timectrl.RealTime
	if *accelerated {
		mode = timectrl.Accelerated
	}
	tc := timectrl.New(time.Now().UTC(), *tick, mode)

	tc.AddListener(func(simTime time.Time) {
		pos := src.PositionECEF(simTime)
		if !pos.IsValid() {
			collector.IncTransformOp("era_from_ecef", "error")
			fmt.Printf("[%s] propagation failed\n", simTime.Format(time.RFC3339))
			return
		}

		era := eraFromECEF.Forward(pos)
		collector.IncTransformOp("era_from_ecef", "ok")

		satLLA := geodesy.WGS84.ECEFToGeodetic(pos)
		subSat := geodesy.LLA{Lat: satLLA.Lat, Lon: satLLA.Lon, Alt: 0}
		groundDist, azi1, _ := geodesy.WGS84.GeodesicInverse(obs, subSat)

		visible := era.El > 0
		line := fmt.Sprintf("[%s] sat lat=%7.3f lon=%8.3f alt=%6.1f km; ground dist=%7.1f km azi=%6.1f",
			simTime.Format(time.RFC3339),
			satLLA.Lat/degree, satLLA.Lon/degree, satLLA.Alt/1000,
			groundDist/1000, azi1,
		)
		if visible {
			// Free-space path loss over the slant range at the configured
			// frequency.
			fspl := rf.LinearToDB(math.Pow(4*math.Pi*era.R/wavelength, 2))
			line += fmt.Sprintf("; el=%5.1f az=%6.1f range=%7.1f km FSPL=%5.1f dB",
				era.El/degree, era.Az/degree, era.R/1000, fspl)

			uv := frames.NewUVFromLLA(satLLA, geodesy.WGS84).Forward(obs)
			if uv.IsValid() {
				collector.IncTransformOp("uv_from_lla", "ok")
				line += fmt.Sprintf(" uv=(%+.4f,%+.4f)", uv.U, uv.V)
			} else {
				collector.IncTransformOp("uv_from_lla", "miss")
			}
		} else {
			line += " (below horizon)"
		}
		fmt.Println(line)
	})

	fmt.Printf("Tracking: duration=%s, tick=%s, observer=(%.4f, %.4f)\n",
		*duration, *tick, *obsLatDeg, *obsLonDeg)
	<-tc.Start(*duration)
	fmt.Println("Tracking complete.")
}
