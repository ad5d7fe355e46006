package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ChristopherRabotin/mavsim"
	kitlog "github.com/go-kit/kit/log"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// This reads a scenario file, flies the aircraft and prints the true state at the print interval.

const (
	defaultScenario = "~~unset~~"
	airframeEnv     = "MAVSIM_AIRFRAME"
)

var (
	scenario string
	verbose  bool
	airdata  bool
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "scenario TOML file")
	flag.BoolVar(&verbose, "verbose", false, "log the aircraft status (logfmt on stderr)")
	flag.BoolVar(&airdata, "airdata", false, "print the air data of the canned velocity and wind cases and exit")
}

func main() {
	flag.Parse()
	// A missing .env is fine.
	_ = godotenv.Load()

	if airdata {
		printAirData()
		return
	}

	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	scenario = strings.Replace(scenario, ".toml", "", 1)
	viper.AddConfigPath(".")
	viper.SetConfigName(scenario)
	if err := viper.ReadInConfig(); err != nil {
		log.Fatalf("./%s.toml: Error %s", scenario, err)
	}

	params, err := readParams()
	if err != nil {
		log.Fatal(err)
	}

	step := viper.GetDuration("sim.step").Seconds()
	duration := viper.GetDuration("sim.duration").Seconds()
	printEvery := viper.GetDuration("sim.print").Seconds()
	if verbose {
		log.Printf("[conf] airframe: %s, step: %gs, duration: %gs\n", params.Name, step, duration)
	}

	logger := kitlog.NewNopLogger()
	if verbose {
		logger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))
	}
	ac, err := mavsim.NewAircraft(params, step, logger)
	if err != nil {
		log.Fatalf("could not create aircraft: %s", err)
	}

	wind, err := readWind(step)
	if err != nil {
		log.Fatal(err)
	}

	origin := mavsim.GeoOrigin{Lat: viper.GetFloat64("origin.lat"), Lon: viper.GetFloat64("origin.lon"), Alt: viper.GetFloat64("origin.alt")}
	flight := mavsim.NewFlight(ac, readSchedule(), wind, duration)
	flight.HaltOnDegenerate = viper.GetBool("sim.halt_on_degenerate")
	if !verbose {
		flight.StatusEvery = 0
	}
	show := func(t float64, ts mavsim.TrueState) {
		lat, lon, alt := origin.Position(ts)
		fmt.Printf("t=%8.3f lat=%.6f lon=%.6f alt=%.1f %s\n", t, lat, lon, alt, ts)
	}
	show(ac.Time(), ac.TrueState())
	if printEvery > 0 {
		nextPrint := ac.Time() + printEvery
		flight.Observer = func(t float64, ts mavsim.TrueState) {
			// The step size may not divide the print interval.
			if t+1e-9 >= nextPrint {
				show(t, ts)
				nextPrint += printEvery
			}
		}
	}
	if _, err := flight.Fly(); err != nil {
		var degenerate *mavsim.DegenerateError
		if errors.As(err, &degenerate) {
			log.Printf("[WARNING] degenerate state at t=%.3fs: %s", degenerate.Time, degenerate.Flags)
		} else {
			log.Fatal(err)
		}
	}
	if printEvery <= 0 {
		show(ac.Time(), ac.TrueState())
	}
}

// readParams returns the airframe of the scenario (or $MAVSIM_AIRFRAME), with its optional override file.
func readParams() (mavsim.Params, error) {
	name := viper.GetString("airframe.name")
	if name == "" {
		name = os.Getenv(airframeEnv)
	}
	var params mavsim.Params
	var err error
	if name == "" {
		params, err = mavsim.ParamsFromEnv()
	} else {
		params, err = mavsim.Airframe(name)
	}
	if err != nil {
		return params, err
	}
	if override := viper.GetString("airframe.override"); override != "" {
		return mavsim.LoadParams(override, params)
	}
	return params, nil
}

func readWind(step float64) (mavsim.WindField, error) {
	steady := mavsim.Vector3{viper.GetFloat64("wind.north"), viper.GetFloat64("wind.east"), viper.GetFloat64("wind.down")}
	var turb mavsim.Turbulence
	switch level := viper.GetString("wind.turbulence"); level {
	case "", "none":
		return mavsim.SteadyWind(mavsim.Wind{Steady: steady}), nil
	case "light":
		turb = mavsim.LightTurbulence
	case "moderate":
		turb = mavsim.ModerateTurbulence
	default:
		return nil, fmt.Errorf("unknown turbulence level `%s`", level)
	}
	return mavsim.NewGustField(steady, turb, step, uint64(viper.GetInt64("wind.seed")))
}

// readSchedule reads the control segments `controls.0`, `controls.1`...
func readSchedule() mavsim.Schedule {
	var schedule mavsim.Schedule
	for segNo := 0; viper.IsSet(fmt.Sprintf("controls.%d", segNo)); segNo++ {
		key := func(k string) string { return fmt.Sprintf("controls.%d.%s", segNo, k) }
		seg := mavsim.Segment{Start: viper.GetDuration(key("start")).Seconds()}
		seg.Aileron = viper.GetFloat64(key("aileron"))
		seg.Elevator = viper.GetFloat64(key("elevator"))
		seg.Rudder = viper.GetFloat64(key("rudder"))
		seg.Throttle = viper.GetFloat64(key("throttle"))
		schedule = append(schedule, seg)
		if verbose {
			log.Printf("[conf] segment %d from %gs: %s", segNo, seg.Start, seg.Controls)
		}
	}
	return schedule
}

// printAirData prints the air data of the canned body velocity and steady wind cases, at zero attitude.
func printAirData() {
	cases := []struct {
		uvw, wind mavsim.Vector3
	}{
		{mavsim.Vector3{0, 0, 0}, mavsim.Vector3{0, 0, 0}},
		{mavsim.Vector3{1, 0, 0}, mavsim.Vector3{0, 0, 0}},
		{mavsim.Vector3{1, 1, 0}, mavsim.Vector3{0, 0, 0}},
		{mavsim.Vector3{1, 0, 1}, mavsim.Vector3{0, 0, 0}},
		{mavsim.Vector3{0, 0, 0}, mavsim.Vector3{1, 0, 0}},
		{mavsim.Vector3{0, 0, 0}, mavsim.Vector3{1, 1, 0}},
		{mavsim.Vector3{0, 0, 0}, mavsim.Vector3{1, 0, 1}},
		{mavsim.Vector3{1, 0, 0}, mavsim.Vector3{1, 0, 0}},
		{mavsim.Vector3{0, 0, 0}, mavsim.Vector3{3, 4, 0}},
		{mavsim.Vector3{0, 4, 0}, mavsim.Vector3{3, 4, 0}},
	}
	for _, c := range cases {
		s := mavsim.NewState(mavsim.Vector3{}, c.uvw, mavsim.Euler2Quaternion(0, 0, 0), mavsim.Vector3{})
		fmt.Printf("uvw=%v wind=%v: %s\n", c.uvw, c.wind, mavsim.NewAirData(s, mavsim.Wind{Steady: c.wind}))
	}
}
