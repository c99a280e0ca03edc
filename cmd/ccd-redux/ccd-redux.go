package main

import(
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/abworrall/ccd-redux/pkg/ccd"
	"github.com/abworrall/ccd-redux/pkg/fits"
	"github.com/abworrall/ccd-redux/pkg/render"
)

var(
	fConfigFilename string
	fOutputDir      string
	fOverscan       bool
	fCosmicRays     bool
	fRescaleMode    string
	fColormap       string
	fDump           bool
)

func init() {
	flag.StringVar(&fConfigFilename, "config", "", "name of YAML config file")
	flag.StringVar(&fOutputDir, "o", ".", "directory for rendered output")
	flag.BoolVar(&fOverscan, "overscan", true, "subtract the overscan bias level at load time")
	flag.BoolVar(&fCosmicRays, "cosmic", true, "suppress cosmic ray hits at load time")
	flag.StringVar(&fRescaleMode, "rescale", "", "display stretch for rendered science frames (linear,sqrt,log,power)")
	flag.StringVar(&fColormap, "colormap", "", "colormap for rendered science frames")
	flag.BoolVar(&fDump, "dump", false, "also dump calibrated frames as .hdr and 16-bit .tif")
	flag.Parse()

	log.Printf("Starting\n")
}

func main() {
	cfg := ccd.NewConfig()
	if fConfigFilename != "" {
		var err error
		if cfg, err = ccd.LoadConfig(fConfigFilename); err != nil {
			log.Fatalf("config %s: %v\n", fConfigFilename, err)
		}
		log.Printf("Loaded base configuration from %s\n", fConfigFilename)
	}

	// Override the config file with command line args, if relevant
	cfg.SubtractOverscan = fOverscan
	cfg.RemoveCosmicRays = fCosmicRays
	if fRescaleMode != "" { cfg.Rescale.Mode = fRescaleMode }
	if fColormap != "" { cfg.Colormap = fColormap }
	if err := cfg.FinalizeConfig(); err != nil {
		log.Fatalf("config: %v\n", err)
	}

	biases, flats, sciences := []*ccd.Bias{}, []*ccd.Flat{}, []*ccd.Science{}
	for _, arg := range flag.Args() {
		if err := loadArg(arg, cfg, &biases, &flats, &sciences); err != nil {
			log.Fatal(err)
		}
	}
	log.Printf("Loaded %d bias, %d flat, %d science frames (live: %d/%d/%d)\n",
		len(biases), len(flats), len(sciences),
		ccd.LiveCount(ccd.RoleBias), ccd.LiveCount(ccd.RoleFlat), ccd.LiveCount(ccd.RoleScience))

	masterBias, masterFlat, err := buildMasters(biases, flats)
	if err != nil {
		log.Fatalf("building master frames: %v\n", err)
	}

	display := render.Display{Dir: fOutputDir}

	for _, sci := range sciences {
		if err := reduce(sci, masterBias, masterFlat, cfg); err != nil {
			log.Fatalf("reducing %s: %v\n", sci.Names()[0], err)
		}

		fmt.Printf("%s", sci.Summary())
		log.Printf("%s: %s\n", sci.Names()[0], sci.ActiveStats())

		if err := sci.Show(&display, cfg.Colormap); err != nil {
			log.Fatalf("rendering %s: %v\n", sci.Names()[0], err)
		}
		if fDump {
			if err := dump(sci, fOutputDir); err != nil {
				log.Fatalf("dumping %s: %v\n", sci.Names()[0], err)
			}
		}

		sci.Close()
	}

	log.Printf("Done\n")
}

// loadArg loads a FITS file, or recurses into a directory of them,
// sorting each frame into a role by its OBSTYPE header.
func loadArg(arg string, cfg ccd.Config, biases *[]*ccd.Bias, flats *[]*ccd.Flat, sciences *[]*ccd.Science) error {
	item, err := os.Stat(arg)

	switch {

	case err != nil:
		return fmt.Errorf("load %s: %v", arg, err)

	case item.IsDir():
		contents, err := os.ReadDir(arg)
		if err != nil {
			return fmt.Errorf("readdir %s: %v", arg, err)
		}
		for _, content := range contents {
			if err := loadArg(filepath.Join(arg, content.Name()), cfg, biases, flats, sciences); err != nil {
				return err
			}
		}
		return nil
	}

	name := fits.FrameName(arg)
	if cfg.Excluded(name) {
		log.Printf("Skipping excluded frame %s\n", name)
		return nil
	}

	hdr, raw, err := fits.Read(arg)
	if err != nil {
		return err
	}

	switch strings.ToLower(hdr.StrOr("OBSTYPE", "")) {
	case "bias":
		b, err := ccd.NewBias(name, hdr, raw, cfg)
		if err != nil {
			return fmt.Errorf("bias %s: %v", name, err)
		}
		*biases = append(*biases, b)
	case "flat":
		f, err := ccd.NewFlat(name, hdr, raw, cfg)
		if err != nil {
			return fmt.Errorf("flat %s: %v", name, err)
		}
		*flats = append(*flats, f)
	default:
		s, err := ccd.NewScience(name, hdr, raw, cfg)
		if err != nil {
			return fmt.Errorf("science %s: %v", name, err)
		}
		*sciences = append(*sciences, s)
	}

	return nil
}

// buildMasters averages the bias frames into a master bias, and the
// flats (bias-subtracted) into a master flat. Either may come back
// nil if no frames of that role were loaded.
func buildMasters(biases []*ccd.Bias, flats []*ccd.Flat) (*ccd.Bias, *ccd.Flat, error) {
	var masterBias *ccd.Bias
	if len(biases) > 0 {
		frames := []*ccd.Frame{}
		for _, b := range biases {
			frames = append(frames, b.Frame)
		}
		avg, err := ccd.Average(frames)
		if err != nil {
			return nil, nil, err
		}
		masterBias = ccd.BiasFromFrame(avg)
		log.Printf("Master bias from %d frames: %s\n", len(biases), avg.ActiveStats())
	}

	var masterFlat *ccd.Flat
	if len(flats) > 0 {
		frames := []*ccd.Frame{}
		for _, f := range flats {
			frames = append(frames, f.Frame)
		}
		avg, err := ccd.Average(frames)
		if err != nil {
			return nil, nil, err
		}
		masterFlat = ccd.FlatFromFrame(avg)
		if masterBias != nil {
			if err := masterFlat.SubtractBias(masterBias); err != nil {
				return nil, nil, err
			}
		}
		log.Printf("Master flat from %d frames: %s\n", len(flats), avg.ActiveStats())
	}

	return masterBias, masterFlat, nil
}

func reduce(sci *ccd.Science, masterBias *ccd.Bias, masterFlat *ccd.Flat, cfg ccd.Config) error {
	if masterBias != nil {
		if err := sci.SubtractBias(masterBias); err != nil {
			return err
		}
	}
	if masterFlat != nil {
		if err := sci.DivideFlat(masterFlat); err != nil {
			return err
		}
	}

	if cfg.Rescale.Mode != "" && cfg.Rescale.Mode != "linear" {
		min, max := sci.AutoCuts(cfg.Rescale.Clip)
		if err := sci.Rescale(cfg.Rescale.Mode, cfg.Rescale.Power, min, max); err != nil {
			return err
		}
	}

	return nil
}

func dump(sci *ccd.Science, dir string) error {
	name := sci.Names()[0]
	if err := render.WriteHDR(sci.Active(), filepath.Join(dir, name+".hdr")); err != nil {
		return err
	}
	return render.WriteTIFF16(sci.Active(), filepath.Join(dir, name+".tif"))
}
