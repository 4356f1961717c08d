package main

import (
	"fmt"
	"os"
	"runtime/debug"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/spf13/cobra"

	"github.com/provide-io/icns-go/pkg/icns"
	"github.com/provide-io/icns-go/pkg/logging"
)

const version = "0.1.0"

var (
	inputPath   string
	outputPath  string
	formatsSpec string
	noUpscale   bool
	parallel    bool
	logLevel    string
	rootCmd     *cobra.Command
	versionFlag bool
)

func getEncoderTimestamp() string {
	// Try to get vcs.time from build info
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.time" {
				if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
					return t.UTC().Format(time.RFC3339)
				}
			}
		}
	}
	// Fallback to binary modification time
	if exePath, err := os.Executable(); err == nil {
		if stat, err := os.Stat(exePath); err == nil {
			return stat.ModTime().UTC().Format(time.RFC3339)
		}
	}
	return time.Now().UTC().Format(time.RFC3339)
}

func init() {
	rootCmd = &cobra.Command{
		Use:   "icns-go-encoder",
		Short: "Encode an image into an Apple ICNS icon container",
		Long:  `Encode an image into an Apple ICNS icon container`,
		Run:   encodeIcon,
	}

	rootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Path to source image (required)")
	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Output path for .icns file (required)")
	rootCmd.Flags().StringVar(&formatsSpec, "formats", "recommended", "Formats: 'recommended', 'all', or comma-separated type codes (e.g. ic07,ic13)")
	rootCmd.Flags().BoolVar(&noUpscale, "no-upscale", false, "Fail instead of upscaling a too-small source")
	rootCmd.Flags().BoolVar(&parallel, "parallel", false, "Build icon variants concurrently")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
	rootCmd.Flags().BoolVarP(&versionFlag, "version", "V", false, "Show version information")

	if err := rootCmd.MarkFlagRequired("input"); err != nil {
		panic(err)
	}
	if err := rootCmd.MarkFlagRequired("output"); err != nil {
		panic(err)
	}
}

func main() {
	// Handle --version or -V before cobra parses other flags
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-V") {
		fmt.Printf("icns-go-encoder %s\n", version)
		fmt.Printf("Built: %s\n", getEncoderTimestamp())
		os.Exit(0)
	}

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// parseFormats resolves the --formats flag into a type code set.
func parseFormats(spec string) ([]icns.Type, error) {
	switch strings.ToLower(strings.TrimSpace(spec)) {
	case "", "recommended":
		return icns.Recommended(), nil
	case "all":
		// Drop the indexed legacy codes: they are catalog entries, not
		// buildable targets.
		var out []icns.Type
		for _, code := range icns.AllKnown() {
			s, err := icns.SpecFor(code)
			if err != nil {
				return nil, err
			}
			if s.Kind == icns.KindIndexed {
				continue
			}
			out = append(out, code)
		}
		return out, nil
	}

	var out []icns.Type
	for _, part := range strings.Split(spec, ",") {
		code := icns.Type(strings.TrimSpace(part))
		if _, err := icns.SpecFor(code); err != nil {
			return nil, err
		}
		out = append(out, code)
	}
	return out, nil
}

func encodeIcon(cmd *cobra.Command, args []string) {
	if versionFlag {
		fmt.Printf("icns-go-encoder %s\n", version)
		fmt.Printf("Built: %s\n", getEncoderTimestamp())
		return
	}

	level := logLevel
	if level == "" {
		level = logging.GetLogLevel()
	}
	logger := logging.NewLogger("icns-go-encoder", level, nil)

	logger.Info("🍏 ICNS encoder starting", "input", inputPath, "output", outputPath)

	formats, err := parseFormats(formatsSpec)
	if err != nil {
		logger.Error("❌ Bad --formats value", "formats", formatsSpec, "error", err)
		os.Exit(1)
	}
	logger.Debug("Resolved formats", "count", len(formats))

	img, err := imaging.Open(inputPath)
	if err != nil {
		logger.Error("❌ Failed to open source image", "path", inputPath, "error", err)
		os.Exit(1)
	}
	logger.Debug("✅ Source image loaded",
		"width", img.Bounds().Dx(),
		"height", img.Bounds().Dy(),
	)

	data, err := icns.NewEncoder().
		Data(img).
		Formats(formats).
		AllowUpscale(!noUpscale).
		Parallel(parallel).
		Build()
	if err != nil {
		logger.Error("❌ Encoding failed", "error", err)
		os.Exit(1)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		logger.Error("❌ Failed to write output", "path", outputPath, "error", err)
		os.Exit(1)
	}

	logger.Info("✅ ICNS written", "path", outputPath, "bytes", len(data), "variants", len(formats))
}
