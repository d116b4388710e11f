package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/cognicore/scriptbox/internal/logger"
	"github.com/cognicore/scriptbox/pkg/scriptbox/config"
	"github.com/cognicore/scriptbox/pkg/scriptbox/plot"
	"github.com/cognicore/scriptbox/pkg/scriptbox/weather"
)

func main() {
	var (
		envFile = flag.String("env", ".env", "Dotenv file with WEATHERBIT_API_KEY")
		output  = flag.String("out", "", "PNG output path (overrides WEATHER_OUTPUT)")
		preview = flag.Int("head", 5, "Rows of the processed series to print")
		logMode = flag.String("log", "dev", "Log mode: dev or prod")
	)
	flag.Parse()

	log, err := logger.New(*logMode)
	if err != nil {
		fmt.Fprintln(os.Stderr, "init logger:", err)
		os.Exit(1)
	}
	defer log.Sync()

	cfg, err := config.LoadWeather(*envFile)
	if err != nil {
		log.Fatal("invalid weather configuration", "error", err)
	}
	if *output != "" {
		cfg.Output = *output
	}

	client := &weather.Client{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Logger:     log,
	}
	if err := run(context.Background(), os.Stdout, client, cfg, *preview); err != nil {
		log.Fatal("weather plot failed", "error", err)
	}
	log.Info("chart written", "path", cfg.Output)
}

func run(ctx context.Context, w io.Writer, client *weather.Client, cfg *config.Weather, preview int) error {
	report, err := client.Current(ctx, cfg.Latitude, cfg.Longitude)
	if err != nil {
		return fmt.Errorf("fetch weather: %w", err)
	}

	fmt.Fprintln(w, "Processed DataFrame Head:")
	fmt.Fprint(w, report.Minutely.Head(preview).Table())

	chart := plot.LineChart{
		Title:  "Minute-by-Minute Temperature in " + report.City,
		XLabel: "Time (Local)",
		YLabel: "Temperature (°C)",
		Width:  1200,
		Height: 600,
		Grid:   true,
	}
	for _, m := range report.Minutely {
		chart.Points = append(chart.Points, plot.Point{X: m.Local, Y: m.Temp})
	}
	img, err := chart.Render()
	if err != nil {
		return fmt.Errorf("render chart: %w", err)
	}
	return plot.SavePNG(cfg.Output, img)
}
