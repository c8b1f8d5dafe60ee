package report

import (
	"bytes"
	"fmt"
	"sort"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"netpulse/internal/models"
)

// smaWindow is the number of samples averaged for the moving-average overlay.
const smaWindow = 10

type point struct {
	t time.Time
	v float64
}

// RenderLatencyPNG draws an RTT-over-time chart for one target. Failed
// probes carry no meaningful RTT and are skipped.
func RenderLatencyPNG(target string, samples []models.Sample) ([]byte, error) {
	var pts []point
	for _, s := range samples {
		if s.Target != target || !s.Success {
			continue
		}
		pts = append(pts, point{t: s.Timestamp, v: s.RTT})
	}
	if len(pts) < 2 {
		return nil, fmt.Errorf("not enough successful samples for %s", target)
	}
	sort.Slice(pts, func(i, j int) bool { return pts[i].t.Before(pts[j].t) })

	times := make([]time.Time, len(pts))
	values := make([]float64, len(pts))
	for i, p := range pts {
		times[i] = p.t
		values[i] = p.v
	}

	series := chart.TimeSeries{
		Name: target,
		Style: chart.Style{
			StrokeColor: chart.GetDefaultColor(0),
			StrokeWidth: 2,
		},
		XValues: times,
		YValues: values,
	}

	graph := chart.Chart{
		Title: fmt.Sprintf("Network Latency - %s", target),
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeMinuteValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Latency (ms)",
			NameStyle: chart.Style{
				FontSize: 12,
			},
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: []chart.Series{series},
	}

	if len(values) > smaWindow {
		graph.Series = append(graph.Series, chart.SMASeries{
			Name: "Moving Avg",
			Style: chart.Style{
				StrokeColor:     chart.GetDefaultColor(1),
				StrokeWidth:     2,
				StrokeDashArray: []float64{5, 5},
			},
			InnerSeries: series,
			Period:      smaWindow,
		})
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderAvailabilityPNG draws hourly uptime percentages for every target
// present in samples, one series per target.
func RenderAvailabilityPNG(samples []models.Sample) ([]byte, error) {
	type bucket struct {
		total      int
		successful int
	}
	hourly := make(map[string]map[time.Time]*bucket)
	for _, s := range samples {
		hour := s.Timestamp.Truncate(time.Hour)
		if hourly[s.Target] == nil {
			hourly[s.Target] = make(map[time.Time]*bucket)
		}
		b := hourly[s.Target][hour]
		if b == nil {
			b = &bucket{}
			hourly[s.Target][hour] = b
		}
		b.total++
		if s.Success {
			b.successful++
		}
	}
	if len(hourly) == 0 {
		return nil, fmt.Errorf("no samples to chart")
	}

	targets := make([]string, 0, len(hourly))
	for target := range hourly {
		targets = append(targets, target)
	}
	sort.Strings(targets)

	var allSeries []chart.Series
	for i, target := range targets {
		buckets := hourly[target]
		hours := make([]time.Time, 0, len(buckets))
		for hour := range buckets {
			hours = append(hours, hour)
		}
		sort.Slice(hours, func(a, b int) bool { return hours[a].Before(hours[b]) })

		times := make([]time.Time, len(hours))
		values := make([]float64, len(hours))
		for j, hour := range hours {
			b := buckets[hour]
			times[j] = hour
			values[j] = float64(b.successful) / float64(b.total) * 100
		}

		allSeries = append(allSeries, chart.TimeSeries{
			Name: target,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
			XValues: times,
			YValues: values,
		})
	}

	graph := chart.Chart{
		Title: "Network Availability (Hourly)",
		TitleStyle: chart.Style{
			FontSize: 16,
		},
		Background: chart.Style{
			Padding: chart.Box{
				Top:    20,
				Left:   20,
				Right:  20,
				Bottom: 20,
			},
		},
		Width:  1200,
		Height: 400,
		XAxis: chart.XAxis{
			Name: "Time",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			ValueFormatter: chart.TimeHourValueFormatter,
		},
		YAxis: chart.YAxis{
			Name: "Uptime %",
			Style: chart.Style{
				StrokeColor: drawing.ColorBlack,
				FontSize:    10,
			},
			Range: &chart.ContinuousRange{
				Min: 0,
				Max: 100,
			},
			GridMajorStyle: chart.Style{
				StrokeColor: drawing.Color{R: 200, G: 200, B: 200, A: 255},
				StrokeWidth: 1.0,
			},
		},
		Series: allSeries,
	}

	graph.Elements = []chart.Renderable{
		chart.Legend(&graph),
	}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
