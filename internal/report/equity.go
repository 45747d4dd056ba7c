// Package report genera el reporte HTML del torneo: curvas de equity de
// todos los agentes sobre el mismo eje temporal y un resumen de retornos.
package report

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"github.com/alejandrodnm/botarena/internal/application/arena"
	"github.com/alejandrodnm/botarena/internal/domain"
)

const (
	chartWidth  = "1200px"
	chartHeight = "560px"

	colorGain = "#34d399"
	colorLoss = "#f87171"
)

// WriteEquityReport vuelca a w una página HTML con la curva de equity de
// cada agente y un gráfico de barras con el retorno acumulado.
func WriteEquityReport(w io.Writer, res *arena.Result) error {
	page := components.NewPage()
	page.SetLayout(components.PageCenterLayout)
	page.AddCharts(equityLine(res), returnBars(res.Agents))
	return page.Render(w)
}

// equityLine pinta una serie por agente. El eje X es la unión ordenada de
// los timestamps de todas las curvas; los huecos de un agente se rellenan
// con null para que las series no se desalineen.
func equityLine(res *arena.Result) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Botarena — equity por agente",
			Subtitle: fmt.Sprintf("actualizado %s | %d mercados en seguimiento", res.LastUpdatedHuman, res.TotalMarkets),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "30"}),
		charts.WithYAxisOpts(opts.YAxis{Scale: opts.Bool(true)}),
	)

	labels, index := timeAxis(res.Agents)
	line.SetXAxis(labels)

	for _, row := range res.Agents {
		series := alignSeries(row.EquityCurve, index, len(labels))
		name := row.Name
		if row.Emoji != "" {
			name = row.Emoji + " " + row.Name
		}
		if row.Color != "" {
			line.AddSeries(name, series, charts.WithLineStyleOpts(opts.LineStyle{Color: row.Color, Width: 2}))
		} else {
			line.AddSeries(name, series)
		}
	}
	line.SetSeriesOptions(
		charts.WithLineChartOpts(opts.LineChart{ShowSymbol: opts.Bool(false), Smooth: opts.Bool(true)}),
	)
	return line
}

// returnBars resume el retorno acumulado de cada agente, verde si gana y
// rojo si pierde.
func returnBars(rows []arena.AgentRow) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Theme:  types.ThemeWesteros,
			Width:  chartWidth,
			Height: "320px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Retorno acumulado (%)"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)

	names := make([]string, len(rows))
	data := make([]opts.BarData, len(rows))
	for i, row := range rows {
		names[i] = row.Name
		color := colorGain
		if row.ReturnPct < 0 {
			color = colorLoss
		}
		data[i] = opts.BarData{
			Value:     row.ReturnPct,
			ItemStyle: &opts.ItemStyle{Color: color, Opacity: opts.Float(0.85)},
		}
	}
	bar.SetXAxis(names)
	bar.AddSeries("return", data)
	return bar
}

const axisLayout = "01-02 15:04"

// timeAxis devuelve las etiquetas del eje X y el índice unix→posición.
func timeAxis(rows []arena.AgentRow) ([]string, map[int64]int) {
	seen := make(map[int64]bool)
	var stamps []int64
	for _, row := range rows {
		for _, p := range row.EquityCurve {
			ts := p.Time.Unix()
			if !seen[ts] {
				seen[ts] = true
				stamps = append(stamps, ts)
			}
		}
	}
	sort.Slice(stamps, func(i, j int) bool { return stamps[i] < stamps[j] })

	labels := make([]string, len(stamps))
	index := make(map[int64]int, len(stamps))
	for i, ts := range stamps {
		index[ts] = i
		labels[i] = unixLabel(ts)
	}
	return labels, index
}

func unixLabel(ts int64) string {
	return time.Unix(ts, 0).UTC().Format(axisLayout)
}

// alignSeries proyecta una curva sobre el eje común, con null en los
// huecos donde el agente no tiene muestra.
func alignSeries(curve []domain.EquityPoint, index map[int64]int, length int) []opts.LineData {
	series := make([]opts.LineData, length)
	for i := range series {
		series[i] = opts.LineData{Value: nil}
	}
	for _, p := range curve {
		if pos, ok := index[p.Time.Unix()]; ok {
			series[pos] = opts.LineData{Value: p.Value}
		}
	}
	return series
}
