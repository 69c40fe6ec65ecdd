package plot

import (
	"fmt"
	"html"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/pointmap/pointmap/internal/detail"
	"github.com/pointmap/pointmap/internal/panel"
)

var seriesPalette = []string{
	"#4A90D9", "#50C878", "#FFB347", "#9B59B6",
	"#E74C3C", "#1ABC9C", "#F1C40F", "#E67E22",
	"#2ECC71", "#3498DB", "#D35400", "#8E44AD",
}

const unlabelledColor = "#7F8C8D"

type seriesData struct {
	Name   string       `json:"name"`
	Color  string       `json:"color"`
	Points [][3]float64 `json:"points"` // x, y, point index
}

// HTML renders the single self-contained document: base scatter, detail
// panel markup, embedded hover and detail data, and the click handler that
// drives showPointDetails. Everything the renderer needs is embedded; no
// network access happens at view time.
func (p *Plot) HTML() (string, error) {
	detailScript, err := panel.Script(p.details)
	if err != nil {
		return "", err
	}

	hover := p.hover
	if hover == nil {
		hover = []string{}
	}
	hoverJSON, err := gojson.Marshal(hover)
	if err != nil {
		return "", fmt.Errorf("plot: failed to marshal hover text: %w", err)
	}

	seriesJSON, err := gojson.Marshal(p.buildSeries())
	if err != nil {
		return "", fmt.Errorf("plot: failed to marshal series: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(p.renderHead())
	sb.WriteString(`<body><div class="container">`)
	sb.WriteString(p.renderHeader())
	sb.WriteString(p.renderChart())
	sb.WriteString(p.renderPanel())
	sb.WriteString(`</div>`)
	sb.WriteString(p.renderScripts(string(seriesJSON), string(hoverJSON), detailScript))
	sb.WriteString(`</body></html>`)
	return sb.String(), nil
}

// buildSeries groups points by their first label layer so the base plot gets
// one colored series per top-level cluster. Unclustered points share one
// muted series.
func (p *Plot) buildSeries() []seriesData {
	var groups []seriesData
	pos := make(map[string]int)

	addPoint := func(name, color string, i int) {
		gi, ok := pos[name]
		if !ok {
			groups = append(groups, seriesData{Name: name, Color: color})
			gi = len(groups) - 1
			pos[name] = gi
		}
		groups[gi].Points = append(groups[gi].Points,
			[3]float64{p.geometry[i][0], p.geometry[i][1], float64(i)})
	}

	var first []string
	if len(p.layers) > 0 {
		first = p.layers[0]
	}

	nextColor := 0
	for i := range p.geometry {
		if first == nil || i >= len(first) || detail.IsNullLike(first[i]) {
			addPoint("Unlabelled", unlabelledColor, i)
			continue
		}
		label := first[i]
		if _, ok := pos[label]; !ok {
			addPoint(label, seriesPalette[nextColor%len(seriesPalette)], i)
			nextColor++
			continue
		}
		addPoint(label, "", i)
	}
	return groups
}

func (p *Plot) renderHead() string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>%s</title>
    <script src="https://cdn.jsdelivr.net/npm/echarts@5.4.3/dist/echarts.min.js"></script>
    <style>%s</style>
</head>`, html.EscapeString(p.cfg.Title), p.themeCSS())
}

func (p *Plot) themeCSS() string {
	if p.cfg.Theme == "light" {
		return lightThemeCSS + panelCSS
	}
	return darkThemeCSS + panelCSS
}

func (p *Plot) renderHeader() string {
	return fmt.Sprintf(`
<header>
    <h1>%s</h1>
    <p>%s</p>
</header>`, html.EscapeString(p.cfg.Title), html.EscapeString(p.cfg.Subtitle))
}

func (p *Plot) renderChart() string {
	return fmt.Sprintf(`
<div class="chart-box">
    <div id="data-map-%s" class="chart"></div>
</div>`, p.id)
}

func (p *Plot) renderPanel() string {
	return `
<aside id="detail-panel">
    <div id="detail-panel-header">
        <button id="detail-panel-close" type="button" aria-label="Close">&times;</button>
    </div>
    <div id="detail-panel-content"></div>
</aside>`
}

func (p *Plot) renderScripts(seriesJSON, hoverJSON, detailScript string) string {
	chart := strings.NewReplacer(
		"__CHART_ID__", "data-map-"+p.id,
		"__SERIES__", seriesJSON,
		"__HOVER__", hoverJSON,
		"__MARKER_SIZE__", fmt.Sprintf("%d", p.cfg.MarkerSize),
	).Replace(chartScript)

	return "\n<script>" + detailScript + chart + "</script>"
}

const chartScript = `
(function () {
    var el = document.getElementById('__CHART_ID__');
    if (!el) return;
    var chart = echarts.init(el);
    var hoverData = __HOVER__;
    var seriesData = __SERIES__;

    chart.setOption({
        tooltip: {
            trigger: 'item',
            formatter: function (p) {
                var idx = p.data[2];
                return hoverData && hoverData[idx] ? hoverData[idx] : 'Point #' + (idx + 1);
            }
        },
        legend: { show: seriesData.length > 1, type: 'scroll', textStyle: { color: '#aaa' } },
        xAxis: { type: 'value', show: false },
        yAxis: { type: 'value', show: false },
        series: seriesData.map(function (s) {
            return {
                name: s.name,
                type: 'scatter',
                symbolSize: __MARKER_SIZE__,
                itemStyle: { color: s.color || undefined },
                data: s.points
            };
        })
    });

    chart.on('click', function (p) {
        if (!p.data || p.data.length < 3) return;
        var idx = p.data[2];
        showPointDetails(hoverData && hoverData[idx] ? hoverData[idx] : '', idx);
    });

    var close = document.getElementById('detail-panel-close');
    if (close) close.addEventListener('click', hidePointDetails);

    window.addEventListener('resize', function () { chart.resize(); });
})();
`

const darkThemeCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background: linear-gradient(135deg, #1a1a2e 0%, #16213e 100%);
    min-height: 100vh;
    color: #e4e4e4;
}
.container { max-width: 1600px; margin: 0 auto; padding: 20px; }
header { text-align: center; padding: 30px 0; border-bottom: 1px solid #333; margin-bottom: 30px; }
header h1 { font-size: 2.5rem; background: linear-gradient(90deg, #4A90D9, #50C878); -webkit-background-clip: text; -webkit-text-fill-color: transparent; margin-bottom: 10px; }
header p { color: #888; font-size: 1.1rem; }
.chart-box { background: rgba(255,255,255,0.05); border-radius: 12px; padding: 20px; border: 1px solid rgba(255,255,255,0.1); }
.chart { width: 100%; height: 650px; }
#detail-panel { background: #16213e; color: #e4e4e4; border-left: 1px solid rgba(255,255,255,0.1); }
#detail-panel .detail-label { color: #50C878; }
#detail-panel a { color: #4A90D9; }
`

const lightThemeCSS = `
* { margin: 0; padding: 0; box-sizing: border-box; }
body {
    font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
    background: linear-gradient(135deg, #f5f7fa 0%, #e4e8ec 100%);
    min-height: 100vh;
    color: #333;
}
.container { max-width: 1600px; margin: 0 auto; padding: 20px; }
header { text-align: center; padding: 30px 0; border-bottom: 1px solid #ddd; margin-bottom: 30px; }
header h1 { font-size: 2.5rem; background: linear-gradient(90deg, #4A90D9, #50C878); -webkit-background-clip: text; -webkit-text-fill-color: transparent; margin-bottom: 10px; }
header p { color: #666; font-size: 1.1rem; }
.chart-box { background: #fff; border-radius: 12px; padding: 20px; border: 1px solid #e0e0e0; box-shadow: 0 2px 8px rgba(0,0,0,0.05); }
.chart { width: 100%; height: 650px; }
#detail-panel { background: #fff; color: #333; border-left: 1px solid #e0e0e0; box-shadow: -2px 0 8px rgba(0,0,0,0.08); }
#detail-panel .detail-label { color: #2e8b57; }
#detail-panel a { color: #4A90D9; }
`

const panelCSS = `
#detail-panel { position: fixed; top: 0; right: -440px; width: 420px; height: 100%; overflow-y: auto; padding: 20px; transition: right 0.3s ease; z-index: 10; }
#detail-panel.active { right: 0; }
#detail-panel-header { text-align: right; }
#detail-panel-close { background: none; border: none; color: inherit; font-size: 1.6rem; cursor: pointer; line-height: 1; }
.detail-title { font-size: 1.4rem; font-weight: 600; margin-bottom: 15px; word-break: break-word; }
.detail-section { margin-bottom: 15px; }
.detail-label { font-size: 0.8rem; font-weight: 600; text-transform: uppercase; letter-spacing: 0.05em; margin-bottom: 4px; }
.detail-value { font-size: 0.95rem; word-break: break-word; white-space: pre-wrap; }
`
