package panel

import (
	"fmt"
	"strings"

	gojson "github.com/goccy/go-json"

	"github.com/pointmap/pointmap/internal/detail"
)

// Script returns the client-side renderer plus the embedded point-detail
// data. The data binding is initialized once at document load and never
// mutated; showPointDetails only reads it. The JavaScript mirrors
// Renderer.Render — keep the two in sync.
func Script(details *detail.Table) (string, error) {
	if details == nil {
		details = detail.NewTable()
	}
	data, err := gojson.Marshal(details)
	if err != nil {
		return "", fmt.Errorf("panel: failed to marshal detail table: %w", err)
	}
	return strings.ReplaceAll(detailScript, "__POINT_DETAILS__", string(data)), nil
}

const detailScript = `
// Point-detail data, injected once at build time. Read-only.
var pointDetailsData = __POINT_DETAILS__;

function showPointDetails(hoverText, pointIndex) {
    var panel = document.getElementById('detail-panel');
    var content = document.getElementById('detail-panel-content');
    if (!panel || !content) return;

    var detailData = null;
    if (pointDetailsData && pointIndex !== undefined) {
        detailData = pointDetailsData.find(function (d) { return d.index === pointIndex; }) || null;
    }

    var esc = function (s) {
        return String(s)
            .replace(/&/g, '&amp;')
            .replace(/</g, '&lt;')
            .replace(/>/g, '&gt;')
            .replace(/"/g, '&quot;');
    };

    var parts = [];

    var title = (detailData && (detailData.title || detailData.name)) || ('Point #' + (pointIndex + 1));
    parts.push('<div class="detail-title">' + esc(title) + '</div>');
    parts.push('<div class="detail-metadata">');

    if (detailData && detailData._cluster_info) {
        parts.push('<div class="detail-section"><div class="detail-label">Clusters</div><div class="detail-value">');
        for (var level in detailData._cluster_info) {
            parts.push('<div>' + esc(level) + ': <strong>' + esc(detailData._cluster_info[level]) + '</strong></div>');
        }
        parts.push('</div></div>');
    }

    if (detailData) {
        var skip = { index: true, title: true, name: true, _cluster_info: true };
        for (var key in detailData) {
            var value = detailData[key];
            if (skip[key] || value == null) continue;

            var label = key.replace(/_/g, ' ').replace(/\b\w/g, function (l) { return l.toUpperCase(); });

            var display;
            if (Array.isArray(value)) {
                display = esc(value.join(', '));
            } else if (typeof value === 'object') {
                display = esc(JSON.stringify(value, null, 2));
            } else if (typeof value === 'string' && value.indexOf('http') === 0) {
                display = '<a href="' + esc(value) + '" target="_blank" rel="noopener">' + esc(value) + '</a>';
            } else {
                display = esc(value);
            }

            parts.push('<div class="detail-section"><div class="detail-label">' + esc(label) + '</div><div class="detail-value">' + display + '</div></div>');
        }
    }

    if (!detailData) {
        parts.push('<div class="detail-section"><div class="detail-value">' + esc(hoverText || 'No details available') + '</div></div>');
    }

    parts.push('</div>');

    content.innerHTML = parts.join('');
    panel.classList.add('active');
}

function hidePointDetails() {
    var panel = document.getElementById('detail-panel');
    if (panel) panel.classList.remove('active');
}
`
