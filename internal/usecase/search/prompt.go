package search

import (
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/kailas-cloud/leadscout/internal/domain/geo"
	"github.com/kailas-cloud/leadscout/internal/domain/search/request"
	"github.com/kailas-cloud/leadscout/internal/domain/search/strategy"
)

var promptTemplate = template.Must(template.New("batch").Parse(
	`Find {{.Size}} real businesses matching "{{.Query}}" {{.Location}}.
Focus only on businesses {{.Hint}}.
Use the maps lookup and web search tools to collect public contact details.
Return ONLY a JSON array. Each element must be an object with the keys
"nome", "telefone", "email", "instagram", "facebook" and "linkedin".
Use an empty string for any value you cannot find. Do not invent data.`))

type promptData struct {
	Size     int
	Query    string
	Location string
	Hint     string
}

// renderPrompt builds the batch prompt and returns the geo-bias the location scope asks for.
func renderPrompt(
	req *request.Request, b strategy.Batch, proximityKm float64,
) (string, *geo.Point, error) {
	loc, bias := describeLocation(req, proximityKm)

	var sb strings.Builder
	err := promptTemplate.Execute(&sb, promptData{
		Size:     b.Size,
		Query:    req.Query(),
		Location: loc,
		Hint:     b.Strategy.Hint,
	})
	if err != nil {
		return "", nil, fmt.Errorf("render prompt: %w", err)
	}
	return sb.String(), bias, nil
}

// describeLocation resolves exactly one location scope for the request.
func describeLocation(req *request.Request, proximityKm float64) (string, *geo.Point) {
	f := req.Filters()
	p := req.GeoPoint()

	switch req.Scope() {
	case request.ScopePlace:
		return fmt.Sprintf("located in %s, %s", f.City, f.State), nil
	case request.ScopeRadius:
		b := geo.BoundAround(p, f.RadiusKm)
		return fmt.Sprintf(
			"within %s km of latitude %.5f, longitude %.5f (inside the box lat %.4f..%.4f, lng %.4f..%.4f)",
			formatKm(f.RadiusKm), p.Latitude, p.Longitude, b.MinLat, b.MaxLat, b.MinLng, b.MaxLng,
		), &p
	default:
		return fmt.Sprintf(
			"near latitude %.5f, longitude %.5f (within about %s km)",
			p.Latitude, p.Longitude, formatKm(proximityKm),
		), &p
	}
}

func formatKm(km float64) string {
	return strconv.FormatFloat(km, 'f', -1, 64)
}
