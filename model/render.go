package model

import (
	"io"
	"strings"
)

// Render prints every live city as a map file line, roads in direction order.
// The output loads back into an identical registry.
func (r *Registry) Render() string {
	var sb strings.Builder
	r.WriteTo(&sb)
	return sb.String()
}

func (r *Registry) WriteTo(w io.Writer) (int64, error) {
	var total int64
	for _, city := range r.cities {
		var sb strings.Builder
		sb.WriteString(city)
		for _, d := range r.Directions(city) {
			sb.WriteByte(' ')
			sb.WriteString(d.String())
			sb.WriteByte('=')
			sb.WriteString(r.routes[city][d])
		}
		sb.WriteByte('\n')
		n, err := io.WriteString(w, sb.String())
		total += int64(n)
		if err != nil {
			return total, err
		}
	}
	return total, nil
}
