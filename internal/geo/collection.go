package geo

import "fmt"

// CartesianCollection is an ordered sequence of N points in a shared
// Cartesian frame, each carrying a value vector of fixed dimensionality D.
// D=1 holds scalar outputs; D=2 holds (mean, variance) pairs. Columns are
// stored densely for cheap columnar access.
type CartesianCollection struct {
	Origin PolarLocation
	Dim    int

	east, north []float64
	values      [][]float64 // values[d][i], len(values) == Dim
}

// NewCollection creates an empty collection of dimensionality dim, sharing
// origin with the map/target it is derived from.
func NewCollection(origin PolarLocation, dim int) *CartesianCollection {
	values := make([][]float64, dim)
	for d := range values {
		values[d] = []float64{}
	}
	return &CartesianCollection{Origin: origin, Dim: dim, values: values}
}

// Len returns the number of points in the collection.
func (c *CartesianCollection) Len() int { return len(c.east) }

// OriginLocation returns the collection's fixed polar origin.
func (c *CartesianCollection) OriginLocation() PolarLocation { return c.Origin }

// East returns the east coordinate of point i.
func (c *CartesianCollection) East(i int) float64 { return c.east[i] }

// North returns the north coordinate of point i.
func (c *CartesianCollection) North(i int) float64 { return c.north[i] }

// V returns value column d of point i.
func (c *CartesianCollection) V(d, i int) float64 { return c.values[d][i] }

// Row returns the full value vector at point i.
func (c *CartesianCollection) Row(i int) []float64 {
	row := make([]float64, c.Dim)
	for d := 0; d < c.Dim; d++ {
		row[d] = c.values[d][i]
	}
	return row
}

// Coordinates returns the (east, north) pair for every point, in order.
func (c *CartesianCollection) Coordinates() [][2]float64 {
	coords := make([][2]float64, c.Len())
	for i := range coords {
		coords[i] = [2]float64{c.east[i], c.north[i]}
	}
	return coords
}

// Append adds one point. len(values) must equal c.Dim.
func (c *CartesianCollection) Append(east, north float64, values ...float64) error {
	if len(values) != c.Dim {
		return fmt.Errorf("geo: append expects %d values, got %d", c.Dim, len(values))
	}
	c.east = append(c.east, east)
	c.north = append(c.north, north)
	for d, v := range values {
		c.values[d] = append(c.values[d], v)
	}
	return nil
}

// SetRow overwrites the value vector at point i in place.
func (c *CartesianCollection) SetRow(i int, values []float64) error {
	if len(values) != c.Dim {
		return fmt.Errorf("geo: SetRow expects %d values, got %d", c.Dim, len(values))
	}
	for d, v := range values {
		c.values[d][i] = v
	}
	return nil
}

// Clear removes every point but keeps origin and dimensionality.
func (c *CartesianCollection) Clear() {
	c.east = c.east[:0]
	c.north = c.north[:0]
	for d := range c.values {
		c.values[d] = c.values[d][:0]
	}
}

// Clone returns a deep copy of the collection.
func (c *CartesianCollection) Clone() *CartesianCollection {
	out := &CartesianCollection{
		Origin: c.Origin,
		Dim:    c.Dim,
		east:   append([]float64(nil), c.east...),
		north:  append([]float64(nil), c.north...),
		values: make([][]float64, c.Dim),
	}
	for d := range c.values {
		out.values[d] = append([]float64(nil), c.values[d]...)
	}
	return out
}
