package types

// JSONMap is a loose key/value bag persisted as a JSON column.
type JSONMap map[string]any
