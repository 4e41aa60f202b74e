// Package reader drives schema-table property dispatch over the wire token stream
// and assembles the immutable descriptor model.
package reader

import "go.trai.ch/weft/internal/adapters/wire"

// propertyMap is a static schema table: wire property name to the handler that
// consumes exactly that property's value and mutates the caller-supplied record.
// Tables are built once at package init and never rebuilt per call.
type propertyMap[T any] map[string]func(*wire.Reader, *T) error

// decodeProperties is the single traversal algorithm serving every schema. It reads
// property names until the object's end; matched names go to their handler,
// unmatched names are skipped whole so properties from a newer producer never
// desynchronize the stream.
func decodeProperties[T any](r *wire.Reader, schema propertyMap[T], record *T) error {
	for {
		name, ok, err := r.NextPropertyName()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		handler, found := schema[name]
		if !found {
			if err := r.SkipValue(); err != nil {
				return err
			}
			continue
		}
		if err := handler(r, record); err != nil {
			return err
		}
	}
}
